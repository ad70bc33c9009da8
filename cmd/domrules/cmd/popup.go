package cmd

import (
	"github.com/solatis/domrules/internal/popup"
	"github.com/spf13/cobra"
)

var popupCmd = &cobra.Command{
	Use:   "popup",
	Short: "Open or close the standalone popup in an HTML document",
}

var popupShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Append the popup overlay and frame and print the document",
	RunE:  runPopupShow,
}

var popupCloseCmd = &cobra.Command{
	Use:   "close",
	Short: "Remove the first popup frame and overlay and print the document",
	RunE:  runPopupClose,
}

func init() {
	rootCmd.AddCommand(popupCmd)
	popupCmd.AddCommand(popupShowCmd, popupCloseCmd)
	popupCmd.PersistentFlags().String("html", "-", "HTML file, - for stdin")
	popupShowCmd.Flags().String("base-url", "http://localhost:8000", "site serving the popup stylesheet and frame")
}

func runPopupShow(cmd *cobra.Command, args []string) error {
	htmlPath, _ := cmd.Flags().GetString("html")
	base, _ := cmd.Flags().GetString("base-url")

	doc, err := readDocument(cmd, htmlPath)
	if err != nil {
		return err
	}
	if err := popup.Show(doc, popup.DefaultOptions(base)); err != nil {
		return err
	}
	return writeDocument(cmd, doc)
}

func runPopupClose(cmd *cobra.Command, args []string) error {
	htmlPath, _ := cmd.Flags().GetString("html")

	doc, err := readDocument(cmd, htmlPath)
	if err != nil {
		return err
	}
	if err := popup.Close(doc); err != nil {
		return err
	}
	return writeDocument(cmd, doc)
}
