package cmd

import (
	"fmt"

	"github.com/solatis/domrules/internal/dom"
	"github.com/spf13/cobra"
	"golang.org/x/net/html"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the element tree of an HTML document",
	RunE:  runTree,
}

func init() {
	rootCmd.AddCommand(treeCmd)
	treeCmd.Flags().String("html", "-", "HTML file, - for stdin")
	treeCmd.Flags().String("select", "", "print only the subtrees matching this CSS selector")
}

func runTree(cmd *cobra.Command, args []string) error {
	htmlPath, _ := cmd.Flags().GetString("html")
	sel, _ := cmd.Flags().GetString("select")

	doc, err := readDocument(cmd, htmlPath)
	if err != nil {
		return err
	}

	roots := []*html.Node{doc}
	if sel != "" {
		roots, err = (dom.HTML{}).QueryAll(doc, sel)
		if err != nil {
			return err
		}
	}
	for _, n := range roots {
		fmt.Fprint(cmd.OutOrStdout(), dom.Dump(n))
	}
	return nil
}
