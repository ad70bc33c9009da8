package cmd

import (
	"fmt"

	"github.com/solatis/domrules/internal/board"
	"github.com/solatis/domrules/internal/dom"
	"github.com/solatis/domrules/internal/jsonenc"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var moveCardCmd = &cobra.Command{
	Use:   "move-card",
	Short: "Move a board card and print the card-moved request",
	Long: `Relocates the card matching --card into the column matching --to at
position --index, fills the card-moved form and prints the request the form
would send (target, trigger and JSON body). With --print-html the updated
document is printed as well.`,
	RunE: runMoveCard,
}

func init() {
	rootCmd.AddCommand(moveCardCmd)
	moveCardCmd.Flags().String("html", "-", "HTML file, - for stdin")
	moveCardCmd.Flags().String("card", "", "CSS selector of the card to move")
	moveCardCmd.Flags().String("to", "", "CSS selector of the destination column")
	moveCardCmd.Flags().Int("index", 0, "position in the destination column")
	moveCardCmd.Flags().Bool("print-html", false, "print the updated document")
	_ = moveCardCmd.MarkFlagRequired("card")
	_ = moveCardCmd.MarkFlagRequired("to")
}

func runMoveCard(cmd *cobra.Command, args []string) error {
	htmlPath, _ := cmd.Flags().GetString("html")
	cardSel, _ := cmd.Flags().GetString("card")
	toSel, _ := cmd.Flags().GetString("to")
	index, _ := cmd.Flags().GetInt("index")

	doc, err := readDocument(cmd, htmlPath)
	if err != nil {
		return err
	}
	card, err := queryFirst(doc, cardSel)
	if err != nil {
		return err
	}
	to, err := queryFirst(doc, toSel)
	if err != nil {
		return err
	}

	ev, err := board.Relocate(card, to, index)
	if err != nil {
		return err
	}
	move, err := board.MoveCard(doc, ev)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if move == nil {
		logger.Info("card did not move", zap.String("card", dom.Describe(card)))
		_, err = fmt.Fprintln(out, "card did not move")
		return err
	}

	form := dom.ElementByID(doc, board.FormID)
	opts := jsonenc.OptionsFor(form, jsonenc.Options{CleanArrays: cfg.CleanArrays})
	body, err := jsonenc.Encode(move.Values(), opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "HX-Target: %s\n", move.Target)
	fmt.Fprintf(out, "HX-Trigger: %s\n", move.Trigger)
	fmt.Fprintf(out, "Content-Type: %s\n\n%s\n", jsonenc.ContentType, body)

	if printHTML, _ := cmd.Flags().GetBool("print-html"); printHTML {
		return writeDocument(cmd, doc)
	}
	return nil
}
