package cmd

import (
	"fmt"

	"github.com/solatis/domrules/internal/dom"
	"github.com/solatis/domrules/internal/rules"
	"github.com/spf13/cobra"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply a rules string to an HTML document and print the result",
	Long: `Parses the document, takes the first element matching --click as the
clicked element and applies the rules string to it. Without --rules the
string is read from the clicked element's rules attribute (data-rules by
default).

Example:
  domrules apply --html board.html --click '#tab2' \
    --rules 'self: +active aria-selected=true; siblings: -active aria-selected=false'`,
	RunE: runApply,
}

func init() {
	rootCmd.AddCommand(applyCmd)
	applyCmd.Flags().String("html", "-", "HTML file, - for stdin")
	applyCmd.Flags().String("click", "", "CSS selector of the clicked element")
	applyCmd.Flags().String("rules", "", "rules string (default: read from the clicked element)")
	applyCmd.Flags().String("rules-attr", "", "attribute holding the rules string")
	applyCmd.Flags().Bool("prevent-default", false, "call preventDefault on the event")
	applyCmd.Flags().Bool("stop-propagation", false, "call stopPropagation on the event")
	_ = applyCmd.MarkFlagRequired("click")
}

func runApply(cmd *cobra.Command, args []string) error {
	htmlPath, _ := cmd.Flags().GetString("html")
	clickSel, _ := cmd.Flags().GetString("click")

	doc, err := readDocument(cmd, htmlPath)
	if err != nil {
		return err
	}
	clicked, err := queryFirst(doc, clickSel)
	if err != nil {
		return err
	}

	rulesString, _ := cmd.Flags().GetString("rules")
	if !cmd.Flags().Changed("rules") {
		attr := cfg.RulesAttr
		if cmd.Flags().Changed("rules-attr") {
			attr, _ = cmd.Flags().GetString("rules-attr")
		}
		v, ok := (dom.HTML{}).Attr(clicked, attr)
		if !ok {
			return fmt.Errorf("%s has no %s attribute and --rules is not set", dom.Describe(clicked), attr)
		}
		rulesString = v
	}

	var opts rules.ApplyOptions
	opts.PreventDefault, _ = cmd.Flags().GetBool("prevent-default")
	opts.StopPropagation, _ = cmd.Flags().GetBool("stop-propagation")

	engine := rules.NewEngine(rules.WithLogger(logger), rules.WithDebug(cfg.Debug))
	ev := &rules.ClickEvent{TargetNode: clicked, CurrentTargetNode: clicked}
	if err := engine.Apply(rulesString, ev, opts); err != nil {
		return err
	}

	return writeDocument(cmd, doc)
}
