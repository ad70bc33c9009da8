package cmd

import (
	"fmt"

	"github.com/solatis/domrules/internal/rules"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var parseCmd = &cobra.Command{
	Use:   "parse RULES",
	Short: "Parse a rules string and print the statements as YAML",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

// ruleView is the YAML shape of one parsed statement.
type ruleView struct {
	Selector string   `yaml:"selector"`
	Kind     string   `yaml:"kind"`
	Actions  []string `yaml:"actions"`
}

func runParse(cmd *cobra.Command, args []string) error {
	ruleSet, err := rules.Parse(args[0])
	if err != nil {
		return err
	}

	views := make([]ruleView, 0, len(ruleSet))
	for _, r := range ruleSet {
		v := ruleView{Selector: r.Selector, Kind: rules.SelectorKind(r.Selector)}
		for _, a := range r.Actions {
			v.Actions = append(v.Actions, a.String())
		}
		views = append(views, v)
	}

	out, err := yaml.Marshal(views)
	if err != nil {
		return fmt.Errorf("failed to encode rules: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
