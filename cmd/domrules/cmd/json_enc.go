package cmd

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/solatis/domrules/internal/jsonenc"
	"github.com/spf13/cobra"
)

var jsonEncCmd = &cobra.Command{
	Use:   "json-enc KEY=VALUE...",
	Short: "Encode form parameters as nested JSON",
	Long: `Encodes form parameters the way board requests send them. Bracketed keys
nest, repeated keys become arrays.

Example:
  domrules json-enc 'task[title]=Write docs' 'task[tags][0]=docs' 'task[tags][1]=cli'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runJSONEnc,
}

func init() {
	rootCmd.AddCommand(jsonEncCmd)
	jsonEncCmd.Flags().Bool("clean-arrays", true, "turn integer-keyed objects into arrays")
}

func runJSONEnc(cmd *cobra.Command, args []string) error {
	params := url.Values{}
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("invalid parameter %q, expected KEY=VALUE", arg)
		}
		params.Add(key, value)
	}

	opts := jsonenc.Options{CleanArrays: cfg.CleanArrays}
	if cmd.Flags().Changed("clean-arrays") {
		opts.CleanArrays, _ = cmd.Flags().GetBool("clean-arrays")
	}

	body, err := jsonenc.Encode(params, opts)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(body))
	return err
}
