package cmd

import (
	"fmt"
	"time"

	"github.com/solatis/domrules/internal/session"
	"github.com/spf13/cobra"
)

var cookieCmd = &cobra.Command{
	Use:   "cookie NAME VALUE",
	Short: "Print a Set-Cookie header for a board preference",
	Args:  cobra.ExactArgs(2),
	RunE:  runCookie,
}

func init() {
	rootCmd.AddCommand(cookieCmd)
	cookieCmd.Flags().Int("days", 365, "days until the cookie expires")
}

func runCookie(cmd *cobra.Command, args []string) error {
	days, _ := cmd.Flags().GetInt("days")
	c := session.NewCookie(args[0], args[1], days, time.Now())
	if err := c.Valid(); err != nil {
		return fmt.Errorf("invalid cookie: %w", err)
	}
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "Set-Cookie: %s\n", c.String())
	return err
}
