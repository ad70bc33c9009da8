package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/solatis/domrules/internal/core/config"
	"github.com/solatis/domrules/internal/core/logging"
	"github.com/solatis/domrules/internal/dom"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

var (
	configFile string
	logLevel   string
	logFormat  string
	debug      bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "domrules",
	Short: "Declarative DOM rule applier",
	Long: `domrules applies rules strings such as "self: +active; siblings: -active"
to an HTML document relative to a clicked element, and provides the board
plumbing (card moves, JSON parameter encoding) used alongside it.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		flags := cmd.Flags()
		if flags.Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		if flags.Changed("log-format") {
			cfg.LogFormat = logFormat
		}
		if flags.Changed("debug") {
			cfg.Debug = debug
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger, err = logging.New(cfg.LogLevel, cfg.LogFormat)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "json", "log format (json, text)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log every rule and return rule failures")
}

func Execute() error {
	return rootCmd.Execute()
}

// readDocument parses the HTML file at path, "-" meaning stdin.
func readDocument(cmd *cobra.Command, path string) (*html.Node, error) {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open html: %w", err)
		}
		defer f.Close()
		r = f
	}
	return dom.Parse(r)
}

// queryFirst returns the first element of doc matching selector.
func queryFirst(doc *html.Node, selector string) (*html.Node, error) {
	el, err := (dom.HTML{}).QueryOne(doc, selector)
	if err != nil {
		return nil, err
	}
	if el == nil {
		return nil, fmt.Errorf("no element matches %q", selector)
	}
	return el, nil
}

func writeDocument(cmd *cobra.Command, doc *html.Node) error {
	out, err := dom.Render(doc)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}
