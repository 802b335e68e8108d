// Package cmd implements the CLI commands for linkharvest using Cobra.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gaurav-prasanna/linkharvest/config"
	"github.com/gaurav-prasanna/linkharvest/logging"
	"github.com/spf13/cobra"
)

// Global flag variables.
var (
	flagConfig       string
	flagLogLevel     string
	flagLogFormat    string
	flagProgress     bool
	flagAPIKey       string
	flagReader       string
	flagEndpoint     string
	flagDelay        time.Duration
	flagTimeout      time.Duration
	flagLocalFormat  string
	flagIgnoreRobots bool
	flagUserAgent    string
)

// Set by PersistentPreRunE for every command.
var (
	appConfig *config.Config
	logger    *log.Logger
)

var rootCmd = &cobra.Command{
	Use:   "linkharvest <input_file> <output_file>",
	Short: "Collect the links of an HTML page and fetch their content",
	Long: `linkharvest parses an HTML document, saves every hyperlink target to a
sorted text file and, with --fetch-content, reads each link through a
content-extraction API, writing the results to a second text file.

Examples:
  linkharvest page.html links.txt --base-url https://example.com --api-key KEY
  linkharvest page.html links.txt --api-key KEY --fetch-content
  linkharvest fetch links.txt --api-key KEY
  linkharvest list links.txt`,
	Args:              cobra.ExactArgs(2),
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runExtract,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Config file path (default: linkharvest.yaml in ., ./config or $HOME/.linkharvest)")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFormat, "log-format", "", "Log format: text, json, logfmt")
	pf.BoolVar(&flagProgress, "progress", false, "Show a progress spinner while fetching")

	pf.StringVar(&flagAPIKey, "api-key", "", "Reader API key (or LINKHARVEST_API_KEY / JINA_API_KEY)")
	pf.StringVar(&flagReader, "reader", "", "Content reader: jina (remote API) or local")
	pf.StringVar(&flagEndpoint, "endpoint", "", "Reader API endpoint (default https://r.jina.ai)")
	pf.DurationVar(&flagDelay, "delay", 0, "Pause after each request, none after the last (default 1s)")
	pf.DurationVar(&flagTimeout, "timeout", 0, "Timeout of a single request (default 60s)")
	pf.StringVar(&flagLocalFormat, "local-format", "", "Local reader output: markdown or text")
	pf.BoolVar(&flagIgnoreRobots, "ignore-robots", false, "Local reader: don't consult robots.txt")
	pf.StringVar(&flagUserAgent, "user-agent", "", "User-Agent header for outgoing requests")
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if logger != nil {
			logger.Error("Script execution failed", "err", err)
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		stop()
		os.Exit(1)
	}
}

// setup loads configuration, applies flag overrides and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	l, err := logging.New(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}

	appConfig = cfg
	logger = l
	cmd.SilenceUsage = true
	return nil
}

// applyFlags overrides config values with flags the user actually set.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Logging.Level = flagLogLevel
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = flagLogFormat
	}
	if flags.Changed("api-key") {
		cfg.APIKey = flagAPIKey
	}
	if flags.Changed("reader") {
		cfg.Reader = flagReader
	}
	if flags.Changed("endpoint") {
		cfg.Endpoint = flagEndpoint
	}
	if flags.Changed("delay") {
		cfg.Delay = flagDelay
	}
	if flags.Changed("timeout") {
		cfg.Timeout = flagTimeout
	}
	if flags.Changed("local-format") {
		cfg.LocalFormat = flagLocalFormat
	}
	if flags.Changed("ignore-robots") {
		cfg.RespectRobots = !flagIgnoreRobots
	}
	if flags.Changed("user-agent") {
		cfg.UserAgent = flagUserAgent
	}
}
