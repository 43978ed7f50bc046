package cmd

import (
	"fmt"
	"log/slog"
	"os"

	cfgpkg "github.com/KaramelBytes/trendloom-cli/internal/config"
	"github.com/KaramelBytes/trendloom-cli/internal/logging"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile  string
	debug    bool
	logFile  string
	cfg      *cfgpkg.Global
	logger   *slog.Logger
	closeLog = func() error { return nil }
)

var rootCmd = &cobra.Command{
	Use:   "trendloom",
	Short: "trendloom: merge search-interest datasets and chart what they show",
	Long: `trendloom joins raw search-interest time series and geographic breakdowns into
processed tables, then runs analysis routines over them that log findings and
render charts.`,
	SilenceErrors:      true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error { return closeLog() },
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./trendloom.yaml, then ~/.trendloom/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also append logs to this file (overrides config)")
}

// setup loads configuration and builds the logger. It runs after flag
// parsing so invalid flags never touch the filesystem.
func setup(cmd *cobra.Command, args []string) error {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return err
	}
	cfg = c

	opt := logging.Options{Level: cfg.LogLevel, File: cfg.LogFile, Out: cmd.ErrOrStderr()}
	if debug {
		opt.Level = "debug"
	}
	if cmd.Flags().Changed("log-file") {
		opt.File = logFile
	}
	l, closeFn, err := logging.New(opt)
	if err != nil {
		return err
	}
	logger, closeLog = l, closeFn
	logger.Debug("Configuration loaded", slog.String("command", cmd.Name()))
	return nil
}

// fail logs err at error level and returns it for cobra to report.
func fail(msg string, err error) error {
	if logger != nil {
		logger.Error(msg, slog.String("error", err.Error()))
	}
	return err
}
