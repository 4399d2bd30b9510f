package cmd

import (
	"fmt"
	"log/slog"
	"os"

	cfgpkg "github.com/KaramelBytes/catalogdash/internal/config"
	"github.com/KaramelBytes/catalogdash/internal/logging"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile  string
	debug    bool
	dataPath string

	// Loaded configuration
	cfg *cfgpkg.Global

	logger   = logging.NullLogger()
	closeLog = func() error { return nil }
)

var rootCmd = &cobra.Command{
	Use:   "catalogdash",
	Short: "catalogdash: filter and summarise a streaming titles catalog",
	Long: `catalogdash loads a streaming titles catalog (CSV, TSV or XLSX), filters it by type,
release year, country, genre and title search, and reports counts, averages and
distributions on the command line or in an interactive terminal dashboard.`,
	SilenceUsage: true,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = closeLog()
	},
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)

	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.catalogdash/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "catalog file to load (overrides config data_path)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands fall back to defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c

	l, closer, err := logging.Setup(logging.Config{File: cfg.LogFile, Level: cfg.LogLevel, Debug: debug}, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: logging disabled: %v\n", err)
		return
	}
	logger, closeLog = l, closer
	slog.SetDefault(logger)
	logger.Debug("config loaded", "data_path", cfg.DataPath, "config", cfgFile)
}

// currentConfig returns the loaded configuration, loading defaults when startup failed.
func currentConfig() (*cfgpkg.Global, error) {
	if cfg != nil {
		return cfg, nil
	}
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	cfg = c
	return cfg, nil
}
