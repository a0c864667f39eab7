package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alexiusacademia/goestimate/internal/config"
	"github.com/alexiusacademia/goestimate/internal/version"
	"github.com/spf13/cobra"
)

var (
	configPath string
	debugMode  bool

	// Loaded in PersistentPreRunE
	appConfig *config.Config
	logFile   io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "goestimate",
	Short: "Construction Material, Cost and Engineering Estimator",
	Long: `goestimate - Go Construction Estimator

A CLI tool that turns a building description into a complete
construction estimate.

For one project it computes:
  - Material quantities, labor, transport and total cost
  - Wind load, seismic base shear and soil bearing checks
  - Beam, column and footing sizing
  - Envelope U-values against the climate zone's energy code
  - Lifecycle cost, value engineering and an S-curve cash flow
  - A critical path schedule

Reference prices and zones come from an embedded SQLite catalog.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, from, err := config.Load(configPath)
		if err != nil {
			return err
		}
		appConfig = cfg

		if err := setupLogging(cfg); err != nil {
			return err
		}
		slog.Debug("configuration loaded", "path", from, "version", version.Version)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			logFile.Close()
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   goestimate v%-44s║\n", version.Version)
		fmt.Println("  ║   Go Construction Estimator                               ║")
		fmt.Println("  ║   Alexius S. Academia ©  2026                             ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  Quantity, cost and engineering estimates for buildings.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Full project estimate with console, JSON and PDF output")
		fmt.Println("    • Beam, column and footing sizing")
		fmt.Println("    • Wind and seismic loads, envelope thermal checks")
		fmt.Println("    • Lifecycle cost, value engineering and cash flow")
		fmt.Println("    • HTTP estimate service")
		fmt.Println()
		fmt.Println("  Use 'goestimate --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Configuration file (default ./goestimate.toml)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
}

// setupLogging installs the default slog logger: text on stderr, or JSON
// appended to the configured log file.
func setupLogging(cfg *config.Config) error {
	level := cfg.Logging.Level.Slog()
	if debugMode {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Logging.File != "" {
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		logFile = f
		handler = slog.NewJSONHandler(f, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))
	return nil
}
