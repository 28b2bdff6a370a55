package cmd

import (
	"fmt"
	"log/slog"
	"os"

	cfgpkg "github.com/KaramelBytes/waterdata-cli/internal/config"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile       string
	debug         bool
	flagWorkspace string

	// Loaded configuration
	cfg *cfgpkg.Global
	// Diagnostic logger; user-facing output goes through fmt.
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "waterdata",
	Short: "waterdata: turn lab and field water-quality exports into upload files",
	Long: `waterdata reads the lab and field CSV exports waiting in the "For Script" folder,
derives every upload field, pairs field duplicates, merges field comments, checks the
result against the reference tables and writes one upload file per batch to "For Upload".`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.waterdata/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVarP(&flagWorkspace, "workspace", "w", "", "folder holding the data folders (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c
	applyOverrides()
}

// applyOverrides applies CLI flags on top of the loaded config.
func applyOverrides() {
	f := rootCmd.PersistentFlags()
	if f.Changed("workspace") && flagWorkspace != "" {
		cfg.Workspace = flagWorkspace
	}
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// requireConfig returns the loaded config, loading it now when the command
// runs without Execute (tests, embedding).
func requireConfig() (*cfgpkg.Global, error) {
	if cfg != nil {
		return cfg, nil
	}
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	cfg = c
	applyOverrides()
	return cfg, nil
}
