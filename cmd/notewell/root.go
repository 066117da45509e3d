package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/notewell/notewell/internal/settings"
	"github.com/notewell/notewell/pkg/collection"
	"github.com/notewell/notewell/pkg/core"
	"github.com/notewell/notewell/pkg/relay"
)

var (
	verbose   bool
	configDir string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "notewell",
	Short: "A note collection manager with cross-window synchronization",
	Long: `Notewell keeps notes in named collections: a metadata database per
collection plus one content file per note. Multiple windows stay in sync
through a typed message relay owned by a single coordinating process.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Settings directory (default: <user config dir>/notewell)")
}

func resolveConfigDir() string {
	if configDir != "" {
		return configDir
	}
	base, err := os.UserConfigDir()
	if err != nil {
		fatal("Failed to resolve config directory", err)
	}
	return filepath.Join(base, "notewell")
}

// openService loads the settings, builds the relay and the collection
// service and initializes the active collection.
func openService(ctx context.Context) *collection.Service {
	set, err := settings.Load(resolveConfigDir())
	if err != nil {
		fatal("Failed to load settings", err)
	}

	svc := collection.NewService(set, relay.New(), collection.WithLogger(slog.Default()))
	if err := svc.Initialize(ctx); err != nil {
		fatal("Failed to initialize collection", err)
	}
	return svc
}

// exitOp prints an operation outcome and exits non-zero when it failed.
func exitOp(op core.Operation) {
	fmt.Println(op)
	if op == core.Error {
		os.Exit(1)
	}
}
