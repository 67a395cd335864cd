// Package cli provides the cobra command tree for the appforge CLI.
// This file also carries the composition root: the config, logger, and
// UI instances every command pulls from.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/appforge-dev/appforge/internal/config"
	"github.com/appforge-dev/appforge/internal/ui"
	"github.com/appforge-dev/appforge/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "appforge",
	Short: "Generate multi-service SaaS projects from composable templates",
	Long: `AppForge assembles project skeletons from a template repository.

Each service in the catalog is generated from a base template with
tenancy and user-model variants layered on top: variant files overwrite
base files, variant sections are injected between comment markers,
markers belonging to unapplied variants are cleaned up, and placeholder
tokens are substituted across the tree. The generated directory carries
a manifest (.appforge.json) recording exactly what was built.`,
	Version:      version.GetVersion(),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return initDependencies(cmd)
	},
}

// Dependencies holds the services every command shares. Heavier pieces
// (cache manager, composition engine, orchestrator) are built per run
// from flags and config.
type Dependencies struct {
	Config *config.Manager
	Logger *slog.Logger
	UI     *ui.UI
}

// deps is initialized by the root PersistentPreRunE before any RunE.
var deps *Dependencies

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("appforge %s\n", version.GetVersion()))
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
}

// initDependencies loads the config and wires the logger and UI.
func initDependencies(cmd *cobra.Command) error {
	mgr := config.NewManager()
	cfg, err := mgr.Load()
	if err != nil {
		return err
	}

	level := parseLogLevel(cfg.System.LogLevel)
	if getBoolFlag(cmd, "verbose") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	noColor := cfg.System.NoColor || getBoolFlag(cmd, "no-color") || os.Getenv("NO_COLOR") != ""
	theme := ui.NewTheme(ui.ThemeConfig{NoColor: noColor})

	deps = &Dependencies{
		Config: mgr,
		Logger: logger,
		UI:     ui.New(theme, ui.NewHeadlessManager()),
	}
	return nil
}

func parseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// getStringFlag retrieves a string flag value from the command.
func getStringFlag(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return val
}

// getBoolFlag retrieves a bool flag value from the command.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return val
}
