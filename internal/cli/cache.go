package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/appforge-dev/appforge/internal/cache"
	"github.com/appforge-dev/appforge/internal/config"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the template cache",
	Long: `Manage the local sparse checkout of the template repository.

The cache is created on first use and widened as projects need more
services. Subcommands inspect its state or remove it entirely.`,
}

var cacheInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show template cache state",
	Args:  cobra.NoArgs,
	RunE:  runCacheInfo,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the template cache",
	Long: `Remove the template cache directory.

The next generation recreates it from scratch, so clearing is safe:
it only costs a fresh clone.`,
	Args: cobra.NoArgs,
	RunE: runCacheClear,
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheInfoCmd)
	cacheCmd.AddCommand(cacheClearCmd)

	cacheClearCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}

// newCacheManager builds a cache manager from the loaded configuration.
func newCacheManager(cfg *config.Config) (cache.Manager, error) {
	dir := cfg.Cache.Dir
	if dir == "" {
		var err error
		dir, err = cache.DefaultDir()
		if err != nil {
			return nil, err
		}
	}
	return cache.NewManager(cfg.Template.RepoURL, cfg.Template.Branch, dir, deps.Logger), nil
}

func runCacheInfo(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	mgr, err := newCacheManager(deps.Config.Get())
	if err != nil {
		return err
	}
	info, err := mgr.Info(cmd.Context())
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "Path:      %s\n", info.Path)
	if !info.Exists {
		_, _ = fmt.Fprintln(out, "State:     not created yet (first generation will clone it)")
		return nil
	}

	_, _ = fmt.Fprintf(out, "Remote:    %s\n", info.RemoteURL)
	if info.Commit != "" {
		_, _ = fmt.Fprintf(out, "Commit:    %s\n", info.Commit)
	}
	if info.SizeKnown {
		_, _ = fmt.Fprintf(out, "Size:      %s\n", formatBytes(info.SizeBytes))
	}
	if info.LastSyncKnown {
		_, _ = fmt.Fprintf(out, "Last sync: %s\n", info.LastSync.Format("2006-01-02 15:04:05 MST"))
	}
	if len(info.IncludedPaths) > 0 {
		_, _ = fmt.Fprintf(out, "Included:  %s\n", strings.Join(info.IncludedPaths, ", "))
	}
	return nil
}

func runCacheClear(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	mgr, err := newCacheManager(deps.Config.Get())
	if err != nil {
		return err
	}
	info, err := mgr.Info(cmd.Context())
	if err != nil {
		return err
	}
	if !info.Exists {
		_, _ = fmt.Fprintln(out, "Cache is already empty.")
		return nil
	}

	if !getBoolFlag(cmd, "yes") {
		ok, err := deps.UI.Confirm(
			fmt.Sprintf("Remove template cache at %s?", info.Path),
			"The next generation will clone the template repository again.",
			true)
		if err != nil {
			return err
		}
		if !ok {
			_, _ = fmt.Fprintln(out, "Cache kept.")
			return nil
		}
	}

	if err := mgr.Clear(); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "%s Cache removed.\n", symSuccess(deps.UI.Theme))
	return nil
}

// formatBytes renders a byte count with a human unit.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
