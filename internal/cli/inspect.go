package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/appforge-dev/appforge/internal/defs"
	"github.com/appforge-dev/appforge/internal/project"
	"github.com/appforge-dev/appforge/pkg/models"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [dir]",
	Short: "Show what a generated project contains",
	Long: `Read a generated project's manifest and summarize it.

The directory defaults to the current one. A directory without a
manifest is not a generated project, whatever else it contains.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	mf, err := project.LoadManifest(dir)
	if errors.Is(err, project.ErrManifestNotFound) {
		return fmt.Errorf("%s is not an appforge project (no %s found)", dir, defs.ManifestJSON)
	}
	if err != nil {
		return err
	}

	md := manifestMarkdown(mf)
	_, _ = fmt.Fprint(cmd.OutOrStdout(),
		renderMarkdown(deps.UI.Theme, deps.UI.Headless.IsHeadless(), md))
	return nil
}

// manifestMarkdown renders a manifest as a markdown summary.
func manifestMarkdown(mf *models.Manifest) string {
	var b strings.Builder

	title := mf.ProjectDisplayName
	if title == "" {
		title = mf.ProjectName
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	fmt.Fprintf(&b, "| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Name | %s |\n", mf.ProjectName)
	fmt.Fprintf(&b, "| Created | %s |\n", mf.CreatedAt)
	fmt.Fprintf(&b, "| Tenancy | %s |\n", mf.Variants.Tenancy)
	fmt.Fprintf(&b, "| User model | %s |\n", mf.Variants.UserModel)
	fmt.Fprintf(&b, "| Deploy configured | %t |\n", mf.DeployConfigured)
	fmt.Fprintf(&b, "| Manifest version | %s |\n", mf.Version)

	b.WriteString("\n## Services\n\n")
	if len(mf.InstalledServices) == 0 {
		b.WriteString("None recorded.\n")
	} else {
		for _, svc := range mf.InstalledServices {
			fmt.Fprintf(&b, "- %s\n", svc)
		}
	}
	return b.String()
}
