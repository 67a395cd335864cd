package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/appforge-dev/appforge/internal/cache"
	"github.com/appforge-dev/appforge/internal/compose"
	"github.com/appforge-dev/appforge/internal/config"
	"github.com/appforge-dev/appforge/internal/policy"
	"github.com/appforge-dev/appforge/internal/project"
	"github.com/appforge-dev/appforge/internal/ui"
	"github.com/appforge-dev/appforge/pkg/models"
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Generate a new project",
	Long: `Generate a new multi-service project from the template repository.

The name is slugified into the project directory and the
{{PROJECT_NAME}} placeholder. Which services are generated, and with
which variants, follows the tenancy and user-model choices.

Examples:
  appforge create acme                                   Single-tenant b2b project
  appforge create acme --tenancy multi-tenant            Multi-tenant b2b project
  appforge create "Acme Inc" --user-model b2b2c          Consumer-facing layer included
  appforge create acme --set SUPPORT_EMAIL=help@acme.io  Extra placeholder
  appforge create acme --template-root ./templates       Local templates, no cache`,
	Args:    cobra.ExactArgs(1),
	PreRunE: validateCreateFlags,
	RunE:    runCreate,
}

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.Flags().String("display-name", "", "Human-readable project name (default: the name argument)")
	createCmd.Flags().String("tenancy", string(models.TenancySingle), "Tenancy model: single-tenant or multi-tenant")
	createCmd.Flags().String("user-model", string(models.UserModelB2B), "User model: b2b or b2b2c")
	createCmd.Flags().String("dest", "", "Parent directory for the project (default: current directory)")
	createCmd.Flags().String("template-root", "", "Use a local template tree instead of the cache (template development)")
	createCmd.Flags().StringArray("set", nil, "Extra placeholder as KEY=VALUE (repeatable)")
	createCmd.Flags().Bool("deploy-configured", false, "Record deployment as configured in the manifest")
	createCmd.Flags().BoolP("yes", "y", false, "Skip confirmation prompts")
}

var placeholderKeyRe = regexp.MustCompile(`^[A-Z0-9_]+$`)

// parsePlaceholder splits a --set argument into a literal token and its
// value. Keys follow the {{[A-Z0-9_]+}} token grammar.
func parsePlaceholder(kv string) (token, value string, err error) {
	key, value, ok := strings.Cut(kv, "=")
	if !ok || key == "" {
		return "", "", fmt.Errorf("invalid --set value %q: must be KEY=VALUE", kv)
	}
	if !placeholderKeyRe.MatchString(key) {
		return "", "", fmt.Errorf("invalid --set key %q: must match [A-Z0-9_]+", key)
	}
	return "{{" + key + "}}", value, nil
}

// validateCreateFlags validates flag values before execution.
func validateCreateFlags(cmd *cobra.Command, _ []string) error {
	if v := getStringFlag(cmd, "tenancy"); !models.Tenancy(v).IsValid() {
		return fmt.Errorf("invalid --tenancy value %q: must be one of: single-tenant, multi-tenant", v)
	}
	if v := getStringFlag(cmd, "user-model"); !models.UserModel(v).IsValid() {
		return fmt.Errorf("invalid --user-model value %q: must be one of: b2b, b2b2c", v)
	}
	for _, kv := range getStringArrayFlag(cmd, "set") {
		if _, _, err := parsePlaceholder(kv); err != nil {
			return err
		}
	}
	return nil
}

// runCreate executes the project generation workflow.
func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	cfg := deps.Config.Get()

	rawName := args[0]
	slug := models.Slugify(rawName)
	if slug == "" {
		return fmt.Errorf("project name %q contains no usable characters", rawName)
	}
	displayName := getStringFlag(cmd, "display-name")
	if displayName == "" && rawName != slug {
		displayName = rawName
	}

	choices := models.ChoiceSet{
		Tenancy:   models.Tenancy(getStringFlag(cmd, "tenancy")),
		UserModel: models.UserModel(getStringFlag(cmd, "user-model")),
	}

	placeholders := make(map[string]string)
	for _, kv := range getStringArrayFlag(cmd, "set") {
		token, value, err := parsePlaceholder(kv)
		if err != nil {
			return err
		}
		placeholders[token] = value
	}

	destParent := getStringFlag(cmd, "dest")
	if destParent == "" {
		destParent = "."
	}
	projectDir, err := filepath.Abs(filepath.Join(destParent, slug))
	if err != nil {
		return fmt.Errorf("resolve project path: %w", err)
	}

	yes := getBoolFlag(cmd, "yes")
	if project.NonEmptyDir(projectDir) && !yes {
		ok, err := deps.UI.Confirm(
			fmt.Sprintf("Directory %s is not empty", projectDir),
			"Existing files may be overwritten by generated ones.",
			false)
		if err != nil && !errors.Is(err, ui.ErrCancelled) {
			return err
		}
		if !ok {
			_, _ = fmt.Fprintln(out, "Generation cancelled.")
			return nil
		}
	}

	table := policy.Default()
	services := table.IncludedServices(choices)

	templateRoot, err := resolveTemplateRoot(ctx, cmd, cfg, services)
	if err != nil {
		return err
	}

	bar := deps.UI.Progress.Start("composing services", len(services))
	orch := project.NewOrchestrator(table, compose.NewEngine(deps.Logger), deps.Logger)
	res, err := orch.Generate(ctx, project.Options{
		Dir:                projectDir,
		Name:               slug,
		DisplayName:        displayName,
		Choices:            choices,
		TemplateRoot:       templateRoot,
		Placeholders:       placeholders,
		SubstitutionExempt: cfg.Substitution.Exempt,
		DeployConfigured:   getBoolFlag(cmd, "deploy-configured"),
		OnService: func(name string) {
			bar.SetTitle(name)
			bar.Increment(1)
		},
	})
	bar.Done()
	if err != nil {
		return err
	}

	printCreateSummary(out, res, choices)

	if res.NotesPath != "" {
		if data, readErr := os.ReadFile(res.NotesPath); readErr == nil {
			_, _ = fmt.Fprintln(out)
			_, _ = fmt.Fprint(out, renderMarkdown(deps.UI.Theme, deps.UI.Headless.IsHeadless(), string(data)))
		}
	}
	return nil
}

// resolveTemplateRoot picks the template source: an explicit local tree
// for template development, or the shared git-backed cache.
func resolveTemplateRoot(ctx context.Context, cmd *cobra.Command, cfg *config.Config, services []string) (string, error) {
	if root := getStringFlag(cmd, "template-root"); root != "" {
		return filepath.Abs(root)
	}
	if cfg.Template.LocalRoot != "" {
		return filepath.Abs(cfg.Template.LocalRoot)
	}

	dir := cfg.Cache.Dir
	if dir == "" {
		var err error
		dir, err = cache.DefaultDir()
		if err != nil {
			return "", err
		}
	}

	mgr := cache.NewManager(cfg.Template.RepoURL, cfg.Template.Branch, dir, deps.Logger)
	sp := deps.UI.Progress.Spinner("Syncing template cache")
	root, err := mgr.EnsureReady(ctx, services)
	sp.Stop()
	if err != nil {
		return "", err
	}
	return root, nil
}

// printCreateSummary prints the success card with per-service details.
func printCreateSummary(out io.Writer, res *project.Result, choices models.ChoiceSet) {
	theme := deps.UI.Theme

	lines := []string{
		fmt.Sprintf("Location  %s", res.ProjectDir),
		fmt.Sprintf("Choices   %s, %s", choices.Tenancy, choices.UserModel),
		"",
		"Services:",
	}
	for _, svc := range res.Services {
		detail := "base only"
		if len(svc.AppliedVariants) > 0 {
			detail = strings.Join(svc.AppliedVariants, ", ")
		}
		lines = append(lines, fmt.Sprintf("  %s %s (%s)", symSuccess(theme), svc.Name, detail))
	}

	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, successCard(theme, "Project generated", lines))

	if len(res.Warnings) > 0 {
		_, _ = fmt.Fprintln(out)
		for _, w := range res.Warnings {
			_, _ = fmt.Fprintf(out, "%s %s\n", symWarn(theme), w)
		}
	}
}

// getStringArrayFlag retrieves a repeatable string flag value.
func getStringArrayFlag(cmd *cobra.Command, name string) []string {
	vals, err := cmd.Flags().GetStringArray(name)
	if err != nil {
		return nil
	}
	return vals
}
