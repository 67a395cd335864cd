// Package project assembles whole projects. The orchestrator runs one
// composition per included service, copies the project-level notes file
// from the template root, and writes the manifest that marks the
// directory as a generated project.
package project

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/appforge-dev/appforge/internal/compose"
	"github.com/appforge-dev/appforge/internal/defs"
	"github.com/appforge-dev/appforge/internal/policy"
	"github.com/appforge-dev/appforge/pkg/models"
)

// Options describes one project generation.
type Options struct {
	// Dir is the project directory to generate into. It is created if
	// missing. Composing into a non-empty directory is allowed; the
	// caller decides whether to confirm that first.
	Dir string

	// Name is the project slug. It becomes the {{PROJECT_NAME}}
	// placeholder and the manifest's projectName.
	Name string

	// DisplayName is the human-readable project name. Empty defaults
	// to Name.
	DisplayName string

	// Choices selects the architecture on both axes.
	Choices models.ChoiceSet

	// TemplateRoot is the directory holding one template tree per
	// service.
	TemplateRoot string

	// Placeholders carries extra literal {{NAME}} tokens layered over
	// the built-in project tokens. Extras win on collision.
	Placeholders map[string]string

	// SubstitutionExempt lists glob patterns whose files are excluded
	// from placeholder substitution.
	SubstitutionExempt []string

	// DeployConfigured is recorded in the manifest for downstream
	// tooling. Generation itself does not act on it.
	DeployConfigured bool

	// OnService, when set, is called before each service composition.
	// UI layers use it to advance progress displays.
	OnService func(name string)
}

// ServiceResult reports one composed service.
type ServiceResult struct {
	Name            string
	AppliedVariants []string
	SkippedVariants []string
}

// Result reports a completed generation.
type Result struct {
	ProjectDir   string
	ManifestPath string
	NotesPath    string // Empty when the template ships no notes file.
	Services     []ServiceResult
	Warnings     []string
}

// Orchestrator generates whole projects from a template tree.
type Orchestrator interface {
	// Generate composes every service included for the choice set into
	// opts.Dir, in install order, then writes the manifest. Composition
	// failures and a failed manifest write are fatal; a fatal error can
	// leave a partially generated directory behind, and the recovery is
	// to delete it and retry.
	Generate(ctx context.Context, opts Options) (*Result, error)
}

// orchestrator is the concrete implementation of Orchestrator.
type orchestrator struct {
	table  *policy.Table
	engine compose.Engine
	logger *slog.Logger
}

// NewOrchestrator creates an Orchestrator backed by the given policy
// table and composition engine.
func NewOrchestrator(table *policy.Table, engine compose.Engine, logger *slog.Logger) Orchestrator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &orchestrator{table: table, engine: engine, logger: logger}
}

// Generate implements Orchestrator.
func (o *orchestrator) Generate(ctx context.Context, opts Options) (*Result, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}
	if opts.DisplayName == "" {
		opts.DisplayName = opts.Name
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	o.logger.Info("generating project",
		"name", opts.Name,
		"dir", opts.Dir,
		"tenancy", opts.Choices.Tenancy,
		"userModel", opts.Choices.UserModel)

	result := &Result{ProjectDir: opts.Dir}
	placeholders := buildPlaceholders(opts)

	// Step 1: Project directory
	if err := os.MkdirAll(opts.Dir, defs.DirPerm); err != nil {
		return nil, fmt.Errorf("create project dir: %w", err)
	}

	// Step 2: Compose each included service, in install order
	for _, name := range o.table.IncludedServices(opts.Choices) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if opts.OnService != nil {
			opts.OnService(name)
		}
		svc, _ := o.table.Service(name)
		res, err := o.engine.Compose(ctx, compose.Request{
			Service:            svc,
			Choices:            svc.Project(opts.Choices),
			TemplateRoot:       opts.TemplateRoot,
			DestDir:            filepath.Join(opts.Dir, svc.Name),
			Placeholders:       placeholders,
			SubstitutionExempt: opts.SubstitutionExempt,
		})
		if err != nil {
			return nil, err
		}
		result.Services = append(result.Services, ServiceResult{
			Name:            name,
			AppliedVariants: res.AppliedVariants,
			SkippedVariants: res.SkippedVariants,
		})
		result.Warnings = append(result.Warnings, res.Warnings...)
		o.logger.Info("service composed", "service", name, "variants", res.AppliedVariants)
	}

	// Step 3: Project-level notes (non-fatal)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	notesPath, err := o.copyNotes(opts.TemplateRoot, opts.Dir, placeholders)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("notes: %s", err))
		o.logger.Warn("notes copy failed", "error", err)
	}
	result.NotesPath = notesPath

	// Step 4: Manifest. A write failure is fatal because without the
	// manifest the directory is not recognizable as a generated project.
	mf := &models.Manifest{
		Version:            models.ManifestVersion,
		CreatedAt:          time.Now().UTC().Format(time.RFC3339),
		ProjectName:        opts.Name,
		ProjectDisplayName: opts.DisplayName,
		DeployConfigured:   opts.DeployConfigured,
		Variants:           opts.Choices,
	}
	for _, s := range result.Services {
		mf.AddService(s.Name)
	}
	if err := SaveManifest(opts.Dir, mf); err != nil {
		return nil, err
	}
	result.ManifestPath = ManifestPath(opts.Dir)

	o.logger.Info("project generated",
		"dir", opts.Dir,
		"services", len(result.Services),
		"warnings", len(result.Warnings))
	return result, nil
}

// copyNotes copies the template-level notes file into the project root
// and substitutes placeholders in the copy. Templates without a notes
// file are fine.
func (o *orchestrator) copyNotes(templateRoot, dir string, placeholders map[string]string) (string, error) {
	src := filepath.Join(templateRoot, defs.NotesMD)
	data, err := os.ReadFile(src)
	if errors.Is(err, fs.ErrNotExist) {
		o.logger.Debug("template has no notes file", "path", src)
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", src, err)
	}

	dest := filepath.Join(dir, defs.NotesMD)
	if err := os.WriteFile(dest, data, defs.FilePerm); err != nil {
		return "", fmt.Errorf("write %s: %w", dest, err)
	}
	if err := compose.SubstituteFile(dest, placeholders); err != nil {
		return "", err
	}
	return dest, nil
}

// NonEmptyDir reports whether dir exists and already contains entries.
// The create command confirms before generating into such a directory.
func NonEmptyDir(dir string) bool {
	entries, err := os.ReadDir(dir)
	return err == nil && len(entries) > 0
}

func validateOptions(opts Options) error {
	if strings.TrimSpace(opts.Name) == "" {
		return fmt.Errorf("%w: project name is empty", ErrInvalidOptions)
	}
	if !opts.Choices.IsValid() {
		return fmt.Errorf("%w: tenancy %q, user model %q",
			ErrInvalidOptions, opts.Choices.Tenancy, opts.Choices.UserModel)
	}
	if opts.TemplateRoot == "" {
		return fmt.Errorf("%w: template root is empty", ErrInvalidOptions)
	}
	if opts.Dir == "" {
		return fmt.Errorf("%w: project dir is empty", ErrInvalidOptions)
	}
	return nil
}

// buildPlaceholders assembles the substitution map from the built-in
// project tokens plus caller extras.
func buildPlaceholders(opts Options) map[string]string {
	ph := map[string]string{
		"{{PROJECT_NAME}}":         opts.Name,
		"{{PROJECT_DISPLAY_NAME}}": opts.DisplayName,
	}
	maps.Copy(ph, opts.Placeholders)
	return ph
}
