// Package compose implements the composition engine. One service at a
// time it copies the base template, applies resolved variants in order,
// strips leftover markers for variants that were not applied, and
// substitutes placeholder tokens across the produced tree.
package compose

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/appforge-dev/appforge/internal/defs"
	"github.com/appforge-dev/appforge/internal/marker"
	"github.com/appforge-dev/appforge/internal/policy"
	"github.com/appforge-dev/appforge/pkg/models"
)

// Request describes one service composition.
type Request struct {
	Service      policy.ServicePolicy
	Choices      models.PartialChoiceSet
	TemplateRoot string
	DestDir      string
	Placeholders map[string]string
	// SubstitutionExempt lists glob patterns whose files are excluded
	// from placeholder substitution, typically lock files.
	SubstitutionExempt []string
}

// Result reports what a composition did.
type Result struct {
	AppliedVariants []string // Variants applied, in application order.
	SkippedVariants []string // Resolved variants the service does not define.
	Warnings        []string // Non-fatal issues, e.g. missing optional sources.
}

// Engine composes services from templates.
type Engine interface {
	// Compose runs the full pipeline for one service. Steps are strictly
	// ordered because each depends on the filesystem state left by the
	// previous one; a failed run leaves a partial destination behind and
	// the recovery is to delete it and retry.
	Compose(ctx context.Context, req Request) (*Result, error)
}

// engine is the concrete implementation of Engine.
type engine struct {
	logger *slog.Logger
}

// NewEngine creates an Engine.
func NewEngine(logger *slog.Logger) Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &engine{logger: logger}
}

// Compose implements Engine.
func (e *engine) Compose(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result := &Result{}

	base := filepath.Join(req.TemplateRoot, req.Service.BasePath())
	if info, err := os.Stat(base); err != nil || !info.IsDir() {
		return nil, &ServiceError{
			Service: req.Service.Name,
			Step:    "copy base",
			Err:     fmt.Errorf("%w: %s", ErrBaseMissing, base),
		}
	}
	if err := copyTree(ctx, base, req.DestDir); err != nil {
		return nil, &ServiceError{Service: req.Service.Name, Step: "copy base", Err: err}
	}
	e.logger.Debug("base copied", "service", req.Service.Name, "dest", req.DestDir)

	for _, name := range policy.VariantsToApply(req.Choices) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		def, ok := req.Service.Variants[name]
		if !ok {
			// The resolution rules are global; a service simply may not
			// define every variant they produce.
			result.SkippedVariants = append(result.SkippedVariants, name)
			e.logger.Debug("variant not defined, skipping",
				"service", req.Service.Name, "variant", name)
			continue
		}
		if err := e.applyVariant(ctx, req, name, def, result); err != nil {
			return nil, &ServiceError{Service: req.Service.Name, Step: "apply variant " + name, Err: err}
		}
		result.AppliedVariants = append(result.AppliedVariants, name)
	}

	if err := e.cleanupMarkers(req, result); err != nil {
		return nil, &ServiceError{Service: req.Service.Name, Step: "cleanup markers", Err: err}
	}

	if err := substituteAll(ctx, req.DestDir, req.Placeholders, req.SubstitutionExempt); err != nil {
		return nil, &ServiceError{Service: req.Service.Name, Step: "substitute placeholders", Err: err}
	}

	e.logger.Info("service composed",
		"service", req.Service.Name,
		"variants", result.AppliedVariants,
		"warnings", len(result.Warnings),
	)
	return result, nil
}

// applyVariant copies the variant's whole files, then injects its
// sections. Missing optional sources degrade to warnings so in-progress
// template authoring does not block generation; a missing injection
// target is fatal because the produced tree would be structurally wrong.
func (e *engine) applyVariant(ctx context.Context, req Request, name string, def policy.VariantDefinition, result *Result) error {
	variantDir := filepath.Join(req.TemplateRoot, req.Service.VariantDir(name))

	for _, entry := range def.Files {
		if err := validateEntry(entry); err != nil {
			return err
		}
		src := filepath.Join(variantDir, defs.VariantFilesDir, filepath.FromSlash(entry))
		dest := filepath.Join(req.DestDir, filepath.FromSlash(entry))

		info, err := os.Stat(src)
		if err != nil {
			warn := fmt.Sprintf("variant %s: file source %s missing", name, entry)
			result.Warnings = append(result.Warnings, warn)
			e.logger.Warn("variant file source missing",
				"service", req.Service.Name, "variant", name, "entry", entry)
			continue
		}
		if info.IsDir() {
			err = copyTree(ctx, src, dest)
		} else {
			err = copyFile(src, dest)
		}
		if err != nil {
			return fmt.Errorf("copy variant %s entry %s: %w", name, entry, err)
		}
	}

	for _, target := range slices.Sorted(maps.Keys(def.Sections)) {
		targetPath := filepath.Join(req.DestDir, filepath.FromSlash(target))
		if _, err := os.Stat(targetPath); err != nil {
			return fmt.Errorf("%w: %s (variant %s)", ErrTargetMissing, target, name)
		}

		for _, section := range def.Sections[target] {
			contentPath := filepath.Join(variantDir, defs.VariantSectionsDir,
				filepath.FromSlash(target)+"."+section)
			content, err := os.ReadFile(contentPath)
			if err != nil {
				warn := fmt.Sprintf("variant %s: section source %s.%s missing", name, target, section)
				result.Warnings = append(result.Warnings, warn)
				e.logger.Warn("section source missing",
					"service", req.Service.Name, "variant", name,
					"target", target, "section", section)
				continue
			}
			if err := marker.Inject(targetPath, section, content); err != nil {
				return fmt.Errorf("inject %s into %s: %w", section, target, err)
			}
		}
	}
	return nil
}

// cleanupMarkers strips marker comments for every section belonging to
// variants that were not applied. Base files are authored with every
// possible marker present, so this pass guarantees no marker comments
// leak into the output regardless of the chosen variants, while content
// the base wrapped stays exactly as authored.
func (e *engine) cleanupMarkers(req Request, result *Result) error {
	applied := make(map[string]bool, len(result.AppliedVariants))
	for _, v := range result.AppliedVariants {
		applied[v] = true
	}

	targets := make(map[string]map[string]bool)
	for name, def := range req.Service.Variants {
		if applied[name] {
			continue
		}
		for target, sections := range def.Sections {
			if targets[target] == nil {
				targets[target] = make(map[string]bool)
			}
			for _, section := range sections {
				targets[target][section] = true
			}
		}
	}

	for _, target := range slices.Sorted(maps.Keys(targets)) {
		path := filepath.Join(req.DestDir, filepath.FromSlash(target))
		if _, err := os.Stat(path); err != nil {
			// The target only exists for some variant combinations.
			continue
		}
		for _, section := range slices.Sorted(maps.Keys(targets[target])) {
			if _, err := marker.Strip(path, section); err != nil {
				return fmt.Errorf("cleanup %s in %s: %w", section, target, err)
			}
		}
	}
	return nil
}
