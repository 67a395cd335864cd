package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// validLogLevels are the slog levels the CLI maps onto.
var validLogLevels = []string{"debug", "info", "warn", "error"}

// Validate checks the merged configuration for correctness.
func Validate(cfg *Config) error {
	var errs []ValidationError

	if strings.TrimSpace(cfg.Template.RepoURL) == "" {
		errs = append(errs, ValidationError{
			Field:   "template.repo_url",
			Message: "required field is empty; set the template repository URL or unset it to use the default",
			Wrapped: ErrInvalidConfig,
		})
	}
	if strings.TrimSpace(cfg.Template.Branch) == "" {
		errs = append(errs, ValidationError{
			Field:   "template.branch",
			Message: "required field is empty; set the tracked branch or unset it to use the default",
			Wrapped: ErrInvalidConfig,
		})
	}

	if level := cfg.System.LogLevel; level != "" && !slices.Contains(validLogLevels, level) {
		errs = append(errs, ValidationError{
			Field:   "system.log_level",
			Message: fmt.Sprintf("must be one of: %s", strings.Join(validLogLevels, ", ")),
			Value:   level,
			Wrapped: ErrInvalidConfig,
		})
	}

	for _, pattern := range cfg.Substitution.Exempt {
		if _, err := filepath.Match(pattern, "probe"); err != nil {
			errs = append(errs, ValidationError{
				Field:   "substitution.exempt",
				Message: "malformed glob pattern",
				Value:   pattern,
				Wrapped: ErrInvalidConfig,
			})
		}
	}

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}
