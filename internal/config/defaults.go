package config

import "github.com/appforge-dev/appforge/internal/defs"

// NewDefaultConfig returns the compiled default configuration. Every
// Load starts from these values; the file and environment only override
// what they set.
func NewDefaultConfig() *Config {
	return &Config{
		Template: TemplateConfig{
			RepoURL: defs.DefaultTemplateRepo,
			Branch:  defs.DefaultTemplateRef,
		},
		Substitution: SubstitutionConfig{
			// Lock files carry content hashes; rewriting tokens inside
			// them would corrupt the lockstep with the package manager.
			Exempt: []string{
				"package-lock.json",
				"yarn.lock",
				"pnpm-lock.yaml",
				"poetry.lock",
				"uv.lock",
				"Gemfile.lock",
				"go.sum",
			},
		},
		System: SystemConfig{
			LogLevel: "info",
		},
	}
}
