package config

import (
	"os"
	"path/filepath"

	"github.com/appforge-dev/appforge/internal/defs"
)

// Config is the root configuration aggregate.
type Config struct {
	Template     TemplateConfig     `yaml:"template"`
	Cache        CacheConfig        `yaml:"cache"`
	Substitution SubstitutionConfig `yaml:"substitution"`
	System       SystemConfig       `yaml:"system"`
}

// TemplateConfig selects the template source.
type TemplateConfig struct {
	RepoURL string `yaml:"repo_url"`
	Branch  string `yaml:"branch"`
	// LocalRoot points composition at a local template tree instead of
	// the cached clone. Template authors use it to test uncommitted
	// changes.
	LocalRoot string `yaml:"local_root"`
}

// CacheConfig overrides where the template cache lives.
type CacheConfig struct {
	Dir string `yaml:"dir"` // empty means the user cache directory
}

// SubstitutionConfig tunes placeholder substitution.
type SubstitutionConfig struct {
	// Exempt lists glob patterns (matched against the file name and the
	// destination-relative path) whose files are never substituted.
	Exempt []string `yaml:"exempt"`
}

// SystemConfig represents tool-wide behavior.
type SystemConfig struct {
	NoColor  bool   `yaml:"no_color"`
	LogLevel string `yaml:"log_level"`
}

// DefaultPath returns the standard configuration file location under
// the OS user config directory. APPFORGE_CONFIG_DIR overrides the
// directory.
func DefaultPath() (string, error) {
	if envDir := os.Getenv("APPFORGE_CONFIG_DIR"); envDir != "" {
		return filepath.Join(filepath.Clean(envDir), defs.ConfigYAML), nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, defs.AppDirName, defs.ConfigYAML), nil
}
