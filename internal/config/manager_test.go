package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/appforge-dev/appforge/internal/defs"
)

// setupConfigDir points APPFORGE_CONFIG_DIR at a temp directory so
// tests never touch the real user config. Cannot use t.Parallel() with
// t.Setenv().
func setupConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("APPFORGE_CONFIG_DIR", dir)
	return dir
}

func writeConfigFile(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, defs.ConfigYAML), []byte(content), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
}

func TestNewManager(t *testing.T) {
	m := NewManager()
	if m.Get() != nil {
		t.Error("Get() before Load() should return nil")
	}
	if err := m.Save(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Save() before Load() error = %v, want ErrNotInitialized", err)
	}
	if err := m.Update(func(*Config) {}); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Update() before Load() error = %v, want ErrNotInitialized", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	setupConfigDir(t)

	cfg, err := NewManager().Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Template.RepoURL != defs.DefaultTemplateRepo {
		t.Errorf("RepoURL = %q, want default %q", cfg.Template.RepoURL, defs.DefaultTemplateRepo)
	}
	if cfg.Template.Branch != defs.DefaultTemplateRef {
		t.Errorf("Branch = %q, want default %q", cfg.Template.Branch, defs.DefaultTemplateRef)
	}
	if cfg.System.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.System.LogLevel, "info")
	}
	if !slices.Contains(cfg.Substitution.Exempt, "package-lock.json") {
		t.Errorf("Exempt = %v, want lock files by default", cfg.Substitution.Exempt)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := setupConfigDir(t)
	writeConfigFile(t, dir, "template:\n  repo_url: https://example.com/custom.git\n  branch: develop\nsystem:\n  no_color: true\n")

	cfg, err := NewManager().Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Template.RepoURL != "https://example.com/custom.git" {
		t.Errorf("RepoURL = %q, want file value", cfg.Template.RepoURL)
	}
	if cfg.Template.Branch != "develop" {
		t.Errorf("Branch = %q, want %q", cfg.Template.Branch, "develop")
	}
	if !cfg.System.NoColor {
		t.Error("NoColor = false, want true from file")
	}
	// Fields the file does not set keep their defaults.
	if cfg.System.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want default %q", cfg.System.LogLevel, "info")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := setupConfigDir(t)
	writeConfigFile(t, dir, "template: [unclosed\n")

	_, err := NewManager().Load()
	if !errors.Is(err, ErrInvalidYAML) {
		t.Errorf("Load() error = %v, want ErrInvalidYAML", err)
	}
}

func TestLoadValidationError(t *testing.T) {
	dir := setupConfigDir(t)
	writeConfigFile(t, dir, "system:\n  log_level: loud\n")

	_, err := NewManager().Load()
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Load() error = %v, want ErrInvalidConfig", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	dir := setupConfigDir(t)
	writeConfigFile(t, dir, "template:\n  branch: develop\n")

	t.Setenv("APPFORGE_TEMPLATE_REPO", "https://example.com/env.git")
	t.Setenv("APPFORGE_TEMPLATE_BRANCH", "release")
	t.Setenv("APPFORGE_TEMPLATE_ROOT", "/tmp/templates")
	t.Setenv("APPFORGE_CACHE_DIR", "/tmp/cache")
	t.Setenv("APPFORGE_LOG_LEVEL", "debug")

	cfg, err := NewManager().Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Template.RepoURL != "https://example.com/env.git" {
		t.Errorf("RepoURL = %q, want env value", cfg.Template.RepoURL)
	}
	if cfg.Template.Branch != "release" {
		t.Errorf("Branch = %q, env should override the file", cfg.Template.Branch)
	}
	if cfg.Template.LocalRoot != "/tmp/templates" {
		t.Errorf("LocalRoot = %q, want env value", cfg.Template.LocalRoot)
	}
	if cfg.Cache.Dir != "/tmp/cache" {
		t.Errorf("Cache.Dir = %q, want env value", cfg.Cache.Dir)
	}
	if cfg.System.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want env value", cfg.System.LogLevel)
	}
}

func TestEnvOverrideNoColor(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		want     bool
	}{
		{"true sets NoColor", "true", true},
		{"1 sets NoColor", "1", true},
		{"false keeps NoColor off", "false", false},
		{"0 keeps NoColor off", "0", false},
		{"garbage is ignored", "maybe", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupConfigDir(t)
			t.Setenv("APPFORGE_NO_COLOR", tt.envValue)

			cfg, err := NewManager().Load()
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if cfg.System.NoColor != tt.want {
				t.Errorf("NoColor = %v, want %v", cfg.System.NoColor, tt.want)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := setupConfigDir(t)

	m := NewManager()
	if _, err := m.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := m.Update(func(c *Config) { c.Template.Branch = "develop" }); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if err := m.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if m.Path() != filepath.Join(dir, defs.ConfigYAML) {
		t.Errorf("Path() = %q, want file in %q", m.Path(), dir)
	}
	if _, err := os.Stat(m.Path()); err != nil {
		t.Fatalf("saved config missing: %v", err)
	}

	cfg, err := NewManager().Load()
	if err != nil {
		t.Fatalf("reload error = %v", err)
	}
	if cfg.Template.Branch != "develop" {
		t.Errorf("Branch after round trip = %q, want %q", cfg.Template.Branch, "develop")
	}
}

func TestSaveRejectsInvalid(t *testing.T) {
	setupConfigDir(t)

	m := NewManager()
	if _, err := m.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := m.Update(func(c *Config) { c.Template.RepoURL = "" }); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if err := m.Save(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Save() error = %v, want ErrInvalidConfig", err)
	}
}
