package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"gopkg.in/yaml.v3"
)

// Manager provides thread-safe access to the tool configuration. It
// must be initialized via Load() before use.
type Manager struct {
	mu     sync.RWMutex
	config *Config
	path   string
}

// NewManager creates a Manager in uninitialized state.
func NewManager() *Manager {
	return &Manager{}
}

// Load reads the configuration file, merges it over compiled defaults,
// applies environment overrides, and validates the result. A missing
// file is not an error; defaults and environment still apply.
func (m *Manager) Load() (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	path, err := DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	cfg := NewDefaultConfig()
	if err := loadYAMLFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	m.config = cfg
	m.path = path
	return cfg, nil
}

// Get returns the current in-memory configuration, or nil before
// Load().
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// Path returns the configuration file location resolved by Load().
func (m *Manager) Path() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.path
}

// Save persists the current configuration atomically via a temp file
// and rename. Returns ErrNotInitialized before Load().
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.config == nil {
		return ErrNotInitialized
	}
	if err := Validate(m.config); err != nil {
		return err
	}

	data, err := yaml.Marshal(m.config)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return atomicWrite(m.path, data)
}

// Update applies fn to the in-memory configuration under the write
// lock. Returns ErrNotInitialized before Load().
func (m *Manager) Update(fn func(*Config)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.config == nil {
		return ErrNotInitialized
	}
	fn(m.config)
	return nil
}

// applyEnvOverrides applies APPFORGE_* environment variables, which
// rank above both the file and the compiled defaults.
func applyEnvOverrides(cfg *Config) {
	if url := os.Getenv("APPFORGE_TEMPLATE_REPO"); url != "" {
		cfg.Template.RepoURL = url
	}
	if branch := os.Getenv("APPFORGE_TEMPLATE_BRANCH"); branch != "" {
		cfg.Template.Branch = branch
	}
	if root := os.Getenv("APPFORGE_TEMPLATE_ROOT"); root != "" {
		cfg.Template.LocalRoot = root
	}
	if dir := os.Getenv("APPFORGE_CACHE_DIR"); dir != "" {
		cfg.Cache.Dir = dir
	}
	if noColor := os.Getenv("APPFORGE_NO_COLOR"); noColor != "" {
		if v, err := strconv.ParseBool(noColor); err == nil {
			cfg.System.NoColor = v
		}
	}
	if level := os.Getenv("APPFORGE_LOG_LEVEL"); level != "" {
		cfg.System.LogLevel = level
	}
}

// loadYAMLFile unmarshals path into target. A missing file leaves
// target untouched.
func loadYAMLFile(path string, target any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("parse %s: %w", path, ErrInvalidYAML)
	}
	return nil
}

// atomicWrite writes data via a temp file in the same directory plus
// os.Rename, so readers never observe a half-written config.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".appforge-config-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }() // cleanup on error path

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	return os.Rename(tmpName, path)
}
