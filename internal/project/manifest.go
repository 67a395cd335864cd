package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/appforge-dev/appforge/internal/defs"
	"github.com/appforge-dev/appforge/pkg/models"
)

// ManifestPath returns the manifest location for a project directory.
func ManifestPath(dir string) string {
	return filepath.Join(dir, defs.ManifestJSON)
}

// IsProject reports whether dir holds a generated project. The check is
// manifest presence alone; nothing else about the directory is inspected.
func IsProject(dir string) bool {
	info, err := os.Stat(ManifestPath(dir))
	return err == nil && info.Mode().IsRegular()
}

// LoadManifest reads and parses the manifest of a generated project.
func LoadManifest(dir string) (*models.Manifest, error) {
	path := ManifestPath(dir)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrManifestNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}

	var mf models.Manifest
	if err := json.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrManifestInvalid, path, err)
	}
	return &mf, nil
}

// SaveManifest writes the manifest atomically via a temp file and
// rename, so a crash mid-write cannot leave a truncated file where
// downstream commands expect valid JSON.
func SaveManifest(dir string, mf *models.Manifest) error {
	data, err := json.MarshalIndent(mf, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	data = append(data, '\n')

	path := ManifestPath(dir)
	tmp, err := os.CreateTemp(dir, ".appforge-manifest-*.tmp")
	if err != nil {
		return fmt.Errorf("write manifest %s: %w", path, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }() // cleanup on error path

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write manifest %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write manifest %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("write manifest %s: %w", path, err)
	}
	return nil
}
