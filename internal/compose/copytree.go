package compose

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/appforge-dev/appforge/internal/defs"
)

// copyExcludedDirs are dependency, build, and VCS trees never copied
// from a template and never scanned during substitution.
var copyExcludedDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"dist":         true,
	"build":        true,
	".next":        true,
	"__pycache__":  true,
	".venv":        true,
	"venv":         true,
}

// isSecretFile reports whether a template file carries material that
// must never reach a generated project.
func isSecretFile(name string) bool {
	if name == ".env" || strings.HasPrefix(name, ".env.") {
		return true
	}
	return strings.HasSuffix(name, ".pem") || strings.HasSuffix(name, ".key")
}

// copyTree recursively copies src into dest, skipping excluded
// directories and secret files. Existing destination files are
// overwritten.
func copyTree(ctx context.Context, src, dest string) error {
	return filepath.WalkDir(src, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return os.MkdirAll(dest, defs.DirPerm)
		}

		if entry.IsDir() {
			if copyExcludedDirs[entry.Name()] {
				return filepath.SkipDir
			}
			return os.MkdirAll(filepath.Join(dest, rel), defs.DirPerm)
		}
		if isSecretFile(entry.Name()) {
			return nil
		}
		return copyFile(path, filepath.Join(dest, rel))
	})
}

// copyFile copies one file, creating parent directories. Shell scripts
// keep an executable mode.
func copyFile(src, dest string) error {
	content, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read %s: %w", src, err)
	}
	if err := os.MkdirAll(filepath.Dir(dest), defs.DirPerm); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(dest), err)
	}

	perm := defs.FilePerm
	if strings.HasSuffix(dest, ".sh") {
		perm = 0o755
	}
	if err := os.WriteFile(dest, content, perm); err != nil {
		return fmt.Errorf("write %s: %w", dest, err)
	}
	return nil
}

// validateEntry ensures a variant file entry stays inside the service
// tree when joined to a root.
func validateEntry(entry string) error {
	cleaned := filepath.Clean(filepath.FromSlash(entry))
	if filepath.IsAbs(cleaned) {
		return fmt.Errorf("%w: absolute path %q", ErrPathTraversal, entry)
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: parent reference in %q", ErrPathTraversal, entry)
	}
	return nil
}
