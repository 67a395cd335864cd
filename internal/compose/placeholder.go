package compose

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/appforge-dev/appforge/internal/defs"
)

// binaryExtensions are asset types never scanned for placeholders.
var binaryExtensions = map[string]bool{
	".png":   true,
	".jpg":   true,
	".jpeg":  true,
	".gif":   true,
	".ico":   true,
	".webp":  true,
	".woff":  true,
	".woff2": true,
	".ttf":   true,
	".eot":   true,
	".otf":   true,
	".pdf":   true,
	".zip":   true,
	".gz":    true,
	".jar":   true,
}

// substituteAll walks the destination tree replacing placeholder tokens
// in every text file. Placeholder keys are literal {{NAME}} tokens, so
// application order does not matter; keys are still sorted to keep runs
// deterministic. Files matching an exempt glob are left untouched.
func substituteAll(ctx context.Context, destDir string, placeholders map[string]string, exempt []string) error {
	if len(placeholders) == 0 {
		return nil
	}
	keys := slices.Sorted(maps.Keys(placeholders))

	return filepath.WalkDir(destDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if entry.IsDir() {
			if copyExcludedDirs[entry.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if binaryExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		rel, err := filepath.Rel(destDir, path)
		if err != nil {
			return err
		}
		if isExempt(filepath.ToSlash(rel), entry.Name(), exempt) {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		updated := content
		changed := false
		for _, key := range keys {
			var replaced bool
			updated, replaced = replaceToken(updated, key, placeholders[key])
			changed = changed || replaced
		}
		if !changed {
			return nil
		}
		if err := os.WriteFile(path, updated, defs.FilePerm); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		return nil
	})
}

// SubstituteFile applies placeholder substitution to a single file,
// with the same token semantics as tree-wide substitution. Callers use
// it for files that live outside a composed service tree, such as the
// project-level notes copied from the template root.
func SubstituteFile(path string, placeholders map[string]string) error {
	if len(placeholders) == 0 {
		return nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	updated := content
	changed := false
	for _, key := range slices.Sorted(maps.Keys(placeholders)) {
		var replaced bool
		updated, replaced = replaceToken(updated, key, placeholders[key])
		changed = changed || replaced
	}
	if !changed {
		return nil
	}
	if err := os.WriteFile(path, updated, defs.FilePerm); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// isExempt reports whether a file matches any exempt glob. Patterns are
// tried against the bare file name and the destination-relative slash
// path; malformed patterns never match (validation happens at config
// load).
func isExempt(rel, name string, exempt []string) bool {
	for _, pattern := range exempt {
		if ok, err := filepath.Match(pattern, name); err == nil && ok {
			return true
		}
		if ok, err := path.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// replaceToken replaces every occurrence of token with value, except
// occurrences immediately preceded by '$': ${{NAME}} is foreign CI
// templating and must survive generation untouched. The scan walks the
// original content once, so a value containing the token is not
// re-expanded.
func replaceToken(content []byte, token, value string) ([]byte, bool) {
	tok := []byte(token)
	idx := bytes.Index(content, tok)
	if idx == -1 {
		return content, false
	}

	var buf bytes.Buffer
	buf.Grow(len(content) + len(value))
	start := 0
	replaced := false
	for idx != -1 {
		abs := start + idx
		if abs > 0 && content[abs-1] == '$' {
			buf.Write(content[start : abs+len(tok)])
		} else {
			buf.Write(content[start:abs])
			buf.WriteString(value)
			replaced = true
		}
		start = abs + len(tok)
		idx = bytes.Index(content[start:], tok)
	}
	buf.Write(content[start:])

	if !replaced {
		return content, false
	}
	return buf.Bytes(), true
}
