// Package marker implements the section marker convention used during
// composition. A named region of a template file is delimited by a start
// and an end comment (`NAME_START` / `NAME_END`); variant application
// replaces the whole region with variant content, and the cleanup pass
// removes the comments while keeping whatever the base template wrapped.
//
// Markers are written in the host file's comment syntax. Three styles are
// recognized, tried in a fixed order: line comments (`// NAME_START`),
// block/JSX comments (`{/* NAME_START */}`), and hash comments
// (`# NAME_START`). A marker must sit on its own line; leading
// indentation is allowed and belongs to the marker line.
package marker

import (
	"fmt"
	"os"
	"strings"

	"github.com/appforge-dev/appforge/internal/defs"
)

const (
	startSuffix = "_START"
	endSuffix   = "_END"
)

// commentStyle describes one comment syntax markers may be written in.
type commentStyle struct {
	name   string
	prefix string
	suffix string
}

// styles lists the recognized comment syntaxes in match priority order.
var styles = []commentStyle{
	{name: "line", prefix: "// ", suffix: ""},
	{name: "block", prefix: "{/* ", suffix: " */}"},
	{name: "hash", prefix: "# ", suffix: ""},
}

func (s commentStyle) startMarker(section string) string {
	return s.prefix + section + startSuffix + s.suffix
}

func (s commentStyle) endMarker(section string) string {
	return s.prefix + section + endSuffix + s.suffix
}

// pairSpan is an inclusive line range covering a matched marker pair.
type pairSpan struct {
	start int
	end   int
}

// findPair locates the first matched marker pair for one style. The
// second return reports whether a pair was found; a lone start or end
// marker yields ErrUnmatchedMarker because a half pair always means a
// corrupted template.
func findPair(lines []string, st commentStyle, section string) (pairSpan, bool, error) {
	startText := st.startMarker(section)
	endText := st.endMarker(section)

	start := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == startText {
			start = i
			break
		}
	}

	from := 0
	if start >= 0 {
		from = start + 1
	}
	end := -1
	for i := from; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == endText {
			end = i
			break
		}
	}

	if start == -1 && end == -1 {
		return pairSpan{}, false, nil
	}
	if start == -1 || end == -1 {
		return pairSpan{}, false, &PairError{Section: section, Style: st.name}
	}
	return pairSpan{start: start, end: end}, true, nil
}

// splitLines splits content into lines without their terminators and
// reports whether the content ended with a final newline.
func splitLines(content string) ([]string, bool) {
	trailingNewline := strings.HasSuffix(content, "\n")
	trimmed := strings.TrimSuffix(content, "\n")
	if trimmed == "" {
		return []string{}, trailingNewline
	}
	return strings.Split(trimmed, "\n"), trailingNewline
}

// joinLines reassembles lines, restoring the final newline if the
// original content had one.
func joinLines(lines []string, trailingNewline bool) []byte {
	joined := strings.Join(lines, "\n")
	if trailingNewline && joined != "" {
		joined += "\n"
	}
	return []byte(joined)
}

// InjectContent replaces the first matched marker span for section with
// replacement. Comment styles are tried in priority order and the first
// style with both markers present wins. The marker lines themselves are
// part of the replaced span, so the replacement controls its own
// indentation.
func InjectContent(content []byte, section string, replacement []byte) ([]byte, error) {
	lines, trailingNewline := splitLines(string(content))
	for _, st := range styles {
		span, ok, err := findPair(lines, st, section)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		replLines, _ := splitLines(string(replacement))
		out := make([]string, 0, len(lines)-(span.end-span.start+1)+len(replLines))
		out = append(out, lines[:span.start]...)
		out = append(out, replLines...)
		out = append(out, lines[span.end+1:]...)
		return joinLines(out, trailingNewline), nil
	}
	return nil, fmt.Errorf("%w: section %s", ErrNoMarkers, section)
}

// StripContent removes the marker lines for section in every comment
// style present, keeping the wrapped content verbatim. The second return
// reports whether any pair was removed; absent markers are a no-op, not
// an error.
func StripContent(content []byte, section string) ([]byte, bool, error) {
	lines, trailingNewline := splitLines(string(content))
	stripped := false
	for _, st := range styles {
		span, ok, err := findPair(lines, st, section)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			continue
		}

		out := make([]string, 0, len(lines)-2)
		out = append(out, lines[:span.start]...)
		out = append(out, lines[span.start+1:span.end]...)
		out = append(out, lines[span.end+1:]...)
		lines = out
		stripped = true
	}
	if !stripped {
		return content, false, nil
	}
	return joinLines(lines, trailingNewline), true, nil
}

// HasSectionContent reports whether content holds a matched marker pair
// for section in any comment style.
func HasSectionContent(content []byte, section string) bool {
	lines, _ := splitLines(string(content))
	for _, st := range styles {
		if _, ok, err := findPair(lines, st, section); err == nil && ok {
			return true
		}
	}
	return false
}

// Inject rewrites the file at path, replacing the marker span for
// section with replacement. Missing or mismatched markers are an error
// naming the file and section.
func Inject(path, section string, replacement []byte) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	updated, err := InjectContent(content, section, replacement)
	if err != nil {
		return withFile(err, path)
	}
	if err := os.WriteFile(path, updated, defs.FilePerm); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Strip rewrites the file at path, removing marker comments for section
// while keeping the wrapped content. It reports whether any pair was
// removed.
func Strip(path, section string) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	updated, stripped, err := StripContent(content, section)
	if err != nil {
		return false, withFile(err, path)
	}
	if !stripped {
		return false, nil
	}
	if err := os.WriteFile(path, updated, defs.FilePerm); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}

// HasSection reports whether the file at path holds a matched marker
// pair for section in any comment style.
func HasSection(path, section string) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	return HasSectionContent(content, section), nil
}
