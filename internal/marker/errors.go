package marker

import (
	"errors"
	"fmt"
)

// Sentinel errors for marker operations.
var (
	// ErrNoMarkers indicates no comment style yielded a matched
	// start/end pair for the requested section.
	ErrNoMarkers = errors.New("marker: no matched marker pair found")

	// ErrUnmatchedMarker indicates a start or end marker appears
	// without its partner.
	ErrUnmatchedMarker = errors.New("marker: unmatched marker pair")
)

// PairError reports a start or end marker found without its partner. A
// half pair always means a corrupted template, so it surfaces as an
// error rather than a no-match.
type PairError struct {
	File    string // empty for in-memory content operations
	Section string
	Style   string
}

func (e *PairError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("marker: unmatched pair for section %s (%s style)", e.Section, e.Style)
	}
	return fmt.Sprintf("marker: unmatched pair for section %s (%s style) in %s", e.Section, e.Style, e.File)
}

// Is classifies PairError under the ErrUnmatchedMarker sentinel.
func (e *PairError) Is(target error) bool {
	return target == ErrUnmatchedMarker
}

// withFile records path on a PairError passing through a file-level
// operation; other errors are wrapped with the path as plain context.
func withFile(err error, path string) error {
	var pe *PairError
	if errors.As(err, &pe) {
		return &PairError{File: path, Section: pe.Section, Style: pe.Style}
	}
	return fmt.Errorf("%s: %w", path, err)
}
