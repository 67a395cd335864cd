package compose

import (
	"errors"
	"fmt"
)

// Sentinel errors for composition.
var (
	// ErrBaseMissing indicates the service's base template directory is
	// absent from the template root.
	ErrBaseMissing = errors.New("compose: base template path missing")

	// ErrTargetMissing indicates a file an applied variant must inject
	// sections into does not exist in the composed tree.
	ErrTargetMissing = errors.New("compose: section target file missing")

	// ErrPathTraversal indicates a variant file entry escapes the
	// destination directory.
	ErrPathTraversal = errors.New("compose: path escapes destination root")
)

// ServiceError attributes a fatal composition failure to a service and
// pipeline step. A failed composition leaves a partial destination
// behind, so the attribution is what tells the user which output to
// delete before retrying.
type ServiceError struct {
	Service string
	Step    string
	Err     error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("compose %s: %s: %v", e.Service, e.Step, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}