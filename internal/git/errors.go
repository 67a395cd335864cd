package git

import (
	"errors"
	"fmt"
	"strings"
)

// CommandError reports a failed git invocation together with the stderr
// it produced. Stderr is what carries git's actual diagnosis, so it is
// kept both in the message and as a field for classification.
type CommandError struct {
	Args   []string
	Dir    string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("git %s in %s: %v (stderr: %s)",
		strings.Join(e.Args, " "), e.Dir, e.Err, e.Stderr)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// networkStderrPatterns are lowercase fragments git emits on
// connectivity failures, as opposed to repository-state failures.
var networkStderrPatterns = []string{
	"could not resolve host",
	"unable to access",
	"connection refused",
	"connection timed out",
	"network is unreachable",
	"failed to connect",
	"could not read from remote repository",
}

// IsNetworkError reports whether err is a git failure whose stderr looks
// connectivity-related. Callers use this to swap a generic fatal error
// for a user-actionable "check your connection and retry" message.
func IsNetworkError(err error) bool {
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		return false
	}
	stderr := strings.ToLower(cmdErr.Stderr)
	for _, pattern := range networkStderrPatterns {
		if strings.Contains(stderr, pattern) {
			return true
		}
	}
	return false
}
