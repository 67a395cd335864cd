package cache

import (
	"errors"
	"fmt"
)

// Sentinel errors for template cache operations.
var (
	// ErrInitFailed indicates the initial sparse clone could not be
	// completed. No partial cache directory is left behind.
	ErrInitFailed = errors.New("cache: template cache initialization failed")

	// ErrRefreshFailed indicates an existing cache could not be brought
	// up to date. Stale templates are unsafe to build from, so this is
	// fatal; retry once the cause is resolved.
	ErrRefreshFailed = errors.New("cache: template cache refresh failed, retry before generating")

	// ErrNetwork re-classifies init/refresh failures whose cause looks
	// connectivity-related, so the CLI can suggest checking the
	// connection instead of printing a raw git failure.
	ErrNetwork = errors.New("cache: cannot reach the template repository, check your network connection and retry")
)

// NetworkError is a connectivity-classified cache failure. Op names the
// git operation that was running when the connection failed.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("cache: %s failed, check your network connection and retry: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Is classifies NetworkError under the ErrNetwork sentinel.
func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}
