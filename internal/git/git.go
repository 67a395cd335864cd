// Package git provides typed access to the git CLI for template cache
// operations: blobless sparse clones, sparse-checkout widening, and
// fast-forward refreshes. All repository commands target a specific
// directory via the -C flag, injected by every Repository method, so
// there is never an ambient "current repository".
package git

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Repository represents a git repository at a specific directory.
type Repository struct {
	dir string
}

// NewRepository returns a Repository targeting the given directory. The
// directory is not validated; use [IsRepository] first when the caller
// cannot guarantee it exists.
func NewRepository(dir string) *Repository {
	return &Repository{dir: dir}
}

// Dir returns the repository directory.
func (r *Repository) Dir() string {
	return r.dir
}

// IsRepository reports whether dir contains a git repository.
func IsRepository(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil && info.IsDir()
}

// Run executes a git command targeting this repository and returns
// stdout. Failures come back as a [*CommandError] carrying the captured
// stderr.
func (r *Repository) Run(ctx context.Context, args ...string) (string, error) {
	fullArgs := append([]string{"-C", r.dir}, args...)
	var stdout, stderr bytes.Buffer
	command := exec.CommandContext(ctx, "git", fullArgs...)
	command.Stdout = &stdout
	command.Stderr = &stderr

	if err := command.Run(); err != nil {
		return "", &CommandError{
			Args:   args,
			Dir:    r.dir,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}
	return stdout.String(), nil
}

// Clone performs a depth-1, blobless clone with no paths checked out,
// tracking the given branch. The clone is the cheapest possible starting
// point for a sparse cache: history and blobs are fetched lazily as the
// sparse cone widens.
func Clone(ctx context.Context, url, branch, dir string) (*Repository, error) {
	args := []string{
		"clone",
		"--depth", "1",
		"--filter=blob:none",
		"--no-checkout",
		"--branch", branch,
		url, dir,
	}
	var stdout, stderr bytes.Buffer
	command := exec.CommandContext(ctx, "git", args...)
	command.Stdout = &stdout
	command.Stderr = &stderr

	if err := command.Run(); err != nil {
		return nil, &CommandError{
			Args:   args,
			Dir:    dir,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}
	return NewRepository(dir), nil
}

// SparseInit enables cone-mode sparse checkout. Until the first
// SparseAdd, only root-level files are materialized.
func (r *Repository) SparseInit(ctx context.Context) error {
	_, err := r.Run(ctx, "sparse-checkout", "init", "--cone")
	return err
}

// SparseAdd widens the sparse cone by the given top-level directories.
// Git persists the union, so repeated adds only ever grow the cone.
func (r *Repository) SparseAdd(ctx context.Context, dirs ...string) error {
	if len(dirs) == 0 {
		return nil
	}
	args := append([]string{"sparse-checkout", "add"}, dirs...)
	_, err := r.Run(ctx, args...)
	return err
}

// SparseList returns the directories currently in the sparse cone.
func (r *Repository) SparseList(ctx context.Context) ([]string, error) {
	out, err := r.Run(ctx, "sparse-checkout", "list")
	if err != nil {
		return nil, err
	}
	var dirs []string
	for _, line := range strings.Split(out, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			dirs = append(dirs, trimmed)
		}
	}
	return dirs, nil
}

// Checkout materializes the working tree at ref, honoring the sparse
// cone. Required once after a --no-checkout clone.
func (r *Repository) Checkout(ctx context.Context, ref string) error {
	_, err := r.Run(ctx, "checkout", ref)
	return err
}

// PullFF fast-forwards the current branch from its remote. Divergent
// history is an error rather than a merge; a template cache must track
// the remote exactly.
func (r *Repository) PullFF(ctx context.Context) error {
	_, err := r.Run(ctx, "pull", "--ff-only")
	return err
}

// HeadCommit returns the full hash of the checked-out commit.
func (r *Repository) HeadCommit(ctx context.Context) (string, error) {
	out, err := r.Run(ctx, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// RemoteURL returns the URL of the origin remote.
func (r *Repository) RemoteURL(ctx context.Context) (string, error) {
	out, err := r.Run(ctx, "config", "--get", "remote.origin.url")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// LastSync returns the time of the last network synchronization, taken
// from the FETCH_HEAD timestamp. Fresh clones have no FETCH_HEAD yet, so
// HEAD's timestamp stands in. The second return is false when neither
// file can be read.
func (r *Repository) LastSync() (time.Time, bool) {
	for _, name := range []string{"FETCH_HEAD", "HEAD"} {
		info, err := os.Stat(filepath.Join(r.dir, ".git", name))
		if err == nil {
			return info.ModTime(), true
		}
	}
	return time.Time{}, false
}
