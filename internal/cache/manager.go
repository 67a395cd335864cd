// Package cache manages the local sparse checkout of the template
// repository. The cache starts as a blobless clone with nothing
// materialized and widens service by service as generations demand; the
// included set only ever grows until an explicit clear.
package cache

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/appforge-dev/appforge/internal/defs"
	"github.com/appforge-dev/appforge/internal/git"
	"github.com/appforge-dev/appforge/internal/resilience"
)

// Manager guarantees required template paths are materialized locally.
type Manager interface {
	// EnsureReady makes the cache hold at least the given service
	// directories and returns the local template root. Idempotent: an
	// existing cache is refreshed and widened, a missing one is created
	// from scratch.
	EnsureReady(ctx context.Context, services []string) (string, error)

	// Info reports the on-disk state of the cache. Size and sync-time
	// probes are best effort and never fail the call.
	Info(ctx context.Context) (*Info, error)

	// Clear deletes the cache directory entirely. The next EnsureReady
	// re-initializes from the remote.
	Clear() error
}

// Info describes the on-disk state of the template cache.
type Info struct {
	Path          string
	Exists        bool
	RemoteURL     string
	Commit        string
	SizeBytes     int64
	SizeKnown     bool
	IncludedPaths []string
	LastSync      time.Time
	LastSyncKnown bool
}

// manager is the concrete implementation of Manager.
type manager struct {
	repoURL string
	branch  string
	dir     string
	logger  *slog.Logger
}

// NewManager creates a Manager for the template repository at repoURL,
// tracking branch, with the cache stored at dir.
func NewManager(repoURL, branch, dir string, logger *slog.Logger) Manager {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &manager{
		repoURL: repoURL,
		branch:  branch,
		dir:     dir,
		logger:  logger,
	}
}

// DefaultDir returns the standard cache location under the OS user
// cache directory.
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve user cache dir: %w", err)
	}
	return filepath.Join(base, defs.AppDirName, defs.TemplatesDirName), nil
}

// EnsureReady implements Manager.
func (m *manager) EnsureReady(ctx context.Context, services []string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if git.IsRepository(m.dir) {
		if err := m.refresh(ctx); err != nil {
			return "", err
		}
	} else {
		if err := m.initialize(ctx); err != nil {
			return "", err
		}
	}

	// Git persists the sparse cone as a union, so adding paths from a
	// previous run again is harmless and the set never shrinks here.
	repo := git.NewRepository(m.dir)
	sorted := slices.Clone(services)
	slices.Sort(sorted)
	if err := repo.SparseAdd(ctx, sorted...); err != nil {
		return "", fmt.Errorf("widen sparse checkout: %w", err)
	}

	m.logger.Debug("template cache ready", "dir", m.dir, "services", sorted)
	return m.dir, nil
}

// networkRetryPolicy bounds transient-failure retries for remote git
// operations. Non-network failures abort on the first try.
func networkRetryPolicy() resilience.Policy {
	return resilience.Policy{
		Attempts:  3,
		BaseDelay: 500 * time.Millisecond,
		MaxDelay:  5 * time.Second,
		Jitter:    true,
		Retryable: git.IsNetworkError,
	}
}

// initialize performs the first-time sparse clone. Any failure removes
// the partial directory so the next attempt starts clean.
func (m *manager) initialize(ctx context.Context) error {
	m.logger.Info("initializing template cache", "url", m.repoURL, "dir", m.dir)

	if err := os.MkdirAll(filepath.Dir(m.dir), defs.DirPerm); err != nil {
		return fmt.Errorf("create cache parent dir: %w", err)
	}

	op := "clone"
	err := resilience.Retry(ctx, networkRetryPolicy(), func() error {
		m.removePartial()
		repo, err := git.Clone(ctx, m.repoURL, m.branch, m.dir)
		if err != nil {
			op = "clone"
			return err
		}
		if err := repo.SparseInit(ctx); err != nil {
			op = "sparse-checkout init"
			return err
		}
		if err := repo.Checkout(ctx, m.branch); err != nil {
			op = "checkout"
			return err
		}
		return nil
	})
	if err != nil {
		m.removePartial()
		return m.classify(op, err, ErrInitFailed)
	}
	return nil
}

// refresh fast-forwards an existing cache to the tracked branch tip.
func (m *manager) refresh(ctx context.Context) error {
	m.logger.Debug("refreshing template cache", "dir", m.dir)

	repo := git.NewRepository(m.dir)
	err := resilience.Retry(ctx, networkRetryPolicy(), func() error {
		return repo.PullFF(ctx)
	})
	if err != nil {
		return m.classify("pull", err, ErrRefreshFailed)
	}
	return nil
}

// classify wraps err as a NetworkError when it looks
// connectivity-related, otherwise in the given sentinel.
func (m *manager) classify(op string, err, sentinel error) error {
	if git.IsNetworkError(err) {
		return &NetworkError{Op: op, Err: err}
	}
	return fmt.Errorf("%w: %v", sentinel, err)
}

func (m *manager) removePartial() {
	if err := os.RemoveAll(m.dir); err != nil {
		m.logger.Warn("failed to remove partial cache", "dir", m.dir, "error", err)
	}
}

// Info implements Manager.
func (m *manager) Info(ctx context.Context) (*Info, error) {
	info := &Info{Path: m.dir}
	if !git.IsRepository(m.dir) {
		return info, nil
	}
	info.Exists = true

	repo := git.NewRepository(m.dir)
	paths, err := repo.SparseList(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sparse checkout: %w", err)
	}
	info.IncludedPaths = paths

	if syncTime, ok := repo.LastSync(); ok {
		info.LastSync = syncTime
		info.LastSyncKnown = true
	}
	if commit, err := repo.HeadCommit(ctx); err == nil {
		info.Commit = commit
	}
	if url, err := repo.RemoteURL(ctx); err == nil {
		info.RemoteURL = url
	}

	if size, err := dirSize(m.dir); err == nil {
		info.SizeBytes = size
		info.SizeKnown = true
	} else {
		m.logger.Warn("cache size computation failed", "dir", m.dir, "error", err)
	}

	return info, nil
}

// Clear implements Manager.
func (m *manager) Clear() error {
	if err := os.RemoveAll(m.dir); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	m.logger.Info("template cache cleared", "dir", m.dir)
	return nil
}

// dirSize sums file sizes under root.
func dirSize(root string) (int64, error) {
	var total int64
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}
		total += fi.Size()
		return nil
	})
	return total, err
}
