package snapshot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/logging"
	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/summary"
)

const (
	filePrefix = "summary-"
	fileSuffix = ".json"
)

// ErrEmptyDir is returned by NewDirStore without a directory.
var ErrEmptyDir = errors.New("snapshot directory cannot be empty")

// DirStore keeps one summary-<date>.json file per snapshot.
type DirStore struct {
	dir string
}

// NewDirStore creates dir if needed.
func NewDirStore(ctx context.Context, dir string) (*DirStore, error) {
	if dir == "" {
		return nil, ErrEmptyDir
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating snapshot directory: %w", err)
	}
	logging.FromContext(ctx).Debug().Ctx(ctx).
		Str("component", "snapshot").
		Str("dir", dir).
		Msg("directory store opened")
	return &DirStore{dir: dir}, nil
}

// FileName is the file a snapshot of the given date is stored in.
func FileName(date int64) string {
	return filePrefix + strconv.FormatInt(date, 10) + fileSuffix
}

// Dir returns the store directory.
func (d *DirStore) Dir() string { return d.dir }

// Save writes s atomically, replacing a snapshot with the same date.
func (d *DirStore) Save(ctx context.Context, s summary.Summary) error {
	path := filepath.Join(d.dir, FileName(s.Date))
	if err := summary.SaveJSONFile(path, s); err != nil {
		return fmt.Errorf("saving snapshot %d: %w", s.Date, err)
	}
	logging.FromContext(ctx).Debug().Ctx(ctx).
		Str("component", "snapshot").
		Str("operation", "Save").
		Str("path", path).
		Msg("snapshot saved")
	return nil
}

// List decodes every snapshot file concurrently. Files that do not match
// summary-<date>.json are ignored; a file that fails to decode fails the
// whole call.
func (d *DirStore) List(ctx context.Context) ([]summary.Summary, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		if _, parseErr := strconv.ParseInt(strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix), 10, 64); parseErr != nil {
			continue
		}
		paths = append(paths, filepath.Join(d.dir, name))
	}

	snaps := make([]summary.Summary, len(paths))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, path := range paths {
		g.Go(func() error {
			if gCtx.Err() != nil {
				return gCtx.Err()
			}
			s, loadErr := summary.LoadJSONFile[summary.Summary](path)
			if loadErr != nil {
				return loadErr
			}
			snaps[i] = s
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, fmt.Errorf("loading snapshots: %w", err)
	}

	sortByDate(snaps)

	logging.FromContext(ctx).Debug().Ctx(ctx).
		Str("component", "snapshot").
		Str("operation", "List").
		Int("snapshot_count", len(snaps)).
		Msg("snapshots loaded")
	return snaps, nil
}

// Close is a no-op.
func (d *DirStore) Close() error { return nil }
