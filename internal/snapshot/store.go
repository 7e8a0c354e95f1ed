// Package snapshot persists ingested summaries. A directory of JSON files
// serves local use; a Postgres table serves shared deployments.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/summary"
)

// Store drivers.
const (
	DriverDir      = "dir"
	DriverPostgres = "postgres"
)

// Store errors.
var (
	ErrUnknownDriver = errors.New("unknown snapshot store driver")
	ErrMissingDSN    = errors.New("postgres DSN is required")
)

// Store saves and lists summary snapshots. Save replaces any snapshot with
// the same date. List returns every snapshot sorted by date.
type Store interface {
	Save(ctx context.Context, s summary.Summary) error
	List(ctx context.Context) ([]summary.Summary, error)
	Close() error
}

// Options selects and configures a Store.
type Options struct {
	Driver      string
	Dir         string
	PostgresDSN string
}

// Open returns the store selected by opts.Driver. An empty driver means
// DriverDir.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch strings.ToLower(opts.Driver) {
	case "", DriverDir:
		return NewDirStore(ctx, opts.Dir)
	case DriverPostgres:
		return NewPostgresStore(ctx, opts.PostgresDSN)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
	}
}

// GlobalSummary lists every snapshot of store wrapped for download.
func GlobalSummary(ctx context.Context, store Store, generatedAt int64) (summary.GlobalSummary, error) {
	snaps, err := store.List(ctx)
	if err != nil {
		return summary.GlobalSummary{}, err
	}
	return summary.GlobalSummary{GeneratedAt: generatedAt, Snapshots: snaps}, nil
}

func sortByDate(snaps []summary.Summary) {
	slices.SortStableFunc(snaps, func(a, b summary.Summary) int {
		switch {
		case a.Date < b.Date:
			return -1
		case a.Date > b.Date:
			return 1
		default:
			return 0
		}
	})
}
