package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/aggregate"
	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/config"
	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/logging"
	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/snapshot"
	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/summary"
)

// ErrNoSnapshots is returned by commands that need at least one snapshot.
var ErrNoSnapshots = errors.New("no snapshots found, run 'aurora ingest' first")

// openStore opens the configured snapshot store.
func openStore(ctx context.Context) (snapshot.Store, error) {
	cfg := config.GetGlobalConfig()
	store, err := snapshot.Open(ctx, cfg.StoreOptions())
	if err != nil {
		return nil, fmt.Errorf("opening snapshot store: %w", err)
	}
	return store, nil
}

// loadSnapshots returns every stored snapshot ordered by date.
func loadSnapshots(ctx context.Context) ([]summary.Summary, error) {
	store, err := openStore(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			logging.FromContext(ctx).Warn().Ctx(ctx).
				Str("component", "cli").
				Err(closeErr).
				Msg("closing snapshot store")
		}
	}()

	snaps, err := store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	logging.FromContext(ctx).Debug().Ctx(ctx).
		Str("component", "cli").
		Str("operation", "load_snapshots").
		Int("snapshot_count", len(snaps)).
		Msg("snapshots loaded")
	return snaps, nil
}

// loadMetaData returns the metadata of the latest snapshot.
func loadMetaData(ctx context.Context) ([]aggregate.MetaData, error) {
	snaps, err := loadSnapshots(ctx)
	if err != nil {
		return nil, err
	}
	meta, ok := aggregate.LatestMetaData(ctx, snaps)
	if !ok {
		return nil, ErrNoSnapshots
	}
	return meta, nil
}
