package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/cache"
	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/config"
	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/export"
	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/logging"
	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/summary"
)

// ingestCacheNamespace prefixes the cache keys of ingested summaries.
const ingestCacheNamespace = "ingest"

type ingestParams struct {
	exportPath string
	date       int64
	daysPeriod int
	noCache    bool

	// now is replaced in tests.
	now func() time.Time
}

// NewIngestCmd creates the ingest command that folds an export file into a
// snapshot and saves it to the store.
func NewIngestCmd() *cobra.Command {
	params := ingestParams{now: time.Now}

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Ingest an export file into the snapshot store",
		Long: `Reads a summarised export, groups its users by country and city and saves the
resulting snapshot. The snapshot date is taken from --date, then from the
export file name (summarised-export-<epoch-ms>.json), then the current time.

Ingested summaries are cached by export content, locations, date and period, so
re-ingesting an unchanged export skips the aggregation.`,
		Example: `  # Ingest an export named after its timestamp
  aurora ingest --export summarised-export-1700000000000.json

  # Ingest with an explicit date and period
  aurora ingest --export export.json --date 1700000000 --days-period 7`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeIngest(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.exportPath, "export", "", "path to the export JSON file")
	cmd.Flags().Int64Var(&params.date, "date", 0, "snapshot date in epoch seconds")
	cmd.Flags().IntVar(&params.daysPeriod, "days-period", 0,
		"number of days the export covers (default from report.days_period)")
	cmd.Flags().BoolVar(&params.noCache, "no-cache", false, "always re-ingest, bypassing the cache")
	_ = cmd.MarkFlagRequired("export")

	return cmd
}

func executeIngest(cmd *cobra.Command, params ingestParams) error {
	ctx := cmd.Context()
	cfg := config.GetGlobalConfig()
	log := logging.FromContext(ctx).With().
		Str("component", "cli").
		Str("operation", "ingest").
		Logger()

	exp, data, err := export.LoadExport(ctx, params.exportPath)
	if err != nil {
		return err
	}

	date := params.date
	if !cmd.Flags().Changed("date") {
		if fromName, nameErr := export.DateFromFileName(params.exportPath); nameErr == nil {
			date = fromName
		} else {
			date = params.now().Unix()
			log.Debug().Ctx(ctx).Err(nameErr).Int64("date", date).Msg("export file name has no date, using current time")
		}
	}

	days := params.daysPeriod
	if days <= 0 {
		days = cfg.Report.DaysPeriod
	}

	store, err := cache.NewFileStore(cfg.Cache.Dir, cfg.Cache.Enabled && !params.noCache, cfg.CacheTTL())
	if err != nil {
		return fmt.Errorf("opening cache: %w", err)
	}
	// Names come from the locations config, so it is part of the key.
	locations, err := json.Marshal(cfg.Locations)
	if err != nil {
		return fmt.Errorf("encoding locations: %w", err)
	}
	key := cache.Key(ingestCacheNamespace, cache.Digest(data), cache.Digest(locations),
		strconv.FormatInt(date, 10), strconv.Itoa(days))

	sum, cached := cachedSummary(ctx, store, key)
	if !cached {
		sum = export.Ingest(ctx, exp, date,
			export.WithDaysPeriod(days),
			export.WithLocations(cfg.Directory()))
		if setErr := store.SetValue(key, sum); setErr != nil && !errors.Is(setErr, cache.ErrDisabled) {
			log.Warn().Ctx(ctx).Err(setErr).Msg("failed to cache ingested summary")
		}
	}

	snapStore, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer snapStore.Close()

	if err = snapStore.Save(ctx, sum); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}

	if store.Enabled() {
		if cleanErr := store.CleanupExpired(); cleanErr != nil {
			log.Debug().Ctx(ctx).Err(cleanErr).Msg("removing expired cache entries failed")
		}
	}

	log.Info().Ctx(ctx).
		Int64("date", sum.Date).
		Int("country_count", len(sum.Countries)).
		Bool("cached", cached).
		Msg("export ingested")

	source := "ingested"
	if cached {
		source = "from cache"
	}
	cmd.Printf("Snapshot %s saved: %d users in %d countries (%s)\n",
		time.Unix(sum.Date, 0).UTC().Format(time.DateOnly), len(exp), len(sum.Countries), source)
	return nil
}

// cachedSummary looks key up in store. Misses, expired entries and
// undecodable entries all report false; undecodable entries are deleted.
func cachedSummary(ctx context.Context, store *cache.FileStore, key string) (summary.Summary, bool) {
	log := logging.FromContext(ctx).With().Str("component", "cli").Logger()

	entry, err := store.Get(key)
	switch {
	case err == nil:
	case errors.Is(err, cache.ErrNotFound), errors.Is(err, cache.ErrDisabled):
		return summary.Summary{}, false
	case errors.Is(err, cache.ErrExpired):
		log.Debug().Ctx(ctx).Msg("ingest cache entry expired")
		return summary.Summary{}, false
	default:
		discardCacheEntry(ctx, store, key, err)
		return summary.Summary{}, false
	}

	var sum summary.Summary
	if err = entry.Decode(&sum); err != nil {
		discardCacheEntry(ctx, store, key, err)
		return summary.Summary{}, false
	}
	return sum, true
}

func discardCacheEntry(ctx context.Context, store *cache.FileStore, key string, cause error) {
	log := logging.FromContext(ctx).With().Str("component", "cli").Logger()
	log.Warn().Ctx(ctx).Err(cause).Msg("discarding undecodable cache entry")
	if err := store.Delete(key); err != nil {
		log.Debug().Ctx(ctx).Err(err).Msg("deleting cache entry failed")
	}
}
