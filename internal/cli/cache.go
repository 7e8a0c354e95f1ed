package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/cache"
	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/config"
)

// newCacheCmd creates the cache command group for the ingest cache.
func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "cache", Short: "Ingest cache management commands"}
	cmd.AddCommand(NewCacheStatusCmd(), NewCacheClearCmd())
	return cmd
}

// openIngestCache opens the configured cache directory. It is opened even
// when caching is disabled so that old entries can still be inspected and
// removed.
func openIngestCache() (*cache.FileStore, error) {
	cfg := config.GetGlobalConfig()
	store, err := cache.NewFileStore(cfg.Cache.Dir, true, cfg.CacheTTL())
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}
	return store, nil
}

// NewCacheStatusCmd creates the cache status command.
func NewCacheStatusCmd() *cobra.Command {
	var prune bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the cache directory and its entry count",
		Example: `  aurora cache status
  aurora cache status --prune`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			store, err := openIngestCache()
			if err != nil {
				return err
			}
			if prune {
				if err = store.CleanupExpired(); err != nil {
					return fmt.Errorf("removing expired entries: %w", err)
				}
			}
			count, err := store.Count()
			if err != nil {
				return err
			}

			return renderTable(cmd.OutOrStdout(), []string{"Setting", "Value"}, [][]string{
				{"Directory", store.Directory()},
				{"Enabled", strconv.FormatBool(cfg.Cache.Enabled)},
				{"TTL", store.TTL().String()},
				{"Entries", strconv.Itoa(count)},
			})
		},
	}

	cmd.Flags().BoolVar(&prune, "prune", false, "remove expired entries first")
	return cmd
}

// NewCacheClearCmd creates the cache clear command.
func NewCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached ingest result",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openIngestCache()
			if err != nil {
				return err
			}
			count, err := store.Count()
			if err != nil {
				return err
			}
			if err = store.Clear(); err != nil {
				return fmt.Errorf("clearing cache: %w", err)
			}
			cmd.Printf("Removed %d cache entries from %s\n", count, store.Directory())
			return nil
		},
	}
}
