package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/logging"
	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/summary"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS aurora_snapshots (
    date        BIGINT PRIMARY KEY,
    days_period INTEGER NOT NULL,
    body        JSONB NOT NULL,
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// PostgresStore keeps each snapshot as a JSONB row keyed by date.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to dsn and creates the snapshot table.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, ErrMissingDSN
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	s := &PostgresStore{pool: pool}
	if err = s.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// EnsureSchema creates the snapshot table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("creating aurora_snapshots: %w", err)
	}
	return nil
}

// Save upserts sum by date.
func (s *PostgresStore) Save(ctx context.Context, sum summary.Summary) error {
	body, err := json.Marshal(sum)
	if err != nil {
		return fmt.Errorf("encoding snapshot %d: %w", sum.Date, err)
	}

	_, err = s.pool.Exec(ctx, `
        INSERT INTO aurora_snapshots (date, days_period, body, updated_at)
        VALUES ($1, $2, $3, NOW())
        ON CONFLICT (date)
        DO UPDATE SET days_period = EXCLUDED.days_period,
                      body = EXCLUDED.body,
                      updated_at = EXCLUDED.updated_at
    `, sum.Date, sum.DaysPeriod, body)
	if err != nil {
		return fmt.Errorf("saving snapshot %d: %w", sum.Date, err)
	}

	logging.FromContext(ctx).Debug().Ctx(ctx).
		Str("component", "snapshot").
		Str("operation", "Save").
		Int64("date", sum.Date).
		Int("body_bytes", len(body)).
		Msg("snapshot upserted")
	return nil
}

// List returns every snapshot ordered by date.
func (s *PostgresStore) List(ctx context.Context) ([]summary.Summary, error) {
	rows, err := s.pool.Query(ctx, `SELECT body FROM aurora_snapshots ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []summary.Summary
	for rows.Next() {
		var body []byte
		if err = rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		var sum summary.Summary
		if err = json.Unmarshal(body, &sum); err != nil {
			return nil, fmt.Errorf("decoding snapshot: %w", err)
		}
		snaps = append(snaps, sum)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}

	sortByDate(snaps)
	return snaps, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
