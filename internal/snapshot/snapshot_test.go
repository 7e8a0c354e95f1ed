package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/summary"
)

func sample(date int64, countryIDs ...string) summary.Summary {
	s := summary.Summary{Date: date, DaysPeriod: 30, Countries: []summary.Country{}}
	for _, id := range countryIDs {
		s.Countries = append(s.Countries, summary.Country{
			CountryID:   id,
			CountryName: id,
			Cities:      []summary.City{},
		})
	}
	return s
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	store, err := Open(ctx, Options{Dir: filepath.Join(t.TempDir(), "snaps")})
	require.NoError(t, err)
	assert.IsType(t, &DirStore{}, store)
	require.NoError(t, store.Close())

	_, err = Open(ctx, Options{Driver: "sqlite"})
	require.ErrorIs(t, err, ErrUnknownDriver)

	_, err = Open(ctx, Options{Driver: "Postgres"})
	require.ErrorIs(t, err, ErrMissingDSN)

	_, err = Open(ctx, Options{Driver: DriverDir})
	require.ErrorIs(t, err, ErrEmptyDir)
}

func TestDirStore_SaveList(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewDirStore(ctx, dir)
	require.NoError(t, err)

	for _, s := range []summary.Summary{sample(300, "c"), sample(100, "a"), sample(200, "b")} {
		require.NoError(t, store.Save(ctx, s))
	}
	assert.FileExists(t, filepath.Join(dir, "summary-100.json"))

	// Same date replaces.
	require.NoError(t, store.Save(ctx, sample(200, "b", "bb")))

	// Ignored: wrong prefix, non-numeric date, directory.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.json"), []byte("{"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "summary-latest.json"), []byte("{"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "summary-1.json.d"), 0o750))

	got, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []int64{100, 200, 300}, []int64{got[0].Date, got[1].Date, got[2].Date})
	assert.Len(t, got[1].Countries, 2)
	assert.Equal(t, sample(100, "a"), got[0])
}

func TestDirStore_ListEmptyAndCorrupt(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewDirStore(ctx, dir)
	require.NoError(t, err)

	got, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName(5)), []byte("{not json"), 0o600))
	_, err = store.List(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading snapshots")
}

func TestGlobalSummary(t *testing.T) {
	ctx := context.Background()
	store, err := NewDirStore(ctx, t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, sample(2)))
	require.NoError(t, store.Save(ctx, sample(1)))

	g, err := GlobalSummary(ctx, store, 99)
	require.NoError(t, err)
	assert.Equal(t, int64(99), g.GeneratedAt)
	require.Len(t, g.Snapshots, 2)
	assert.Equal(t, int64(1), g.Snapshots[0].Date)
}

func TestPostgresStore_Integration(t *testing.T) {
	dsn := os.Getenv("AURORA_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("AURORA_TEST_POSTGRES_DSN not set")
	}

	ctx := context.Background()
	store, err := NewPostgresStore(ctx, dsn)
	require.NoError(t, err)
	defer store.Close()

	_, err = store.pool.Exec(ctx, `DELETE FROM aurora_snapshots`)
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, sample(20, "x")))
	require.NoError(t, store.Save(ctx, sample(10, "y")))
	require.NoError(t, store.Save(ctx, sample(20, "z")))

	got, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(10), got[0].Date)
	assert.Equal(t, "z", got[1].Countries[0].CountryID)
}
