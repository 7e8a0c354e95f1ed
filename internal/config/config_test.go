package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/config"
	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/logging"
	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/snapshot"
)

// isolate points AURORA_HOME at a temp dir and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	for _, key := range []string{
		config.EnvLogLevel, config.EnvLogFormat, config.EnvStoreDriver, config.EnvStoreDir,
		config.EnvPostgresDSN, config.EnvInfluxURL, config.EnvInfluxToken,
		config.EnvReportLanguage, config.EnvProjectDir,
	} {
		t.Setenv(key, "")
	}
	return home
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	home := isolate(t)

	cfg := config.Default()
	assert.Equal(t, filepath.Join(home, "config.yaml"), cfg.ConfigPath())
	assert.Equal(t, "table", cfg.Output.DefaultFormat)
	assert.Equal(t, 2, cfg.Output.Precision)
	assert.Equal(t, filepath.Join(home, "logs", "aurora.log"), cfg.Logging.File)
	assert.Equal(t, snapshot.DriverDir, cfg.Store.Driver)
	assert.Equal(t, filepath.Join(home, "snapshots"), cfg.Store.Dir)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 86400, cfg.Cache.TTLSeconds)
	assert.Equal(t, "en", cfg.Report.Language)
	assert.Equal(t, 30, cfg.Report.DaysPeriod)
	require.NoError(t, cfg.Validate())
}

func TestNew_ReadsGlobalFile(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, "config.yaml"), `
output:
  default_format: json
  precision: 1
report:
  language: de
  carbon_unit: kg
  days_period: 7
`)

	cfg := config.New()
	assert.Equal(t, "json", cfg.Output.DefaultFormat)
	assert.Equal(t, 1, cfg.Output.Precision)
	assert.Equal(t, "de", cfg.Report.Language)
	assert.Equal(t, 7, cfg.Report.DaysPeriod)
	// Sections absent from the file keep their defaults.
	assert.Equal(t, snapshot.DriverDir, cfg.Store.Driver)
}

func TestNew_MalformedFileIgnored(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, "config.yaml"), "output: [not, a, map")

	cfg := config.New()
	assert.Equal(t, "table", cfg.Output.DefaultFormat)
}

func TestNewFromFile(t *testing.T) {
	isolate(t)

	_, err := config.NewFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	path := writeFile(t, filepath.Join(t.TempDir(), "custom.yaml"), "store:\n  driver: postgres\n  postgres_dsn: postgres://x\n")
	cfg, err := config.NewFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.ConfigPath())
	assert.Equal(t, snapshot.DriverPostgres, cfg.Store.Driver)
	assert.Equal(t, "postgres://x", cfg.Store.PostgresDSN)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	isolate(t)

	cfg := config.Default()
	cfg.SetConfigPath(filepath.Join(t.TempDir(), "nested", "config.yaml"))
	cfg.Output.Precision = 3
	cfg.Influx.URL = "http://localhost:8086"
	require.NoError(t, cfg.Save())

	loaded := config.Default()
	loaded.SetConfigPath(cfg.ConfigPath())
	require.NoError(t, loaded.Load())
	assert.Equal(t, 3, loaded.Output.Precision)
	assert.Equal(t, "http://localhost:8086", loaded.Influx.URL)

	_, err := os.Stat(cfg.ConfigPath() + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestApplyEnv(t *testing.T) {
	isolate(t)
	env := map[string]string{
		config.EnvLogLevel:       "debug",
		config.EnvLogFormat:      "console",
		config.EnvStoreDriver:    "postgres",
		config.EnvPostgresDSN:    "postgres://db",
		config.EnvInfluxToken:    "secret",
		config.EnvReportLanguage: "de",
		config.EnvStoreDir:       "   ",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := config.Default()
	dir := cfg.Store.Dir
	cfg.ApplyEnv(lookup)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "postgres://db", cfg.Store.PostgresDSN)
	assert.Equal(t, "secret", cfg.Influx.Token)
	assert.Equal(t, "de", cfg.Report.Language)
	assert.Equal(t, dir, cfg.Store.Dir, "blank values are ignored")
}

func TestLoadDotEnv(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	path := writeFile(t, filepath.Join(dir, ".env"), "AURORA_LOG_LEVEL=warn\nAURORA_REPORT_LANGUAGE=de\n")

	t.Setenv(config.EnvLogLevel, "")
	require.NoError(t, os.Unsetenv(config.EnvLogLevel))
	t.Setenv(config.EnvReportLanguage, "en")

	require.NoError(t, config.LoadDotEnv(filepath.Join(dir, "missing.env"), path))
	assert.Equal(t, "warn", os.Getenv(config.EnvLogLevel))
	assert.Equal(t, "en", os.Getenv(config.EnvReportLanguage), "existing variables win")
}

func TestValidate(t *testing.T) {
	isolate(t)

	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{name: "format", mutate: func(c *config.Config) { c.Output.DefaultFormat = "xml" }, want: "output.default_format"},
		{name: "precision", mutate: func(c *config.Config) { c.Output.Precision = 9 }, want: "output.precision"},
		{name: "level", mutate: func(c *config.Config) { c.Logging.Level = "loud" }, want: "logging.level"},
		{name: "log format", mutate: func(c *config.Config) { c.Logging.Format = "xml" }, want: "logging.format"},
		{name: "driver", mutate: func(c *config.Config) { c.Store.Driver = "sqlite" }, want: "store.driver"},
		{name: "dsn", mutate: func(c *config.Config) { c.Store.Driver = "postgres" }, want: "store.postgres_dsn"},
		{name: "dir", mutate: func(c *config.Config) { c.Store.Dir = "" }, want: "store.dir"},
		{name: "ttl", mutate: func(c *config.Config) { c.Cache.TTLSeconds = 1 }, want: "cache.ttl_seconds"},
		{name: "influx bucket", mutate: func(c *config.Config) { c.Influx.URL = "http://x"; c.Influx.Bucket = "" }, want: "influx.bucket"},
		{name: "language", mutate: func(c *config.Config) { c.Report.Language = "?!" }, want: "report.language"},
		{name: "unit", mutate: func(c *config.Config) { c.Report.CarbonUnit = "oz" }, want: "report.carbon_unit"},
		{name: "days", mutate: func(c *config.Config) { c.Report.DaysPeriod = 0 }, want: "report.days_period"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.ErrorIs(t, err, config.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	t.Run("disabled cache skips cache checks", func(t *testing.T) {
		cfg := config.Default()
		cfg.Cache = config.CacheConfig{Enabled: false}
		require.NoError(t, cfg.Validate())
	})

	t.Run("reports every problem", func(t *testing.T) {
		cfg := config.Default()
		cfg.Output.DefaultFormat = "xml"
		cfg.Report.DaysPeriod = -1
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "output.default_format")
		assert.Contains(t, err.Error(), "report.days_period")
	})
}

func TestGetSetList(t *testing.T) {
	isolate(t)
	cfg := config.Default()
	cfg.Store.PostgresDSN = "postgres://user:pw@db/aurora"

	v, err := cfg.Get("store.driver")
	require.NoError(t, err)
	assert.Equal(t, "dir", v)

	section, err := cfg.Get("output")
	require.NoError(t, err)
	assert.IsType(t, map[string]any{}, section)

	_, err = cfg.Get("store.nope")
	require.ErrorIs(t, err, config.ErrUnknownKey)
	_, err = cfg.Get("store.driver.deeper")
	require.ErrorIs(t, err, config.ErrUnknownKey)

	require.NoError(t, cfg.Set("output.precision", "4"))
	assert.Equal(t, 4, cfg.Output.Precision)
	require.NoError(t, cfg.Set("report.language", "de"))
	assert.Equal(t, "de", cfg.Report.Language)
	assert.NotEmpty(t, cfg.ConfigPath(), "Set keeps the config path")

	require.ErrorIs(t, cfg.Set("output", "x"), config.ErrUnknownKey)
	require.ErrorIs(t, cfg.Set("nope.key", "x"), config.ErrUnknownKey)
	require.Error(t, cfg.Set("output.precision", "many"))

	list, err := cfg.List()
	require.NoError(t, err)
	assert.Equal(t, "4", list["output.precision"])
	assert.Equal(t, "********", list["store.postgres_dsn"])
	assert.Empty(t, list["influx.token"], "empty secrets stay empty")

	keys := config.SortedKeys(list)
	assert.IsNonDecreasing(t, keys)
}

func TestToLoggingConfig(t *testing.T) {
	lc := config.LoggingConfig{Level: "debug", Format: "json", File: "/tmp/a.log"}
	got := lc.ToLoggingConfig()
	assert.Equal(t, logging.OutputFile, got.Output)
	assert.Equal(t, "/tmp/a.log", got.File)
	assert.Equal(t, "debug", got.Level)

	lc.File = ""
	assert.Equal(t, logging.OutputStderr, lc.ToLoggingConfig().Output)
}

func TestGlobalConfig(t *testing.T) {
	isolate(t)
	config.ResetGlobalConfigForTest()
	t.Cleanup(config.ResetGlobalConfigForTest)

	first := config.GetGlobalConfig()
	require.NotNil(t, first)
	assert.Same(t, first, config.GetGlobalConfig())

	custom := config.Default()
	custom.Output.Precision = 5
	config.SetGlobalConfig(custom)
	assert.Equal(t, 5, config.GetGlobalConfig().Output.Precision)

	require.NoError(t, config.EnsureLogDir())
	assert.DirExists(t, filepath.Dir(custom.Logging.File))
}

func TestDirectory(t *testing.T) {
	isolate(t)
	cfg := config.Default()
	assert.Empty(t, cfg.Directory().Countries)

	home := isolate(t)
	writeFile(t, filepath.Join(home, "config.yaml"), `
locations:
  countries:
    c-de: {name: Germany, code: DE}
  cities:
    berlin: Berlin
`)
	cfg = config.New()
	name, code := cfg.Directory().Country("c-de")
	assert.Equal(t, "Germany", name)
	assert.Equal(t, "DE", code)
	assert.Equal(t, "Berlin", cfg.Directory().City("berlin"))
}

func TestProjectOverlay(t *testing.T) {
	isolate(t)
	ctx := context.Background()
	start := t.TempDir()

	assert.Empty(t, config.ResolveProjectDir(ctx, "", start))

	project := filepath.Join(start, ".aurora")
	writeFile(t, filepath.Join(project, "config.yaml"), `
report:
  language: de
  carbon_unit: g
  days_period: 14
unknown_section:
  whatever: 1
`)
	assert.Equal(t, project, config.ResolveProjectDir(ctx, "", start))
	assert.Equal(t, project, config.ResolveProjectDir(ctx, start, "/elsewhere"))
	assert.Equal(t, project, config.ResolveProjectDir(ctx, project, "/elsewhere"))

	t.Setenv(config.EnvProjectDir, start)
	assert.Equal(t, project, config.ResolveProjectDir(ctx, "", "/elsewhere"))

	cfg := config.NewWithProjectDir(ctx, project)
	assert.Equal(t, "de", cfg.Report.Language)
	assert.Equal(t, "g", cfg.Report.CarbonUnit)
	assert.Equal(t, "table", cfg.Output.DefaultFormat)

	t.Setenv(config.EnvReportLanguage, "en")
	cfg = config.NewWithProjectDir(ctx, project)
	assert.Equal(t, "en", cfg.Report.Language, "environment beats the overlay")

	assert.Equal(t, "table", config.NewWithProjectDir(ctx, t.TempDir()).Output.DefaultFormat)
}
