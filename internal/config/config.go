// Package config loads the aurora configuration: ~/.aurora/config.yaml,
// an optional project overlay, a .env file and AURORA_* environment
// overrides, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/cache"
	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/export"
	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/influx"
	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/snapshot"
)

// Directory and file names below the base directory.
const (
	baseDirName    = ".aurora"
	configFileName = "config.yaml"
	logsDirName    = "logs"
	logFileName    = "aurora.log"
	snapshotsDir   = "snapshots"
	cacheDirName   = "cache"
)

// Config is the full aurora configuration.
type Config struct {
	Output    OutputConfig    `yaml:"output"`
	Logging   LoggingConfig   `yaml:"logging"`
	Store     StoreConfig     `yaml:"store"`
	Cache     CacheConfig     `yaml:"cache"`
	Influx    InfluxConfig    `yaml:"influx"`
	Report    ReportConfig    `yaml:"report"`
	Locations LocationsConfig `yaml:"locations,omitempty"`

	configPath string
}

// OutputConfig controls command output.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	Precision     int    `yaml:"precision"`
}

// LoggingConfig controls the zerolog logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// StoreConfig selects the snapshot store.
type StoreConfig struct {
	Driver      string `yaml:"driver"`
	Dir         string `yaml:"dir"`
	PostgresDSN string `yaml:"postgres_dsn"`
}

// CacheConfig controls the ingest cache.
type CacheConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Dir        string `yaml:"dir"`
	TTLSeconds int    `yaml:"ttl_seconds"`
}

// InfluxConfig is the InfluxDB v2 timeline sink. An empty URL disables it.
type InfluxConfig struct {
	URL    string `yaml:"url"`
	Org    string `yaml:"org"`
	Bucket string `yaml:"bucket"`
	Token  string `yaml:"token"`
}

// ReportConfig holds report and ingestion defaults.
type ReportConfig struct {
	Language   string `yaml:"language"`
	CarbonUnit string `yaml:"carbon_unit"`
	DaysPeriod int    `yaml:"days_period"`
}

// LocationsConfig names the country and city ids found in exports.
type LocationsConfig struct {
	Countries map[string]export.CountryInfo `yaml:"countries,omitempty"`
	Cities    map[string]string             `yaml:"cities,omitempty"`
}

// BaseDir returns $AURORA_HOME, or ~/.aurora.
func BaseDir() (string, error) {
	if home := os.Getenv("AURORA_HOME"); home != "" {
		return home, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, baseDirName), nil
}

func baseDirOrTemp() string {
	dir, err := BaseDir()
	if err != nil {
		return filepath.Join(os.TempDir(), baseDirName)
	}
	return dir
}

// Default returns the built-in configuration without reading any file or
// environment variable.
func Default() *Config {
	base := baseDirOrTemp()
	return &Config{
		Output: OutputConfig{DefaultFormat: "table", Precision: 2},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			File:   filepath.Join(base, logsDirName, logFileName),
		},
		Store: StoreConfig{
			Driver: snapshot.DriverDir,
			Dir:    filepath.Join(base, snapshotsDir),
		},
		Cache: CacheConfig{
			Enabled:    true,
			Dir:        filepath.Join(base, cacheDirName),
			TTLSeconds: int(cache.DefaultTTL / time.Second),
		},
		Influx: InfluxConfig{Bucket: "aurora"},
		Report: ReportConfig{
			Language:   "en",
			CarbonUnit: "kg",
			DaysPeriod: export.DefaultDaysPeriod,
		},
		configPath: filepath.Join(base, configFileName),
	}
}

// New returns the defaults overlaid with the global config file, if one
// exists, and the environment overrides. A malformed file is reported on
// stderr and ignored.
func New() *Config {
	cfg := Default()
	if err := cfg.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: ignoring config file %s: %v\n", cfg.configPath, err)
	}
	cfg.ApplyEnv(os.LookupEnv)
	return cfg
}

// NewFromFile is New with an explicit config file. Unlike New, a missing
// or malformed file is an error.
func NewFromFile(path string) (*Config, error) {
	cfg := Default()
	cfg.configPath = path
	if err := cfg.Load(); err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.LookupEnv)
	return cfg, nil
}

// ConfigPath returns the file Load reads and Save writes.
func (c *Config) ConfigPath() string { return c.configPath }

// SetConfigPath changes the file Load reads and Save writes.
func (c *Config) SetConfigPath(path string) { c.configPath = path }

// Load decodes the config file onto c. Sections absent from the file keep
// their current values.
func (c *Config) Load() error {
	data, err := os.ReadFile(c.configPath)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", c.configPath, err)
	}
	return nil
}

// Save writes c to its config path through a temporary file.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.New("config path is not set")
	}
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	tmp := c.configPath + ".tmp"
	if err = os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	if err = os.Rename(tmp, c.configPath); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("renaming config: %w", err)
	}
	return nil
}

// StoreOptions converts the store section for snapshot.Open.
func (c *Config) StoreOptions() snapshot.Options {
	return snapshot.Options{
		Driver:      c.Store.Driver,
		Dir:         c.Store.Dir,
		PostgresDSN: c.Store.PostgresDSN,
	}
}

// InfluxOptions converts the influx section for influx.NewSink.
func (c *Config) InfluxOptions() influx.Options {
	return influx.Options{
		URL:    c.Influx.URL,
		Token:  c.Influx.Token,
		Org:    c.Influx.Org,
		Bucket: c.Influx.Bucket,
	}
}

// CacheTTL returns the cache TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

// Directory builds the location directory used during ingestion.
func (c *Config) Directory() *export.Directory {
	return export.NewDirectory(c.Locations.Countries, c.Locations.Cities)
}
