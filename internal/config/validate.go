package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/cache"
	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/carbon"
	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/logging"
	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/report"
	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/snapshot"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Output formats.
const (
	FormatTable  = "table"
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
)

// OutputFormats lists the accepted output.default_format values.
//
//nolint:gochecknoglobals // Read-only list.
var OutputFormats = []string{FormatTable, FormatJSON, FormatNDJSON}

const maxPrecision = 6

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if !slices.Contains(OutputFormats, c.Output.DefaultFormat) {
		add("output.default_format must be one of %v, got %q", OutputFormats, c.Output.DefaultFormat)
	}
	if c.Output.Precision < 0 || c.Output.Precision > maxPrecision {
		add("output.precision must be between 0 and %d, got %d", maxPrecision, c.Output.Precision)
	}

	if _, err := zerolog.ParseLevel(strings.ToLower(c.Logging.Level)); err != nil {
		add("logging.level %q: %v", c.Logging.Level, err)
	}
	switch c.Logging.Format {
	case logging.FormatJSON, logging.FormatConsole, logging.FormatText:
	default:
		add("logging.format must be json, console or text, got %q", c.Logging.Format)
	}

	switch c.Store.Driver {
	case snapshot.DriverDir:
		if c.Store.Dir == "" {
			add("store.dir is required for the %s driver", snapshot.DriverDir)
		}
	case snapshot.DriverPostgres:
		if c.Store.PostgresDSN == "" {
			add("store.postgres_dsn is required for the %s driver", snapshot.DriverPostgres)
		}
	default:
		add("store.driver must be %s or %s, got %q", snapshot.DriverDir, snapshot.DriverPostgres, c.Store.Driver)
	}

	if c.Cache.Enabled {
		if c.Cache.Dir == "" {
			add("cache.dir is required when the cache is enabled")
		}
		if err := cache.ValidateTTL(c.CacheTTL()); err != nil {
			add("cache.ttl_seconds: %v", err)
		}
	}

	if c.Influx.URL != "" && c.Influx.Bucket == "" {
		add("influx.bucket is required when influx.url is set")
	}

	if _, err := report.ParseLanguage(c.Report.Language); err != nil {
		add("report.language: %v", err)
	}
	if !carbon.IsRecognizedUnit(c.Report.CarbonUnit) {
		add("report.carbon_unit %q is not one of %s", c.Report.CarbonUnit, strings.Join(carbon.Units(), ", "))
	}
	if c.Report.DaysPeriod <= 0 {
		add("report.days_period must be positive, got %d", c.Report.DaysPeriod)
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}
