package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override the config file.
const (
	EnvHome           = "AURORA_HOME"
	EnvProjectDir     = "AURORA_PROJECT_DIR"
	EnvLogLevel       = "AURORA_LOG_LEVEL"
	EnvLogFormat      = "AURORA_LOG_FORMAT"
	EnvStoreDriver    = "AURORA_STORE_DRIVER"
	EnvStoreDir       = "AURORA_STORE_DIR"
	EnvPostgresDSN    = "AURORA_POSTGRES_DSN"
	EnvInfluxURL      = "AURORA_INFLUX_URL"
	EnvInfluxToken    = "AURORA_INFLUX_TOKEN"
	EnvReportLanguage = "AURORA_REPORT_LANGUAGE"
)

// LoadDotEnv loads KEY=VALUE pairs from the given files, .env when none
// are given, into the process environment. Variables that are already set
// win. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv applies the AURORA_* overrides found through lookup. Empty
// values are ignored.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	str(EnvLogLevel, &c.Logging.Level)
	str(EnvLogFormat, &c.Logging.Format)
	str(EnvStoreDriver, &c.Store.Driver)
	str(EnvStoreDir, &c.Store.Dir)
	str(EnvPostgresDSN, &c.Store.PostgresDSN)
	str(EnvInfluxURL, &c.Influx.URL)
	str(EnvInfluxToken, &c.Influx.Token)
	str(EnvReportLanguage, &c.Report.Language)
}
