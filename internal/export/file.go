package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/logging"
)

// File name convention of the export producer: summarised-export-<epoch-ms>.json.
const (
	fileNamePrefix = "summarised-export-"
	fileNameSuffix = ".json"
	msPerSecond    = 1000
)

// ErrNotExportFileName is returned when a file name does not follow the
// export naming convention.
var ErrNotExportFileName = errors.New("not an export file name")

// FileName returns the export file name for a timestamp in epoch milliseconds.
func FileName(epochMs int64) string {
	return fileNamePrefix + strconv.FormatInt(epochMs, 10) + fileNameSuffix
}

// DateFromFileName extracts the snapshot date, in epoch seconds, from an
// export file name or path.
func DateFromFileName(name string) (int64, error) {
	base := filepath.Base(name)
	if !strings.HasPrefix(base, fileNamePrefix) || !strings.HasSuffix(base, fileNameSuffix) {
		return 0, fmt.Errorf("%w: %q", ErrNotExportFileName, base)
	}
	raw := strings.TrimSuffix(strings.TrimPrefix(base, fileNamePrefix), fileNameSuffix)
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || ms < 0 {
		return 0, fmt.Errorf("%w: %q has no valid timestamp", ErrNotExportFileName, base)
	}
	return ms / msPerSecond, nil
}

// ParseExport decodes an export blob.
func ParseExport(ctx context.Context, data []byte) (Export, error) {
	log := logging.FromContext(ctx)
	log.Debug().Ctx(ctx).
		Str("component", "export").
		Str("operation", "parse_export").
		Int("data_size_bytes", len(data)).
		Msg("parsing export")

	var exp Export
	if err := json.Unmarshal(data, &exp); err != nil {
		log.Error().Ctx(ctx).
			Str("component", "export").
			Err(err).
			Msg("failed to parse export JSON")
		return nil, fmt.Errorf("parsing export JSON: %w", err)
	}
	if exp == nil {
		exp = Export{}
	}

	log.Debug().Ctx(ctx).
		Str("component", "export").
		Int("user_count", len(exp)).
		Msg("export parsed")
	return exp, nil
}

// LoadExport reads and decodes the export file at path.
func LoadExport(ctx context.Context, path string) (Export, []byte, error) {
	log := logging.FromContext(ctx)
	log.Debug().Ctx(ctx).
		Str("component", "export").
		Str("operation", "load_export").
		Str("export_path", path).
		Msg("loading export")

	data, err := os.ReadFile(path)
	if err != nil {
		log.Error().Ctx(ctx).
			Str("component", "export").
			Err(err).
			Str("export_path", path).
			Msg("failed to read export file")
		return nil, nil, fmt.Errorf("reading export file %s: %w", path, err)
	}

	exp, err := ParseExport(ctx, data)
	if err != nil {
		return nil, nil, err
	}
	return exp, data, nil
}
