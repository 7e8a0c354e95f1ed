package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/logging"
)

// ResolveProjectDir returns the project .aurora directory: flagValue, then
// $AURORA_PROJECT_DIR, then startDir/.aurora when it exists. The result is
// absolute, or empty when no project directory applies.
func ResolveProjectDir(ctx context.Context, flagValue, startDir string) string {
	if flagValue != "" {
		return toAbsProjectDir(ctx, flagValue)
	}
	if envDir := os.Getenv(EnvProjectDir); envDir != "" {
		return toAbsProjectDir(ctx, envDir)
	}

	candidate := filepath.Join(startDir, baseDirName)
	if info, err := os.Stat(candidate); err == nil && info.IsDir() {
		return toAbsProjectDir(ctx, candidate)
	}
	return ""
}

// NewWithProjectDir is New with the project overlay at
// projectDir/config.yaml shallow-merged on top. A missing overlay is not an
// error; a broken one is logged and skipped.
func NewWithProjectDir(ctx context.Context, projectDir string) *Config {
	cfg := New()
	if projectDir == "" {
		return cfg
	}

	overlayPath := filepath.Join(projectDir, configFileName)
	if _, err := os.Stat(overlayPath); err != nil {
		return cfg
	}

	merged := New()
	if err := ShallowMergeYAML(merged, overlayPath); err != nil {
		logging.FromContext(ctx).Warn().Ctx(ctx).
			Str("component", "config").
			Str("operation", "merge_project_config").
			Err(err).
			Str("overlay_path", overlayPath).
			Msg("failed to merge project config, using global config")
		return cfg
	}
	// Environment overrides beat the overlay too.
	merged.ApplyEnv(os.LookupEnv)
	return merged
}

func toAbsProjectDir(ctx context.Context, dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		logging.FromContext(ctx).Warn().Ctx(ctx).
			Str("component", "config").
			Err(err).
			Str("dir", dir).
			Msg("failed to resolve absolute path for project directory")
		abs = dir
	}
	if filepath.Base(abs) == baseDirName {
		return abs
	}
	return filepath.Join(abs, baseDirName)
}

//nolint:gochecknoglobals // Set once by the root command.
var (
	resolvedProjectDir   string
	resolvedProjectDirMu sync.RWMutex
)

// SetResolvedProjectDir records the project directory chosen at startup.
func SetResolvedProjectDir(dir string) {
	resolvedProjectDirMu.Lock()
	defer resolvedProjectDirMu.Unlock()
	resolvedProjectDir = dir
}

// GetResolvedProjectDir returns the project directory chosen at startup,
// or "" outside a project.
func GetResolvedProjectDir() string {
	resolvedProjectDirMu.RLock()
	defer resolvedProjectDirMu.RUnlock()
	return resolvedProjectDir
}
