package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/config"
)

func TestEnsureGitignore(t *testing.T) {
	t.Run("creates file in new directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), ".aurora")

		created, err := config.EnsureGitignore(dir)
		require.NoError(t, err)
		assert.True(t, created)

		data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
		require.NoError(t, err)
		assert.Equal(t, config.GitignoreContent(), string(data))
		assert.Contains(t, string(data), "snapshots/")
		assert.Contains(t, string(data), ".env")
		assert.NotContains(t, string(data), "config.yaml")
	})

	t.Run("keeps existing file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, ".gitignore")
		require.NoError(t, os.WriteFile(path, []byte("custom\n"), 0o600))

		created, err := config.EnsureGitignore(dir)
		require.NoError(t, err)
		assert.False(t, created)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "custom\n", string(data))
	})
}

func TestShallowMergeYAML(t *testing.T) {
	isolate(t)

	tests := []struct {
		name    string
		overlay string
		check   func(t *testing.T, c *config.Config)
		wantErr bool
	}{
		{
			name:    "section replaces whole section",
			overlay: "output:\n  precision: 4\n",
			check: func(t *testing.T, c *config.Config) {
				assert.Equal(t, 4, c.Output.Precision)
				assert.Empty(t, c.Output.DefaultFormat, "unset keys of a replaced section are zero")
				assert.Equal(t, "info", c.Logging.Level)
			},
		},
		{
			name:    "maps are replaced not merged",
			overlay: "locations:\n  cities:\n    lisbon: Lisbon\n",
			check: func(t *testing.T, c *config.Config) {
				assert.Equal(t, map[string]string{"lisbon": "Lisbon"}, c.Locations.Cities)
			},
		},
		{
			name:    "unknown keys ignored",
			overlay: "widgets:\n  x: 1\n",
			check: func(t *testing.T, c *config.Config) {
				assert.Equal(t, "table", c.Output.DefaultFormat)
			},
		},
		{
			name:    "empty file",
			overlay: "",
			check: func(t *testing.T, c *config.Config) {
				assert.Equal(t, 2, c.Output.Precision)
			},
		},
		{name: "invalid yaml", overlay: "output: [", wantErr: true},
		{name: "wrong section type", overlay: "output: 5\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, filepath.Join(t.TempDir(), "config.yaml"), tt.overlay)
			cfg := config.Default()
			cfg.Locations.Cities = map[string]string{"berlin": "Berlin"}

			err := config.ShallowMergeYAML(cfg, path)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}

	require.Error(t, config.ShallowMergeYAML(nil, "x.yaml"))
	require.Error(t, config.ShallowMergeYAML(config.Default(), filepath.Join(t.TempDir(), "missing.yaml")))
}
