package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/config"
	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/logging"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// rootFlags are the persistent flags of the root command.
type rootFlags struct {
	configPath string
	projectDir string
	envFiles   []string
}

// NewRootCmd creates the root Cobra command for the aurora CLI. It loads
// the configuration, wires up logging and registers every subcommand.
func NewRootCmd(ver string) *cobra.Command {
	var (
		flags     rootFlags
		logResult *logging.LogPathResult
	)

	cmd := &cobra.Command{
		Use:   "aurora",
		Short: "AURORA energy summary pipeline",
		Long: `aurora turns AURORA consumption exports into snapshots and derives the
dashboard views from them: per-country metadata, carbon and energy timelines
and the natural-language report.`,
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd, flags); err != nil {
				return err
			}
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "",
		"config file (default is $AURORA_HOME/config.yaml)")
	cmd.PersistentFlags().StringVar(&flags.projectDir, "project-dir", "",
		"project directory holding .aurora/config.yaml (overrides $AURORA_PROJECT_DIR)")
	cmd.PersistentFlags().StringSliceVar(&flags.envFiles, "env-file", nil,
		"dotenv files to load before reading the environment (default .env)")

	cmd.AddCommand(
		NewIngestCmd(), NewSnapshotsCmd(), NewMetadataCmd(), NewTimelineCmd(),
		NewReportCmd(), NewDownloadCmd(), NewDashboardCmd(), newCacheCmd(), newConfigCmd(),
	)
	return cmd
}

const rootCmdExample = `  # Ingest an export into the snapshot store
  aurora ingest --export summarised-export-1700000000000.json

  # Show the latest per-country metadata as JSON
  aurora metadata --output json

  # Monthly average carbon emissions per user
  aurora timeline --metric carbon --calc average

  # German report for two countries
  aurora report --country c-de --country c-es --lang de

  # Browse the countries interactively
  aurora dashboard`

// loadConfig reads .env files and the configuration, then publishes it as
// the global config. An explicit --config file must exist; otherwise the
// global file and the project overlay are optional.
func loadConfig(cmd *cobra.Command, flags rootFlags) error {
	ctx := cmd.Context()

	if err := config.LoadDotEnv(flags.envFiles...); err != nil {
		return fmt.Errorf("loading environment: %w", err)
	}

	if flags.configPath != "" {
		cfg, err := config.NewFromFile(flags.configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		config.SetGlobalConfig(cfg)
		config.SetResolvedProjectDir("")
		return nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	projectDir := config.ResolveProjectDir(ctx, flags.projectDir, cwd)
	config.SetResolvedProjectDir(projectDir)
	config.SetGlobalConfig(config.NewWithProjectDir(ctx, projectDir))
	return nil
}

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(
		NewConfigInitCmd(), NewConfigSetCmd(), NewConfigGetCmd(),
		NewConfigListCmd(), NewConfigValidateCmd(),
	)
	return cmd
}
