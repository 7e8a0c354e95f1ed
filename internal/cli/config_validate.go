package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration",
		Long: `Validates the effective configuration: the config file, the project overlay
and the AURORA_* environment overrides combined.

This includes:
- Output format and precision
- Logging level and format
- Snapshot store driver and its settings
- Cache directory and TTL
- InfluxDB bucket when a URL is set
- Report language, carbon unit and days period`,
		Example: `  # Validate current configuration
  aurora config validate

  # Validate and show detailed information
  aurora config validate --verbose`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	cfg := config.GetGlobalConfig()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Printf("✅ Configuration is valid\n")

	if verbose {
		printVerboseDetails(cmd, cfg)
	}

	return nil
}

// printVerboseDetails prints detailed configuration information.
func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	cmd.Printf("  Config file: %s\n", cfg.ConfigPath())
	if dir := config.GetResolvedProjectDir(); dir != "" {
		cmd.Printf("  Project directory: %s\n", dir)
	}
	cmd.Printf("  Output format: %s\n", cfg.Output.DefaultFormat)
	cmd.Printf("  Output precision: %d\n", cfg.Output.Precision)
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	cmd.Printf("  Log file: %s\n", cfg.Logging.File)
	cmd.Printf("  Snapshot store: %s\n", cfg.Store.Driver)
	if cfg.Cache.Enabled {
		cmd.Printf("  Cache: %s (ttl %s)\n", cfg.Cache.Dir, cfg.CacheTTL())
	} else {
		cmd.Println("  Cache: disabled")
	}
	if cfg.Influx.URL != "" {
		cmd.Printf("  InfluxDB: %s bucket %s\n", cfg.Influx.URL, cfg.Influx.Bucket)
	} else {
		cmd.Println("  InfluxDB: not configured")
	}
	cmd.Printf("  Report: %s, %s, %d days\n", cfg.Report.Language, cfg.Report.CarbonUnit, cfg.Report.DaysPeriod)
	cmd.Printf("  Known countries: %d, cities: %d\n", len(cfg.Locations.Countries), len(cfg.Locations.Cities))
}
