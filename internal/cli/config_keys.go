package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/config"
)

// NewConfigGetCmd creates the config get command.
func NewConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print a configuration value",
		Example: `  aurora config get store.driver
  aurora config get report`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := config.GetGlobalConfig().Get(args[0])
			if err != nil {
				return err
			}
			if _, isSection := v.(map[string]any); !isSection {
				cmd.Println(v)
				return nil
			}
			out, err := yaml.Marshal(v)
			if err != nil {
				return fmt.Errorf("encoding %s: %w", args[0], err)
			}
			cmd.Print(string(out))
			return nil
		},
	}
}

// NewConfigSetCmd creates the config set command. The value is written to
// the config file, not to the effective configuration, so environment
// overrides do not leak into the file.
func NewConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value in the config file",
		Example: `  aurora config set output.default_format json
  aurora config set store.driver postgres`,
		Args: cobra.ExactArgs(2), //nolint:mnd // key and value.
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.GetGlobalConfig().ConfigPath()

			cfg := config.Default()
			cfg.SetConfigPath(path)
			if err := cfg.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}
			if err := cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := cfg.Save(); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}
			cmd.Printf("Set %s = %s in %s\n", args[0], args[1], path)
			return nil
		},
	}
}

// NewConfigListCmd creates the config list command. Secrets are redacted.
func NewConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			values, err := config.GetGlobalConfig().List()
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(values))
			for _, key := range config.SortedKeys(values) {
				rows = append(rows, []string{key, values[key]})
			}
			return renderTable(cmd.OutOrStdout(), []string{"Key", "Value"}, rows)
		},
	}
}
