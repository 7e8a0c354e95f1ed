package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/config"
	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/report"
	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/tui"
)

// NewDashboardCmd creates the dashboard command that opens the interactive
// country browser.
func NewDashboardCmd() *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Browse the latest snapshot interactively",
		Long: `Opens a terminal dashboard with one row per country of the latest snapshot.

Keys: enter shows the country report, esc returns, s cycles the sort order
(users, carbon, name), / filters by name, q quits.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal(cmd.OutOrStdout()) {
				return errors.New("the dashboard needs an interactive terminal, use 'aurora metadata' instead")
			}

			cfg := config.GetGlobalConfig()
			if lang == "" {
				lang = cfg.Report.Language
			}
			tag, err := report.ParseLanguage(lang)
			if err != nil {
				return err
			}

			return tui.Run(cmd.Context(), loadMetaData, tui.Options{
				Language:   tag,
				CarbonUnit: cfg.Report.CarbonUnit,
				Precision:  cfg.Output.Precision,
			})
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "", "report language: en or de (default from report.language)")
	return cmd
}
