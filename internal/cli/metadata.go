package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/aggregate"
	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/carbon"
	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/cli/pagination"
	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/config"
)

type metadataParams struct {
	output string
	sort   string
	page   pagination.Params
}

// NewMetadataCmd creates the metadata command that prints the flattened
// per-country view of the latest snapshot.
func NewMetadataCmd() *cobra.Command {
	var params metadataParams

	cmd := &cobra.Command{
		Use:   "metadata",
		Short: "Show per-country metadata of the latest snapshot",
		Long: `Flattens the latest snapshot into one row per country: users, consumption
counts, per-category carbon and energy totals and the gender breakdown.
Rows are ordered by country name unless --sort is given.`,
		Example: `  aurora metadata
  aurora metadata --sort carbon:desc --limit 5
  aurora metadata --output ndjson`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeMetadata(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.output, "output", "", "output format: table, json or ndjson (default from config)")
	cmd.Flags().StringVar(&params.sort, "sort", "",
		"sort by field[:asc|desc], fields: carbon, consumptions, energy, name, users")
	cmd.Flags().IntVar(&params.page.Limit, "limit", 0, "maximum number of countries (0 = all)")
	cmd.Flags().IntVar(&params.page.Offset, "offset", 0, "number of countries to skip")
	return cmd
}

func executeMetadata(cmd *cobra.Command, params metadataParams) error {
	format, err := resolveFormat(params.output)
	if err != nil {
		return err
	}
	if err = params.page.Validate(); err != nil {
		return err
	}

	meta, err := loadMetaData(cmd.Context())
	if err != nil {
		return err
	}

	if params.sort != "" {
		field, order, sortErr := pagination.ParseSort(params.sort, pagination.SortOrderAsc)
		if sortErr != nil {
			return sortErr
		}
		if meta, err = pagination.SortMetaData(meta, field, order); err != nil {
			return err
		}
	}
	meta = pagination.Apply(params.page, meta)

	if format != config.FormatTable {
		return writeRecords(cmd.OutOrStdout(), format, meta)
	}
	return renderMetaDataTable(cmd, meta)
}

func renderMetaDataTable(cmd *cobra.Command, meta []aggregate.MetaData) error {
	cfg := config.GetGlobalConfig()
	precision := cfg.Output.Precision

	rows := make([][]string, 0, len(meta))
	for _, m := range meta {
		c := m.Consumptions
		co2 := c.Electricity.CarbonEmissions + c.Heating.CarbonEmissions + c.Transportation.CarbonEmissions
		kwh := c.Electricity.EnergyExpended + c.Heating.EnergyExpended + c.Transportation.EnergyExpended
		rows = append(rows, []string{
			m.Country,
			m.CountryCode,
			carbon.FormatNumber(int64(m.UserCount)),
			carbon.FormatNumber(int64(m.ConsumptionsCount)),
			carbon.FormatNumber(int64(m.RecurringConsumptionsCount)),
			carbon.FormatFloat(co2, precision),
			carbon.FormatFloat(kwh, precision),
			strconv.Itoa(m.Genders.Female) + "/" + strconv.Itoa(m.Genders.Male) + "/" +
				strconv.Itoa(m.Genders.NonBinary) + "/" + strconv.Itoa(m.Genders.Other),
		})
	}
	return renderTable(cmd.OutOrStdout(), []string{
		"Country", "Code", "Users", "Consumptions", "Recurring",
		"Carbon (" + cfg.Report.CarbonUnit + ")", "Energy (kWh)", "F/M/NB/O",
	}, rows)
}
