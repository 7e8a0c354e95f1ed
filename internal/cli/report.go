package cli

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/aggregate"
	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/config"
	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/report"
)

type reportParams struct {
	countries []string
	lang      string
	precision int
	charts    bool
	output    string
}

// reportDocument is the JSON form of the report command.
type reportDocument struct {
	Language       string                 `json:"language"`
	Countries      []string               `json:"countries"`
	Text           string                 `json:"text"`
	Genders        []report.GenderRow     `json:"genders,omitempty"`
	CategoryShares []report.CategoryShare `json:"categoryShares,omitempty"`
}

// NewReportCmd creates the report command that renders the natural-language
// summary of the latest snapshot.
func NewReportCmd() *cobra.Command {
	var params reportParams

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render the natural-language report of the latest snapshot",
		Long: `Renders the report shown under the dashboard: participants, consumption
counts, per-category carbon and energy totals and an everyday equivalent of
the carbon total. Without --country every country is included.`,
		Example: `  aurora report
  aurora report --country c-de --country c-es --lang de
  aurora report --charts --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeReport(cmd, params)
		},
	}

	cmd.Flags().StringArrayVar(&params.countries, "country", nil, "country id to include (repeatable)")
	cmd.Flags().StringVar(&params.lang, "lang", "", "report language: en or de (default from report.language)")
	cmd.Flags().IntVar(&params.precision, "precision", -1, "decimals for carbon and energy (default from output.precision)")
	cmd.Flags().BoolVar(&params.charts, "charts", false, "also show the gender and category-share datasets")
	cmd.Flags().StringVar(&params.output, "output", "", "output format: table, json or ndjson (default from config)")
	return cmd
}

func executeReport(cmd *cobra.Command, params reportParams) error {
	ctx := cmd.Context()
	cfg := config.GetGlobalConfig()

	format, err := resolveFormat(params.output)
	if err != nil {
		return err
	}

	langName := params.lang
	if langName == "" {
		langName = cfg.Report.Language
	}
	lang, err := report.ParseLanguage(langName)
	if err != nil {
		return err
	}

	precision := params.precision
	if precision < 0 {
		precision = cfg.Output.Precision
	}

	meta, err := loadMetaData(ctx)
	if err != nil {
		return err
	}

	text := report.AutoReport(ctx, meta, report.Options{
		Language:   lang,
		CountryIDs: params.countries,
		CarbonUnit: cfg.Report.CarbonUnit,
		Precision:  precision,
	})

	selected := selectCountries(meta, params.countries)
	doc := reportDocument{
		Language:  lang.String(),
		Countries: params.countries,
		Text:      text,
	}
	if params.charts {
		doc.Genders = report.GenderByCountry(selected)
		doc.CategoryShares = report.CategoryShares(selected)
	}

	if format != config.FormatTable {
		return writeRecords(cmd.OutOrStdout(), format, []reportDocument{doc})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, text)
	if !params.charts {
		return nil
	}
	return renderReportCharts(cmd, doc)
}

func renderReportCharts(cmd *cobra.Command, doc reportDocument) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out)
	renderTitle(out, "Users by gender")
	genderRows := make([][]string, 0, len(doc.Genders))
	for _, g := range doc.Genders {
		genderRows = append(genderRows, []string{
			g.Country, strconv.Itoa(g.Female), strconv.Itoa(g.Male), strconv.Itoa(g.NonBinary), strconv.Itoa(g.Other),
		})
	}
	if err := renderTable(out, []string{"Country", "Female", "Male", "Non-binary", "Other"}, genderRows); err != nil {
		return err
	}

	fmt.Fprintln(out)
	renderTitle(out, "Carbon share by category")
	shareRows := make([][]string, 0, len(doc.CategoryShares))
	for _, s := range doc.CategoryShares {
		shareRows = append(shareRows, []string{
			s.Country,
			report.ValueFormatterPercentage(s.Electricity),
			report.ValueFormatterPercentage(s.Heating),
			report.ValueFormatterPercentage(s.Transportation),
		})
	}
	return renderTable(out, []string{"Country", "Electricity", "Heating", "Transportation"}, shareRows)
}

// selectCountries keeps the rows whose id is in ids; no ids keeps all rows.
func selectCountries(meta []aggregate.MetaData, ids []string) []aggregate.MetaData {
	if len(ids) == 0 {
		return meta
	}
	out := make([]aggregate.MetaData, 0, len(ids))
	for _, m := range meta {
		if slices.Contains(ids, m.CountryID) {
			out = append(out, m)
		}
	}
	return out
}
