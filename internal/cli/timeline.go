package cli

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/aggregate"
	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/carbon"
	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/config"
	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/influx"
	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/logging"
)

// ErrUnknownSeries is returned for a --series value other than temporal or snapshot.
var ErrUnknownSeries = errors.New("unknown series")

type timelineParams struct {
	metric string
	calc   string
	series string
	output string
	influx bool
}

// NewTimelineCmd creates the timeline command that prints line-chart data.
func NewTimelineCmd() *cobra.Command {
	var params timelineParams

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Show carbon or energy timelines per country",
		Long: `Builds a timeline with one row per bucket and one column per country.

The temporal series buckets the latest snapshot's records by month. The
snapshot series has one row per stored snapshot holding each country's
running total. In average mode values are divided by the user count;
countries without users show N/A.`,
		Example: `  # Monthly carbon totals of the latest snapshot
  aurora timeline

  # Average energy per user across snapshots, as JSON
  aurora timeline --metric energy --calc average --series snapshot --output json

  # Also write the rows to InfluxDB
  aurora timeline --influx`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeTimeline(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.metric, "metric", "carbon", "metric: carbon or energy")
	cmd.Flags().StringVar(&params.calc, "calc", "total", "calculation mode: total or average")
	cmd.Flags().StringVar(&params.series, "series", influx.SeriesTemporal, "series: temporal or snapshot")
	cmd.Flags().StringVar(&params.output, "output", "", "output format: table, json or ndjson (default from config)")
	cmd.Flags().BoolVar(&params.influx, "influx", false, "write the rows to the configured InfluxDB bucket")
	return cmd
}

func executeTimeline(cmd *cobra.Command, params timelineParams) error {
	ctx := cmd.Context()

	format, err := resolveFormat(params.output)
	if err != nil {
		return err
	}
	metric, err := aggregate.ParseMetric(params.metric)
	if err != nil {
		return err
	}
	calc, err := aggregate.ParseCalculationMode(params.calc)
	if err != nil {
		return err
	}
	series := strings.ToLower(strings.TrimSpace(params.series))
	if series != influx.SeriesTemporal && series != influx.SeriesSnapshot {
		return fmt.Errorf("%w: %q (valid: %s, %s)", ErrUnknownSeries, params.series,
			influx.SeriesTemporal, influx.SeriesSnapshot)
	}

	snaps, err := loadSnapshots(ctx)
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		return ErrNoSnapshots
	}

	var rows []aggregate.TimelineRow
	if series == influx.SeriesTemporal {
		rows, _ = aggregate.LatestTemporalData(ctx, snaps, metric, calc)
	} else {
		rows = aggregate.TransformData(ctx, snaps, metric, calc)
	}

	if params.influx {
		if err = writeTimelineToInflux(cmd, rows, influx.Series{Metric: metric, Calc: calc, Kind: series}); err != nil {
			return err
		}
	}

	if format != config.FormatTable {
		return writeRecords(cmd.OutOrStdout(), format, rows)
	}
	return renderTimelineTable(cmd, rows)
}

func writeTimelineToInflux(cmd *cobra.Command, rows []aggregate.TimelineRow, series influx.Series) error {
	ctx := cmd.Context()
	cfg := config.GetGlobalConfig()
	if cfg.Influx.URL == "" {
		return errors.New("influx.url is not configured (set it or AURORA_INFLUX_URL)")
	}

	sink, err := influx.NewSink(ctx, cfg.InfluxOptions())
	if err != nil {
		return fmt.Errorf("connecting to InfluxDB: %w", err)
	}
	defer sink.Close()

	written, err := sink.Write(ctx, rows, series)
	if err != nil {
		return fmt.Errorf("writing timeline to InfluxDB: %w", err)
	}
	logging.FromContext(ctx).Info().Ctx(ctx).
		Str("component", "cli").
		Str("operation", "timeline_influx").
		Int("points", written).
		Str("bucket", cfg.Influx.Bucket).
		Msg("timeline written to InfluxDB")
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d points to InfluxDB bucket %s\n", written, cfg.Influx.Bucket)
	return nil
}

func renderTimelineTable(cmd *cobra.Command, rows []aggregate.TimelineRow) error {
	if len(rows) == 0 {
		cmd.Println("No timeline data.")
		return nil
	}
	precision := config.GetGlobalConfig().Output.Precision

	columns := map[string]struct{}{}
	for _, row := range rows {
		for name := range row.Values {
			columns[name] = struct{}{}
		}
	}
	countries := slices.Sorted(maps.Keys(columns))

	table := make([][]string, 0, len(rows))
	for _, row := range rows {
		line := make([]string, 0, len(countries)+1)
		line = append(line, row.Date)
		for _, name := range countries {
			line = append(line, formatCell(row.Values[name], precision))
		}
		table = append(table, line)
	}
	return renderTable(cmd.OutOrStdout(), append([]string{"Date"}, countries...), table)
}

// formatCell formats a timeline value; NaN and infinities show as N/A.
func formatCell(v float64, precision int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "N/A"
	}
	return carbon.FormatFloat(v, precision)
}
