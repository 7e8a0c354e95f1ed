package aggregate

import (
	"context"
	"time"

	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/logging"
	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/summary"
)

func metricValue(m Metric, carbon, energy float64) float64 {
	if m == MetricEnergy {
		return energy
	}
	return carbon
}

// LatestTemporalData builds a monthly timeline from the temporal breakdown
// of the latest snapshot: one row per month, one column per country. In
// average mode each city's value is divided by that city's user count
// before it is added to its country. ok is false when snaps is empty.
//
// Every row carries a column for every country of the snapshot, zero when
// the country has no data in that month.
func LatestTemporalData(
	ctx context.Context,
	snaps []summary.Summary,
	metric Metric,
	calc CalculationMode,
) ([]TimelineRow, bool) {
	latest, ok := Latest(snaps)
	if !ok {
		return nil, false
	}

	logger := logging.FromContext(ctx).With().
		Str("component", "aggregate").
		Str("operation", "LatestTemporalData").
		Logger()

	buckets := map[time.Time]*TimelineRow{}
	var order []time.Time
	bucket := func(t time.Time) *TimelineRow {
		if row, found := buckets[t]; found {
			return row
		}
		row := NewTimelineRow(t.Format(MonthLabelLayout), t)
		buckets[t] = &row
		order = append(order, t)
		return &row
	}

	for _, country := range latest.Countries {
		for _, city := range country.Cities {
			users := float64(city.Users.UserCount)
			for _, cat := range city.Categories {
				for _, year := range cat.Temporal {
					for _, month := range year.Months {
						v := metricValue(metric, month.CarbonEmissions, month.EnergyExpended)
						if calc == CalcAverage {
							v /= users
						}
						t := time.Date(year.Year, time.Month(month.Month), 1, 0, 0, 0, 0, time.UTC)
						bucket(t).Values[CountryColumn(country.CountryName)] += v
					}
				}
			}
		}
	}

	rows := make([]TimelineRow, 0, len(order))
	for _, t := range order {
		row := buckets[t]
		for _, country := range latest.Countries {
			if _, found := row.Values[CountryColumn(country.CountryName)]; !found {
				row.Values[CountryColumn(country.CountryName)] = 0
			}
		}
		rows = append(rows, *row)
	}
	sortRows(rows)

	logger.Debug().Ctx(ctx).
		Int64("snapshot_date", latest.Date).
		Str("metric", metric.String()).
		Str("calculation_mode", calc.String()).
		Int("row_count", len(rows)).
		Msg("temporal timeline built")

	return rows, true
}

// TransformData builds a timeline with one row per snapshot, labelled with
// the snapshot day, and one column per country holding the sum of its
// category totals. In average mode the sum is divided by the country's
// total user count. Rows are sorted by snapshot date.
func TransformData(
	ctx context.Context,
	snaps []summary.Summary,
	metric Metric,
	calc CalculationMode,
) []TimelineRow {
	logger := logging.FromContext(ctx).With().
		Str("component", "aggregate").
		Str("operation", "TransformData").
		Logger()

	rows := make([]TimelineRow, 0, len(snaps))
	for _, snap := range snaps {
		t := time.Unix(snap.Date, 0).UTC()
		row := NewTimelineRow(t.Format(DayLabelLayout), t)

		for i := range snap.Countries {
			country := &snap.Countries[i]
			total := 0.0
			for _, city := range country.Cities {
				for _, cat := range city.Categories {
					total += metricValue(metric, cat.CarbonEmissions, cat.EnergyExpended)
				}
			}
			if calc == CalcAverage {
				total /= float64(country.UserCount())
			}
			row.Values[CountryColumn(country.CountryName)] += total
		}
		rows = append(rows, row)
	}
	sortRows(rows)

	logger.Debug().Ctx(ctx).
		Int("snapshot_count", len(snaps)).
		Str("metric", metric.String()).
		Str("calculation_mode", calc.String()).
		Msg("snapshot timeline built")

	return rows
}
