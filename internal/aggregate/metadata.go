package aggregate

import (
	"context"
	"maps"
	"slices"
	"sort"

	"golang.org/x/text/cases"

	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/logging"
	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/summary"
)

// LatestMetaData flattens the latest snapshot into one MetaData row per
// country, sorted case-insensitively by country name. ok is false when
// snaps is empty.
//
// Source counts are consumption counts summed across cities, not carbon or
// energy sums: they answer how many consumptions used a source.
func LatestMetaData(ctx context.Context, snaps []summary.Summary) ([]MetaData, bool) {
	latest, ok := Latest(snaps)
	if !ok {
		return nil, false
	}

	logger := logging.FromContext(ctx).With().
		Str("component", "aggregate").
		Str("operation", "LatestMetaData").
		Logger()

	out := make([]MetaData, 0, len(latest.Countries))
	for i := range latest.Countries {
		out = append(out, countryMetaData(&latest.Countries[i]))
	}
	SortByCountryName(out)

	logger.Debug().Ctx(ctx).
		Int64("snapshot_date", latest.Date).
		Int("snapshot_count", len(snaps)).
		Int("country_count", len(out)).
		Msg("metadata derived from latest snapshot")

	return out, true
}

// SortByCountryName sorts rows by case-folded country name, then by id.
func SortByCountryName(rows []MetaData) {
	fold := cases.Fold()
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := fold.String(rows[i].Country), fold.String(rows[j].Country)
		if a != b {
			return a < b
		}
		return rows[i].CountryID < rows[j].CountryID
	})
}

func countryMetaData(c *summary.Country) MetaData {
	md := MetaData{
		CountryID:   c.CountryID,
		Country:     c.CountryName,
		CountryCode: c.CountryCode,
	}

	sourceCounts := map[summary.Category]map[string]int{}

	for _, city := range c.Cities {
		md.UserCount += city.Users.UserCount
		md.ConsumptionsCount += city.Users.ConsumptionsCount
		md.RecurringConsumptionsCount += city.Users.RecurringConsumptionsCount
		for _, g := range city.Users.Genders {
			md.Genders.Add(g.Gender, g.Count)
		}

		for _, cat := range city.Categories {
			meta := md.Consumptions.For(cat.Category)
			if meta == nil {
				continue
			}
			meta.Count += cat.Count
			meta.CarbonEmissions += cat.CarbonEmissions
			meta.EnergyExpended += cat.EnergyExpended

			counts, ok := sourceCounts[cat.Category]
			if !ok {
				counts = map[string]int{}
				sourceCounts[cat.Category] = counts
			}
			for _, sd := range cat.SourceData {
				counts[sd.Source] += sd.Count
			}
		}
	}

	for _, cat := range summary.Categories {
		meta := md.Consumptions.For(cat)
		counts := sourceCounts[cat]
		meta.Sources = make([]SourceMeta, 0, len(counts))
		for _, source := range slices.Sorted(maps.Keys(counts)) {
			meta.Sources = append(meta.Sources, SourceMeta{
				Source:     source,
				SourceName: SourceName(source),
				Count:      counts[source],
			})
		}
	}

	return md
}
