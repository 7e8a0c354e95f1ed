// Package report reduces per-country metadata into report text and chart
// rows: totals over a selection of countries, a localized natural-language
// report, gender breakdowns and category shares.
package report

import (
	"slices"

	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/aggregate"
	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/summary"
)

// CategoryTotals accumulates one consumption category.
type CategoryTotals struct {
	Count           int     `json:"count"`
	CarbonEmissions float64 `json:"carbonEmissions"`
	EnergyExpended  float64 `json:"energyExpended"`
}

// Totals is the reduction of a selection of countries.
type Totals struct {
	Countries                  []string          `json:"countries"`
	UserCount                  int               `json:"userCount"`
	ConsumptionsCount          int               `json:"consumptionsCount"`
	RecurringConsumptionsCount int               `json:"recurringConsumptionsCount"`
	Genders                    aggregate.Genders `json:"genders"`
	Electricity                CategoryTotals    `json:"electricity"`
	Heating                    CategoryTotals    `json:"heating"`
	Transportation             CategoryTotals    `json:"transportation"`
}

// For returns the totals of a category, or nil for unknown categories.
func (t *Totals) For(cat summary.Category) *CategoryTotals {
	switch cat {
	case summary.CategoryElectricity:
		return &t.Electricity
	case summary.CategoryHeating:
		return &t.Heating
	case summary.CategoryTransportation:
		return &t.Transportation
	case summary.CategoryUnknown:
		return nil
	default:
		return nil
	}
}

// CarbonEmissions is the carbon total over all categories.
func (t *Totals) CarbonEmissions() float64 {
	return t.Electricity.CarbonEmissions + t.Heating.CarbonEmissions + t.Transportation.CarbonEmissions
}

// EnergyExpended is the energy total over all categories.
func (t *Totals) EnergyExpended() float64 {
	return t.Electricity.EnergyExpended + t.Heating.EnergyExpended + t.Transportation.EnergyExpended
}

// Aggregate sums the rows whose CountryID is in countryIDs. An empty
// selection sums every row. Country names are collected in row order.
func Aggregate(meta []aggregate.MetaData, countryIDs []string) Totals {
	t := Totals{Countries: []string{}}
	for i := range meta {
		row := &meta[i]
		if len(countryIDs) > 0 && !slices.Contains(countryIDs, row.CountryID) {
			continue
		}

		t.Countries = append(t.Countries, row.Country)
		t.UserCount += row.UserCount
		t.ConsumptionsCount += row.ConsumptionsCount
		t.RecurringConsumptionsCount += row.RecurringConsumptionsCount
		t.Genders.Male += row.Genders.Male
		t.Genders.Female += row.Genders.Female
		t.Genders.NonBinary += row.Genders.NonBinary
		t.Genders.Other += row.Genders.Other

		for _, cat := range summary.Categories {
			src := row.Consumptions.For(cat)
			dst := t.For(cat)
			dst.Count += src.Count
			dst.CarbonEmissions += src.CarbonEmissions
			dst.EnergyExpended += src.EnergyExpended
		}
	}
	return t
}
