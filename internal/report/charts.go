package report

import (
	"encoding/json"
	"math"

	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/aggregate"
)

// GenderRow is one bar of the gender-by-country chart.
type GenderRow struct {
	Country   string `json:"country"`
	Male      int    `json:"male"`
	Female    int    `json:"female"`
	NonBinary int    `json:"nonBinary"`
	Other     int    `json:"other"`
}

// GenderByCountry returns one gender row per metadata row, in input order.
func GenderByCountry(meta []aggregate.MetaData) []GenderRow {
	rows := make([]GenderRow, 0, len(meta))
	for _, m := range meta {
		rows = append(rows, GenderRow{
			Country:   m.Country,
			Male:      m.Genders.Male,
			Female:    m.Genders.Female,
			NonBinary: m.Genders.NonBinary,
			Other:     m.Genders.Other,
		})
	}
	return rows
}

// CategoryShare is each category's fraction of a country's carbon total.
// Fractions are NaN when the total is zero.
type CategoryShare struct {
	Country        string  `json:"country"`
	Electricity    float64 `json:"electricity"`
	Heating        float64 `json:"heating"`
	Transportation float64 `json:"transportation"`
}

// CategoryShares computes carbon shares per country, in input order.
func CategoryShares(meta []aggregate.MetaData) []CategoryShare {
	rows := make([]CategoryShare, 0, len(meta))
	for _, m := range meta {
		c := m.Consumptions
		total := c.Electricity.CarbonEmissions + c.Heating.CarbonEmissions + c.Transportation.CarbonEmissions
		rows = append(rows, CategoryShare{
			Country:        m.Country,
			Electricity:    c.Electricity.CarbonEmissions / total,
			Heating:        c.Heating.CarbonEmissions / total,
			Transportation: c.Transportation.CarbonEmissions / total,
		})
	}
	return rows
}

// MarshalJSON writes non-finite shares as null.
func (s CategoryShare) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Country        string   `json:"country"`
		Electricity    *float64 `json:"electricity"`
		Heating        *float64 `json:"heating"`
		Transportation *float64 `json:"transportation"`
	}{
		Country:        s.Country,
		Electricity:    finite(s.Electricity),
		Heating:        finite(s.Heating),
		Transportation: finite(s.Transportation),
	})
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
