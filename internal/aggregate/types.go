// Package aggregate derives dashboard views from a series of snapshots:
// flattened per-country metadata of the latest snapshot and timelines for
// line charts.
//
// Every function is pure. Inputs are never modified and outputs share no
// slices or maps with them.
package aggregate

import (
	"fmt"
	"strings"

	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/summary"
)

// Metric selects which running total a timeline plots.
type Metric int

const (
	// MetricCarbon plots carbon emissions.
	MetricCarbon Metric = iota
	// MetricEnergy plots energy expended.
	MetricEnergy
)

// ParseMetric accepts "carbon"/"carbonEmissions" and "energy"/"energyExpended".
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "carbon", "carbonemissions":
		return MetricCarbon, nil
	case "energy", "energyexpended":
		return MetricEnergy, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMetric, s)
	}
}

func (m Metric) String() string {
	switch m {
	case MetricCarbon:
		return "carbon"
	case MetricEnergy:
		return "energy"
	default:
		return fmt.Sprintf("Metric(%d)", int(m))
	}
}

// CalculationMode switches between absolute totals and per-user averages.
type CalculationMode int

const (
	// CalcTotal uses absolute totals.
	CalcTotal CalculationMode = iota
	// CalcAverage divides by the number of users. Division by zero is not
	// guarded: the result is NaN or Inf and is passed on unchanged.
	CalcAverage
)

// ParseCalculationMode accepts "total"/"absolute" and "average"/"avg".
func ParseCalculationMode(s string) (CalculationMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "total", "absolute":
		return CalcTotal, nil
	case "average", "avg":
		return CalcAverage, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCalculationMode, s)
	}
}

func (c CalculationMode) String() string {
	switch c {
	case CalcTotal:
		return "total"
	case CalcAverage:
		return "average"
	default:
		return fmt.Sprintf("CalculationMode(%d)", int(c))
	}
}

// MetaData is the flattened view of one country in the latest snapshot.
type MetaData struct {
	CountryID                  string       `json:"countryID"`
	Country                    string       `json:"country"`
	CountryCode                string       `json:"countryCode"`
	UserCount                  int          `json:"userCount"`
	ConsumptionsCount          int          `json:"consumptionsCount"`
	Consumptions               Consumptions `json:"consumptions"`
	RecurringConsumptionsCount int          `json:"recurringConsumptionsCount"`
	Genders                    Genders      `json:"genders"`
}

// Consumptions holds the per-category metadata of a country.
type Consumptions struct {
	Electricity    CategoryMeta `json:"electricity"`
	Heating        CategoryMeta `json:"heating"`
	Transportation CategoryMeta `json:"transportation"`
}

// For returns the metadata of category c, or nil for unknown categories.
func (c *Consumptions) For(cat summary.Category) *CategoryMeta {
	switch cat {
	case summary.CategoryElectricity:
		return &c.Electricity
	case summary.CategoryHeating:
		return &c.Heating
	case summary.CategoryTransportation:
		return &c.Transportation
	case summary.CategoryUnknown:
		return nil
	default:
		return nil
	}
}

// CategoryMeta summarises one category of a country.
type CategoryMeta struct {
	Count           int          `json:"count"`
	CarbonEmissions float64      `json:"carbonEmissions"`
	EnergyExpended  float64      `json:"energyExpended"`
	Sources         []SourceMeta `json:"sources"`
}

// SourceMeta counts the consumptions that used one source.
type SourceMeta struct {
	Source     string `json:"source"`
	SourceName string `json:"sourceName"`
	Count      int    `json:"count"`
}

// Genders is the gender breakdown of a country's users.
type Genders struct {
	Male      int `json:"male"`
	Female    int `json:"female"`
	NonBinary int `json:"nonBinary"`
	Other     int `json:"other"`
}

// Add records count users of gender g. Unknown and unlisted genders are
// folded into Other.
func (g *Genders) Add(gender string, count int) {
	switch gender {
	case "male":
		g.Male += count
	case "female":
		g.Female += count
	case "nonBinary":
		g.NonBinary += count
	default:
		g.Other += count
	}
}

// Total returns the number of users across all genders.
func (g Genders) Total() int {
	return g.Male + g.Female + g.NonBinary + g.Other
}
