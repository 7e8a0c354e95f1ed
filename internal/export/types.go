// Package export reads the raw per-user export produced by the backend and
// folds it into a summary.Summary snapshot.
package export

import "github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/summary"

// Export maps opaque user ids to their exported record.
type Export map[string]SingleUser

// SingleUser is one user of the export.
type SingleUser struct {
	Country      string                       `json:"country,omitempty"`
	City         string                       `json:"city,omitempty"`
	Gender       string                       `json:"gender,omitempty"`
	Consumptions map[string]SingleConsumption `json:"consumptions,omitempty"`
}

// SingleConsumption is one consumption record of a user.
type SingleConsumption struct {
	Category        summary.Category `json:"category"`
	Value           float64          `json:"value"`
	CarbonEmissions *float64         `json:"carbonEmissions,omitempty"`
	EnergyExpended  *float64         `json:"energyExpended,omitempty"`

	// StartDate and CreatedAt are epoch seconds. StartDate wins for
	// monthly bucketing.
	StartDate *int64 `json:"startDate,omitempty"`
	CreatedAt *int64 `json:"createdAt,omitempty"`

	GeneratedByRecurringConsumptionID string `json:"generatedByRecurringConsumptionId,omitempty"`

	Electricity    *ElectricityDetails    `json:"electricity,omitempty"`
	Heating        *HeatingDetails        `json:"heating,omitempty"`
	Transportation *TransportationDetails `json:"transportation,omitempty"`
}

// ElectricityDetails carries the electricity-specific fields.
type ElectricityDetails struct {
	ElectricitySource string `json:"electricitySource,omitempty"`
}

// HeatingDetails carries the heating-specific fields.
type HeatingDetails struct {
	HeatingFuel string `json:"heatingFuel,omitempty"`
}

// TransportationDetails carries the transportation-specific fields.
type TransportationDetails struct {
	TransportationType string `json:"transportationType,omitempty"`
}

// Source returns the category-specific source of the record, or "" when the
// record has none.
func (c SingleConsumption) Source() string {
	switch c.Category {
	case summary.CategoryElectricity:
		if c.Electricity != nil {
			return c.Electricity.ElectricitySource
		}
	case summary.CategoryHeating:
		if c.Heating != nil {
			return c.Heating.HeatingFuel
		}
	case summary.CategoryTransportation:
		if c.Transportation != nil {
			return c.Transportation.TransportationType
		}
	case summary.CategoryUnknown:
	}
	return ""
}

// Carbon returns the carbon emissions of the record, 0 when absent.
func (c SingleConsumption) Carbon() float64 {
	if c.CarbonEmissions == nil {
		return 0
	}
	return *c.CarbonEmissions
}

// Energy returns the energy expended by the record, 0 when absent.
func (c SingleConsumption) Energy() float64 {
	if c.EnergyExpended == nil {
		return 0
	}
	return *c.EnergyExpended
}

// BucketDate returns the epoch seconds used for monthly bucketing.
func (c SingleConsumption) BucketDate() (int64, bool) {
	if c.StartDate != nil {
		return *c.StartDate, true
	}
	if c.CreatedAt != nil {
		return *c.CreatedAt, true
	}
	return 0, false
}

// Recurring reports whether the record was generated by a recurring entry.
func (c SingleConsumption) Recurring() bool {
	return c.GeneratedByRecurringConsumptionID != ""
}
