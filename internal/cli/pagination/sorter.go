package pagination

import (
	"fmt"
	"maps"
	"slices"
	"sort"
	"strings"

	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/aggregate"
)

// Sort fields of MetaData rows.
const (
	FieldName         = "name"
	FieldUsers        = "users"
	FieldConsumptions = "consumptions"
	FieldCarbon       = "carbon"
	FieldEnergy       = "energy"
)

// metaLess compares two rows on one field in ascending order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var metaLess = map[string]func(a, b *aggregate.MetaData) bool{
	FieldName: func(a, b *aggregate.MetaData) bool {
		return strings.ToLower(a.Country) < strings.ToLower(b.Country)
	},
	FieldUsers: func(a, b *aggregate.MetaData) bool {
		return a.UserCount < b.UserCount
	},
	FieldConsumptions: func(a, b *aggregate.MetaData) bool {
		return a.ConsumptionsCount < b.ConsumptionsCount
	},
	FieldCarbon: func(a, b *aggregate.MetaData) bool {
		return carbonOf(a) < carbonOf(b)
	},
	FieldEnergy: func(a, b *aggregate.MetaData) bool {
		return energyOf(a) < energyOf(b)
	},
}

// SortFields returns the accepted sort fields in order.
func SortFields() []string {
	return slices.Sorted(maps.Keys(metaLess))
}

// SortMetaData returns a sorted copy of rows. Equal rows keep their input
// order in both directions.
func SortMetaData(rows []aggregate.MetaData, field, order string) ([]aggregate.MetaData, error) {
	less, ok := metaLess[field]
	if !ok {
		return nil, fmt.Errorf("%w: %q (valid: %s)", ErrInvalidSortField, field, strings.Join(SortFields(), ", "))
	}

	sorted := slices.Clone(rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if order == SortOrderDesc {
			return less(&sorted[j], &sorted[i])
		}
		return less(&sorted[i], &sorted[j])
	})
	return sorted, nil
}

func carbonOf(m *aggregate.MetaData) float64 {
	c := m.Consumptions
	return c.Electricity.CarbonEmissions + c.Heating.CarbonEmissions + c.Transportation.CarbonEmissions
}

func energyOf(m *aggregate.MetaData) float64 {
	c := m.Consumptions
	return c.Electricity.EnergyExpended + c.Heating.EnergyExpended + c.Transportation.EnergyExpended
}
