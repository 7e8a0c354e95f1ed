package carbon

import (
	"maps"
	"math"
	"slices"
	"strings"
)

// kgPerUnit maps the lower-cased unit names found in exports and config
// files to their weight in kilograms. The empty unit is kg.
//
//nolint:gochecknoglobals // Read-only lookup table.
var kgPerUnit = map[string]float64{
	"":       KgToKg,
	"g":      GramsToKg,
	"gco2e":  GramsToKg,
	"kg":     KgToKg,
	"kgco2e": KgToKg,
	"t":      TonsToKg,
	"tco2e":  TonsToKg,
	"lb":     PoundsToKg,
	"lbco2e": PoundsToKg,
}

// NormalizeToKg returns value, given in unit, in kilograms. Units are
// matched case-insensitively.
func NormalizeToKg(value float64, unit string) (float64, error) {
	switch {
	case math.IsNaN(value), math.IsInf(value, 0):
		return 0, ErrCalculationOverflow
	case value < 0:
		return 0, ErrNegativeValue
	}

	factor, ok := kgPerUnit[strings.ToLower(strings.TrimSpace(unit))]
	if !ok {
		return 0, ErrInvalidUnit
	}
	kg := value * factor
	if math.IsInf(kg, 0) {
		return 0, ErrCalculationOverflow
	}
	return kg, nil
}

// IsRecognizedUnit reports whether NormalizeToKg accepts unit.
func IsRecognizedUnit(unit string) bool {
	_, ok := kgPerUnit[strings.ToLower(strings.TrimSpace(unit))]
	return ok
}

// Units lists the accepted unit names, sorted, without the empty unit.
func Units() []string {
	units := slices.Sorted(maps.Keys(kgPerUnit))
	return slices.DeleteFunc(units, func(u string) bool { return u == "" })
}
