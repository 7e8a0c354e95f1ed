package aggregate

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// sourceNames holds display names that cannot be derived from the key.
//
//nolint:gochecknoglobals // Read-only lookup table.
var sourceNames = map[string]string{
	"default":           "Grid (default mix)",
	"liquifiedPetroGas": "LPG",
	"lpg":               "LPG",
	"eBike":             "E-Bike",
	"eScooter":          "E-Scooter",
	"districtHeating":   "District Heating",
	"heatPump":          "Heat Pump",
}

// SourceName returns the display name of a source key. Keys without an
// explicit name are split at camel-case boundaries and title-cased, so
// "electricCar" becomes "Electric Car".
func SourceName(source string) string {
	if name, ok := sourceNames[source]; ok {
		return name
	}
	if source == "" {
		return ""
	}

	var b strings.Builder
	prevLower := false
	for _, r := range source {
		switch {
		case r == '_' || r == '-':
			b.WriteRune(' ')
			prevLower = false
			continue
		case unicode.IsUpper(r) && prevLower:
			b.WriteRune(' ')
		}
		b.WriteRune(r)
		prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
	}
	return cases.Title(language.English, cases.NoLower).String(b.String())
}
