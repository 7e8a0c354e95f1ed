package carbon

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders numbers with the grouping and decimal symbols of one
// locale.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
}

// NewFormatter returns a Formatter for tag.
func NewFormatter(tag language.Tag) *Formatter {
	return &Formatter{
		tag:     tag,
		printer: message.NewPrinter(tag),
	}
}

//nolint:gochecknoglobals // Default English formatter backs the package-level helpers.
var english = NewFormatter(language.English)

// FormatNumber formats an integer with English thousand separators.
// Example: FormatNumber(18248) returns "18,248".
func FormatNumber(n int64) string { return english.Number(n) }

// FormatFloat formats f rounded to precision with English separators.
// Example: FormatFloat(1234.567, 2) returns "1,234.57".
func FormatFloat(f float64, precision int) string { return english.Float(f, precision) }

// FormatLarge abbreviates millions and billions in English.
// Example: FormatLarge(1500000000) returns "~1.5 billion".
func FormatLarge(f float64) string { return english.Large(f) }

// Tag returns the locale of the formatter.
func (f *Formatter) Tag() language.Tag {
	return f.tag
}

// Number formats n with the locale's thousand separators.
func (f *Formatter) Number(n int64) string {
	return f.printer.Sprintf("%d", n)
}

// Float formats v rounded half away from zero to precision decimals. Zero
// precision yields an integer. Trailing zeros are kept so columns line up.
func (f *Formatter) Float(v float64, precision int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	precision = max(precision, 0)

	const base = 10
	multiplier := math.Pow(base, float64(precision))
	if rounded := math.Round(v*multiplier) / multiplier; !math.IsInf(rounded, 0) && !math.IsNaN(rounded) {
		v = rounded
	}
	if v == 0 {
		v = 0 // drops the sign of -0
	}
	return f.printer.Sprint(number.Decimal(v, number.Scale(precision)))
}

// Large abbreviates values of a million and above as "~X.X million" or
// "~X.X billion" in the formatter's language. Smaller values are rounded
// to an integer.
func (f *Formatter) Large(v float64) string {
	million, billion := "million", "billion"
	if base, _ := f.tag.Base(); base.String() == "de" {
		million, billion = "Millionen", "Milliarden"
	}

	switch {
	case v >= BillionThreshold:
		return "~" + f.Float(v/BillionThreshold, 1) + " " + billion
	case v >= LargeNumberThreshold:
		return "~" + f.Float(v/LargeNumberThreshold, 1) + " " + million
	default:
		return f.Float(v, 0)
	}
}
