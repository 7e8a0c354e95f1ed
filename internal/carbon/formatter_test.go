package carbon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{18248, "18,248"},
		{1234567, "1,234,567"},
		{-1234, "-1,234"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatNumber(tt.in))
		})
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		name      string
		in        float64
		precision int
		want      string
	}{
		{name: "two decimals", in: 1234.567, precision: 2, want: "1,234.57"},
		{name: "one decimal", in: 12.34, precision: 1, want: "12.3"},
		{name: "keeps trailing zero", in: 2, precision: 1, want: "2.0"},
		{name: "zero precision", in: 1234.5, precision: 0, want: "1,235"},
		{name: "negative fraction", in: -0.25, precision: 1, want: "-0.3"},
		{name: "negative precision is zero", in: 7.6, precision: -1, want: "8"},
		{name: "negative zero", in: -0.01, precision: 1, want: "0.0"},
		{name: "beyond int64", in: 1e19, precision: 0, want: "10,000,000,000,000,000,000"},
		{name: "negative beyond int64", in: -2e19, precision: 1, want: "-20,000,000,000,000,000,000.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFloat(tt.in, tt.precision))
		})
	}
}

func TestFormatLarge(t *testing.T) {
	assert.Equal(t, "999,999", FormatLarge(999_999))
	assert.Equal(t, "~1.5 million", FormatLarge(1_500_000))
	assert.Equal(t, "~1.5 billion", FormatLarge(1_500_000_000))
}

func TestFormatter_German(t *testing.T) {
	f := NewFormatter(language.German)

	assert.Equal(t, language.German, f.Tag())
	assert.Equal(t, "18.248", f.Number(18248))
	assert.Equal(t, "1.234,57", f.Float(1234.567, 2))
	assert.Equal(t, "~2,5 Millionen", f.Large(2_500_000))
	assert.Equal(t, "~1,0 Milliarden", f.Large(1_000_000_000))
	assert.Equal(t, "10.000.000.000.000.000.000", f.Float(1e19, 0))
}

func TestFormatter_DecimalSymbolFromLocale(t *testing.T) {
	tests := []struct {
		tag  language.Tag
		in   float64
		want string
	}{
		{language.Swedish, 0.5, "0,50"},
		{language.BrazilianPortuguese, 12.25, "12,25"},
		{language.Russian, 3.5, "3,50"},
		{language.BritishEnglish, 3.5, "3.50"},
	}
	for _, tt := range tests {
		t.Run(tt.tag.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, NewFormatter(tt.tag).Float(tt.in, 2))
		})
	}
}
