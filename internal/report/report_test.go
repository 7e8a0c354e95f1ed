package report

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/aggregate"
)

func testMeta() []aggregate.MetaData {
	return []aggregate.MetaData{
		{
			CountryID:                  "c-de",
			Country:                    "Germany",
			UserCount:                  6,
			ConsumptionsCount:          4,
			RecurringConsumptionsCount: 1,
			Genders:                    aggregate.Genders{Male: 2, Female: 3, NonBinary: 0, Other: 1},
			Consumptions: aggregate.Consumptions{
				Heating:     aggregate.CategoryMeta{Count: 2, CarbonEmissions: 100, EnergyExpended: 1234.5},
				Electricity: aggregate.CategoryMeta{Count: 2, CarbonEmissions: 50, EnergyExpended: 200},
			},
		},
		{
			CountryID: "c-es",
			Country:   "Spain",
			UserCount: 1,
			Genders:   aggregate.Genders{NonBinary: 1},
		},
	}
}

func TestAggregate(t *testing.T) {
	all := Aggregate(testMeta(), nil)
	assert.Equal(t, []string{"Germany", "Spain"}, all.Countries)
	assert.Equal(t, 7, all.UserCount)
	assert.Equal(t, aggregate.Genders{Male: 2, Female: 3, NonBinary: 1, Other: 1}, all.Genders)
	assert.InDelta(t, 150.0, all.CarbonEmissions(), 1e-9)
	assert.InDelta(t, 1434.5, all.EnergyExpended(), 1e-9)
	assert.Equal(t, 2, all.Heating.Count)

	es := Aggregate(testMeta(), []string{"c-es"})
	assert.Equal(t, []string{"Spain"}, es.Countries)
	assert.Equal(t, 1, es.UserCount)
	assert.Zero(t, es.CarbonEmissions())

	none := Aggregate(testMeta(), []string{"c-xx"})
	assert.Empty(t, none.Countries)
	assert.Zero(t, none.UserCount)
}

func TestAutoReport_SingleCountryCountsExact(t *testing.T) {
	text := AutoReport(context.Background(), testMeta(), Options{
		Language:   language.English,
		CountryIDs: []string{"c-de"},
	})

	lines := strings.Split(text, "\n")
	assert.Equal(t, "AURORA report for Germany", lines[0])
	assert.Equal(t,
		"6 users took part: 3 female, 2 male, 0 non-binary and 1 with another or no stated gender.",
		lines[1])
	assert.Equal(t, "They recorded 4 consumptions, 1 of them recurring.", lines[2])
	assert.Contains(t, text, "Heating: 2 entries with 100 kg CO2 and 1,235 kWh.")
	assert.Contains(t, text, "Overall 150 kg CO2 were emitted and 1,435 kWh of energy were used.")
	assert.Contains(t, text, "driving about 1,257 km by car or charging 18,248 smartphones.")
}

func TestAutoReport_AllZero(t *testing.T) {
	text := AutoReport(context.Background(), nil, Options{})

	lines := strings.Split(text, "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "AURORA report for all countries", lines[0])
	assert.Equal(t,
		"0 users took part: 0 female, 0 male, 0 non-binary and 0 with another or no stated gender.",
		lines[1])
	assert.Equal(t, "Electricity: 0 entries with 0 kg CO2 and 0 kWh.", lines[3])
	assert.Equal(t, "Overall 0 kg CO2 were emitted and 0 kWh of energy were used.", lines[6])
}

func TestAutoReport_Variants(t *testing.T) {
	ctx := context.Background()

	t.Run("several countries", func(t *testing.T) {
		text := AutoReport(ctx, testMeta(), Options{CountryIDs: []string{"c-de", "c-es"}})
		assert.True(t, strings.HasPrefix(text, "AURORA report for Germany and Spain\n"))
		assert.Contains(t, text, "7 users took part")
	})

	t.Run("unknown selection keeps the ids", func(t *testing.T) {
		text := AutoReport(ctx, testMeta(), Options{CountryIDs: []string{"c-xx"}})
		assert.True(t, strings.HasPrefix(text, "AURORA report for c-xx\n"))
	})

	t.Run("single user", func(t *testing.T) {
		text := AutoReport(ctx, testMeta(), Options{CountryIDs: []string{"c-es"}})
		assert.Contains(t, text, "1 user took part: 0 female, 0 male, 1 non-binary")
		assert.NotContains(t, text, "driving")
	})

	t.Run("precision", func(t *testing.T) {
		text := AutoReport(ctx, testMeta(), Options{Precision: 1})
		assert.Contains(t, text, "Heating: 2 entries with 100.0 kg CO2 and 1,234.5 kWh.")
	})

	t.Run("grams are normalized", func(t *testing.T) {
		meta := testMeta()
		meta[0].Consumptions.Heating.CarbonEmissions = 150000
		meta[0].Consumptions.Electricity.CarbonEmissions = 0
		text := AutoReport(ctx, meta, Options{CarbonUnit: "g"})
		assert.Contains(t, text, "Overall 150 kg CO2")
	})

	t.Run("german", func(t *testing.T) {
		text := AutoReport(ctx, testMeta(), Options{
			Language:   language.German,
			CountryIDs: []string{"c-de", "c-es"},
			Precision:  1,
		})
		assert.True(t, strings.HasPrefix(text, "AURORA-Bericht für Germany und Spain\n"))
		assert.Contains(t, text, "7 Personen haben teilgenommen: 3 weiblich, 2 männlich, 1 nicht-binär")
		assert.Contains(t, text, "Heizung: 2 Einträge mit 100,0 kg CO2 und 1.234,5 kWh.")
	})

	t.Run("unsupported language falls back to english", func(t *testing.T) {
		text := AutoReport(ctx, nil, Options{Language: language.Japanese})
		assert.True(t, strings.HasPrefix(text, "AURORA report for all countries"))
	})
}

func TestConcatenatedCountries(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		lang  language.Tag
		want  string
	}{
		{name: "none", names: nil, lang: language.English, want: ""},
		{name: "one", names: []string{"Spain"}, lang: language.English, want: "Spain"},
		{name: "two", names: []string{"Spain", "Italy"}, lang: language.English, want: "Spain and Italy"},
		{name: "three", names: []string{"A", "B", "C"}, lang: language.English, want: "A, B and C"},
		{name: "german", names: []string{"A", "B", "C"}, lang: language.German, want: "A, B und C"},
		{name: "regional german", names: []string{"A", "B"}, lang: language.MustParse("de-AT"), want: "A und B"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConcatenatedCountries(tt.names, tt.lang))
		})
	}
}

func TestValueFormatterPercentage(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{math.NaN(), "N/A"},
		{math.Inf(1), "N/A"},
		{math.Inf(-1), "N/A"},
		{0.5, "50%"},
		{0.1234, "12.3%"},
		{1.0 / 3, "33.3%"},
		{1, "100%"},
		{0, "0%"},
		{-0.00001, "0%"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, ValueFormatterPercentage(tt.in))
		})
	}
}

func TestParseLanguage(t *testing.T) {
	tag, err := ParseLanguage("de-AT")
	require.NoError(t, err)
	assert.Equal(t, language.German, tag)

	tag, err = ParseLanguage("fr")
	require.NoError(t, err)
	assert.Equal(t, language.English, tag)

	_, err = ParseLanguage("not a tag!")
	require.ErrorIs(t, err, ErrUnsupportedLanguage)
}

func TestGenderByCountry(t *testing.T) {
	rows := GenderByCountry(testMeta())
	assert.Equal(t, []GenderRow{
		{Country: "Germany", Male: 2, Female: 3, NonBinary: 0, Other: 1},
		{Country: "Spain", NonBinary: 1},
	}, rows)
}

func TestCategoryShares(t *testing.T) {
	rows := CategoryShares(testMeta())
	require.Len(t, rows, 2)

	assert.InDelta(t, 1.0/3, rows[0].Electricity, 1e-9)
	assert.InDelta(t, 2.0/3, rows[0].Heating, 1e-9)
	assert.Zero(t, rows[0].Transportation)
	assert.True(t, math.IsNaN(rows[1].Heating))
	assert.Equal(t, "N/A", ValueFormatterPercentage(rows[1].Heating))

	data, err := json.Marshal(rows[1])
	require.NoError(t, err)
	assert.JSONEq(t, `{"country":"Spain","electricity":null,"heating":null,"transportation":null}`, string(data))
}
