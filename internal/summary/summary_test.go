package summary

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleGlobalSummary() GlobalSummary {
	return GlobalSummary{
		GeneratedAt: 1672617600,
		Snapshots: []Summary{
			{
				Date:       1672617600,
				DaysPeriod: 30,
				Countries: []Country{
					{
						CountryID:   "c-de",
						CountryName: "Germany",
						CountryCode: "DE",
						Cities: []City{
							{
								CityID:   "berlin",
								CityName: "Berlin",
								Users: Users{
									UserCount:                  2,
									ConsumptionsCount:          3,
									RecurringConsumptionsCount: 1,
									Genders:                    []GenderCount{{Gender: "female", Count: 2}},
								},
								Categories: []CategoryData{
									{
										Category:        CategoryHeating,
										Count:           3,
										CarbonEmissions: 12.345678901234,
										EnergyExpended:  0.1 + 0.2,
										SourceData: []SourceData{
											{Source: "naturalGas", Count: 3, CarbonEmissions: 12.345678901234, EnergyExpended: 0.1 + 0.2, Value: 7},
										},
										Temporal: []TemporalYear{
											{Year: 2023, Months: []TemporalMonth{{Month: 1, Count: 3, CarbonEmissions: 12.345678901234}}},
										},
									},
								},
							},
						},
					},
				},
			},
		},
	}
}

func TestCategory_ParseAndString(t *testing.T) {
	tests := []struct {
		in    string
		want  Category
		known bool
	}{
		{in: "electricity", want: CategoryElectricity, known: true},
		{in: "heating", want: CategoryHeating, known: true},
		{in: "transportation", want: CategoryTransportation, known: true},
		{in: "", want: CategoryUnknown, known: false},
		{in: "Heating", want: CategoryUnknown, known: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseCategory(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.known, got.Known())
			if tt.known {
				assert.Equal(t, tt.in, got.String())
			}
		})
	}
}

func TestCategory_JSON(t *testing.T) {
	data, err := json.Marshal(CategoryTransportation)
	require.NoError(t, err)
	assert.JSONEq(t, `"transportation"`, string(data))

	var c Category
	require.NoError(t, json.Unmarshal([]byte(`"solar"`), &c))
	assert.Equal(t, CategoryUnknown, c)

	require.Error(t, json.Unmarshal([]byte(`42`), &c))
}

func TestSaveAndLoadJSONFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "global.json")
	want := sampleGlobalSummary()

	require.NoError(t, SaveJSONFile(path, want))

	got, err := LoadJSONFile[GlobalSummary](path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestWriteJSON_RoundTrip(t *testing.T) {
	want := sampleGlobalSummary()

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, want))

	var got GlobalSummary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, want, got)
}

func TestJSONFile_Errors(t *testing.T) {
	require.ErrorIs(t, SaveJSONFile("", 1), ErrEmptyPath)

	_, err := LoadJSONFile[Summary]("")
	require.ErrorIs(t, err, ErrEmptyPath)

	_, err = LoadJSONFile[Summary](filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
	_, err = LoadJSONFile[Summary](bad)
	require.Error(t, err)
}

func TestCityCategoryAndCountryUserCount(t *testing.T) {
	gs := sampleGlobalSummary()
	country := gs.Snapshots[0].Countries[0]
	assert.Equal(t, 2, country.UserCount())

	city := country.Cities[0]
	data, ok := city.Category(CategoryHeating)
	require.True(t, ok)
	assert.Equal(t, 3, data.Count)

	_, ok = city.Category(CategoryElectricity)
	assert.False(t, ok)
}
