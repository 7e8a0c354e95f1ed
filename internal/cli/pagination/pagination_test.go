package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AURORA-H2020/AURORA-Dashboard-sub000/internal/aggregate"
)

func TestParseSort(t *testing.T) {
	tests := []struct {
		expr      string
		wantField string
		wantOrder string
		wantErr   error
	}{
		{expr: "users", wantField: "users", wantOrder: SortOrderDesc},
		{expr: "users:asc", wantField: "users", wantOrder: SortOrderAsc},
		{expr: " name : DESC ", wantField: "name", wantOrder: SortOrderDesc},
		{expr: "", wantErr: ErrEmptySortField},
		{expr: ":asc", wantErr: ErrEmptySortField},
		{expr: "a:b:c", wantErr: ErrInvalidSortFormat},
		{expr: "users:up", wantErr: ErrInvalidSortOrder},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			field, order, err := ParseSort(tt.expr, SortOrderDesc)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantField, field)
			assert.Equal(t, tt.wantOrder, order)
		})
	}
}

func TestParams_Validate(t *testing.T) {
	require.NoError(t, Params{}.Validate())
	require.NoError(t, Params{Limit: 10, Offset: 5}.Validate())
	require.ErrorIs(t, Params{Limit: -1}.Validate(), ErrInvalidLimit)
	require.ErrorIs(t, Params{Limit: MaxLimit + 1}.Validate(), ErrInvalidLimit)
	require.ErrorIs(t, Params{Offset: -1}.Validate(), ErrInvalidOffset)
}

func TestApply(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	tests := []struct {
		name string
		p    Params
		want []int
	}{
		{name: "no limit", p: Params{}, want: []int{1, 2, 3, 4, 5}},
		{name: "limit", p: Params{Limit: 2}, want: []int{1, 2}},
		{name: "offset and limit", p: Params{Offset: 3, Limit: 10}, want: []int{4, 5}},
		{name: "offset past end", p: Params{Offset: 9}, want: []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Apply(tt.p, items))
		})
	}
}

func TestSortMetaData(t *testing.T) {
	rows := []aggregate.MetaData{
		{Country: "spain", UserCount: 3},
		{Country: "Austria", UserCount: 5, Consumptions: aggregate.Consumptions{
			Heating: aggregate.CategoryMeta{CarbonEmissions: 1},
		}},
		{Country: "Germany", UserCount: 3, Consumptions: aggregate.Consumptions{
			Electricity: aggregate.CategoryMeta{CarbonEmissions: 10, EnergyExpended: 1},
		}},
	}

	names := func(rs []aggregate.MetaData) []string {
		out := make([]string, 0, len(rs))
		for _, r := range rs {
			out = append(out, r.Country)
		}
		return out
	}

	got, err := SortMetaData(rows, FieldName, SortOrderAsc)
	require.NoError(t, err)
	assert.Equal(t, []string{"Austria", "Germany", "spain"}, names(got))

	got, err = SortMetaData(rows, FieldUsers, SortOrderDesc)
	require.NoError(t, err)
	assert.Equal(t, []string{"Austria", "spain", "Germany"}, names(got), "ties keep input order")

	got, err = SortMetaData(rows, FieldCarbon, SortOrderDesc)
	require.NoError(t, err)
	assert.Equal(t, []string{"Germany", "Austria", "spain"}, names(got))

	got, err = SortMetaData(rows, FieldEnergy, SortOrderAsc)
	require.NoError(t, err)
	assert.Equal(t, "Germany", got[2].Country)

	assert.Equal(t, "spain", rows[0].Country, "input is not modified")

	_, err = SortMetaData(rows, "price", SortOrderAsc)
	require.ErrorIs(t, err, ErrInvalidSortField)

	assert.Equal(t, []string{"carbon", "consumptions", "energy", "name", "users"}, SortFields())
}
