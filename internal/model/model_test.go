package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExperienceColumns(t *testing.T) {
	tests := []struct {
		name    string
		in      []string
		want    []ExperienceColumn
		wantErr error
	}{
		{
			name: "client names",
			in:   []string{"experienceName", "price"},
			want: []ExperienceColumn{ColumnExperienceName, ColumnPrice},
		},
		{
			name: "snake case and duplicates",
			in:   []string{"company", " experience_id ", "company"},
			want: []ExperienceColumn{ColumnCompany, ColumnExperienceID},
		},
		{name: "empty", in: nil, wantErr: ErrNoColumns},
		{name: "injection", in: []string{"price", "1; DROP TABLE demotable"}, wantErr: ErrInvalidColumn},
		{name: "other table column", in: []string{"attraction_id"}, wantErr: ErrInvalidColumn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseExperienceColumns(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePriceComparison(t *testing.T) {
	cmp, err := ParsePriceComparison(" Less ")
	require.NoError(t, err)
	assert.Equal(t, PriceLess, cmp)

	cmp, err = ParsePriceComparison(">=")
	require.NoError(t, err)
	assert.Equal(t, PriceGreaterEqual, cmp)

	_, err = ParsePriceComparison("<> 0 OR 1=1")
	assert.ErrorIs(t, err, ErrInvalidComparison)
}

func TestRowsEncodeAsArrays(t *testing.T) {
	b, err := json.Marshal([]AttractionSummary{{ID: 1, Name: "butchart gardens"}})
	require.NoError(t, err)
	assert.JSONEq(t, `[[1, "butchart gardens"]]`, string(b))

	b, err = json.Marshal(DemoRow{ID: 1, Name: "Alice"})
	require.NoError(t, err)
	assert.JSONEq(t, `[1, "Alice"]`, string(b))

	b, err = json.Marshal(ExperiencePrice{ID: 3, Name: "kayak tour", Price: 89.5})
	require.NoError(t, err)
	assert.JSONEq(t, `[3, "kayak tour", 89.5]`, string(b))

	b, err = json.Marshal(CityCount{Province: "bc", City: "victoria", Count: 3})
	require.NoError(t, err)
	assert.JSONEq(t, `["bc", "victoria", 3]`, string(b))
}

func TestNewAttractionCoordinate(t *testing.T) {
	a := NewAttraction{Province: "bc", City: "victoria"}
	a.Latitude, a.Longitude = 48.56417, -123.46972

	c := a.Coordinate()

	assert.Equal(t, Location{Province: "bc", City: "victoria"}, c.Location())
	assert.Equal(t, 48.56417, c.Latitude)
}
