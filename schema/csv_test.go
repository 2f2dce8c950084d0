package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// CSV PARSING TESTS
// ============================================================================

// Sample sales export with messy cells: currency prefixes, thousands
// separators, null markers, and a short row.
var salesCSV = []byte(`Region, Sales ,Quarter
North,"$1,200.50",Q1
South,null,Q1
East,980,Q2
West,N/A
`)

func TestParseCSVSales(t *testing.T) {
	ds, err := ParseCSV(salesCSV, "sales.csv")
	require.NoError(t, err)

	assert.Equal(t, "sales.csv", ds.Name)
	assert.Equal(t, []string{"Region", "Sales", "Quarter"}, ds.ColumnNames())
	assert.Equal(t, 4, ds.Rows())

	sales, ok := ds.Column("Sales")
	require.True(t, ok)
	assert.Equal(t, Number(1200.50), sales.Values[0])
	assert.True(t, sales.Values[1].IsMissing())
	assert.Equal(t, Number(980), sales.Values[2])
	assert.True(t, sales.Values[3].IsMissing())

	// Short row padded with missing in the trailing column.
	quarter, ok := ds.Column("Quarter")
	require.True(t, ok)
	assert.True(t, quarter.Values[3].IsMissing())
}

func TestParseCSVNumericStaysText(t *testing.T) {
	ds, err := ParseCSV([]byte("Code\nA-1\n7B\n"), "codes.csv")
	require.NoError(t, err)

	code, _ := ds.Column("Code")
	assert.Equal(t, KindText, code.Values[0].Kind)
	assert.Equal(t, KindText, code.Values[1].Kind)
}

func TestParseCSVNoDataRows(t *testing.T) {
	_, err := ParseCSV([]byte("Region,Sales\n"), "empty.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no data rows")
}

func TestParseCSVDuplicateHeaders(t *testing.T) {
	_, err := ParseCSV([]byte("Region,Region\nNorth,South\n"), "dup.csv")
	require.Error(t, err)
}

func TestParseCSVEmptyInput(t *testing.T) {
	_, err := ParseCSV(nil, "nothing.csv")
	require.Error(t, err)
}

func TestDatasetValidateRagged(t *testing.T) {
	ds := &Dataset{
		Name: "ragged",
		Series: []Series{
			{Name: "A", Values: numbers(1, 2)},
			{Name: "B", Values: numbers(1)},
		},
	}
	require.Error(t, ds.Validate())
}
