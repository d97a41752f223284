package entity

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeWindowValidate(t *testing.T) {
	jan := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, TimeWindow{Start: jan, End: feb}.Validate())
	assert.NoError(t, TimeWindow{Start: jan, End: jan}.Validate())
	assert.Error(t, TimeWindow{Start: feb, End: jan}.Validate())
	assert.Equal(t, "2024-01-01 to 2024-02-01", TimeWindow{Start: jan, End: feb}.String())
}

func TestFormattedTableString(t *testing.T) {
	table := FormattedTable{
		Title: "Rolling 2 Months",
		Rows: []FormattedRow{
			{PeriodStart: "2024-01-01", Central: "$  100", Tenants: "$   50"},
			{PeriodStart: "2024-02-01", Central: "$12,345", Tenants: "$   75"},
		},
	}

	want := "            Central | Tenants\n" +
		"2024-01-01:  $  100 |  $   50\n" +
		"2024-02-01: $12,345 |  $   75"
	assert.Equal(t, want, table.String())
}

func TestFormattedTableStringAlignsSeparators(t *testing.T) {
	table := FormattedTable{
		Rows: []FormattedRow{
			{PeriodStart: "2024-01-01", Central: "$    5", Tenants: "$1,234,567"},
			{PeriodStart: "2024-02-01", Central: "$123,456", Tenants: "$    0"},
			{PeriodStart: "2024-03-01", Central: "    -", Tenants: "    -"},
		},
	}

	lines := strings.Split(table.String(), "\n")
	require.Len(t, lines, 4)
	sep := strings.Index(lines[0], " | ")
	for _, line := range lines {
		assert.Equal(t, sep, strings.Index(line, " | "), line)
		assert.Equal(t, len(lines[0]), len(line), line)
	}
	assert.True(t, strings.HasSuffix(lines[0], "    Tenants"))
}

func TestCombinedTableTotals(t *testing.T) {
	table := CombinedTable{Rows: []CombinedRow{
		{Central: Value(decimal.NewFromInt(10)), Tenants: Value(decimal.NewFromInt(1))},
		{Central: Value(decimal.RequireFromString("2.5"))},
	}}

	central, tenants := table.Totals()
	assert.True(t, decimal.RequireFromString("12.5").Equal(central))
	assert.True(t, decimal.NewFromInt(1).Equal(tenants))
}
