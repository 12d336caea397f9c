package csvimport

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectColumn(t *testing.T) {
	tests := []struct {
		header string
		want   column
	}{
		{"Quantity", colQuantity},
		{"QTY", colQuantity},
		{"Anzahl", colQuantity},
		{"variety_name", colVariety},
		{"Plant Name", colVariety},
		{"Size", colSize},
		{"cell-count", colCellMultiple},
		{"Unit Price", colUnitPrice},
		{"Order Number", colReference},
		// Fuzzy: one edit away from "quantity"
		{"Quantiy", colQuantity},
		// Fuzzy: two edits from "variety"
		{"Varietys", colVariety},
		// Two edits from both "name" and "size"; the alphabetically
		// first alias wins the tie, every run.
		{"sane", colVariety},
		{"zzz-unmapped-zzz", colUnknown},
		{"", colUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, detectColumn(tt.header), "header %q", tt.header)
	}
}

func TestParse_BasicOrder(t *testing.T) {
	input := strings.Join([]string{
		"Quantity,Variety,Size,Unit Price,Order Number",
		"500,Erica carnea 'Challenger',Tray 104,0.42,PO-7781",
		"250,Calluna vulgaris Firefly,Tray 273,0.31,PO-7781",
	}, "\n")

	ext, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, ext.LineItems, 2)
	assert.Equal(t, "PO-7781", ext.OrderReference)

	first := ext.LineItems[0]
	assert.Equal(t, 500, first.Quantity)
	assert.Equal(t, "Erica carnea 'Challenger'", first.VarietyName)
	assert.Equal(t, "Tray 104", first.SizeDescription)
	require.NotNil(t, first.UnitPrice)
	assert.True(t, first.UnitPrice.Equal(decimal.RequireFromString("0.42")))
}

func TestParse_SkipsBadRows(t *testing.T) {
	input := strings.Join([]string{
		"qty,variety",
		"100,Erica carnea",
		",Missing quantity",
		"abc,Bad quantity",
		"50,",
		"25,Calluna vulgaris",
	}, "\n")

	ext, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, ext.LineItems, 2)
	assert.Equal(t, 100, ext.LineItems[0].Quantity)
	assert.Equal(t, 25, ext.LineItems[1].Quantity)
}

func TestParse_NoVarietyColumn(t *testing.T) {
	input := "colA,colB\n1,2\n"

	_, err := Parse(strings.NewReader(input))
	require.Error(t, err)
}

func TestParse_CellMultipleColumn(t *testing.T) {
	input := strings.Join([]string{
		"quantity,variety,cells,container",
		"300,Erica carnea,104,tray",
	}, "\n")

	ext, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, ext.LineItems, 1)

	item := ext.LineItems[0]
	require.NotNil(t, item.CellMultiple)
	assert.Equal(t, 104, *item.CellMultiple)
	assert.Equal(t, "tray", item.ContainerType)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1234.56", "1234.56"},
		{"1,234.56", "1234.56"},
		{"1.234,56", "1234.56"},
		{"1.200", "1200"},
		{"1,200", "1200"},
		{"0.125", "0.125"},
		{"0,42", "0.42"},
		{"€ 12,50", "12.5"},
		{"$1,000,000.99", "1000000.99"},
	}

	for _, tt := range tests {
		got, err := ParseAmount(tt.input)
		require.NoError(t, err, tt.input)
		assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
			"%s: want %s got %s", tt.input, tt.want, got)
	}

	_, err := ParseAmount("")
	assert.Error(t, err)
	_, err = ParseAmount("not a number")
	assert.Error(t, err)
}

func TestParseQuantity(t *testing.T) {
	q, err := ParseQuantity("1.200")
	require.NoError(t, err)
	assert.Equal(t, 1200, q)

	q, err = ParseQuantity("500")
	require.NoError(t, err)
	assert.Equal(t, 500, q)

	_, err = ParseQuantity("12.5")
	assert.Error(t, err)
}
