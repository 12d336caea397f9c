package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intptr(i int) *int { return &i }

var testVarieties = []VarietyRef{
	{ID: "v1", Name: "Erica carnea 'Challenger'", Genus: "Erica"},
	{ID: "v2", Name: "Erica carnea 'Winter Snow'", Genus: "Erica"},
	{ID: "v3", Name: "Calluna vulgaris Firefly", Genus: "Calluna"},
	{ID: "v4", Name: "Lavandula angustifolia 'Hidcote'", Genus: "Lavandula"},
}

var testSizes = []SizeRef{
	{ID: "s1", Name: "Tray 104", CellMultiple: intptr(104), ContainerType: "tray"},
	{ID: "s2", Name: "Tray 273", CellMultiple: intptr(273), ContainerType: "tray"},
	{ID: "s3", Name: "P9 pot", ContainerType: "pot"},
}

var testSuppliers = []SupplierRef{
	{ID: "sup1", Name: "Kientzler Jungpflanzen"},
	{ID: "sup2", Name: "Sylva Grown"},
}

func TestMatchVariety_ExactIgnoresCaseAndQuotes(t *testing.T) {
	item := OrderLineItem{VarietyName: "erica carnea ‘challenger’"}

	m := MatchVariety(item, testVarieties)
	require.NotNil(t, m.ID)
	assert.Equal(t, "v1", *m.ID)
	assert.Equal(t, ConfidenceExact, m.Confidence)
}

func TestMatchVariety_GenusCultivar(t *testing.T) {
	item := OrderLineItem{
		VarietyName: "E. carnea Winter Snow improved",
		Genus:       "Erica",
		Cultivar:    "Winter Snow",
	}

	m := MatchVariety(item, testVarieties)
	require.NotNil(t, m.ID)
	assert.Equal(t, "v2", *m.ID)
	assert.Equal(t, ConfidenceHigh, m.Confidence)
}

func TestMatchVariety_SubstringContainment(t *testing.T) {
	item := OrderLineItem{VarietyName: "Lavandula angustifolia 'Hidcote' 10cm"}

	m := MatchVariety(item, testVarieties)
	require.NotNil(t, m.ID)
	assert.Equal(t, "v4", *m.ID)
	assert.Equal(t, ConfidenceLow, m.Confidence)
}

func TestMatchVariety_WordOverlap(t *testing.T) {
	item := OrderLineItem{VarietyName: "Calluna Firefly"}

	m := MatchVariety(item, testVarieties)
	require.NotNil(t, m.ID)
	assert.Equal(t, "v3", *m.ID)
	assert.Equal(t, ConfidenceLow, m.Confidence)
}

func TestMatchVariety_NoMatch(t *testing.T) {
	item := OrderLineItem{VarietyName: "Quercus robur"}

	m := MatchVariety(item, testVarieties)
	assert.Nil(t, m.ID)
	assert.Nil(t, m.Name)
	assert.Equal(t, ConfidenceNone, m.Confidence)
}

func TestMatchVariety_EmptyName(t *testing.T) {
	m := MatchVariety(OrderLineItem{}, testVarieties)
	assert.Equal(t, ConfidenceNone, m.Confidence)
}

func TestMatchVariety_EmptyCatalog(t *testing.T) {
	m := MatchVariety(OrderLineItem{VarietyName: "Erica carnea 'Challenger'"}, nil)
	assert.Equal(t, ConfidenceNone, m.Confidence)
}

func TestMatchVariety_Idempotent(t *testing.T) {
	item := OrderLineItem{VarietyName: "Erica carnea 'Challenger'"}

	first := MatchVariety(item, testVarieties)
	second := MatchVariety(item, testVarieties)

	require.NotNil(t, first.ID)
	require.NotNil(t, second.ID)
	assert.Equal(t, *first.ID, *second.ID)
	assert.Equal(t, first.Confidence, second.Confidence)
}

func TestMatchSize_CellAndContainerExact(t *testing.T) {
	item := OrderLineItem{CellMultiple: intptr(104), ContainerType: "Tray"}

	m := MatchSize(item, testSizes)
	require.NotNil(t, m.ID)
	assert.Equal(t, "s1", *m.ID)
	assert.Equal(t, ConfidenceExact, m.Confidence)
}

func TestMatchSize_CellOnlyHigh(t *testing.T) {
	item := OrderLineItem{CellMultiple: intptr(273)}

	m := MatchSize(item, testSizes)
	require.NotNil(t, m.ID)
	assert.Equal(t, "s2", *m.ID)
	assert.Equal(t, ConfidenceHigh, m.Confidence)
}

func TestMatchSize_DescriptionFallback(t *testing.T) {
	item := OrderLineItem{SizeDescription: "Tray 104"}

	m := MatchSize(item, testSizes)
	require.NotNil(t, m.ID)
	assert.Equal(t, "s1", *m.ID)
	assert.Equal(t, ConfidenceHigh, m.Confidence)
}

func TestMatchSize_NoMatch(t *testing.T) {
	m := MatchSize(OrderLineItem{SizeDescription: "bare root bundle"}, testSizes)
	assert.Nil(t, m.ID)
	assert.Equal(t, ConfidenceNone, m.Confidence)
}

func TestMatchSupplier(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantID   string
		wantHit  bool
	}{
		{"exact case-insensitive", "kientzler jungpflanzen", "sup1", true},
		{"substring", "Kientzler Jungpflanzen GmbH & Co", "sup1", true},
		{"reverse substring", "Sylva", "sup2", true},
		{"no match", "Unknown Nurseries Ltd", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := MatchSupplier(tt.input, testSuppliers)
			if !tt.wantHit {
				assert.Nil(t, m.ID)
				return
			}
			require.NotNil(t, m.ID)
			assert.Equal(t, tt.wantID, *m.ID)
		})
	}
}

func TestMatchExtraction_Counts(t *testing.T) {
	ext := OrderExtraction{
		SupplierName: "Kientzler Jungpflanzen",
		LineItems: []OrderLineItem{
			// Both sides high or better: counts as matched.
			{Quantity: 10, VarietyName: "Erica carnea 'Challenger'", CellMultiple: intptr(104), ContainerType: "tray"},
			// Variety resolves only at low: needs review.
			{Quantity: 5, VarietyName: "Calluna Firefly", SizeDescription: "Tray 104"},
			// Nothing resolves: needs review.
			{Quantity: 3, VarietyName: "Quercus robur", SizeDescription: "unknown"},
		},
	}

	result := MatchExtraction(ext, ReferenceData{
		Varieties: testVarieties,
		Sizes:     testSizes,
		Suppliers: testSuppliers,
	})

	require.NotNil(t, result.MatchedSupplierID)
	assert.Equal(t, "sup1", *result.MatchedSupplierID)

	assert.Equal(t, 3, result.TotalItems)
	assert.Equal(t, 1, result.MatchedItems)
	assert.Equal(t, 2, result.NeedsReviewItems)

	require.Len(t, result.LineItems, 3)
	assert.Equal(t, ConfidenceExact, result.LineItems[0].VarietyConfidence)
	assert.Equal(t, ConfidenceExact, result.LineItems[0].SizeConfidence)
	assert.Equal(t, ConfidenceLow, result.LineItems[1].VarietyConfidence)
	assert.Equal(t, ConfidenceNone, result.LineItems[2].VarietyConfidence)
}

func TestMatchExtraction_EmptyCatalogs(t *testing.T) {
	ext := OrderExtraction{
		SupplierName: "Anyone",
		LineItems:    []OrderLineItem{{VarietyName: "Erica carnea", SizeDescription: "Tray 104"}},
	}

	result := MatchExtraction(ext, ReferenceData{})
	assert.Nil(t, result.MatchedSupplierID)
	assert.Equal(t, 0, result.MatchedItems)
	assert.Equal(t, 1, result.NeedsReviewItems)
	assert.Equal(t, ConfidenceNone, result.LineItems[0].VarietyConfidence)
}
