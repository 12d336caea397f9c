package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"curly single quotes", "Erica carnea ‘Challenger’", "erica carnea 'challenger'"},
		{"curly double quotes", "“Firefly”", `"firefly"`},
		{"whitespace collapse", "  Calluna   vulgaris\tFirefly ", "calluna vulgaris firefly"},
		{"already clean", "tray 104", "tray 104"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeName(tt.input))
		})
	}
}

func TestMatchWords_DropsShortTokens(t *testing.T) {
	words := matchWords("erica cm 10 carnea x")
	assert.Equal(t, []string{"erica", "carnea"}, words)
}

func TestFirstInt(t *testing.T) {
	tests := []struct {
		input  string
		want   int
		wantOK bool
	}{
		{"Tray 104", 104, true},
		{"104-cell tray", 104, true},
		{"P9", 9, true},
		{"no digits here", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := firstInt(tt.input)
		assert.Equal(t, tt.wantOK, ok, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}
}

func TestConfidenceOrdering(t *testing.T) {
	assert.True(t, ConfidenceExact.AtLeast(ConfidenceHigh))
	assert.True(t, ConfidenceHigh.AtLeast(ConfidenceHigh))
	assert.False(t, ConfidenceLow.AtLeast(ConfidenceHigh))
	assert.False(t, ConfidenceNone.AtLeast(ConfidenceLow))
}

func TestConfidenceJSON(t *testing.T) {
	b, err := ConfidenceHigh.MarshalJSON()
	assert.NoError(t, err)
	assert.Equal(t, `"high"`, string(b))

	var c Confidence
	assert.NoError(t, c.UnmarshalJSON([]byte(`"exact"`)))
	assert.Equal(t, ConfidenceExact, c)
}
