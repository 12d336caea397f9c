package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/entity"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/id"
)

type mockCatalog struct {
	entity.Catalog
	Genus    string  `db:"genus" json:"genus"`
	Cultivar *string `db:"cultivar" json:"cultivar,omitempty"`
	Internal string  `db:"-" json:"-"`
	NoTag    string
}

func TestExtractDBColumns_EmbeddedStructs(t *testing.T) {
	cols := ExtractDBColumns[mockCatalog]()

	expected := []string{"id", "deletion_mark", "version", "attributes", "code", "name", "parent_id", "is_folder", "genus", "cultivar"}
	for _, col := range expected {
		assert.Contains(t, cols, col)
	}

	assert.NotContains(t, cols, "-")
	assert.NotContains(t, cols, "Internal")
	assert.NotContains(t, cols, "NoTag")
}

func TestStructToMap_EmbeddedStructs(t *testing.T) {
	cultivar := "Challenger"
	cat := mockCatalog{
		Catalog:  entity.NewCatalog("VAR-2026-00001", "Erica carnea 'Challenger'"),
		Genus:    "Erica",
		Cultivar: &cultivar,
		Internal: "hidden",
	}
	cat.ID = id.New()
	cat.Version = 5

	m := StructToMap(cat)

	assert.Equal(t, cat.ID, m["id"])
	assert.Equal(t, 5, m["version"])
	assert.Equal(t, "VAR-2026-00001", m["code"])
	assert.Equal(t, "Erica carnea 'Challenger'", m["name"])
	assert.Equal(t, "Erica", m["genus"])
	assert.Equal(t, &cultivar, m["cultivar"])

	_, hasInternal := m["-"]
	assert.False(t, hasInternal)
}

func TestStructToMap_NonStruct(t *testing.T) {
	assert.Nil(t, StructToMap(42))
	assert.Nil(t, StructToMap("not a struct"))
}
