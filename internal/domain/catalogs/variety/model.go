// Package variety provides the PlantVariety catalog.
// Varieties represent the botanical identity of what the nursery grows:
// genus, species and cultivar, e.g. Erica carnea 'Challenger'.
package variety

import (
	"context"
	"strings"

	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/apperror"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/entity"
)

// Category groups varieties by commercial family.
type Category string

const (
	CategoryHeather    Category = "heather"
	CategoryConifer    Category = "conifer"
	CategoryPerennial  Category = "perennial"
	CategoryShrub      Category = "shrub"
	CategoryGrass      Category = "grass"
	CategoryBedding    Category = "bedding"
	CategoryHerb       Category = "herb"
	CategoryUnassigned Category = "unassigned"
)

// PlantVariety represents a grown variety.
type PlantVariety struct {
	entity.Catalog

	// Genus is the botanical genus (e.g., "Erica")
	Genus string `db:"genus" json:"genus"`

	// Species is the botanical species (e.g., "carnea")
	Species *string `db:"species" json:"species,omitempty"`

	// Cultivar is the cultivar name without quotes (e.g., "Challenger")
	Cultivar *string `db:"cultivar" json:"cultivar,omitempty"`

	// Family is the botanical family (e.g., "Ericaceae")
	Family *string `db:"family" json:"family,omitempty"`

	// CommonName is the trade/common name (e.g., "Winter heath")
	CommonName *string `db:"common_name" json:"commonName,omitempty"`

	// Category groups varieties for reporting
	Category Category `db:"category" json:"category"`

	// Color is the dominant flower/foliage color
	Color *string `db:"color" json:"color,omitempty"`

	// FloweringSeason is a free-form season note (e.g., "Jan-Apr")
	FloweringSeason *string `db:"flowering_season" json:"floweringSeason,omitempty"`

	// IsProtected indicates plant breeders' rights apply
	IsProtected bool `db:"is_protected" json:"isProtected"`
}

// NewPlantVariety creates a new PlantVariety with required fields.
func NewPlantVariety(code, name, genus string) *PlantVariety {
	return &PlantVariety{
		Catalog:  entity.NewCatalog(code, name),
		Genus:    genus,
		Category: CategoryUnassigned,
	}
}

// Validate implements entity.Validatable interface.
func (v *PlantVariety) Validate(ctx context.Context) error {
	// Base catalog validation
	if err := v.Catalog.Validate(ctx); err != nil {
		return err
	}

	if strings.TrimSpace(v.Genus) == "" {
		return apperror.NewValidation("genus is required").
			WithDetail("field", "genus")
	}

	if !isValidCategory(v.Category) {
		return apperror.NewValidation("invalid variety category").
			WithDetail("field", "category").
			WithDetail("value", string(v.Category))
	}

	return nil
}

// BotanicalName returns the full botanical name: genus, species and
// quoted cultivar when present.
func (v *PlantVariety) BotanicalName() string {
	parts := []string{v.Genus}
	if v.Species != nil && *v.Species != "" {
		parts = append(parts, *v.Species)
	}
	if v.Cultivar != nil && *v.Cultivar != "" {
		parts = append(parts, "'"+*v.Cultivar+"'")
	}
	return strings.Join(parts, " ")
}

// HasCultivar reports whether a cultivar name is set.
func (v *PlantVariety) HasCultivar() bool {
	return v.Cultivar != nil && *v.Cultivar != ""
}

// --- Validation Helpers ---

func isValidCategory(c Category) bool {
	switch c {
	case CategoryHeather, CategoryConifer, CategoryPerennial, CategoryShrub,
		CategoryGrass, CategoryBedding, CategoryHerb, CategoryUnassigned:
		return true
	}
	return false
}
