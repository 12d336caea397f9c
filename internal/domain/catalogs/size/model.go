// Package size provides the PlantSize catalog.
// Sizes describe the physical format a batch is grown in: trays with a
// cell count (e.g. "Tray 104") or containers by volume (e.g. "P9 pot").
package size

import (
	"context"
	"strings"

	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/apperror"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/entity"
)

// ContainerType defines the physical container kind.
type ContainerType string

const (
	ContainerTray   ContainerType = "tray"
	ContainerPot    ContainerType = "pot"
	ContainerPlug   ContainerType = "plug"
	ContainerBasket ContainerType = "basket"
	ContainerBare   ContainerType = "bare_root"
)

// PlantSize represents a growing format.
type PlantSize struct {
	entity.Catalog

	// ContainerType is the physical container kind
	ContainerType ContainerType `db:"container_type" json:"containerType"`

	// CellMultiple is the cells-per-tray count, nil for single containers
	CellMultiple *int `db:"cell_multiple" json:"cellMultiple,omitempty"`

	// PotDiameterMm is the pot diameter in millimetres, nil for trays
	PotDiameterMm *int `db:"pot_diameter_mm" json:"potDiameterMm,omitempty"`

	// TraysPerShelf is the Danish-trolley shelf capacity for this size
	TraysPerShelf *int `db:"trays_per_shelf" json:"traysPerShelf,omitempty"`

	// Description is a free-form note
	Description *string `db:"description" json:"description,omitempty"`
}

// NewPlantSize creates a new PlantSize with required fields.
func NewPlantSize(code, name string, containerType ContainerType) *PlantSize {
	return &PlantSize{
		Catalog:       entity.NewCatalog(code, name),
		ContainerType: containerType,
	}
}

// Validate implements entity.Validatable interface.
func (s *PlantSize) Validate(ctx context.Context) error {
	// Base catalog validation
	if err := s.Catalog.Validate(ctx); err != nil {
		return err
	}

	if !isValidContainerType(s.ContainerType) {
		return apperror.NewValidation("invalid container type").
			WithDetail("field", "containerType").
			WithDetail("value", string(s.ContainerType))
	}

	if s.CellMultiple != nil && *s.CellMultiple <= 0 {
		return apperror.NewValidation("cell multiple must be positive").
			WithDetail("field", "cellMultiple")
	}

	if s.PotDiameterMm != nil && *s.PotDiameterMm <= 0 {
		return apperror.NewValidation("pot diameter must be positive").
			WithDetail("field", "potDiameterMm")
	}

	return nil
}

// IsTray reports whether this size is a multi-cell tray format.
func (s *PlantSize) IsTray() bool {
	return s.CellMultiple != nil && *s.CellMultiple > 1
}

// UnitsPerContainer returns how many sellable units one container holds.
func (s *PlantSize) UnitsPerContainer() int {
	if s.CellMultiple != nil && *s.CellMultiple > 0 {
		return *s.CellMultiple
	}
	return 1
}

// DisplayName returns the name with the container kind when the name
// alone is ambiguous.
func (s *PlantSize) DisplayName() string {
	if strings.Contains(strings.ToLower(s.Name), string(s.ContainerType)) {
		return s.Name
	}
	return s.Name + " (" + string(s.ContainerType) + ")"
}

// --- Validation Helpers ---

func isValidContainerType(t ContainerType) bool {
	switch t {
	case ContainerTray, ContainerPot, ContainerPlug, ContainerBasket, ContainerBare:
		return true
	}
	return false
}
