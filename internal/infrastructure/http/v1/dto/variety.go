package dto

import (
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/entity"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/domain/catalogs/variety"
)

// --- Request DTOs ---

// CreateVarietyRequest is the request body for creating a plant variety.
type CreateVarietyRequest struct {
	Code            string            `json:"code"`
	Name            string            `json:"name" binding:"required"`
	Genus           string            `json:"genus" binding:"required"`
	Species         *string           `json:"species"`
	Cultivar        *string           `json:"cultivar"`
	Family          *string           `json:"family"`
	CommonName      *string           `json:"commonName"`
	Category        variety.Category  `json:"category"`
	Color           *string           `json:"color"`
	FloweringSeason *string           `json:"floweringSeason"`
	IsProtected     bool              `json:"isProtected"`
	ParentID        *string           `json:"parentId"`
	IsFolder        bool              `json:"isFolder"`
	Attributes      entity.Attributes `json:"attributes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateVarietyRequest) ToEntity() *variety.PlantVariety {
	v := variety.NewPlantVariety(r.Code, r.Name, r.Genus)
	v.Species = r.Species
	v.Cultivar = r.Cultivar
	v.Family = r.Family
	v.CommonName = r.CommonName
	if r.Category != "" {
		v.Category = r.Category
	}
	v.Color = r.Color
	v.FloweringSeason = r.FloweringSeason
	v.IsProtected = r.IsProtected
	v.ParentID = r.ParentID
	v.IsFolder = r.IsFolder
	v.Attributes = r.Attributes
	return v
}

// UpdateVarietyRequest is the request body for updating a plant variety.
type UpdateVarietyRequest struct {
	Code            string            `json:"code"`
	Name            string            `json:"name" binding:"required"`
	Genus           string            `json:"genus" binding:"required"`
	Species         *string           `json:"species"`
	Cultivar        *string           `json:"cultivar"`
	Family          *string           `json:"family"`
	CommonName      *string           `json:"commonName"`
	Category        variety.Category  `json:"category"`
	Color           *string           `json:"color"`
	FloweringSeason *string           `json:"floweringSeason"`
	IsProtected     bool              `json:"isProtected"`
	ParentID        *string           `json:"parentId"`
	IsFolder        bool              `json:"isFolder"`
	Attributes      entity.Attributes `json:"attributes"`
	Version         int               `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateVarietyRequest) ApplyTo(v *variety.PlantVariety) {
	v.Code = r.Code
	v.Name = r.Name
	v.Genus = r.Genus
	v.Species = r.Species
	v.Cultivar = r.Cultivar
	v.Family = r.Family
	v.CommonName = r.CommonName
	v.Category = r.Category
	v.Color = r.Color
	v.FloweringSeason = r.FloweringSeason
	v.IsProtected = r.IsProtected
	v.ParentID = r.ParentID
	v.IsFolder = r.IsFolder
	v.Attributes = r.Attributes
	v.Version = r.Version
}

// --- Response DTOs ---

// VarietyResponse is the response body for a plant variety.
type VarietyResponse struct {
	CatalogResponse
	Genus           string           `json:"genus"`
	Species         *string          `json:"species,omitempty"`
	Cultivar        *string          `json:"cultivar,omitempty"`
	Family          *string          `json:"family,omitempty"`
	CommonName      *string          `json:"commonName,omitempty"`
	Category        variety.Category `json:"category"`
	Color           *string          `json:"color,omitempty"`
	FloweringSeason *string          `json:"floweringSeason,omitempty"`
	IsProtected     bool             `json:"isProtected"`
	BotanicalName   string           `json:"botanicalName"`
}

// FromVariety creates response DTO from domain entity.
func FromVariety(v *variety.PlantVariety) *VarietyResponse {
	return &VarietyResponse{
		CatalogResponse: FromCatalog(v.Catalog),
		Genus:           v.Genus,
		Species:         v.Species,
		Cultivar:        v.Cultivar,
		Family:          v.Family,
		CommonName:      v.CommonName,
		Category:        v.Category,
		Color:           v.Color,
		FloweringSeason: v.FloweringSeason,
		IsProtected:     v.IsProtected,
		BotanicalName:   v.BotanicalName(),
	}
}
