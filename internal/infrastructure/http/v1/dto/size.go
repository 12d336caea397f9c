package dto

import (
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/entity"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/domain/catalogs/size"
)

// --- Request DTOs ---

// CreateSizeRequest is the request body for creating a plant size.
type CreateSizeRequest struct {
	Code          string             `json:"code"`
	Name          string             `json:"name" binding:"required"`
	ContainerType size.ContainerType `json:"containerType" binding:"required"`
	CellMultiple  *int               `json:"cellMultiple"`
	PotDiameterMm *int               `json:"potDiameterMm"`
	TraysPerShelf *int               `json:"traysPerShelf"`
	Description   *string            `json:"description"`
	ParentID      *string            `json:"parentId"`
	IsFolder      bool               `json:"isFolder"`
	Attributes    entity.Attributes  `json:"attributes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateSizeRequest) ToEntity() *size.PlantSize {
	s := size.NewPlantSize(r.Code, r.Name, r.ContainerType)
	s.CellMultiple = r.CellMultiple
	s.PotDiameterMm = r.PotDiameterMm
	s.TraysPerShelf = r.TraysPerShelf
	s.Description = r.Description
	s.ParentID = r.ParentID
	s.IsFolder = r.IsFolder
	s.Attributes = r.Attributes
	return s
}

// UpdateSizeRequest is the request body for updating a plant size.
type UpdateSizeRequest struct {
	Code          string             `json:"code"`
	Name          string             `json:"name" binding:"required"`
	ContainerType size.ContainerType `json:"containerType" binding:"required"`
	CellMultiple  *int               `json:"cellMultiple"`
	PotDiameterMm *int               `json:"potDiameterMm"`
	TraysPerShelf *int               `json:"traysPerShelf"`
	Description   *string            `json:"description"`
	ParentID      *string            `json:"parentId"`
	IsFolder      bool               `json:"isFolder"`
	Attributes    entity.Attributes  `json:"attributes"`
	Version       int                `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateSizeRequest) ApplyTo(s *size.PlantSize) {
	s.Code = r.Code
	s.Name = r.Name
	s.ContainerType = r.ContainerType
	s.CellMultiple = r.CellMultiple
	s.PotDiameterMm = r.PotDiameterMm
	s.TraysPerShelf = r.TraysPerShelf
	s.Description = r.Description
	s.ParentID = r.ParentID
	s.IsFolder = r.IsFolder
	s.Attributes = r.Attributes
	s.Version = r.Version
}

// --- Response DTOs ---

// SizeResponse is the response body for a plant size.
type SizeResponse struct {
	CatalogResponse
	ContainerType size.ContainerType `json:"containerType"`
	CellMultiple  *int               `json:"cellMultiple,omitempty"`
	PotDiameterMm *int               `json:"potDiameterMm,omitempty"`
	TraysPerShelf *int               `json:"traysPerShelf,omitempty"`
	Description   *string            `json:"description,omitempty"`
	DisplayName   string             `json:"displayName"`
}

// FromSize creates response DTO from domain entity.
func FromSize(s *size.PlantSize) *SizeResponse {
	return &SizeResponse{
		CatalogResponse: FromCatalog(s.Catalog),
		ContainerType:   s.ContainerType,
		CellMultiple:    s.CellMultiple,
		PotDiameterMm:   s.PotDiameterMm,
		TraysPerShelf:   s.TraysPerShelf,
		Description:     s.Description,
		DisplayName:     s.DisplayName(),
	}
}
