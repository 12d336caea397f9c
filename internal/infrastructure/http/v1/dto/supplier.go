package dto

import (
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/entity"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/domain/catalogs/supplier"
)

// --- Request DTOs ---

// CreateSupplierRequest is the request body for creating a supplier.
type CreateSupplierRequest struct {
	Code         string            `json:"code"`
	Name         string            `json:"name" binding:"required"`
	ContactName  *string           `json:"contactName"`
	Email        *string           `json:"email"`
	Phone        *string           `json:"phone"`
	Address      *string           `json:"address"`
	CountryCode  *string           `json:"countryCode"`
	AccountRef   *string           `json:"accountRef"`
	LeadTimeDays *int              `json:"leadTimeDays"`
	ParentID     *string           `json:"parentId"`
	IsFolder     bool              `json:"isFolder"`
	Attributes   entity.Attributes `json:"attributes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateSupplierRequest) ToEntity() *supplier.Supplier {
	s := supplier.NewSupplier(r.Code, r.Name)
	s.ContactName = r.ContactName
	s.Email = r.Email
	s.Phone = r.Phone
	s.Address = r.Address
	s.CountryCode = r.CountryCode
	s.AccountRef = r.AccountRef
	s.LeadTimeDays = r.LeadTimeDays
	s.ParentID = r.ParentID
	s.IsFolder = r.IsFolder
	s.Attributes = r.Attributes
	return s
}

// UpdateSupplierRequest is the request body for updating a supplier.
type UpdateSupplierRequest struct {
	Code         string            `json:"code"`
	Name         string            `json:"name" binding:"required"`
	ContactName  *string           `json:"contactName"`
	Email        *string           `json:"email"`
	Phone        *string           `json:"phone"`
	Address      *string           `json:"address"`
	CountryCode  *string           `json:"countryCode"`
	AccountRef   *string           `json:"accountRef"`
	LeadTimeDays *int              `json:"leadTimeDays"`
	ParentID     *string           `json:"parentId"`
	IsFolder     bool              `json:"isFolder"`
	Attributes   entity.Attributes `json:"attributes"`
	Version      int               `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateSupplierRequest) ApplyTo(s *supplier.Supplier) {
	s.Code = r.Code
	s.Name = r.Name
	s.ContactName = r.ContactName
	s.Email = r.Email
	s.Phone = r.Phone
	s.Address = r.Address
	s.CountryCode = r.CountryCode
	s.AccountRef = r.AccountRef
	s.LeadTimeDays = r.LeadTimeDays
	s.ParentID = r.ParentID
	s.IsFolder = r.IsFolder
	s.Attributes = r.Attributes
	s.Version = r.Version
}

// --- Response DTOs ---

// SupplierResponse is the response body for a supplier.
type SupplierResponse struct {
	CatalogResponse
	ContactName  *string `json:"contactName,omitempty"`
	Email        *string `json:"email,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Address      *string `json:"address,omitempty"`
	CountryCode  *string `json:"countryCode,omitempty"`
	AccountRef   *string `json:"accountRef,omitempty"`
	LeadTimeDays *int    `json:"leadTimeDays,omitempty"`
}

// FromSupplier creates response DTO from domain entity.
func FromSupplier(s *supplier.Supplier) *SupplierResponse {
	return &SupplierResponse{
		CatalogResponse: FromCatalog(s.Catalog),
		ContactName:     s.ContactName,
		Email:           s.Email,
		Phone:           s.Phone,
		Address:         s.Address,
		CountryCode:     s.CountryCode,
		AccountRef:      s.AccountRef,
		LeadTimeDays:    s.LeadTimeDays,
	}
}
