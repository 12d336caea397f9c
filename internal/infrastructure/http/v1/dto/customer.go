package dto

import (
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/entity"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/domain/catalogs/customer"
)

// --- Request DTOs ---

// CreateCustomerRequest is the request body for creating a customer.
type CreateCustomerRequest struct {
	Code            string            `json:"code"`
	Name            string            `json:"name" binding:"required"`
	StoreCode       *string           `json:"storeCode"`
	ContactName     *string           `json:"contactName"`
	Email           *string           `json:"email"`
	Phone           *string           `json:"phone"`
	DeliveryAddress *string           `json:"deliveryAddress"`
	RequiresLabels  bool              `json:"requiresLabels"`
	ParentID        *string           `json:"parentId"`
	IsFolder        bool              `json:"isFolder"`
	Attributes      entity.Attributes `json:"attributes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateCustomerRequest) ToEntity() *customer.Customer {
	c := customer.NewCustomer(r.Code, r.Name)
	c.StoreCode = r.StoreCode
	c.ContactName = r.ContactName
	c.Email = r.Email
	c.Phone = r.Phone
	c.DeliveryAddress = r.DeliveryAddress
	c.RequiresLabels = r.RequiresLabels
	c.ParentID = r.ParentID
	c.IsFolder = r.IsFolder
	c.Attributes = r.Attributes
	return c
}

// UpdateCustomerRequest is the request body for updating a customer.
type UpdateCustomerRequest struct {
	Code            string            `json:"code"`
	Name            string            `json:"name" binding:"required"`
	StoreCode       *string           `json:"storeCode"`
	ContactName     *string           `json:"contactName"`
	Email           *string           `json:"email"`
	Phone           *string           `json:"phone"`
	DeliveryAddress *string           `json:"deliveryAddress"`
	RequiresLabels  bool              `json:"requiresLabels"`
	ParentID        *string           `json:"parentId"`
	IsFolder        bool              `json:"isFolder"`
	Attributes      entity.Attributes `json:"attributes"`
	Version         int               `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateCustomerRequest) ApplyTo(c *customer.Customer) {
	c.Code = r.Code
	c.Name = r.Name
	c.StoreCode = r.StoreCode
	c.ContactName = r.ContactName
	c.Email = r.Email
	c.Phone = r.Phone
	c.DeliveryAddress = r.DeliveryAddress
	c.RequiresLabels = r.RequiresLabels
	c.ParentID = r.ParentID
	c.IsFolder = r.IsFolder
	c.Attributes = r.Attributes
	c.Version = r.Version
}

// --- Response DTOs ---

// CustomerResponse is the response body for a customer.
type CustomerResponse struct {
	CatalogResponse
	StoreCode       *string `json:"storeCode,omitempty"`
	ContactName     *string `json:"contactName,omitempty"`
	Email           *string `json:"email,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	DeliveryAddress *string `json:"deliveryAddress,omitempty"`
	RequiresLabels  bool    `json:"requiresLabels"`
}

// FromCustomer creates response DTO from domain entity.
func FromCustomer(c *customer.Customer) *CustomerResponse {
	return &CustomerResponse{
		CatalogResponse: FromCatalog(c.Catalog),
		StoreCode:       c.StoreCode,
		ContactName:     c.ContactName,
		Email:           c.Email,
		Phone:           c.Phone,
		DeliveryAddress: c.DeliveryAddress,
		RequiresLabels:  c.RequiresLabels,
	}
}
