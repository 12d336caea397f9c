// Package customer provides the Customer catalog.
// Customers are the garden centres and chain stores batches are
// allocated and dispatched to.
package customer

import (
	"context"
	"strings"

	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/apperror"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/entity"
)

// Customer represents a buyer of finished plants.
type Customer struct {
	entity.Catalog

	// StoreCode is the customer's own store/branch identifier
	StoreCode *string `db:"store_code" json:"storeCode,omitempty"`

	// ContactName is the primary contact person
	ContactName *string `db:"contact_name" json:"contactName,omitempty"`

	// Email is the ordering email address
	Email *string `db:"email" json:"email,omitempty"`

	// Phone is the contact phone number
	Phone *string `db:"phone" json:"phone,omitempty"`

	// DeliveryAddress is the default delivery address
	DeliveryAddress *string `db:"delivery_address" json:"deliveryAddress,omitempty"`

	// RequiresLabels indicates price labels must be applied before dispatch
	RequiresLabels bool `db:"requires_labels" json:"requiresLabels"`
}

// NewCustomer creates a new Customer with required fields.
func NewCustomer(code, name string) *Customer {
	return &Customer{
		Catalog: entity.NewCatalog(code, name),
	}
}

// Validate implements entity.Validatable interface.
func (c *Customer) Validate(ctx context.Context) error {
	// Base catalog validation
	if err := c.Catalog.Validate(ctx); err != nil {
		return err
	}

	if c.Email != nil && *c.Email != "" && !strings.Contains(*c.Email, "@") {
		return apperror.NewValidation("invalid email address").
			WithDetail("field", "email")
	}

	return nil
}
