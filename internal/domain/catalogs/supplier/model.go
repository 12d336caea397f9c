// Package supplier provides the Supplier catalog.
// Suppliers are the nurseries and brokers the site buys young plants from.
package supplier

import (
	"context"
	"strings"

	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/apperror"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/entity"
)

// Supplier represents a plant material supplier.
type Supplier struct {
	entity.Catalog

	// ContactName is the primary contact person
	ContactName *string `db:"contact_name" json:"contactName,omitempty"`

	// Email is the ordering email address
	Email *string `db:"email" json:"email,omitempty"`

	// Phone is the contact phone number
	Phone *string `db:"phone" json:"phone,omitempty"`

	// Address is the postal address
	Address *string `db:"address" json:"address,omitempty"`

	// CountryCode is the country (ISO 3166-1 alpha-2)
	CountryCode *string `db:"country_code" json:"countryCode,omitempty"`

	// AccountRef is the accounting system reference
	AccountRef *string `db:"account_ref" json:"accountRef,omitempty"`

	// LeadTimeDays is the typical order-to-delivery lead time
	LeadTimeDays *int `db:"lead_time_days" json:"leadTimeDays,omitempty"`
}

// NewSupplier creates a new Supplier with required fields.
func NewSupplier(code, name string) *Supplier {
	return &Supplier{
		Catalog: entity.NewCatalog(code, name),
	}
}

// Validate implements entity.Validatable interface.
func (s *Supplier) Validate(ctx context.Context) error {
	// Base catalog validation
	if err := s.Catalog.Validate(ctx); err != nil {
		return err
	}

	if s.Email != nil && *s.Email != "" && !strings.Contains(*s.Email, "@") {
		return apperror.NewValidation("invalid email address").
			WithDetail("field", "email")
	}

	if s.CountryCode != nil && *s.CountryCode != "" && len(*s.CountryCode) != 2 {
		return apperror.NewValidation("country code must be 2 letters").
			WithDetail("field", "countryCode")
	}

	if s.LeadTimeDays != nil && *s.LeadTimeDays < 0 {
		return apperror.NewValidation("lead time cannot be negative").
			WithDetail("field", "leadTimeDays")
	}

	return nil
}
