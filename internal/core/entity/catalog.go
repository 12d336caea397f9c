package entity

import (
	"context"

	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/apperror"
)

// Catalog is the shared shape of reference data: plant varieties,
// plant sizes, suppliers and customers all embed it.
type Catalog struct {
	BaseCatalog

	// Code is unique within one catalog; generated by the numerator
	// when the caller leaves it empty.
	Code string `db:"code" json:"code"`

	Name string `db:"name" json:"name"`

	// ParentID and IsFolder support hierarchical catalogs, e.g.
	// grouping varieties under a genus folder.
	ParentID *string `db:"parent_id" json:"parentId,omitempty"`
	IsFolder bool    `db:"is_folder" json:"isFolder"`
}

// NewCatalog creates a Catalog with a generated id.
func NewCatalog(code, name string) Catalog {
	return Catalog{
		BaseCatalog: NewBaseCatalog(),
		Code:        code,
		Name:        name,
	}
}

// Validate implements Validatable. Code is allowed to be empty here
// since creation hooks fill it in.
func (c *Catalog) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	return nil
}

// SetParent sets or clears the parent reference.
func (c *Catalog) SetParent(parentID string) {
	if parentID == "" {
		c.ParentID = nil
	} else {
		c.ParentID = &parentID
	}
}

// IsRoot reports whether the catalog sits at the top of its hierarchy.
func (c *Catalog) IsRoot() bool {
	return c.ParentID == nil || *c.ParentID == ""
}
