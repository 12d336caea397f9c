package supplier

import (
	"context"

	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/domain"
)

// Repository defines the interface for Supplier persistence.
type Repository interface {
	domain.CatalogRepository[*Supplier]

	// ListActive retrieves all non-deleted suppliers (for the matcher).
	ListActive(ctx context.Context) ([]*Supplier, error)
}
