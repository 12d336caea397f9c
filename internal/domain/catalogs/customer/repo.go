package customer

import (
	"context"

	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/domain"
)

// Repository defines the interface for Customer persistence.
type Repository interface {
	domain.CatalogRepository[*Customer]

	// FindByStoreCode retrieves a customer by its store identifier.
	FindByStoreCode(ctx context.Context, storeCode string) (*Customer, error)
}
