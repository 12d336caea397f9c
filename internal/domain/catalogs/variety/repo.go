package variety

import (
	"context"

	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/domain"
)

// Repository defines the interface for PlantVariety persistence.
type Repository interface {
	domain.CatalogRepository[*PlantVariety]

	// ListByGenus retrieves all active varieties of a genus.
	ListByGenus(ctx context.Context, genus string) ([]*PlantVariety, error)

	// ListActive retrieves all non-deleted varieties (for the matcher).
	ListActive(ctx context.Context) ([]*PlantVariety, error)
}
