package size

import (
	"context"

	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/domain"
)

// Repository defines the interface for PlantSize persistence.
type Repository interface {
	domain.CatalogRepository[*PlantSize]

	// FindByCellMultiple retrieves sizes with the given cells-per-tray count.
	FindByCellMultiple(ctx context.Context, cells int) ([]*PlantSize, error)

	// ListActive retrieves all non-deleted sizes (for the matcher).
	ListActive(ctx context.Context) ([]*PlantSize, error)
}
