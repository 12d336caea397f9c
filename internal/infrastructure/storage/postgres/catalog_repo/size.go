package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/domain/catalogs/size"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/infrastructure/storage/postgres"
)

const sizeTable = "cat_sizes"

// SizeRepo implements size.Repository.
type SizeRepo struct {
	*BaseCatalogRepo[*size.PlantSize]
}

// NewSizeRepo creates a new plant size repository.
func NewSizeRepo(txm *postgres.TxManager) *SizeRepo {
	return &SizeRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			sizeTable,
			postgres.ExtractDBColumns[size.PlantSize](),
			func() *size.PlantSize { return &size.PlantSize{} },
		),
	}
}

// FindByCellMultiple retrieves sizes with the given cells-per-tray count.
func (r *SizeRepo) FindByCellMultiple(ctx context.Context, cells int) ([]*size.PlantSize, error) {
	q := r.baseSelect(ctx).
		Where(squirrel.Eq{"cell_multiple": cells}).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("name ASC")

	return r.FindAll(ctx, q)
}

// ListActive retrieves all non-deleted sizes.
func (r *SizeRepo) ListActive(ctx context.Context) ([]*size.PlantSize, error) {
	q := r.baseSelect(ctx).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("name ASC")

	return r.FindAll(ctx, q)
}
