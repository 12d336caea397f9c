package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/domain/catalogs/variety"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/infrastructure/storage/postgres"
)

const varietyTable = "cat_varieties"

// VarietyRepo implements variety.Repository.
type VarietyRepo struct {
	*BaseCatalogRepo[*variety.PlantVariety]
}

// NewVarietyRepo creates a new plant variety repository.
func NewVarietyRepo(txm *postgres.TxManager) *VarietyRepo {
	return &VarietyRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			varietyTable,
			postgres.ExtractDBColumns[variety.PlantVariety](),
			func() *variety.PlantVariety { return &variety.PlantVariety{} },
		),
	}
}

// ListByGenus retrieves all active varieties of a genus.
func (r *VarietyRepo) ListByGenus(ctx context.Context, genus string) ([]*variety.PlantVariety, error) {
	q := r.baseSelect(ctx).
		Where(squirrel.ILike{"genus": genus}).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("name ASC")

	return r.FindAll(ctx, q)
}

// ListActive retrieves all non-deleted varieties.
func (r *VarietyRepo) ListActive(ctx context.Context) ([]*variety.PlantVariety, error) {
	q := r.baseSelect(ctx).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("name ASC")

	return r.FindAll(ctx, q)
}
