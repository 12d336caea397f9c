package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/domain/catalogs/supplier"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/infrastructure/storage/postgres"
)

const supplierTable = "cat_suppliers"

// SupplierRepo implements supplier.Repository.
type SupplierRepo struct {
	*BaseCatalogRepo[*supplier.Supplier]
}

// NewSupplierRepo creates a new supplier repository.
func NewSupplierRepo(txm *postgres.TxManager) *SupplierRepo {
	return &SupplierRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			supplierTable,
			postgres.ExtractDBColumns[supplier.Supplier](),
			func() *supplier.Supplier { return &supplier.Supplier{} },
		),
	}
}

// ListActive retrieves all non-deleted suppliers.
func (r *SupplierRepo) ListActive(ctx context.Context) ([]*supplier.Supplier, error) {
	q := r.baseSelect(ctx).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("name ASC")

	return r.FindAll(ctx, q)
}
