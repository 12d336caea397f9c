// Package intake_repo provides the PostgreSQL implementation of the intake
// upload repository.
package intake_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/apperror"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/id"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/domain/intake"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/infrastructure/storage/postgres"
)

const uploadTable = "intake_uploads"

// Compile-time check.
var _ intake.Repository = (*UploadRepo)(nil)

// UploadRepo implements intake.Repository. The extraction and match result
// are stored as JSONB documents.
type UploadRepo struct {
	txm  *postgres.TxManager
	cols []string
}

// NewUploadRepo creates a new upload repository.
func NewUploadRepo(txm *postgres.TxManager) *UploadRepo {
	return &UploadRepo{
		txm:  txm,
		cols: postgres.ExtractDBColumns[intake.Upload](),
	}
}

func (r *UploadRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create inserts a new upload.
func (r *UploadRepo) Create(ctx context.Context, u *intake.Upload) error {
	data := postgres.StructToMap(u)

	filtered := make(map[string]any, len(r.cols))
	for _, col := range r.cols {
		if val, ok := data[col]; ok {
			filtered[col] = val
		}
	}

	sql, args, err := r.builder().Insert(uploadTable).SetMap(filtered).ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert upload: %w", err)
	}

	return nil
}

// GetByID retrieves an upload by ID.
func (r *UploadRepo) GetByID(ctx context.Context, uploadID id.ID) (*intake.Upload, error) {
	q := r.builder().
		Select(r.cols...).
		From(uploadTable).
		Where(squirrel.Eq{"id": uploadID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var u intake.Upload
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &u, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("upload", uploadID.String())
		}
		return nil, fmt.Errorf("get upload: %w", err)
	}

	return &u, nil
}

// Update modifies an upload with optimistic locking.
func (r *UploadRepo) Update(ctx context.Context, u *intake.Upload) error {
	data := postgres.StructToMap(u)

	version, ok := data["version"].(int)
	if !ok {
		return fmt.Errorf("upload has no version field")
	}

	filtered := make(map[string]any, len(r.cols))
	for _, col := range r.cols {
		if col == "id" || col == "created_at" || col == "created_by" {
			continue
		}
		if col == "version" || col == "updated_at" {
			continue // managed by repo
		}
		if val, ok := data[col]; ok {
			filtered[col] = val
		}
	}

	q := r.builder().
		Update(uploadTable).
		SetMap(filtered).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": u.ID}).
		Where(squirrel.Eq{"version": version})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update upload: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification("upload", u.ID.String())
	}

	return nil
}

// List retrieves uploads with filtering and pagination, newest first.
func (r *UploadRepo) List(ctx context.Context, f intake.ListFilter) ([]*intake.Upload, int64, error) {
	q := r.builder().
		Select(r.cols...).
		From(uploadTable).
		Where(squirrel.Eq{"deletion_mark": false})

	if f.Status != nil {
		q = q.Where(squirrel.Eq{"status": *f.Status})
	}
	if f.SupplierID != nil {
		q = q.Where(squirrel.Eq{"supplier_id": *f.SupplierID})
	}

	countSQL, countArgs, err := r.builder().
		Select("COUNT(*)").
		FromSelect(q, "sub").
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	var total int64
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count uploads: %w", err)
	}

	q = q.OrderBy("created_at DESC")
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		q = q.Offset(uint64(f.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build query: %w", err)
	}

	var items []*intake.Upload
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return nil, 0, fmt.Errorf("list uploads: %w", err)
	}

	return items, total, nil
}
