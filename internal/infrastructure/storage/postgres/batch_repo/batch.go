// Package batch_repo provides the PostgreSQL implementation of the batch
// repository: batches, their append-only event log, and allocations.
package batch_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/apperror"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/id"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/domain/batch"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/domain/filter"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/infrastructure/storage/postgres"
)

const (
	batchTable      = "batches"
	eventTable      = "batch_events"
	allocationTable = "batch_allocations"
)

// Compile-time check.
var _ batch.Repository = (*BatchRepo)(nil)

// BatchRepo implements batch.Repository.
type BatchRepo struct {
	txm       *postgres.TxManager
	batchCols []string
	eventCols []string
	allocCols []string
}

// NewBatchRepo creates a new batch repository.
func NewBatchRepo(txm *postgres.TxManager) *BatchRepo {
	return &BatchRepo{
		txm:       txm,
		batchCols: postgres.ExtractDBColumns[batch.Batch](),
		eventCols: postgres.ExtractDBColumns[batch.BatchEvent](),
		allocCols: []string{"id", "batch_id", "order_id", "order_item_id", "quantity", "status", "created_at"},
	}
}

func (r *BatchRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *BatchRepo) querier(ctx context.Context) postgres.Querier {
	return r.txm.GetQuerier(ctx)
}

// Create inserts a new batch.
func (r *BatchRepo) Create(ctx context.Context, b *batch.Batch) error {
	data := postgres.StructToMap(b)

	filtered := make(map[string]any, len(r.batchCols))
	for _, col := range r.batchCols {
		if val, ok := data[col]; ok {
			filtered[col] = val
		}
	}

	sql, args, err := r.builder().Insert(batchTable).SetMap(filtered).ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.NewDuplicate("batch", "number", b.Number).WithCause(err)
		}
		return fmt.Errorf("insert batch: %w", err)
	}

	return nil
}

// GetByID retrieves a batch by ID.
func (r *BatchRepo) GetByID(ctx context.Context, batchID id.ID) (*batch.Batch, error) {
	q := r.builder().
		Select(r.batchCols...).
		From(batchTable).
		Where(squirrel.Eq{"id": batchID}).
		Limit(1)

	return r.getOne(ctx, q, batchID.String())
}

// GetByNumber retrieves a batch by its human-readable number.
func (r *BatchRepo) GetByNumber(ctx context.Context, number string) (*batch.Batch, error) {
	q := r.builder().
		Select(r.batchCols...).
		From(batchTable).
		Where(squirrel.Eq{"number": number}).
		Limit(1)

	return r.getOne(ctx, q, number)
}

func (r *BatchRepo) getOne(ctx context.Context, q squirrel.SelectBuilder, ref string) (*batch.Batch, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var b batch.Batch
	if err := pgxscan.Get(ctx, r.querier(ctx), &b, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("batch", ref)
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}

	return &b, nil
}

// Update modifies a batch with optimistic locking.
func (r *BatchRepo) Update(ctx context.Context, b *batch.Batch) error {
	data := postgres.StructToMap(b)

	version, ok := data["version"].(int)
	if !ok {
		return fmt.Errorf("batch has no version field")
	}

	filtered := make(map[string]any, len(r.batchCols))
	for _, col := range r.batchCols {
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
		Update(batchTable).
		SetMap(filtered).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": b.ID}).
		Where(squirrel.Eq{"version": version})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update batch: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification("batch", b.ID.String())
	}

	return nil
}

// List retrieves batches with filtering and pagination.
func (r *BatchRepo) List(ctx context.Context, f batch.ListFilter) ([]*batch.Batch, int64, error) {
	q := r.builder().
		Select(r.batchCols...).
		From(batchTable)

	if !f.IncludeArchived {
		q = q.Where(squirrel.Eq{"deletion_mark": false}).
			Where(squirrel.NotEq{"status": batch.StatusArchived})
	}
	if f.Search != "" {
		q = q.Where(squirrel.ILike{"number": "%" + f.Search + "%"})
	}
	if f.VarietyID != nil {
		q = q.Where(squirrel.Eq{"variety_id": *f.VarietyID})
	}
	if f.SizeID != nil {
		q = q.Where(squirrel.Eq{"size_id": *f.SizeID})
	}
	if f.SupplierID != nil {
		q = q.Where(squirrel.Eq{"supplier_id": *f.SupplierID})
	}
	if f.Status != nil {
		q = q.Where(squirrel.Eq{"status": *f.Status})
	}
	if f.Location != nil {
		q = q.Where(squirrel.ILike{"location": *f.Location})
	}
	if f.PlantedAfter != nil {
		q = q.Where(squirrel.GtOrEq{"planted_at": *f.PlantedAfter})
	}
	if f.PlantedBefore != nil {
		q = q.Where(squirrel.LtOrEq{"planted_at": *f.PlantedBefore})
	}

	q, err := r.applyAdvancedFilters(q, f.AdvancedFilters)
	if err != nil {
		return nil, 0, err
	}

	// Count before pagination
	countSQL, countArgs, err := r.builder().
		Select("COUNT(*)").
		FromSelect(q, "sub").
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int64
	querier := r.querier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count batches: %w", err)
	}

	orderBy := f.OrderBy
	if orderBy == "" {
		orderBy = "created_at DESC"
	}
	q = q.OrderBy(orderBy)

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

	var items []*batch.Batch
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return nil, 0, fmt.Errorf("list batches: %w", err)
	}

	return items, total, nil
}

func (r *BatchRepo) applyAdvancedFilters(q squirrel.SelectBuilder, filters []filter.Item) (squirrel.SelectBuilder, error) {
	validCols := make(map[string]bool, len(r.batchCols))
	for _, col := range r.batchCols {
		validCols[col] = true
	}

	for _, item := range filters {
		if !validCols[item.Field] {
			return q, fmt.Errorf("invalid filter column: %s", item.Field)
		}

		switch item.Operator {
		case filter.Equal:
			q = q.Where(squirrel.Eq{item.Field: item.Value})
		case filter.NotEqual:
			q = q.Where(squirrel.NotEq{item.Field: item.Value})
		case filter.Less:
			q = q.Where(squirrel.Lt{item.Field: item.Value})
		case filter.Greater:
			q = q.Where(squirrel.Gt{item.Field: item.Value})
		case filter.LessOrEqual:
			q = q.Where(squirrel.LtOrEq{item.Field: item.Value})
		case filter.GreaterOrEqual:
			q = q.Where(squirrel.GtOrEq{item.Field: item.Value})
		case filter.InList:
			q = q.Where(squirrel.Eq{item.Field: item.Value})
		case filter.NotInList:
			q = q.Where(squirrel.NotEq{item.Field: item.Value})
		case filter.Contains:
			q = q.Where(squirrel.ILike{item.Field: fmt.Sprintf("%%%v%%", item.Value)})
		case filter.IsNull:
			q = q.Where(squirrel.Eq{item.Field: nil})
		case filter.IsNotNull:
			q = q.Where(squirrel.NotEq{item.Field: nil})
		default:
			return q, fmt.Errorf("unsupported filter operator: %s", item.Operator)
		}
	}

	return q, nil
}

// ListChildren returns batches split off the given batch.
func (r *BatchRepo) ListChildren(ctx context.Context, batchID id.ID) ([]*batch.Batch, error) {
	q := r.builder().
		Select(r.batchCols...).
		From(batchTable).
		Where(squirrel.Eq{"parent_batch_id": batchID}).
		OrderBy("created_at ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*batch.Batch
	if err := pgxscan.Select(ctx, r.querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}

	return items, nil
}

// CreateEvent appends to the event log. Events are never updated.
func (r *BatchRepo) CreateEvent(ctx context.Context, e *batch.BatchEvent) error {
	data := postgres.StructToMap(e)

	filtered := make(map[string]any, len(r.eventCols))
	for _, col := range r.eventCols {
		if val, ok := data[col]; ok {
			filtered[col] = val
		}
	}

	sql, args, err := r.builder().Insert(eventTable).SetMap(filtered).ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert batch event: %w", err)
	}

	return nil
}

// ListEvents returns the full event log in ascending time order.
func (r *BatchRepo) ListEvents(ctx context.Context, batchID id.ID) ([]*batch.BatchEvent, error) {
	q := r.builder().
		Select(r.eventCols...).
		From(eventTable).
		Where(squirrel.Eq{"batch_id": batchID}).
		OrderBy("at ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*batch.BatchEvent
	if err := pgxscan.Select(ctx, r.querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	return items, nil
}

// CreateAllocation inserts a new allocation.
func (r *BatchRepo) CreateAllocation(ctx context.Context, a *batch.Allocation) error {
	data := postgres.StructToMap(a)

	filtered := make(map[string]any, len(r.allocCols))
	for _, col := range r.allocCols {
		if val, ok := data[col]; ok {
			filtered[col] = val
		}
	}

	sql, args, err := r.builder().Insert(allocationTable).SetMap(filtered).ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert allocation: %w", err)
	}

	return nil
}

// ListAllocations returns allocations with order number and customer name
// joined in from the orders table.
func (r *BatchRepo) ListAllocations(ctx context.Context, batchID id.ID) ([]*batch.Allocation, error) {
	cols := make([]string, 0, len(r.allocCols)+2)
	for _, col := range r.allocCols {
		cols = append(cols, "a."+col)
	}
	cols = append(cols, "o.number AS order_number", "o.customer_name AS customer_name")

	q := r.builder().
		Select(cols...).
		From(allocationTable + " a").
		LeftJoin("orders o ON o.id = a.order_id").
		Where(squirrel.Eq{"a.batch_id": batchID}).
		OrderBy("a.created_at ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*batch.Allocation
	if err := pgxscan.Select(ctx, r.querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list allocations: %w", err)
	}

	return items, nil
}

// SetAllocationStatus transitions an allocation.
func (r *BatchRepo) SetAllocationStatus(ctx context.Context, allocationID id.ID, status batch.AllocationStatus) error {
	q := r.builder().
		Update(allocationTable).
		Set("status", status).
		Where(squirrel.Eq{"id": allocationID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("set allocation status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("allocation", allocationID.String())
	}

	return nil
}
