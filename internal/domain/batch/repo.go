package batch

import (
	"context"
	"time"

	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/id"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/domain/filter"
)

// ListFilter filters batch lists.
type ListFilter struct {
	Search          string // substring on number
	VarietyID       *id.ID
	SizeID          *id.ID
	SupplierID      *id.ID
	Status          *Status
	Location        *string
	PlantedAfter    *time.Time
	PlantedBefore   *time.Time
	IncludeArchived bool
	AdvancedFilters []filter.Item
	OrderBy         string
	Limit           int
	Offset          int
}

// Repository defines persistence for batches, their event log and
// allocations.
type Repository interface {
	Create(ctx context.Context, b *Batch) error
	GetByID(ctx context.Context, batchID id.ID) (*Batch, error)
	GetByNumber(ctx context.Context, number string) (*Batch, error)
	Update(ctx context.Context, b *Batch) error
	List(ctx context.Context, f ListFilter) ([]*Batch, int64, error)

	// ListChildren returns batches split off the given batch.
	ListChildren(ctx context.Context, batchID id.ID) ([]*Batch, error)

	// CreateEvent appends to the event log. Events are never updated.
	CreateEvent(ctx context.Context, e *BatchEvent) error

	// ListEvents returns the full event log in ascending time order.
	ListEvents(ctx context.Context, batchID id.ID) ([]*BatchEvent, error)

	CreateAllocation(ctx context.Context, a *Allocation) error

	// ListAllocations returns allocations with order number and
	// customer name joined in.
	ListAllocations(ctx context.Context, batchID id.ID) ([]*Allocation, error)

	// SetAllocationStatus transitions an allocation.
	SetAllocationStatus(ctx context.Context, allocationID id.ID, status AllocationStatus) error
}
