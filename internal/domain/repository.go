// Package domain holds the generic catalog service, its repository
// contract and the lifecycle hook registry shared by all catalogs.
package domain

import (
	"context"

	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/entity"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/id"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/domain/filter"
)

// ListFilter is the common filter for catalog list operations.
type ListFilter struct {
	// Search matches code and name as a substring.
	Search string

	IDs []id.ID

	// IncludeDeleted also returns rows with the deletion mark set.
	IncludeDeleted bool

	// ParentID and IsFolder narrow hierarchical catalogs.
	ParentID *string
	IsFolder *bool

	// AdvancedFilters are field conditions validated against the
	// repository whitelist.
	AdvancedFilters []filter.Item

	// OrderBy names a column, with a leading "-" for descending.
	OrderBy string

	Limit  int
	Offset int
}

// DefaultListFilter returns the defaults handlers start from.
func DefaultListFilter() ListFilter {
	return ListFilter{
		Limit:   50,
		OrderBy: "name",
	}
}

// ListResult is one page of items plus the unpaginated count.
type ListResult[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

// CatalogRepository is what a catalog service needs from storage.
// Delete is a soft delete; physical removal is not exposed.
type CatalogRepository[T entity.Validatable] interface {
	Create(ctx context.Context, entity T) error
	GetByID(ctx context.Context, id id.ID) (T, error)
	GetByCode(ctx context.Context, code string) (T, error)

	// Update applies optimistic locking on the version column.
	Update(ctx context.Context, entity T) error

	Delete(ctx context.Context, id id.ID) error
	SetDeletionMark(ctx context.Context, id id.ID, marked bool) error

	List(ctx context.Context, filter ListFilter) (ListResult[T], error)
	Exists(ctx context.Context, id id.ID) (bool, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)

	// GetTree returns the subtree under rootID (whole tree when nil);
	// GetPath walks from the root down to one entity.
	GetTree(ctx context.Context, rootID *id.ID) ([]T, error)
	GetPath(ctx context.Context, id id.ID) ([]T, error)
}

// HookEvent names a point in the catalog entity lifecycle.
type HookEvent string

const (
	BeforeCreate HookEvent = "before_create"
	AfterCreate  HookEvent = "after_create"
	BeforeUpdate HookEvent = "before_update"
	AfterUpdate  HookEvent = "after_update"
	BeforeDelete HookEvent = "before_delete"
	AfterDelete  HookEvent = "after_delete"
)

// Hook runs at one lifecycle point. A non-nil error from a before
// hook aborts the operation; after hooks run outside the transaction
// and their errors are only logged.
type Hook[T any] func(ctx context.Context, entity T) error

// HookRegistry collects hooks per lifecycle event. Registration is
// expected at wiring time, before the service handles requests; the
// registry is not safe for concurrent mutation.
type HookRegistry[T any] struct {
	hooks map[HookEvent][]Hook[T]
}

func NewHookRegistry[T any]() *HookRegistry[T] {
	return &HookRegistry[T]{
		hooks: make(map[HookEvent][]Hook[T]),
	}
}

// On registers hook for event. Hooks run in registration order.
func (r *HookRegistry[T]) On(event HookEvent, hook Hook[T]) {
	r.hooks[event] = append(r.hooks[event], hook)
}

// Run executes the hooks for event, stopping at the first error.
func (r *HookRegistry[T]) Run(ctx context.Context, event HookEvent, entity T) error {
	for _, hook := range r.hooks[event] {
		if err := hook(ctx, entity); err != nil {
			return err
		}
	}
	return nil
}

// Typed registration shorthands.

func (r *HookRegistry[T]) OnBeforeCreate(hook Hook[T]) { r.On(BeforeCreate, hook) }
func (r *HookRegistry[T]) OnAfterCreate(hook Hook[T])  { r.On(AfterCreate, hook) }
func (r *HookRegistry[T]) OnBeforeUpdate(hook Hook[T]) { r.On(BeforeUpdate, hook) }
func (r *HookRegistry[T]) OnAfterUpdate(hook Hook[T])  { r.On(AfterUpdate, hook) }
func (r *HookRegistry[T]) OnBeforeDelete(hook Hook[T]) { r.On(BeforeDelete, hook) }
func (r *HookRegistry[T]) OnAfterDelete(hook Hook[T])  { r.On(AfterDelete, hook) }

// Typed run shorthands used by the catalog service.

func (r *HookRegistry[T]) RunBeforeCreate(ctx context.Context, entity T) error {
	return r.Run(ctx, BeforeCreate, entity)
}

func (r *HookRegistry[T]) RunAfterCreate(ctx context.Context, entity T) error {
	return r.Run(ctx, AfterCreate, entity)
}

func (r *HookRegistry[T]) RunBeforeUpdate(ctx context.Context, entity T) error {
	return r.Run(ctx, BeforeUpdate, entity)
}

func (r *HookRegistry[T]) RunAfterUpdate(ctx context.Context, entity T) error {
	return r.Run(ctx, AfterUpdate, entity)
}

func (r *HookRegistry[T]) RunBeforeDelete(ctx context.Context, entity T) error {
	return r.Run(ctx, BeforeDelete, entity)
}

func (r *HookRegistry[T]) RunAfterDelete(ctx context.Context, entity T) error {
	return r.Run(ctx, AfterDelete, entity)
}
