package intake

import (
	"context"

	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/id"
)

// ListFilter filters upload lists.
type ListFilter struct {
	Status     *Status
	SupplierID *id.ID
	Limit      int
	Offset     int
}

// Repository defines persistence for intake uploads.
type Repository interface {
	Create(ctx context.Context, u *Upload) error
	GetByID(ctx context.Context, uploadID id.ID) (*Upload, error)
	Update(ctx context.Context, u *Upload) error
	List(ctx context.Context, f ListFilter) ([]*Upload, int64, error)
}
