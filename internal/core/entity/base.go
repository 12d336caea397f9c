package entity

import (
	"context"
	"time"

	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/id"
)

// Validatable is implemented by every persisted entity. Validate
// checks internal invariants only; rules needing database access
// belong in the services.
type Validatable interface {
	Validate(ctx context.Context) error
}

// BaseEntity carries the fields every table shares: UUIDv7 primary
// key, soft-delete mark, optimistic-lock version and a JSONB bag for
// custom attributes.
type BaseEntity struct {
	ID           id.ID      `db:"id" json:"id"`
	DeletionMark bool       `db:"deletion_mark" json:"deletionMark"`
	Version      int        `db:"version" json:"version"`
	Attributes   Attributes `db:"attributes" json:"attributes,omitempty"`
}

// NewBaseEntity assigns a fresh id at version 1.
func NewBaseEntity() BaseEntity {
	return BaseEntity{
		ID:      id.New(),
		Version: 1,
	}
}

// Touch bumps the optimistic-lock version.
func (b *BaseEntity) Touch() {
	b.Version++
}

// BaseAudited adds timestamps and user stamps for operational
// records such as batches and intake uploads.
type BaseAudited struct {
	BaseEntity

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
	CreatedBy string    `db:"created_by" json:"createdBy,omitempty"`
	UpdatedBy string    `db:"updated_by" json:"updatedBy,omitempty"`
}

// NewBaseAudited stamps both timestamps with the same UTC instant.
func NewBaseAudited() BaseAudited {
	now := time.Now().UTC()
	return BaseAudited{
		BaseEntity: NewBaseEntity(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Touch refreshes UpdatedAt and bumps the version.
func (b *BaseAudited) Touch() {
	b.UpdatedAt = time.Now().UTC()
	b.BaseEntity.Touch()
}

// BaseCatalog is BaseEntity under a catalog-specific name; reference
// data carries no per-row audit fields.
type BaseCatalog struct {
	BaseEntity
}

// NewBaseCatalog creates a BaseCatalog with a generated id.
func NewBaseCatalog() BaseCatalog {
	return BaseCatalog{
		BaseEntity: NewBaseEntity(),
	}
}
