// Package batch provides the production batch aggregate: the trackable
// unit of plant stock, its append-only event log, and order
// allocations. Quantity is never stored on the batch; it is derived by
// the ledger from initial quantity plus events.
package batch

import (
	"context"
	"strings"
	"time"

	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/apperror"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/entity"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/id"
)

// Status is the batch lifecycle state.
type Status string

const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
	StatusDumped   Status = "dumped"
)

// Batch represents a trackable quantity of one variety in one size.
type Batch struct {
	entity.BaseAudited

	// Number is the human-facing batch number (generated)
	Number string `db:"number" json:"number"`

	// VarietyID references the plant variety catalog
	VarietyID id.ID `db:"variety_id" json:"varietyId"`

	// SizeID references the plant size catalog
	SizeID id.ID `db:"size_id" json:"sizeId"`

	// SupplierID references the supplier the young plants came from
	SupplierID *id.ID `db:"supplier_id" json:"supplierId,omitempty"`

	// ParentBatchID is set when this batch was split off another
	ParentBatchID *id.ID `db:"parent_batch_id" json:"parentBatchId,omitempty"`

	// InitialQuantity is the unit count the batch started with.
	// Zero means the opening stock arrives via events instead.
	InitialQuantity float64 `db:"initial_quantity" json:"initialQuantity"`

	// Status is the lifecycle state
	Status Status `db:"status" json:"status"`

	// Location is the current growing location (tunnel/bay)
	Location *string `db:"location" json:"location,omitempty"`

	// PlantedAt is when the batch was potted/stuck
	PlantedAt *time.Time `db:"planted_at" json:"plantedAt,omitempty"`

	// ReadyAt is the expected saleable date
	ReadyAt *time.Time `db:"ready_at" json:"readyAt,omitempty"`

	// Notes is a free-form growing note
	Notes *string `db:"notes" json:"notes,omitempty"`
}

// NewBatch creates a new active Batch.
func NewBatch(varietyID, sizeID id.ID, initialQuantity float64) *Batch {
	return &Batch{
		BaseAudited:     entity.NewBaseAudited(),
		VarietyID:       varietyID,
		SizeID:          sizeID,
		InitialQuantity: initialQuantity,
		Status:          StatusActive,
	}
}

// Validate implements entity.Validatable interface.
func (b *Batch) Validate(ctx context.Context) error {
	if id.IsNil(b.VarietyID) {
		return apperror.NewValidation("variety is required").
			WithDetail("field", "varietyId")
	}
	if id.IsNil(b.SizeID) {
		return apperror.NewValidation("size is required").
			WithDetail("field", "sizeId")
	}
	if b.InitialQuantity < 0 {
		return apperror.NewValidation("initial quantity cannot be negative").
			WithDetail("field", "initialQuantity")
	}
	if !isValidStatus(b.Status) {
		return apperror.NewValidation("invalid batch status").
			WithDetail("field", "status").
			WithDetail("value", string(b.Status))
	}
	return nil
}

// IsArchived reports whether the batch no longer accepts events.
func (b *Batch) IsArchived() bool {
	return b.Status == StatusArchived || b.Status == StatusDumped
}

func isValidStatus(s Status) bool {
	switch s {
	case StatusActive, StatusArchived, StatusDumped:
		return true
	}
	return false
}

// --- Events ---

// BatchEvent is one immutable log record about a batch. Events are
// append-only; nothing in the system updates or deletes them.
type BatchEvent struct {
	ID       id.ID             `db:"id" json:"id"`
	BatchID  id.ID             `db:"batch_id" json:"batchId"`
	Type     string            `db:"type" json:"type"`
	At       time.Time         `db:"at" json:"at"`
	ByUserID *string           `db:"by_user_id" json:"byUserId,omitempty"`
	UserName string            `db:"user_name" json:"userName,omitempty"`
	Payload  entity.Attributes `db:"payload" json:"payload,omitempty"`
}

// NewBatchEvent creates an event stamped now.
func NewBatchEvent(batchID id.ID, eventType string, payload entity.Attributes) *BatchEvent {
	return &BatchEvent{
		ID:      id.New(),
		BatchID: batchID,
		Type:    strings.ToUpper(strings.TrimSpace(eventType)),
		At:      time.Now().UTC(),
		Payload: payload,
	}
}

// Validate implements entity.Validatable interface.
func (e *BatchEvent) Validate(ctx context.Context) error {
	if id.IsNil(e.BatchID) {
		return apperror.NewValidation("batch is required").
			WithDetail("field", "batchId")
	}
	if strings.TrimSpace(e.Type) == "" {
		return apperror.NewValidation("event type is required").
			WithDetail("field", "type")
	}
	return nil
}

// --- Allocations ---

// AllocationStatus is the allocation lifecycle state.
type AllocationStatus string

const (
	AllocationAllocated AllocationStatus = "allocated"
	AllocationPicked    AllocationStatus = "picked"
	AllocationCancelled AllocationStatus = "cancelled"
)

// Allocation reserves (or records the pick of) batch quantity against
// an order line. Order and customer names are joined in by the
// repository for ledger rendering; they are read-only here.
type Allocation struct {
	ID          id.ID            `db:"id" json:"id"`
	BatchID     id.ID            `db:"batch_id" json:"batchId"`
	OrderID     *id.ID           `db:"order_id" json:"orderId,omitempty"`
	OrderItemID *string          `db:"order_item_id" json:"orderItemId,omitempty"`
	Quantity    float64          `db:"quantity" json:"quantity"`
	Status      AllocationStatus `db:"status" json:"status"`
	CreatedAt   time.Time        `db:"created_at" json:"createdAt"`

	// Joined references (read-only)
	OrderNumber  *string `db:"order_number" json:"orderNumber,omitempty"`
	CustomerName *string `db:"customer_name" json:"customerName,omitempty"`
}

// NewAllocation creates a reservation against an order line.
func NewAllocation(batchID, orderID id.ID, orderItemID string, quantity float64) *Allocation {
	oid := orderID
	item := orderItemID
	return &Allocation{
		ID:          id.New(),
		BatchID:     batchID,
		OrderID:     &oid,
		OrderItemID: &item,
		Quantity:    quantity,
		Status:      AllocationAllocated,
		CreatedAt:   time.Now().UTC(),
	}
}

// Validate implements entity.Validatable interface.
func (a *Allocation) Validate(ctx context.Context) error {
	if id.IsNil(a.BatchID) {
		return apperror.NewValidation("batch is required").
			WithDetail("field", "batchId")
	}
	if a.Quantity <= 0 {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("field", "quantity")
	}
	return nil
}
