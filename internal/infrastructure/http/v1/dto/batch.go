package dto

import (
	"time"

	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/entity"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/id"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/domain/batch"
)

// --- Request DTOs ---

// CreateBatchRequest is the request body for creating a batch.
type CreateBatchRequest struct {
	VarietyID       string     `json:"varietyId" binding:"required"`
	SizeID          string     `json:"sizeId" binding:"required"`
	SupplierID      *string    `json:"supplierId"`
	InitialQuantity float64    `json:"initialQuantity" binding:"required,gt=0"`
	Location        *string    `json:"location"`
	PlantedAt       *time.Time `json:"plantedAt"`
	ReadyAt         *time.Time `json:"readyAt"`
	Notes           *string    `json:"notes"`
}

// ToEntity converts DTO to domain entity. The IDs must be pre-parsed.
func (r *CreateBatchRequest) ToEntity(varietyID, sizeID id.ID, supplierID *id.ID) *batch.Batch {
	b := batch.NewBatch(varietyID, sizeID, r.InitialQuantity)
	b.SupplierID = supplierID
	b.Location = r.Location
	b.PlantedAt = r.PlantedAt
	b.ReadyAt = r.ReadyAt
	b.Notes = r.Notes
	return b
}

// UpdateBatchRequest is the request body for updating a batch.
type UpdateBatchRequest struct {
	Location *string    `json:"location"`
	ReadyAt  *time.Time `json:"readyAt"`
	Notes    *string    `json:"notes"`
	Version  int        `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateBatchRequest) ApplyTo(b *batch.Batch) {
	b.Location = r.Location
	b.ReadyAt = r.ReadyAt
	b.Notes = r.Notes
	b.Version = r.Version
}

// RecordEventRequest is the request body for appending a batch event.
type RecordEventRequest struct {
	Type    string            `json:"type" binding:"required"`
	Payload entity.Attributes `json:"payload"`
}

// AllocateRequest is the request body for reserving stock against an order.
type AllocateRequest struct {
	OrderID     string  `json:"orderId" binding:"required"`
	OrderItemID string  `json:"orderItemId" binding:"required"`
	Quantity    float64 `json:"quantity" binding:"required,gt=0"`
}

// SplitRequest is the request body for splitting units into a child batch.
type SplitRequest struct {
	Quantity float64 `json:"quantity" binding:"required,gt=0"`
}

// --- Response DTOs ---

// BatchResponse is the response body for a batch.
type BatchResponse struct {
	ID              string     `json:"id"`
	Number          string     `json:"number"`
	VarietyID       string     `json:"varietyId"`
	SizeID          string     `json:"sizeId"`
	SupplierID      *string    `json:"supplierId,omitempty"`
	ParentBatchID   *string    `json:"parentBatchId,omitempty"`
	InitialQuantity float64    `json:"initialQuantity"`
	Status          string     `json:"status"`
	Location        *string    `json:"location,omitempty"`
	PlantedAt       *time.Time `json:"plantedAt,omitempty"`
	ReadyAt         *time.Time `json:"readyAt,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
	Version         int        `json:"version"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// FromBatch creates response DTO from domain entity.
func FromBatch(b *batch.Batch) *BatchResponse {
	resp := &BatchResponse{
		ID:              b.ID.String(),
		Number:          b.Number,
		VarietyID:       b.VarietyID.String(),
		SizeID:          b.SizeID.String(),
		InitialQuantity: b.InitialQuantity,
		Status:          string(b.Status),
		Location:        b.Location,
		PlantedAt:       b.PlantedAt,
		ReadyAt:         b.ReadyAt,
		Notes:           b.Notes,
		Version:         b.Version,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
	if b.SupplierID != nil {
		s := b.SupplierID.String()
		resp.SupplierID = &s
	}
	if b.ParentBatchID != nil {
		p := b.ParentBatchID.String()
		resp.ParentBatchID = &p
	}
	return resp
}

// AllocationResponse is the response body for an allocation.
type AllocationResponse struct {
	ID           string    `json:"id"`
	BatchID      string    `json:"batchId"`
	OrderID      *string   `json:"orderId,omitempty"`
	OrderItemID  *string   `json:"orderItemId,omitempty"`
	Quantity     float64   `json:"quantity"`
	Status       string    `json:"status"`
	OrderNumber  *string   `json:"orderNumber,omitempty"`
	CustomerName *string   `json:"customerName,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// FromAllocation creates response DTO from domain entity.
func FromAllocation(a *batch.Allocation) *AllocationResponse {
	resp := &AllocationResponse{
		ID:           a.ID.String(),
		BatchID:      a.BatchID.String(),
		OrderItemID:  a.OrderItemID,
		Quantity:     a.Quantity,
		Status:       string(a.Status),
		OrderNumber:  a.OrderNumber,
		CustomerName: a.CustomerName,
		CreatedAt:    a.CreatedAt,
	}
	if a.OrderID != nil {
		o := a.OrderID.String()
		resp.OrderID = &o
	}
	return resp
}

// EventResponse is the response body for a batch event.
type EventResponse struct {
	ID       string            `json:"id"`
	BatchID  string            `json:"batchId"`
	Type     string            `json:"type"`
	At       time.Time         `json:"at"`
	ByUserID *string           `json:"byUserId,omitempty"`
	UserName string            `json:"userName,omitempty"`
	Payload  entity.Attributes `json:"payload,omitempty"`
}

// FromEvent creates response DTO from domain entity.
func FromEvent(e *batch.BatchEvent) *EventResponse {
	return &EventResponse{
		ID:       e.ID.String(),
		BatchID:  e.BatchID.String(),
		Type:     e.Type,
		At:       e.At,
		ByUserID: e.ByUserID,
		UserName: e.UserName,
		Payload:  e.Payload,
	}
}
