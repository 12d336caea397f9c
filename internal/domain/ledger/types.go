// Package ledger rebuilds a per-batch stock ledger from the append-only
// event log plus allocation rows. It is a pure computation: all data is
// fetched by the caller and replayed here into typed movements with a
// running balance.
package ledger

import (
	"time"

	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/id"
)

// BatchMeta is the slice of batch state the builder needs.
type BatchMeta struct {
	ID              id.ID
	Number          string
	InitialQuantity float64
	CreatedAt       time.Time
}

// Event is one immutable log record about a batch. Payload may be a
// JSON string, an already-decoded map, or nil.
type Event struct {
	ID       id.ID
	Type     string
	At       time.Time
	ByUserID *string
	UserName string
	Payload  any
}

// Allocation is a reservation or completed pick against an order line.
// Order and customer references may be absent (orphaned rows are skipped).
type Allocation struct {
	ID           id.ID
	Quantity     float64
	Status       string
	CreatedAt    time.Time
	OrderItemID  *string
	OrderID      *id.ID
	OrderNumber  *string
	CustomerName *string
}

// ChildBatch maps a split/transplant target batch id to its number for
// destination formatting.
type ChildBatch struct {
	ID     id.ID
	Number string
}

// Allocation statuses the builder understands.
const (
	StatusAllocated = "allocated"
	StatusPicked    = "picked"
)

// DestinationKind tags where stock went (or came from).
type DestinationKind string

const (
	DestSupplier   DestinationKind = "supplier"
	DestBatch      DestinationKind = "batch"
	DestOrder      DestinationKind = "order"
	DestLoss       DestinationKind = "loss"
	DestAdjustment DestinationKind = "adjustment"
)

// Destination carries the reference a movement points at.
type Destination struct {
	Kind DestinationKind `json:"kind"`
	ID   string          `json:"id,omitempty"`
	Name string          `json:"name,omitempty"`
}

// Movement type tags. Event-derived tags are the lowercase event type;
// these three are synthesized by the builder itself.
const (
	TypeInitial   = "initial"
	TypeAllocated = "allocated"
	TypePicked    = "picked"
)

// StockMovement is one derived ledger line. Quantity is signed
// (positive = stock increase). RunningBalance is nil for reservations,
// which never affect the balance.
type StockMovement struct {
	ID             string       `json:"id"`
	BatchID        id.ID        `json:"batchId"`
	At             time.Time    `json:"at"`
	Type           string       `json:"type"`
	Quantity       float64      `json:"quantity"`
	RunningBalance *float64     `json:"runningBalance,omitempty"`
	Title          string       `json:"title"`
	Details        string       `json:"details,omitempty"`
	Destination    *Destination `json:"destination,omitempty"`
	UserID         *string      `json:"userId,omitempty"`
	UserName       string       `json:"userName,omitempty"`
}

// Summary aggregates one pass over the movements. Allocated
// reservations are tracked separately and excluded from the in/out
// totals.
type Summary struct {
	TotalIn         float64 `json:"totalIn"`
	TotalOut        float64 `json:"totalOut"`
	SoldToOrders    float64 `json:"soldToOrders"`
	TransplantedOut float64 `json:"transplantedOut"`
	Losses          float64 `json:"losses"`
	Allocated       float64 `json:"allocated"`
	CurrentBalance  float64 `json:"currentBalance"`
}

// Ledger is the full result: movements in timestamp order plus totals.
type Ledger struct {
	Movements []StockMovement `json:"movements"`
	Summary   Summary         `json:"summary"`
}
