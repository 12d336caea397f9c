package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/id"
)

func testBatch(initial float64) BatchMeta {
	return BatchMeta{
		ID:              id.New(),
		Number:          "B-2026-00042",
		InitialQuantity: initial,
		CreatedAt:       time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC),
	}
}

func at(day, hour int) time.Time {
	return time.Date(2026, 1, day, hour, 0, 0, 0, time.UTC)
}

func strptr(s string) *string { return &s }

func TestBuildMovements_RoundTrip(t *testing.T) {
	batch := testBatch(100)
	orderID := id.New()

	events := []Event{
		{
			ID:      id.New(),
			Type:    "PICKED",
			At:      at(12, 10),
			Payload: map[string]any{"units_picked": float64(30)},
		},
	}
	allocations := []Allocation{
		{
			ID:          id.New(),
			Quantity:    10,
			Status:      StatusAllocated,
			CreatedAt:   at(13, 9),
			OrderID:     &orderID,
			OrderNumber: strptr("SO-1001"),
		},
	}

	movements := BuildMovements(batch, events, allocations, nil)
	require.Len(t, movements, 3)

	initial := movements[0]
	assert.Equal(t, TypeInitial, initial.Type)
	assert.Equal(t, float64(100), initial.Quantity)
	require.NotNil(t, initial.RunningBalance)
	assert.Equal(t, float64(100), *initial.RunningBalance)

	picked := movements[1]
	assert.Equal(t, "picked", picked.Type)
	assert.Equal(t, float64(-30), picked.Quantity)
	require.NotNil(t, picked.RunningBalance)
	assert.Equal(t, float64(70), *picked.RunningBalance)

	allocated := movements[2]
	assert.Equal(t, TypeAllocated, allocated.Type)
	assert.Equal(t, float64(-10), allocated.Quantity)
	assert.Nil(t, allocated.RunningBalance)

	summary := Summarize(movements)
	assert.Equal(t, float64(70), summary.CurrentBalance)
	assert.Equal(t, float64(10), summary.Allocated)
}

func TestBuildMovements_BalanceConservation(t *testing.T) {
	batch := testBatch(50)
	events := []Event{
		{ID: id.New(), Type: "TRANSPLANT_IN", At: at(11, 9), Payload: map[string]any{"units_moved": float64(20)}},
		{ID: id.New(), Type: "DUMP", At: at(12, 9), Payload: map[string]any{"units_dumped": float64(5)}},
		{ID: id.New(), Type: "ADJUSTMENT", At: at(13, 9), Payload: map[string]any{"diff": float64(-3)}},
	}

	movements := BuildMovements(batch, events, nil, nil)
	require.Len(t, movements, 4)

	var sum float64
	for _, m := range movements {
		sum += m.Quantity
	}
	last := movements[len(movements)-1]
	require.NotNil(t, last.RunningBalance)
	assert.Equal(t, sum, *last.RunningBalance)
	assert.Equal(t, float64(62), *last.RunningBalance)
}

func TestBuildMovements_MonotonicTimestamps(t *testing.T) {
	batch := testBatch(10)
	// Deliberately unordered inputs; allocation lands between the events.
	orderID := id.New()
	events := []Event{
		{ID: id.New(), Type: "DUMP", At: at(20, 9), Payload: map[string]any{"units_dumped": float64(2)}},
		{ID: id.New(), Type: "CHECKIN", At: at(11, 9), Payload: map[string]any{"qty": float64(4)}},
	}
	allocations := []Allocation{
		{ID: id.New(), Quantity: 3, Status: StatusPicked, CreatedAt: at(15, 9), OrderID: &orderID},
	}

	movements := BuildMovements(batch, events, allocations, nil)
	for i := 1; i < len(movements); i++ {
		assert.False(t, movements[i].At.Before(movements[i-1].At),
			"movements out of order at %d", i)
	}
}

func TestBuildMovements_CreationSuppressedWhenInitialSet(t *testing.T) {
	batch := testBatch(100)
	events := []Event{
		{ID: id.New(), Type: "CREATE", At: at(10, 9), Payload: map[string]any{"quantity": float64(100)}},
		{ID: id.New(), Type: "STOCK_RECEIVED", At: at(10, 10), Payload: map[string]any{"units_received": float64(100)}},
	}

	movements := BuildMovements(batch, events, nil, nil)
	require.Len(t, movements, 1)
	assert.Equal(t, TypeInitial, movements[0].Type)

	// Without an initial quantity, creation events stand on their own.
	batch.InitialQuantity = 0
	movements = BuildMovements(batch, events, nil, nil)
	require.Len(t, movements, 2)
	assert.Equal(t, "create", movements[0].Type)
	assert.Equal(t, "stock_received", movements[1].Type)
}

func TestBuildMovements_PickedAllocationDedup(t *testing.T) {
	batch := testBatch(100)
	orderID := id.New()
	itemID := "item-7"

	events := []Event{
		{
			ID:   id.New(),
			Type: "PICKED",
			At:   at(12, 9),
			Payload: map[string]any{
				"units_picked":  float64(25),
				"order_item_id": itemID,
			},
		},
	}
	allocations := []Allocation{
		{
			ID:          id.New(),
			Quantity:    25,
			Status:      StatusPicked,
			CreatedAt:   at(12, 10),
			OrderItemID: &itemID,
			OrderID:     &orderID,
		},
		{
			// Different order item, must survive.
			ID:          id.New(),
			Quantity:    5,
			Status:      StatusPicked,
			CreatedAt:   at(13, 9),
			OrderItemID: strptr("item-8"),
			OrderID:     &orderID,
		},
	}

	movements := BuildMovements(batch, events, allocations, nil)

	pickCount := 0
	for _, m := range movements {
		if m.Type == "picked" || m.Type == TypePicked {
			pickCount++
		}
	}
	assert.Equal(t, 2, pickCount, "duplicate pick was not suppressed")
}

func TestBuildMovements_FullMoveExcluded(t *testing.T) {
	batch := testBatch(40)
	splitID := id.New()
	events := []Event{
		// Location change only, no quantity impact.
		{ID: id.New(), Type: "MOVE", At: at(11, 9), Payload: map[string]any{"units_moved": float64(40)}},
		// Partial split, retained.
		{ID: id.New(), Type: "MOVE", At: at(12, 9), Payload: map[string]any{
			"units_moved":    float64(15),
			"split_batch_id": splitID.String(),
		}},
	}
	children := []ChildBatch{{ID: splitID, Number: "B-2026-00043"}}

	movements := BuildMovements(batch, events, nil, children)
	require.Len(t, movements, 2)

	split := movements[1]
	assert.Equal(t, "move", split.Type)
	assert.Equal(t, float64(-15), split.Quantity)
	require.NotNil(t, split.Destination)
	assert.Equal(t, DestBatch, split.Destination.Kind)
	assert.Equal(t, "B-2026-00043", split.Destination.Name)
}

func TestBuildMovements_PartialFlag(t *testing.T) {
	batch := testBatch(60)
	events := []Event{
		// Explicit partial flag, retained even without a split ref.
		{ID: id.New(), Type: "MOVE", At: at(11, 9), Payload: map[string]any{
			"units_moved": float64(20),
			"partial":     true,
		}},
		// Non-boolean flag reads as false; a full move again.
		{ID: id.New(), Type: "MOVE", At: at(12, 9), Payload: map[string]any{
			"units_moved": float64(60),
			"partial":     "yes",
		}},
	}

	movements := BuildMovements(batch, events, nil, nil)
	require.Len(t, movements, 2)
	assert.Equal(t, "move", movements[1].Type)
	assert.Equal(t, float64(-20), movements[1].Quantity)
}

func TestBuildMovements_InitialFallbackIsUTC(t *testing.T) {
	batch := testBatch(25)
	batch.CreatedAt = time.Time{}

	movements := BuildMovements(batch, nil, nil, nil)
	require.Len(t, movements, 1)
	assert.Equal(t, time.UTC, movements[0].At.Location())
	assert.WithinDuration(t, time.Now().UTC(), movements[0].At, time.Minute)
}

func TestBuildMovements_PayloadHandling(t *testing.T) {
	batch := testBatch(0)
	events := []Event{
		// JSON string payload
		{ID: id.New(), Type: "CHECKIN", At: at(11, 9), Payload: `{"qty": 12}`},
		// Unparseable payload degrades to empty map, event skipped
		{ID: id.New(), Type: "CHECKIN", At: at(12, 9), Payload: `{broken`},
		// Nil payload, skipped
		{ID: id.New(), Type: "DUMP", At: at(13, 9), Payload: nil},
		// Zero quantity, skipped
		{ID: id.New(), Type: "DUMP", At: at(14, 9), Payload: map[string]any{"units_dumped": float64(0)}},
		// Unrecognized type, skipped
		{ID: id.New(), Type: "NOTE_ADDED", At: at(15, 9), Payload: map[string]any{"qty": float64(3)}},
	}

	movements := BuildMovements(batch, events, nil, nil)
	require.Len(t, movements, 1)
	assert.Equal(t, float64(12), movements[0].Quantity)
}

func TestBuildMovements_QuantityKeyPrecedence(t *testing.T) {
	batch := testBatch(0)
	events := []Event{
		{ID: id.New(), Type: "CHECKIN", At: at(11, 9), Payload: map[string]any{
			"qty":   float64(7),
			"units": float64(99),
		}},
	}

	movements := BuildMovements(batch, events, nil, nil)
	require.Len(t, movements, 1)
	assert.Equal(t, float64(7), movements[0].Quantity, "qty must win over units")
}

func TestBuildMovements_OrphanedAllocationSkipped(t *testing.T) {
	batch := testBatch(20)
	allocations := []Allocation{
		{ID: id.New(), Quantity: 5, Status: StatusAllocated, CreatedAt: at(12, 9), OrderID: nil},
	}

	movements := BuildMovements(batch, nil, allocations, nil)
	for _, m := range movements {
		assert.NotEqual(t, TypeAllocated, m.Type)
	}
}

func TestBuildMovements_PickTitleFormatting(t *testing.T) {
	batch := testBatch(50)
	events := []Event{
		{ID: id.New(), Type: "DISPATCH", At: at(12, 9), Payload: map[string]any{
			"qty":           float64(10),
			"order_number":  "SO-2002",
			"customer_name": "Greenway Garden Centre",
		}},
	}

	movements := BuildMovements(batch, events, nil, nil)
	require.Len(t, movements, 2)

	dispatch := movements[1]
	assert.Equal(t, "Dispatched 10 units for order SO-2002 (Greenway Garden Centre)", dispatch.Title)
	require.NotNil(t, dispatch.Destination)
	assert.Equal(t, DestOrder, dispatch.Destination.Kind)
	assert.Equal(t, "SO-2002", dispatch.Destination.Name)
}
