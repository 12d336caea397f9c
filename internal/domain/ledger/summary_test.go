package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/id"
)

func TestSummarize_DestinationBreakdown(t *testing.T) {
	batch := testBatch(200)
	splitID := id.New()
	orderID := id.New()

	events := []Event{
		{ID: id.New(), Type: "PICKED", At: at(12, 9), Payload: map[string]any{
			"units_picked": float64(60),
			"order_number": "SO-1",
		}},
		{ID: id.New(), Type: "TRANSPLANT_OUT", At: at(13, 9), Payload: map[string]any{
			"units_moved": float64(40),
			"to_batch_id": splitID.String(),
		}},
		{ID: id.New(), Type: "LOSS", At: at(14, 9), Payload: map[string]any{
			"qty":    float64(10),
			"reason": "botrytis",
		}},
	}
	allocations := []Allocation{
		{ID: id.New(), Quantity: 15, Status: StatusAllocated, CreatedAt: at(15, 9), OrderID: &orderID},
	}

	result := BuildLedger(batch, events, allocations, []ChildBatch{{ID: splitID, Number: "B-2026-00050"}})

	s := result.Summary
	assert.Equal(t, float64(200), s.TotalIn)
	assert.Equal(t, float64(110), s.TotalOut)
	assert.Equal(t, float64(60), s.SoldToOrders)
	assert.Equal(t, float64(40), s.TransplantedOut)
	assert.Equal(t, float64(10), s.Losses)
	assert.Equal(t, float64(15), s.Allocated)
	assert.Equal(t, float64(90), s.CurrentBalance)

	// The summary balance agrees with the last non-reservation movement.
	var lastBalance *float64
	for _, m := range result.Movements {
		if m.RunningBalance != nil {
			lastBalance = m.RunningBalance
		}
	}
	require.NotNil(t, lastBalance)
	assert.Equal(t, s.CurrentBalance, *lastBalance)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.TotalIn)
	assert.Zero(t, s.TotalOut)
	assert.Zero(t, s.CurrentBalance)
}

func TestBuildLedger_ZeroInitialNoSyntheticEntry(t *testing.T) {
	batch := BatchMeta{ID: id.New(), Number: "B-2026-00060", CreatedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)}

	result := BuildLedger(batch, nil, nil, nil)
	assert.Empty(t, result.Movements)
	assert.Zero(t, result.Summary.CurrentBalance)
}
