package ledger

import "math"

// Summarize aggregates movements in a single pass. Positive quantities
// feed totalIn, negative ones totalOut, with the out side broken down by
// destination. Reservations accumulate separately and never touch the
// totals.
func Summarize(movements []StockMovement) Summary {
	var s Summary

	for _, m := range movements {
		if m.Type == TypeAllocated {
			s.Allocated += math.Abs(m.Quantity)
			continue
		}

		if m.Quantity > 0 {
			s.TotalIn += m.Quantity
			continue
		}

		out := math.Abs(m.Quantity)
		s.TotalOut += out

		if m.Destination == nil {
			continue
		}
		switch m.Destination.Kind {
		case DestOrder:
			s.SoldToOrders += out
		case DestBatch:
			s.TransplantedOut += out
		case DestLoss:
			s.Losses += out
		}
	}

	s.CurrentBalance = s.TotalIn - s.TotalOut
	return s
}

// BuildLedger replays the batch snapshot and returns movements plus the
// summary in one call.
func BuildLedger(batch BatchMeta, events []Event, allocations []Allocation, children []ChildBatch) Ledger {
	movements := BuildMovements(batch, events, allocations, children)
	return Ledger{
		Movements: movements,
		Summary:   Summarize(movements),
	}
}
