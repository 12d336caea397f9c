package ledger

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/entity"
)

// direction classifies how a recognized event type moves stock.
type direction int

const (
	// dirIn forces a positive quantity
	dirIn direction = iota + 1
	// dirOut forces a negative quantity
	dirOut
	// dirSigned keeps the raw signed payload value (adjustments)
	dirSigned
)

// eventDirections is the recognized stock-event set. Events with any
// other type are not ledger movements and are skipped.
var eventDirections = map[string]direction{
	"CHECKIN":          dirIn,
	"CHECK_IN":         dirIn,
	"CREATE":           dirIn,
	"TRANSPLANT_IN":    dirIn,
	"PROPAGATION_IN":   dirIn,
	"MOVE_IN":          dirIn,
	"PROPAGATE":        dirIn,
	"STOCK_RECEIVED":   dirIn,
	"BATCH_ACTUALIZED": dirIn,
	"ACTUALIZED":       dirIn,
	"MOVE":             dirOut,
	"CONSUMED":         dirOut,
	"PICKED":           dirOut,
	"SALE":             dirOut,
	"DISPATCH":         dirOut,
	"LOSS":             dirOut,
	"DUMP":             dirOut,
	"TRANSPLANT_OUT":   dirOut,
	"TRANSPLANT_TO":    dirOut,
	"ADJUSTMENT":       dirSigned,
}

// creationTypes duplicate the batch's initial quantity. When the batch
// carries initialQuantity > 0 the synthetic initial entry already
// accounts for that stock, so these events are suppressed entirely.
var creationTypes = map[string]bool{
	"CREATE":           true,
	"MOVE_IN":          true,
	"PROPAGATE":        true,
	"CHECKIN":          true,
	"CHECK_IN":         true,
	"STOCK_RECEIVED":   true,
	"BATCH_ACTUALIZED": true,
	"ACTUALIZED":       true,
}

// pickEventTypes are the event types that represent an order pick and
// participate in allocation dedup.
var pickEventTypes = map[string]bool{
	"PICKED":   true,
	"SALE":     true,
	"DISPATCH": true,
}

// quantityKeys is the payload probe order. Historical writers used
// different key names; first present wins.
var quantityKeys = []string{
	"qty",
	"quantity",
	"units_picked",
	"units",
	"units_dumped",
	"units_moved",
	"units_received",
	"computed_units",
	"consumedQuantity",
	"actualQuantity",
	"diff",
}

// parsePayload normalizes an event payload to a key-value map. JSON
// strings are decoded; null or unparseable payloads become an empty
// map so the event is skipped for lack of quantity, never an error.
func parsePayload(raw any) entity.Attributes {
	switch v := raw.(type) {
	case nil:
		return entity.Attributes{}
	case entity.Attributes:
		return v
	case map[string]any:
		return entity.Attributes(v)
	case []byte:
		return decodePayloadJSON(string(v))
	case string:
		return decodePayloadJSON(v)
	default:
		return entity.Attributes{}
	}
}

func decodePayloadJSON(s string) entity.Attributes {
	var m map[string]any
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	if err := dec.Decode(&m); err != nil || m == nil {
		return entity.Attributes{}
	}
	return entity.Attributes(m)
}

// extractQuantity probes the payload for a quantity using the alias
// list. The first key present wins, even when its value is unusable.
func extractQuantity(payload entity.Attributes) (float64, bool) {
	for _, key := range quantityKeys {
		if !payload.Has(key) {
			continue
		}
		return payload.GetFloat64(key)
	}
	return 0, false
}

// isPartialMove reports whether a MOVE event actually split stock off.
// Full-batch moves are location changes with no quantity impact.
func isPartialMove(payload entity.Attributes) bool {
	if payload.GetBool("partial") {
		return true
	}
	if split := payload.GetString("split_batch_id"); split != "" {
		return true
	}
	return false
}

// BuildMovements replays the event log and allocation rows of one batch
// into a chronological list of stock movements with running balances.
//
// The caller supplies a consistent snapshot: the batch row, its full
// event list, every allocation referencing it, and the child batches it
// split into (for destination labels). No I/O happens here.
func BuildMovements(batch BatchMeta, events []Event, allocations []Allocation, children []ChildBatch) []StockMovement {
	childNumbers := make(map[string]string, len(children))
	for _, c := range children {
		childNumbers[c.ID.String()] = c.Number
	}

	movements := make([]StockMovement, 0, len(events)+len(allocations)+1)

	if batch.InitialQuantity > 0 {
		at := batch.CreatedAt
		if at.IsZero() {
			at = time.Now().UTC()
		}
		movements = append(movements, StockMovement{
			ID:       "initial-" + batch.ID.String(),
			BatchID:  batch.ID,
			At:       at,
			Type:     TypeInitial,
			Quantity: batch.InitialQuantity,
			Title:    fmt.Sprintf("Initial stock of %s units", formatQty(batch.InitialQuantity)),
		})
	}

	// Order item ids already covered by a pick-type event; used to
	// suppress the matching picked allocation so migrated data booked
	// both ways is not counted twice.
	pickedItems := make(map[string]bool)

	for _, ev := range events {
		eventType := strings.ToUpper(strings.TrimSpace(ev.Type))
		dir, recognized := eventDirections[eventType]
		if !recognized {
			continue
		}

		payload := parsePayload(ev.Payload)

		if batch.InitialQuantity > 0 && creationTypes[eventType] {
			continue
		}
		if eventType == "MOVE" && !isPartialMove(payload) {
			continue
		}

		qty, ok := extractQuantity(payload)
		if !ok || qty == 0 {
			continue
		}

		switch dir {
		case dirIn:
			qty = math.Abs(qty)
		case dirOut:
			qty = -math.Abs(qty)
		}

		if pickEventTypes[eventType] {
			if itemID := payload.GetString("order_item_id"); itemID != "" {
				pickedItems[itemID] = true
			}
		}

		m := StockMovement{
			ID:       ev.ID.String(),
			BatchID:  batch.ID,
			At:       ev.At,
			Type:     strings.ToLower(eventType),
			Quantity: qty,
			UserID:   ev.ByUserID,
			UserName: ev.UserName,
		}
		formatMovement(&m, eventType, payload, childNumbers)
		movements = append(movements, m)
	}

	for _, alloc := range allocations {
		// Orphaned allocations (order deleted) carry no usable reference.
		if alloc.OrderID == nil {
			continue
		}

		switch alloc.Status {
		case StatusPicked:
			if alloc.OrderItemID != nil && pickedItems[*alloc.OrderItemID] {
				continue
			}
			movements = append(movements, allocationMovement(batch, alloc, TypePicked))
		case StatusAllocated:
			movements = append(movements, allocationMovement(batch, alloc, TypeAllocated))
		}
	}

	sort.SliceStable(movements, func(i, j int) bool {
		return movements[i].At.Before(movements[j].At)
	})

	// Reservations never touch the balance; everything else accumulates
	// in timestamp order.
	balance := 0.0
	for i := range movements {
		if movements[i].Type == TypeAllocated {
			continue
		}
		balance += movements[i].Quantity
		b := balance
		movements[i].RunningBalance = &b
	}

	return movements
}

// allocationMovement renders an allocation row as a ledger entry.
// Reservations keep a nil running balance.
func allocationMovement(batch BatchMeta, alloc Allocation, movementType string) StockMovement {
	orderRef := "order"
	if alloc.OrderNumber != nil && *alloc.OrderNumber != "" {
		orderRef = "order " + *alloc.OrderNumber
	}

	title := fmt.Sprintf("Reserved %s units for %s", formatQty(alloc.Quantity), orderRef)
	if movementType == TypePicked {
		title = fmt.Sprintf("Picked %s units for %s", formatQty(alloc.Quantity), orderRef)
	}

	dest := &Destination{Kind: DestOrder, ID: alloc.OrderID.String()}
	if alloc.OrderNumber != nil {
		dest.Name = *alloc.OrderNumber
	}

	details := ""
	if alloc.CustomerName != nil && *alloc.CustomerName != "" {
		details = *alloc.CustomerName
	}

	return StockMovement{
		ID:          alloc.ID.String(),
		BatchID:     batch.ID,
		At:          alloc.CreatedAt,
		Type:        movementType,
		Quantity:    -math.Abs(alloc.Quantity),
		Title:       title,
		Details:     details,
		Destination: dest,
	}
}

func formatQty(q float64) string {
	return strconv.FormatFloat(math.Abs(q), 'f', -1, 64)
}
