package ledger

import (
	"fmt"
	"strings"

	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/entity"
)

// formatter fills in title, details and destination for one movement.
type formatter func(m *StockMovement, payload entity.Attributes, childNumbers map[string]string)

// formatters maps canonical event types to their human phrasing.
// Types outside this table fall back to the signed-delta label.
var formatters = map[string]formatter{
	"CHECKIN":          formatCheckIn,
	"CHECK_IN":         formatCheckIn,
	"CREATE":           formatCreated,
	"PROPAGATE":        formatCreated,
	"STOCK_RECEIVED":   formatReceived,
	"BATCH_ACTUALIZED": formatActualized,
	"ACTUALIZED":       formatActualized,
	"TRANSPLANT_IN":    formatTransplantIn,
	"PROPAGATION_IN":   formatTransplantIn,
	"MOVE_IN":          formatTransplantIn,
	"TRANSPLANT_OUT":   formatTransplantOut,
	"TRANSPLANT_TO":    formatTransplantOut,
	"MOVE":             formatSplit,
	"PICKED":           formatPick,
	"SALE":             formatPick,
	"DISPATCH":         formatPick,
	"CONSUMED":         formatConsumed,
	"LOSS":             formatLoss,
	"DUMP":             formatLoss,
	"ADJUSTMENT":       formatAdjustment,
}

func formatMovement(m *StockMovement, eventType string, payload entity.Attributes, childNumbers map[string]string) {
	if f, ok := formatters[eventType]; ok {
		f(m, payload, childNumbers)
		if m.Details == "" {
			m.Details = payload.GetString("notes")
		}
		return
	}
	// Unrecognized-but-classified types get the signed delta and the
	// lowercase type as the label.
	m.Title = fmt.Sprintf("%s units (%s)", formatSigned(m.Quantity), m.Type)
}

func formatCheckIn(m *StockMovement, payload entity.Attributes, _ map[string]string) {
	m.Title = fmt.Sprintf("Checked in %s units", formatQty(m.Quantity))
}

func formatCreated(m *StockMovement, payload entity.Attributes, _ map[string]string) {
	m.Title = fmt.Sprintf("Batch created with %s units", formatQty(m.Quantity))
}

func formatReceived(m *StockMovement, payload entity.Attributes, _ map[string]string) {
	m.Title = fmt.Sprintf("Received %s units", formatQty(m.Quantity))
	if name := payload.GetString("supplier_name"); name != "" {
		m.Title = fmt.Sprintf("Received %s units from %s", formatQty(m.Quantity), name)
		m.Destination = &Destination{
			Kind: DestSupplier,
			ID:   payload.GetString("supplier_id"),
			Name: name,
		}
	}
}

func formatActualized(m *StockMovement, payload entity.Attributes, _ map[string]string) {
	m.Title = fmt.Sprintf("Batch actualized at %s units", formatQty(m.Quantity))
}

func formatTransplantIn(m *StockMovement, payload entity.Attributes, childNumbers map[string]string) {
	m.Title = fmt.Sprintf("Transplanted in %s units", formatQty(m.Quantity))
	if id, label := batchRef(payload, childNumbers, "from_batch_id", "source_batch_id"); id != "" {
		m.Title = fmt.Sprintf("Transplanted in %s units from batch %s", formatQty(m.Quantity), label)
		m.Destination = &Destination{Kind: DestBatch, ID: id, Name: label}
	}
}

func formatTransplantOut(m *StockMovement, payload entity.Attributes, childNumbers map[string]string) {
	m.Title = fmt.Sprintf("Transplanted out %s units", formatQty(m.Quantity))
	if id, label := batchRef(payload, childNumbers, "to_batch_id", "child_batch_id", "split_batch_id"); id != "" {
		m.Title = fmt.Sprintf("Transplanted %s units to batch %s", formatQty(m.Quantity), label)
		m.Destination = &Destination{Kind: DestBatch, ID: id, Name: label}
	}
}

func formatSplit(m *StockMovement, payload entity.Attributes, childNumbers map[string]string) {
	m.Title = fmt.Sprintf("Moved %s units out", formatQty(m.Quantity))
	if id, label := batchRef(payload, childNumbers, "split_batch_id"); id != "" {
		m.Title = fmt.Sprintf("Split %s units to batch %s", formatQty(m.Quantity), label)
		m.Destination = &Destination{Kind: DestBatch, ID: id, Name: label}
	}
}

func formatPick(m *StockMovement, payload entity.Attributes, _ map[string]string) {
	verb := "Picked"
	switch m.Type {
	case "sale":
		verb = "Sold"
	case "dispatch":
		verb = "Dispatched"
	}

	orderNumber := payload.GetString("order_number")
	customer := payload.GetString("customer_name")

	switch {
	case orderNumber != "" && customer != "":
		m.Title = fmt.Sprintf("%s %s units for order %s (%s)", verb, formatQty(m.Quantity), orderNumber, customer)
	case orderNumber != "":
		m.Title = fmt.Sprintf("%s %s units for order %s", verb, formatQty(m.Quantity), orderNumber)
	default:
		m.Title = fmt.Sprintf("%s %s units", verb, formatQty(m.Quantity))
	}

	if orderNumber != "" || payload.GetString("order_id") != "" {
		m.Destination = &Destination{
			Kind: DestOrder,
			ID:   payload.GetString("order_id"),
			Name: orderNumber,
		}
	}
	m.Details = customer
}

func formatConsumed(m *StockMovement, payload entity.Attributes, _ map[string]string) {
	m.Title = fmt.Sprintf("Consumed %s units", formatQty(m.Quantity))
	if job := payload.GetString("job_reference"); job != "" {
		m.Title = fmt.Sprintf("Consumed %s units by job %s", formatQty(m.Quantity), job)
	}
}

func formatLoss(m *StockMovement, payload entity.Attributes, _ map[string]string) {
	verb := "Loss of"
	if m.Type == "dump" {
		verb = "Dumped"
	}
	m.Title = fmt.Sprintf("%s %s units", verb, formatQty(m.Quantity))

	reason := payload.GetString("reason")
	m.Destination = &Destination{Kind: DestLoss, Name: reason}
	m.Details = reason
}

func formatAdjustment(m *StockMovement, payload entity.Attributes, _ map[string]string) {
	m.Title = fmt.Sprintf("Stock adjustment of %s units", formatSigned(m.Quantity))
	m.Destination = &Destination{Kind: DestAdjustment, Name: payload.GetString("reason")}
}

// batchRef probes the payload for a batch reference and resolves it to
// a batch number via the child lookup, falling back to the raw id.
func batchRef(payload entity.Attributes, childNumbers map[string]string, keys ...string) (string, string) {
	for _, key := range keys {
		ref := strings.TrimSpace(payload.GetString(key))
		if ref == "" {
			continue
		}
		if number, ok := childNumbers[ref]; ok && number != "" {
			return ref, number
		}
		return ref, ref
	}
	return "", ""
}

func formatSigned(q float64) string {
	if q >= 0 {
		return "+" + formatQty(q)
	}
	return "-" + formatQty(q)
}
