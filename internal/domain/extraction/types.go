// Package extraction matches supplier order documents against the
// internal catalogs. Input is an OrderExtraction produced upstream by
// the PDF extraction service or the CSV parser; output is the same
// lines annotated with best-effort variety/size matches and confidence
// tiers so low-confidence lines can be routed to human review.
package extraction

import (
	"encoding/json"

	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/core/types"
)

// Confidence ranks how trustworthy an automatic match is.
// The order is total: Exact > High > Low > None.
type Confidence int

const (
	ConfidenceNone Confidence = iota
	ConfidenceLow
	ConfidenceHigh
	ConfidenceExact
)

// String returns the wire label.
func (c Confidence) String() string {
	switch c {
	case ConfidenceExact:
		return "exact"
	case ConfidenceHigh:
		return "high"
	case ConfidenceLow:
		return "low"
	default:
		return "none"
	}
}

// AtLeast reports whether c ranks at or above other.
func (c Confidence) AtLeast(other Confidence) bool {
	return c >= other
}

// MarshalJSON encodes the confidence as its label.
func (c Confidence) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes a confidence label.
func (c *Confidence) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "exact":
		*c = ConfidenceExact
	case "high":
		*c = ConfidenceHigh
	case "low":
		*c = ConfidenceLow
	default:
		*c = ConfidenceNone
	}
	return nil
}

// OrderLineItem is one extracted line before matching. All parsed
// botanical fields are optional best-effort output of the extractor.
type OrderLineItem struct {
	Quantity        int             `json:"quantity"`
	VarietyName     string          `json:"variety_name"`
	Genus           string          `json:"genus,omitempty"`
	Species         string          `json:"species,omitempty"`
	Cultivar        string          `json:"cultivar,omitempty"`
	SizeDescription string          `json:"size_description"`
	CellMultiple    *int            `json:"cell_multiple,omitempty"`
	ContainerType   string          `json:"container_type,omitempty"`
	UnitPrice       *types.Money    `json:"unit_price,omitempty"`
	LineTotal       *types.Money    `json:"line_total,omitempty"`
}

// OrderExtraction is a parsed supplier order document.
type OrderExtraction struct {
	SupplierName   string          `json:"supplier_name,omitempty"`
	OrderReference string          `json:"order_reference,omitempty"`
	DocumentDate   string          `json:"document_date,omitempty"`
	LineItems      []OrderLineItem `json:"line_items"`
	TotalAmount    *types.Money    `json:"total_amount,omitempty"`
}

// Reference catalog projections. The matcher only needs these slices of
// the full catalog entities.

// VarietyRef is a variety catalog entry for matching.
type VarietyRef struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Genus  string `json:"genus,omitempty"`
	Family string `json:"family,omitempty"`
}

// SizeRef is a size catalog entry for matching.
type SizeRef struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	CellMultiple  *int   `json:"cellMultiple,omitempty"`
	ContainerType string `json:"containerType,omitempty"`
}

// SupplierRef is a supplier catalog entry for matching.
type SupplierRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ReferenceData bundles the read-only lookup sets.
type ReferenceData struct {
	Varieties []VarietyRef
	Sizes     []SizeRef
	Suppliers []SupplierRef
}

// MatchedLineItem echoes the extracted line plus match results.
type MatchedLineItem struct {
	OrderLineItem

	MatchedVarietyID   *string    `json:"matched_variety_id"`
	MatchedVarietyName *string    `json:"matched_variety_name"`
	VarietyConfidence  Confidence `json:"variety_confidence"`

	MatchedSizeID   *string    `json:"matched_size_id"`
	MatchedSizeName *string    `json:"matched_size_name"`
	SizeConfidence  Confidence `json:"size_confidence"`
}

// MatchedExtraction is the full match result. Supplier matching is
// binary; line items keep their input order.
type MatchedExtraction struct {
	MatchedSupplierID   *string `json:"matched_supplier_id"`
	MatchedSupplierName *string `json:"matched_supplier_name"`

	LineItems []MatchedLineItem `json:"line_items"`

	TotalItems       int `json:"total_items"`
	MatchedItems     int `json:"matched_items"`
	NeedsReviewItems int `json:"needs_review_items"`
}
