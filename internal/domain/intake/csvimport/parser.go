// Package csvimport parses supplier order CSVs into an OrderExtraction.
// Suppliers export wildly different headers, so columns are detected by
// an alias table with a fuzzy fallback, and numbers are parsed with
// European/US format disambiguation.
package csvimport

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/shopspring/decimal"

	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/domain/extraction"
)

// column identifies a recognized CSV concern.
type column int

const (
	colUnknown column = iota
	colQuantity
	colVariety
	colGenus
	colCultivar
	colSize
	colCellMultiple
	colContainer
	colUnitPrice
	colLineTotal
	colReference
)

// columnAliases maps normalized header names to columns. Checked before
// the fuzzy fallback.
var columnAliases = map[string]column{
	"qty":            colQuantity,
	"quantity":       colQuantity,
	"amount":         colQuantity,
	"units":          colQuantity,
	"anzahl":         colQuantity,
	"aantal":         colQuantity,
	"variety":        colVariety,
	"variety name":   colVariety,
	"plant":          colVariety,
	"plant name":     colVariety,
	"name":           colVariety,
	"description":    colVariety,
	"article":        colVariety,
	"sorte":          colVariety,
	"genus":          colGenus,
	"cultivar":       colCultivar,
	"size":           colSize,
	"size desc":      colSize,
	"tray":           colSize,
	"format":         colSize,
	"container":      colContainer,
	"container type": colContainer,
	"cells":          colCellMultiple,
	"cell multiple":  colCellMultiple,
	"cell count":     colCellMultiple,
	"price":          colUnitPrice,
	"unit price":     colUnitPrice,
	"price per unit": colUnitPrice,
	"preis":          colUnitPrice,
	"total":          colLineTotal,
	"line total":     colLineTotal,
	"total price":    colLineTotal,
	"ref":            colReference,
	"reference":      colReference,
	"order ref":      colReference,
	"order number":   colReference,
}

// maxHeaderDistance is the Levenshtein tolerance for misspelled or
// suffixed headers ("quantiy", "varietys").
const maxHeaderDistance = 2

// sortedAliases fixes the fuzzy fallback's iteration order; a header
// equidistant from two aliases always resolves to the alphabetically
// first one instead of varying with map order.
var sortedAliases = func() []string {
	keys := make([]string, 0, len(columnAliases))
	for k := range columnAliases {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}()

// detectColumn maps one header cell to a column. Exact alias first,
// then nearest alias within the edit-distance tolerance.
func detectColumn(header string) column {
	h := normalizeHeader(header)
	if h == "" {
		return colUnknown
	}
	if col, ok := columnAliases[h]; ok {
		return col
	}

	best := colUnknown
	bestDist := maxHeaderDistance + 1
	for _, alias := range sortedAliases {
		if d := levenshtein.ComputeDistance(h, alias); d < bestDist {
			bestDist = d
			best = columnAliases[alias]
		}
	}
	return best
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, "_", " ")
	h = strings.ReplaceAll(h, "-", " ")
	return strings.Join(strings.Fields(h), " ")
}

// Parse reads a supplier order CSV into an OrderExtraction. The first
// row must be a header; rows whose quantity cell is empty or
// non-numeric are skipped rather than failing the whole file.
func Parse(r io.Reader) (extraction.OrderExtraction, error) {
	var ext extraction.OrderExtraction

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return ext, fmt.Errorf("read header: %w", err)
	}

	columns := make([]column, len(header))
	seen := make(map[column]bool)
	for i, cell := range header {
		col := detectColumn(cell)
		// First claim wins when two headers map to the same concern.
		if col != colUnknown && seen[col] {
			col = colUnknown
		}
		columns[i] = col
		seen[col] = true
	}
	if !seen[colVariety] {
		return ext, fmt.Errorf("no variety column recognized in header %v", header)
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return ext, fmt.Errorf("read row: %w", err)
		}

		item, ok := parseRow(columns, record)
		if !ok {
			continue
		}
		ext.LineItems = append(ext.LineItems, item)

		if ext.OrderReference == "" {
			if ref := cellValue(columns, record, colReference); ref != "" {
				ext.OrderReference = ref
			}
		}
	}

	return ext, nil
}

func cellValue(columns []column, record []string, want column) string {
	for i, col := range columns {
		if col == want && i < len(record) {
			return strings.TrimSpace(record[i])
		}
	}
	return ""
}

func parseRow(columns []column, record []string) (extraction.OrderLineItem, bool) {
	var item extraction.OrderLineItem

	item.VarietyName = cellValue(columns, record, colVariety)
	if item.VarietyName == "" {
		return item, false
	}

	qty, err := ParseQuantity(cellValue(columns, record, colQuantity))
	if err != nil || qty <= 0 {
		return item, false
	}
	item.Quantity = qty

	item.Genus = cellValue(columns, record, colGenus)
	item.Cultivar = strings.Trim(cellValue(columns, record, colCultivar), "'\"")
	item.SizeDescription = cellValue(columns, record, colSize)
	item.ContainerType = cellValue(columns, record, colContainer)

	if cells := cellValue(columns, record, colCellMultiple); cells != "" {
		if n, err := strconv.Atoi(cells); err == nil && n > 0 {
			item.CellMultiple = &n
		}
	}

	if price, err := ParseAmount(cellValue(columns, record, colUnitPrice)); err == nil {
		item.UnitPrice = &price
	}
	if total, err := ParseAmount(cellValue(columns, record, colLineTotal)); err == nil {
		item.LineTotal = &total
	}

	return item, true
}

// ParseQuantity parses an integer quantity, tolerating thousands
// separators ("1.200", "1,200").
func ParseQuantity(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty quantity")
	}
	d, err := ParseAmount(s)
	if err != nil {
		return 0, err
	}
	if !d.Equal(d.Truncate(0)) {
		return 0, fmt.Errorf("quantity %q is not an integer", s)
	}
	return int(d.IntPart()), nil
}

// ParseAmount parses a decimal that may use European ("1.234,56") or
// US ("1,234.56") formatting. The last separator present is taken as
// the decimal point; the other is stripped as a thousands separator.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "€$£ ")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			// European: dot groups thousands, comma is decimal
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			// US: comma groups thousands
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		// Lone comma: decimal when followed by 1-2 digits, otherwise a
		// thousands separator ("1,200").
		if len(s)-lastComma-1 <= 2 {
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastDot >= 0:
		// Lone dot with three trailing digits reads as a European
		// thousands separator ("1.200" is twelve hundred), except for
		// sub-one decimals like "0.125".
		if len(s)-lastDot-1 == 3 && strings.Count(s, ".") == 1 && lastDot > 0 && s[:lastDot] != "0" {
			s = strings.ReplaceAll(s, ".", "")
		}
	}

	return decimal.NewFromString(s)
}
