package extraction

import "strings"

// wordOverlapThreshold is the minimum overlap score for a word-based
// variety match. Tuned against real supplier documents; lowering it
// inflates the review queue with false positives.
const wordOverlapThreshold = 0.5

// VarietyMatch is the per-line variety match result.
type VarietyMatch struct {
	ID         *string
	Name       *string
	Confidence Confidence
}

// SizeMatch is the per-line size match result.
type SizeMatch struct {
	ID         *string
	Name       *string
	Confidence Confidence
}

// SupplierMatch is the document-level supplier match. Binary, no tiers.
type SupplierMatch struct {
	ID   *string
	Name *string
}

// MatchVariety resolves a free-text variety name against the catalog.
// Passes run in strict order, first hit wins:
// exact name, genus+cultivar, substring containment, word overlap.
func MatchVariety(item OrderLineItem, varieties []VarietyRef) VarietyMatch {
	extracted := normalizeName(item.VarietyName)
	if extracted == "" {
		return VarietyMatch{Confidence: ConfidenceNone}
	}

	// Pass 1: exact normalized equality.
	for _, v := range varieties {
		if normalizeName(v.Name) == extracted {
			return varietyHit(v, ConfidenceExact)
		}
	}

	// Pass 2: parsed genus narrows the catalog, then the cultivar picks
	// the entry within it.
	if genus := normalizeName(item.Genus); genus != "" {
		cultivar := normalizeName(item.Cultivar)
		for _, v := range varieties {
			catalogName := normalizeName(v.Name)
			genusMatches := strings.EqualFold(strings.TrimSpace(v.Genus), strings.TrimSpace(item.Genus)) ||
				strings.HasPrefix(catalogName, genus)
			if !genusMatches {
				continue
			}
			if cultivar != "" && strings.Contains(catalogName, cultivar) {
				return varietyHit(v, ConfidenceHigh)
			}
		}
	}

	// Pass 3: substring containment in either direction.
	for _, v := range varieties {
		catalogName := normalizeName(v.Name)
		if catalogName == "" {
			continue
		}
		if strings.Contains(extracted, catalogName) || strings.Contains(catalogName, extracted) {
			return varietyHit(v, ConfidenceLow)
		}
	}

	// Pass 4: word-overlap scoring, best entry above the threshold.
	extractedWords := matchWords(extracted)
	if len(extractedWords) > 0 {
		var best *VarietyRef
		bestScore := 0.0
		for i, v := range varieties {
			score := overlapScore(extractedWords, matchWords(normalizeName(v.Name)))
			if score >= wordOverlapThreshold && score > bestScore {
				bestScore = score
				best = &varieties[i]
			}
		}
		if best != nil {
			return varietyHit(*best, ConfidenceLow)
		}
	}

	return VarietyMatch{Confidence: ConfidenceNone}
}

// overlapScore counts extracted words substring-related (either
// direction) to any catalog word, over the larger word count.
func overlapScore(extracted, catalog []string) float64 {
	if len(extracted) == 0 || len(catalog) == 0 {
		return 0
	}

	matched := 0
	for _, ew := range extracted {
		for _, cw := range catalog {
			if strings.Contains(cw, ew) || strings.Contains(ew, cw) {
				matched++
				break
			}
		}
	}

	denom := len(extracted)
	if len(catalog) > denom {
		denom = len(catalog)
	}
	return float64(matched) / float64(denom)
}

func varietyHit(v VarietyRef, c Confidence) VarietyMatch {
	id, name := v.ID, v.Name
	return VarietyMatch{ID: &id, Name: &name, Confidence: c}
}

// MatchSize resolves the line's size against the catalog. A parsed
// cell_multiple wins; otherwise the first integer in the free-text
// description is tried against catalog cell counts.
func MatchSize(item OrderLineItem, sizes []SizeRef) SizeMatch {
	if item.CellMultiple != nil {
		cells := *item.CellMultiple

		if item.ContainerType != "" {
			for _, s := range sizes {
				if s.CellMultiple != nil && *s.CellMultiple == cells &&
					strings.EqualFold(s.ContainerType, item.ContainerType) {
					return sizeHit(s, ConfidenceExact)
				}
			}
		}
		for _, s := range sizes {
			if s.CellMultiple != nil && *s.CellMultiple == cells {
				return sizeHit(s, ConfidenceHigh)
			}
		}
		return SizeMatch{Confidence: ConfidenceNone}
	}

	if cells, ok := firstInt(item.SizeDescription); ok {
		for _, s := range sizes {
			if s.CellMultiple != nil && *s.CellMultiple == cells {
				return sizeHit(s, ConfidenceHigh)
			}
		}
	}

	return SizeMatch{Confidence: ConfidenceNone}
}

func sizeHit(s SizeRef, c Confidence) SizeMatch {
	id, name := s.ID, s.Name
	return SizeMatch{ID: &id, Name: &name, Confidence: c}
}

// MatchSupplier resolves the document supplier by case-insensitive
// exact name, then substring containment in either direction.
func MatchSupplier(supplierName string, suppliers []SupplierRef) SupplierMatch {
	extracted := normalizeName(supplierName)
	if extracted == "" {
		return SupplierMatch{}
	}

	for _, s := range suppliers {
		if normalizeName(s.Name) == extracted {
			return supplierHit(s)
		}
	}
	for _, s := range suppliers {
		catalogName := normalizeName(s.Name)
		if catalogName == "" {
			continue
		}
		if strings.Contains(extracted, catalogName) || strings.Contains(catalogName, extracted) {
			return supplierHit(s)
		}
	}

	return SupplierMatch{}
}

func supplierHit(s SupplierRef) SupplierMatch {
	id, name := s.ID, s.Name
	return SupplierMatch{ID: &id, Name: &name}
}

// MatchExtraction matches a whole document: the supplier once, then
// every line item independently. A line counts as matched when both
// its variety and size resolved at high confidence or better.
func MatchExtraction(ext OrderExtraction, ref ReferenceData) MatchedExtraction {
	supplier := MatchSupplier(ext.SupplierName, ref.Suppliers)

	result := MatchedExtraction{
		MatchedSupplierID:   supplier.ID,
		MatchedSupplierName: supplier.Name,
		LineItems:           make([]MatchedLineItem, 0, len(ext.LineItems)),
		TotalItems:          len(ext.LineItems),
	}

	for _, item := range ext.LineItems {
		varietyMatch := MatchVariety(item, ref.Varieties)
		sizeMatch := MatchSize(item, ref.Sizes)

		result.LineItems = append(result.LineItems, MatchedLineItem{
			OrderLineItem:      item,
			MatchedVarietyID:   varietyMatch.ID,
			MatchedVarietyName: varietyMatch.Name,
			VarietyConfidence:  varietyMatch.Confidence,
			MatchedSizeID:      sizeMatch.ID,
			MatchedSizeName:    sizeMatch.Name,
			SizeConfidence:     sizeMatch.Confidence,
		})

		if varietyMatch.Confidence.AtLeast(ConfidenceHigh) && sizeMatch.Confidence.AtLeast(ConfidenceHigh) {
			result.MatchedItems++
		}
	}

	result.NeedsReviewItems = result.TotalItems - result.MatchedItems
	return result
}
