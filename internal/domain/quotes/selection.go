package quotes

import (
	"fieldserve/internal/core/apperror"
	"fieldserve/internal/core/id"
)

// Selection tracks which source records back a quote, one ID set per
// category. The sets are independent: switching the active quote type does
// not clear the others, but Validate rejects cross-type combinations.
type Selection struct {
	QuoteType QuoteType `json:"quoteType"`

	InspectionIDs  []id.ID `json:"inspectionIds,omitempty"`
	ReplacementIDs []id.ID `json:"replacementIds,omitempty"`
	PMQuoteIDs     []id.ID `json:"pmQuoteIds,omitempty"`
	JobItemIDs     []id.ID `json:"jobItemIds,omitempty"`
}

// NewSelection creates an empty selection for a quote type.
func NewSelection(quoteType QuoteType) Selection {
	return Selection{QuoteType: quoteType}
}

// SetType switches the active quote type. Other categories' selections are
// kept; cross-type combinations surface at Validate.
func (s *Selection) SetType(quoteType QuoteType) {
	s.QuoteType = quoteType
}

// toggleID flips membership of rid in the set: add if absent, remove if
// present. No ordering guarantee beyond insertion order.
func toggleID(set []id.ID, rid id.ID) []id.ID {
	for i, existing := range set {
		if existing == rid {
			return append(set[:i], set[i+1:]...)
		}
	}
	return append(set, rid)
}

func containsID(set []id.ID, rid id.ID) bool {
	for _, existing := range set {
		if existing == rid {
			return true
		}
	}
	return false
}

// ToggleRecord flips membership of a source record in the active type's
// set. Repair quotes select job items through ToggleItem instead.
func (s *Selection) ToggleRecord(recordID id.ID) {
	switch s.QuoteType {
	case TypeInspection:
		s.InspectionIDs = toggleID(s.InspectionIDs, recordID)
	case TypeReplacement:
		s.ReplacementIDs = toggleID(s.ReplacementIDs, recordID)
	case TypeMaintenance:
		s.PMQuoteIDs = toggleID(s.PMQuoteIDs, recordID)
	}
}

// HasRecord reports whether a source record is selected in the active
// type's set.
func (s Selection) HasRecord(recordID id.ID) bool {
	switch s.QuoteType {
	case TypeInspection:
		return containsID(s.InspectionIDs, recordID)
	case TypeReplacement:
		return containsID(s.ReplacementIDs, recordID)
	case TypeMaintenance:
		return containsID(s.PMQuoteIDs, recordID)
	default:
		return false
	}
}

// ToggleItem flips membership of a job item in a repair selection.
func (s *Selection) ToggleItem(itemID id.ID) {
	if s.QuoteType != TypeRepair {
		return
	}
	s.JobItemIDs = toggleID(s.JobItemIDs, itemID)
}

// HasItem reports whether a job item is selected.
func (s Selection) HasItem(itemID id.ID) bool {
	return containsID(s.JobItemIDs, itemID)
}

// activeSet returns the set backing the active quote type.
func (s Selection) activeSet() []id.ID {
	switch s.QuoteType {
	case TypeInspection:
		return s.InspectionIDs
	case TypeReplacement:
		return s.ReplacementIDs
	case TypeMaintenance:
		return s.PMQuoteIDs
	case TypeRepair:
		return s.JobItemIDs
	default:
		return nil
	}
}

// IsEmpty reports whether nothing is selected for the active quote type.
func (s Selection) IsEmpty() bool {
	return len(s.activeSet()) == 0
}

// Validate rejects unknown quote types, empty selections, and selections
// that mix categories (an inspection quote must not carry replacement
// selections, and so on).
func (s Selection) Validate() error {
	known := false
	for _, t := range ValidTypes() {
		if s.QuoteType == t {
			known = true
			break
		}
	}
	if !known {
		return apperror.NewValidation("unknown quote type").
			WithDetail("field", "quoteType").
			WithDetail("value", string(s.QuoteType))
	}
	if s.IsEmpty() {
		return apperror.NewValidation("nothing selected for quote").
			WithDetail("quote_type", string(s.QuoteType))
	}

	other := map[QuoteType][]id.ID{
		TypeInspection:  s.InspectionIDs,
		TypeReplacement: s.ReplacementIDs,
		TypeMaintenance: s.PMQuoteIDs,
		TypeRepair:      s.JobItemIDs,
	}
	delete(other, s.QuoteType)
	for qt, set := range other {
		if len(set) > 0 {
			return apperror.NewValidation("selection mixes quote types").
				WithDetail("quote_type", string(s.QuoteType)).
				WithDetail("conflicting_type", string(qt))
		}
	}

	return nil
}
