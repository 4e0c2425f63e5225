package quotes

import (
	"fieldserve/internal/core/types"
	"fieldserve/internal/domain/inspections"
	"fieldserve/internal/domain/jobs"
	"fieldserve/internal/domain/pmquotes"
	"fieldserve/internal/domain/replacements"
)

// inspectionFlatFee is the fixed price of an inspection quote.
var inspectionFlatFee = types.MustMoney("180")

// Sources holds the resolved records a selection points at.
// Only the branch matching the selection's quote type is consulted.
type Sources struct {
	Inspections  []*inspections.Inspection
	Replacements []*replacements.Replacement
	PMQuotes     []*pmquotes.PMQuote
	JobItems     []jobs.JobItem
}

// TotalFor computes the quote total for a selection.
//
// Pricing rules per quote type:
//   - inspection: flat fee, independent of the inspections' content and
//     of how many are selected
//   - replacement: sum of the selected replacements' totals (already
//     margin-adjusted at the estimate level)
//   - repair: sum of each selected item's effective cost (total cost,
//     falling back to unit cost, falling back to zero)
//   - maintenance: sum of the selected PM quotes' totals
//
// Absent amounts coerce to zero; they never poison the sum.
func TotalFor(sel Selection, src Sources) types.Money {
	switch sel.QuoteType {
	case TypeInspection:
		return inspectionFlatFee

	case TypeReplacement:
		total := types.Zero()
		for _, r := range src.Replacements {
			if sel.HasRecord(r.ID) {
				total = total.Add(r.TotalCost)
			}
		}
		return total

	case TypeRepair:
		total := types.Zero()
		for _, item := range src.JobItems {
			if sel.HasItem(item.LineID) {
				total = total.Add(item.EffectiveCost())
			}
		}
		return total

	case TypeMaintenance:
		total := types.Zero()
		for _, q := range src.PMQuotes {
			if sel.HasRecord(q.ID) {
				total = total.Add(q.TotalCost)
			}
		}
		return total
	}

	return types.Zero()
}

// SelectedItems returns the job items a repair selection covers,
// in their original order.
func SelectedItems(sel Selection, items []jobs.JobItem) []jobs.JobItem {
	out := make([]jobs.JobItem, 0, len(sel.JobItemIDs))
	for _, item := range items {
		if sel.HasItem(item.LineID) {
			out = append(out, item)
		}
	}
	return out
}

// ForwardableItems filters the selected items down to those included in the
// quote document. Only parts are forwarded; labor and fee lines still count
// toward the total but are not itemized for the customer.
func ForwardableItems(sel Selection, items []jobs.JobItem) []jobs.JobItem {
	out := make([]jobs.JobItem, 0)
	for _, item := range SelectedItems(sel, items) {
		if item.ItemType == jobs.ItemPart {
			out = append(out, item)
		}
	}
	return out
}
