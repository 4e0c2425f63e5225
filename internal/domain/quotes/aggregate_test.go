package quotes

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fieldserve/internal/core/id"
	"fieldserve/internal/core/types"
	"fieldserve/internal/domain/jobs"
	"fieldserve/internal/domain/pmquotes"
	"fieldserve/internal/domain/replacements"
)

func money(s string) *types.Money {
	m := types.MustMoney(s)
	return &m
}

func TestTotalFor_InspectionFlatFee(t *testing.T) {
	inspID := id.New()
	sel := NewSelection(TypeInspection)
	sel.ToggleRecord(inspID)

	// The inspection's content never matters; the fee is flat.
	total := TotalFor(sel, Sources{})
	assert.True(t, total.Equal(types.MustMoney("180")), "total = %s", total)
}

func TestTotalFor_ReplacementUsesSelectedTotal(t *testing.T) {
	r1 := replacements.NewReplacement(id.New())
	r1.Phase2.Cost = money("600")
	r1.Recalculate() // 1000

	r2 := replacements.NewReplacement(r1.JobID)
	r2.Phase2.Cost = money("1200")
	r2.Recalculate() // 2000

	sel := NewSelection(TypeReplacement)
	sel.ToggleRecord(r2.ID)

	total := TotalFor(sel, Sources{Replacements: []*replacements.Replacement{r1, r2}})
	assert.True(t, total.Equal(types.MustMoney("2000")), "total = %s", total)
}

func TestTotalFor_ReplacementSumsAllSelected(t *testing.T) {
	r1 := replacements.NewReplacement(id.New())
	r1.Phase2.Cost = money("600")
	r1.Recalculate() // 1000

	r2 := replacements.NewReplacement(r1.JobID)
	r2.Phase2.Cost = money("900")
	r2.Recalculate() // 1500

	sel := NewSelection(TypeReplacement)
	sel.ToggleRecord(r1.ID)
	sel.ToggleRecord(r2.ID)

	total := TotalFor(sel, Sources{Replacements: []*replacements.Replacement{r1, r2}})
	assert.True(t, total.Equal(types.MustMoney("2500")), "total = %s", total)
}

func TestTotalFor_RepairCostFallbacks(t *testing.T) {
	items := []jobs.JobItem{
		{LineID: id.New(), ItemType: jobs.ItemPart, Name: "capacitor", TotalCost: money("120")},
		// zero total falls through to unit cost
		{LineID: id.New(), ItemType: jobs.ItemPart, Name: "contactor", TotalCost: money("0"), UnitCost: money("85")},
		// nothing set counts as zero
		{LineID: id.New(), ItemType: jobs.ItemLabor, Name: "diagnostic"},
	}

	sel := NewSelection(TypeRepair)
	for _, it := range items {
		sel.ToggleItem(it.LineID)
	}

	total := TotalFor(sel, Sources{JobItems: items})
	assert.True(t, total.Equal(types.MustMoney("205")), "total = %s", total)
}

func TestTotalFor_RepairCountsAllSelectedButForwardsPartsOnly(t *testing.T) {
	part := jobs.JobItem{LineID: id.New(), ItemType: jobs.ItemPart, Name: "motor", TotalCost: money("450")}
	labor := jobs.JobItem{LineID: id.New(), ItemType: jobs.ItemLabor, Name: "install", TotalCost: money("200")}
	items := []jobs.JobItem{part, labor}

	sel := NewSelection(TypeRepair)
	sel.ToggleItem(part.LineID)
	sel.ToggleItem(labor.LineID)

	// Labor counts toward the total
	total := TotalFor(sel, Sources{JobItems: items})
	assert.True(t, total.Equal(types.MustMoney("650")), "total = %s", total)

	// But only the part is forwarded to the document
	forwarded := ForwardableItems(sel, items)
	assert.Len(t, forwarded, 1)
	assert.Equal(t, "motor", forwarded[0].Name)
}

func TestTotalFor_MaintenanceSumsSelectedPMQuote(t *testing.T) {
	q := pmquotes.NewPMQuote(id.New())
	q.ChecklistTypes = []pmquotes.ChecklistType{pmquotes.ChecklistComprehensive}
	q.ComprehensiveVisitsPerYear = 3
	q.Recalculate() // 1080

	sel := NewSelection(TypeMaintenance)
	sel.ToggleRecord(q.ID)

	total := TotalFor(sel, Sources{PMQuotes: []*pmquotes.PMQuote{q}})
	assert.True(t, total.Equal(types.MustMoney("1080")), "total = %s", total)
}

func TestTotalFor_UnselectedRecordsIgnored(t *testing.T) {
	r := replacements.NewReplacement(id.New())
	r.Phase2.Cost = money("600")
	r.Recalculate()

	sel := NewSelection(TypeReplacement)
	// nothing toggled

	total := TotalFor(sel, Sources{Replacements: []*replacements.Replacement{r}})
	assert.True(t, total.IsZero())
}

func TestUsedInPriorQuote_KeyedByTypeOnly(t *testing.T) {
	jobID := id.New()
	prior := []*JobQuote{
		NewJobQuote(jobID, TypeRepair, "QUOTE-1", types.MustMoney("100")),
	}

	// Any repair quote flags repair sources, regardless of which items it priced
	assert.True(t, UsedInPriorQuote(prior, TypeRepair))
	assert.False(t, UsedInPriorQuote(prior, TypeReplacement))
	assert.False(t, UsedInPriorQuote(nil, TypeRepair))
}
