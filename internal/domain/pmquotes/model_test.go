package pmquotes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"fieldserve/internal/core/id"
	"fieldserve/internal/core/types"
)

func money(s string) types.Money {
	return types.MustMoney(s)
}

func TestSyncVisitCosts_GrowPreservesIndices(t *testing.T) {
	q := NewPMQuote(id.New())
	q.ComprehensiveVisitsPerYear = 2
	q.ComprehensiveVisitCosts = []types.Money{money("400"), money("410")}

	// Grow 2 -> 4: existing entries stay, new slots use the default
	q.ComprehensiveVisitsPerYear = 4
	q.SyncVisitCosts()

	assert.Len(t, q.ComprehensiveVisitCosts, 4)
	assert.True(t, q.ComprehensiveVisitCosts[0].Equal(money("400")))
	assert.True(t, q.ComprehensiveVisitCosts[1].Equal(money("410")))
	assert.True(t, q.ComprehensiveVisitCosts[2].Equal(money("360")))
	assert.True(t, q.ComprehensiveVisitCosts[3].Equal(money("360")))
}

func TestSyncVisitCosts_ShrinkTruncates(t *testing.T) {
	q := NewPMQuote(id.New())
	q.FilterVisitsPerYear = 1
	q.FilterVisitCosts = []types.Money{money("300"), money("310"), money("320")}

	q.SyncVisitCosts()

	assert.Len(t, q.FilterVisitCosts, 1)
	assert.True(t, q.FilterVisitCosts[0].Equal(money("300")))
}

func TestSyncVisitCosts_LegacyPerVisitFillBeatsDefault(t *testing.T) {
	q := NewPMQuote(id.New())
	per := money("345")
	q.FilterPerVisitCost = &per
	q.FilterVisitsPerYear = 2
	q.FilterVisitCosts = []types.Money{money("300")}

	q.SyncVisitCosts()

	assert.Len(t, q.FilterVisitCosts, 2)
	assert.True(t, q.FilterVisitCosts[0].Equal(money("300")))
	assert.True(t, q.FilterVisitCosts[1].Equal(money("345")))
}

func TestRecalculate_SumsIncludedChecklistsOnly(t *testing.T) {
	q := NewPMQuote(id.New())
	q.ChecklistTypes = []ChecklistType{ChecklistComprehensive}
	q.ComprehensiveVisitsPerYear = 2
	q.FilterVisitsPerYear = 4

	q.Recalculate()

	// Filter visits exist but the checklist is not included
	assert.True(t, q.TotalCost.Equal(money("720")), "total = %s", q.TotalCost)

	q.ChecklistTypes = []ChecklistType{ChecklistComprehensive, ChecklistFilter}
	q.Recalculate()
	// 2*360 + 4*320
	assert.True(t, q.TotalCost.Equal(money("2000")), "total = %s", q.TotalCost)
}

func TestRecalculate_EmptyChecklistsZeroTotal(t *testing.T) {
	q := NewPMQuote(id.New())
	q.Recalculate()
	assert.True(t, q.TotalCost.IsZero())
}

func TestValidate_RejectsDuplicateChecklistType(t *testing.T) {
	q := NewPMQuote(id.New())
	q.ChecklistTypes = []ChecklistType{ChecklistComprehensive, ChecklistComprehensive}

	err := q.Validate(context.Background())
	assert.Error(t, err)

	// A repeated checklist would double-count its visit costs in the total
	q.ChecklistTypes = []ChecklistType{ChecklistComprehensive, ChecklistFilter}
	assert.NoError(t, q.Validate(context.Background()))
}
