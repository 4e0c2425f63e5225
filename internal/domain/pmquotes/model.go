// Package pmquotes provides preventive-maintenance agreement quotes.
//
// A PM quote prices a yearly visit schedule. Each checklist type
// (comprehensive, filter) carries its own visit count and a per-visit cost
// array; the quote total is the sum over the included checklists.
package pmquotes

import (
	"context"

	"fieldserve/internal/core/apperror"
	"fieldserve/internal/core/entity"
	"fieldserve/internal/core/id"
	"fieldserve/internal/core/types"
)

// ChecklistType identifies a maintenance visit program.
type ChecklistType string

const (
	ChecklistComprehensive ChecklistType = "comprehensive"
	ChecklistFilter        ChecklistType = "filter"
)

// DefaultVisitCost returns the standard per-visit price for a checklist type.
func DefaultVisitCost(ct ChecklistType) types.Money {
	switch ct {
	case ChecklistFilter:
		return types.MustMoney("320")
	default:
		return types.MustMoney("360")
	}
}

// PMQuote represents a preventive-maintenance agreement quote for a job.
type PMQuote struct {
	entity.BaseRecord

	JobID id.ID `db:"job_id" json:"jobId"`

	// ChecklistTypes lists the programs included in this quote
	ChecklistTypes []ChecklistType `db:"checklist_types" json:"checklistTypes"`

	ComprehensiveVisitsPerYear int `db:"comprehensive_visits_per_year" json:"comprehensiveVisitsPerYear"`
	FilterVisitsPerYear        int `db:"filter_visits_per_year" json:"filterVisitsPerYear"`

	// Per-visit cost arrays, one entry per scheduled visit
	ComprehensiveVisitCosts []types.Money `db:"comprehensive_visit_costs" json:"comprehensiveVisitCosts"`
	FilterVisitCosts        []types.Money `db:"filter_visit_costs" json:"filterVisitCosts"`

	// Legacy scalar per-visit prices; used as resize fill before the defaults
	ComprehensivePerVisitCost *types.Money `db:"comprehensive_per_visit_cost" json:"comprehensivePerVisitCost,omitempty"`
	FilterPerVisitCost        *types.Money `db:"filter_per_visit_cost" json:"filterPerVisitCost,omitempty"`

	ComprehensiveDescription string `db:"comprehensive_description" json:"comprehensiveDescription,omitempty"`
	FilterDescription        string `db:"filter_description" json:"filterDescription,omitempty"`

	ServicePeriod string `db:"service_period" json:"servicePeriod,omitempty"`
	ScopeOfWork   string `db:"scope_of_work" json:"scopeOfWork,omitempty"`

	// TotalCost is the yearly agreement price; recomputed on save
	TotalCost types.Money `db:"total_cost" json:"totalCost"`
}

// NewPMQuote creates a new PM quote for a job.
func NewPMQuote(jobID id.ID) *PMQuote {
	return &PMQuote{
		BaseRecord:     entity.NewBaseRecord(),
		JobID:          jobID,
		ChecklistTypes: make([]ChecklistType, 0),
	}
}

// Includes reports whether the quote covers the given checklist type.
func (q *PMQuote) Includes(ct ChecklistType) bool {
	for _, t := range q.ChecklistTypes {
		if t == ct {
			return true
		}
	}
	return false
}

// resizeVisitCosts resizes a cost array to n entries, preserving existing
// entries by index. New slots fill with the legacy per-visit price when set,
// otherwise the standard default.
func resizeVisitCosts(current []types.Money, n int, perVisit *types.Money, def types.Money) []types.Money {
	if n < 0 {
		n = 0
	}
	out := make([]types.Money, n)
	for i := 0; i < n; i++ {
		if i < len(current) {
			out[i] = current[i]
			continue
		}
		if perVisit != nil {
			out[i] = *perVisit
			continue
		}
		out[i] = def
	}
	return out
}

// SyncVisitCosts aligns both cost arrays with their visit counts.
func (q *PMQuote) SyncVisitCosts() {
	q.ComprehensiveVisitCosts = resizeVisitCosts(
		q.ComprehensiveVisitCosts,
		q.ComprehensiveVisitsPerYear,
		q.ComprehensivePerVisitCost,
		DefaultVisitCost(ChecklistComprehensive),
	)
	q.FilterVisitCosts = resizeVisitCosts(
		q.FilterVisitCosts,
		q.FilterVisitsPerYear,
		q.FilterPerVisitCost,
		DefaultVisitCost(ChecklistFilter),
	)
}

// ChecklistTotal sums the visit costs for one checklist type.
func (q *PMQuote) ChecklistTotal(ct ChecklistType) types.Money {
	var costs []types.Money
	switch ct {
	case ChecklistFilter:
		costs = q.FilterVisitCosts
	default:
		costs = q.ComprehensiveVisitCosts
	}
	total := types.Zero()
	for _, c := range costs {
		total = total.Add(c)
	}
	return total
}

// Recalculate rewrites TotalCost from the included checklists.
func (q *PMQuote) Recalculate() {
	q.SyncVisitCosts()
	total := types.Zero()
	for _, ct := range q.ChecklistTypes {
		total = total.Add(q.ChecklistTotal(ct))
	}
	q.TotalCost = total
}

// Validate implements entity.Validatable.
func (q *PMQuote) Validate(ctx context.Context) error {
	if id.IsNil(q.JobID) {
		return apperror.NewValidation("job is required").
			WithDetail("field", "jobId")
	}

	seen := make(map[ChecklistType]bool, len(q.ChecklistTypes))
	for _, ct := range q.ChecklistTypes {
		if ct != ChecklistComprehensive && ct != ChecklistFilter {
			return apperror.NewValidation("unknown checklist type").
				WithDetail("field", "checklistTypes").
				WithDetail("value", string(ct))
		}
		if seen[ct] {
			return apperror.NewValidation("duplicate checklist type").
				WithDetail("field", "checklistTypes").
				WithDetail("value", string(ct))
		}
		seen[ct] = true
	}

	if q.ComprehensiveVisitsPerYear < 0 || q.FilterVisitsPerYear < 0 {
		return apperror.NewValidation("visits per year must not be negative").
			WithDetail("field", "visitsPerYear")
	}

	return nil
}
