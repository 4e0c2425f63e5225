package dto

import (
	"fieldserve/internal/core/id"
	"fieldserve/internal/core/types"
	"fieldserve/internal/domain/pmquotes"
)

// CreatePMQuoteRequest for creating a preventive-maintenance quote.
type CreatePMQuoteRequest struct {
	JobID id.ID `json:"jobId" binding:"required"`

	ChecklistTypes []string `json:"checklistTypes"`

	ComprehensiveVisitsPerYear int `json:"comprehensiveVisitsPerYear" binding:"min=0"`
	FilterVisitsPerYear        int `json:"filterVisitsPerYear" binding:"min=0"`

	ComprehensiveVisitCosts []types.Money `json:"comprehensiveVisitCosts"`
	FilterVisitCosts        []types.Money `json:"filterVisitCosts"`

	ComprehensivePerVisitCost *types.Money `json:"comprehensivePerVisitCost"`
	FilterPerVisitCost        *types.Money `json:"filterPerVisitCost"`

	ComprehensiveDescription string `json:"comprehensiveDescription"`
	FilterDescription        string `json:"filterDescription"`

	ServicePeriod string `json:"servicePeriod"`
	ScopeOfWork   string `json:"scopeOfWork"`
}

// ToEntity converts the request to a new PMQuote.
func (r CreatePMQuoteRequest) ToEntity() *pmquotes.PMQuote {
	q := pmquotes.NewPMQuote(r.JobID)
	for _, ct := range r.ChecklistTypes {
		q.ChecklistTypes = append(q.ChecklistTypes, pmquotes.ChecklistType(ct))
	}
	q.ComprehensiveVisitsPerYear = r.ComprehensiveVisitsPerYear
	q.FilterVisitsPerYear = r.FilterVisitsPerYear
	q.ComprehensiveVisitCosts = r.ComprehensiveVisitCosts
	q.FilterVisitCosts = r.FilterVisitCosts
	q.ComprehensivePerVisitCost = r.ComprehensivePerVisitCost
	q.FilterPerVisitCost = r.FilterPerVisitCost
	q.ComprehensiveDescription = r.ComprehensiveDescription
	q.FilterDescription = r.FilterDescription
	q.ServicePeriod = r.ServicePeriod
	q.ScopeOfWork = r.ScopeOfWork
	return q
}

// UpdatePMQuoteRequest for updating PM quotes. Nil fields are left unchanged.
type UpdatePMQuoteRequest struct {
	ChecklistTypes *[]string `json:"checklistTypes"`

	ComprehensiveVisitsPerYear *int `json:"comprehensiveVisitsPerYear"`
	FilterVisitsPerYear        *int `json:"filterVisitsPerYear"`

	ComprehensiveVisitCosts *[]types.Money `json:"comprehensiveVisitCosts"`
	FilterVisitCosts        *[]types.Money `json:"filterVisitCosts"`

	ComprehensivePerVisitCost *types.Money `json:"comprehensivePerVisitCost"`
	FilterPerVisitCost        *types.Money `json:"filterPerVisitCost"`

	ComprehensiveDescription *string `json:"comprehensiveDescription"`
	FilterDescription        *string `json:"filterDescription"`

	ServicePeriod *string `json:"servicePeriod"`
	ScopeOfWork   *string `json:"scopeOfWork"`

	Version int `json:"version" binding:"required,min=1"`
}

// ApplyTo applies non-nil fields to the existing PM quote.
func (r UpdatePMQuoteRequest) ApplyTo(q *pmquotes.PMQuote) {
	if r.ChecklistTypes != nil {
		q.ChecklistTypes = q.ChecklistTypes[:0]
		for _, ct := range *r.ChecklistTypes {
			q.ChecklistTypes = append(q.ChecklistTypes, pmquotes.ChecklistType(ct))
		}
	}
	if r.ComprehensiveVisitsPerYear != nil {
		q.ComprehensiveVisitsPerYear = *r.ComprehensiveVisitsPerYear
	}
	if r.FilterVisitsPerYear != nil {
		q.FilterVisitsPerYear = *r.FilterVisitsPerYear
	}
	if r.ComprehensiveVisitCosts != nil {
		q.ComprehensiveVisitCosts = *r.ComprehensiveVisitCosts
	}
	if r.FilterVisitCosts != nil {
		q.FilterVisitCosts = *r.FilterVisitCosts
	}
	if r.ComprehensivePerVisitCost != nil {
		q.ComprehensivePerVisitCost = r.ComprehensivePerVisitCost
	}
	if r.FilterPerVisitCost != nil {
		q.FilterPerVisitCost = r.FilterPerVisitCost
	}
	if r.ComprehensiveDescription != nil {
		q.ComprehensiveDescription = *r.ComprehensiveDescription
	}
	if r.FilterDescription != nil {
		q.FilterDescription = *r.FilterDescription
	}
	if r.ServicePeriod != nil {
		q.ServicePeriod = *r.ServicePeriod
	}
	if r.ScopeOfWork != nil {
		q.ScopeOfWork = *r.ScopeOfWork
	}
	q.SetVersion(r.Version)
}
