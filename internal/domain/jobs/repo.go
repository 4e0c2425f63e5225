package jobs

import (
	"context"
	"time"

	"fieldserve/internal/core/id"
	"fieldserve/internal/domain"
)

// Repository defines the interface for Job persistence.
type Repository interface {
	domain.Repository[*Job]

	// GetByQuoteToken retrieves the job holding the given quote token.
	GetByQuoteToken(ctx context.Context, token string) (*Job, error)

	// ListJobs retrieves jobs with job-specific filtering.
	ListJobs(ctx context.Context, filter ListFilter) (domain.ListResult[*Job], error)

	// Item operations (table part)
	GetItems(ctx context.Context, jobID id.ID) ([]JobItem, error)
	SaveItems(ctx context.Context, jobID id.ID, items []JobItem) error

	// MarkQuoteSent writes the quote dispatch fields on the job row.
	MarkQuoteSent(ctx context.Context, jobID id.ID, token, contactEmail string, sentAt time.Time) error

	// MarkQuoteConfirmed writes the confirmation fields on the job row.
	MarkQuoteConfirmed(ctx context.Context, jobID id.ID, confirmedAt time.Time) error
}

// ListFilter for filtering jobs.
type ListFilter struct {
	domain.ListFilter

	JobType   *JobType
	Status    *Status
	QuoteSent *bool
	DateFrom  *time.Time
	DateTo    *time.Time
}
