package quotes

import (
	"context"
	"time"

	"fieldserve/internal/core/id"
	"fieldserve/internal/domain"
)

// Repository defines the interface for JobQuote persistence.
type Repository interface {
	domain.Repository[*JobQuote]

	// ListByJob retrieves all quote records for a job, newest first.
	ListByJob(ctx context.Context, jobID id.ID) ([]*JobQuote, error)

	// MarkLatestConfirmed flips the newest quote record for the job to
	// confirmed status.
	MarkLatestConfirmed(ctx context.Context, jobID id.ID, at time.Time) error
}
