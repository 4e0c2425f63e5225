package pmquotes

import (
	"context"

	"fieldserve/internal/core/id"
	"fieldserve/internal/domain"
)

// Repository defines the interface for PMQuote persistence.
type Repository interface {
	domain.Repository[*PMQuote]

	// ListByJob retrieves all PM quotes for a job.
	ListByJob(ctx context.Context, jobID id.ID) ([]*PMQuote, error)
}
