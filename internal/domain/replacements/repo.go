package replacements

import (
	"context"

	"fieldserve/internal/core/id"
	"fieldserve/internal/domain"
)

// Repository defines the interface for Replacement persistence.
type Repository interface {
	domain.Repository[*Replacement]

	// ListByJob retrieves all replacement estimates for a job.
	ListByJob(ctx context.Context, jobID id.ID) ([]*Replacement, error)
}
