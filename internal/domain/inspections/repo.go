package inspections

import (
	"context"

	"fieldserve/internal/core/id"
	"fieldserve/internal/domain"
)

// Repository defines the interface for Inspection persistence.
type Repository interface {
	domain.Repository[*Inspection]

	// ListByJob retrieves all inspections recorded for a job.
	ListByJob(ctx context.Context, jobID id.ID) ([]*Inspection, error)
}
