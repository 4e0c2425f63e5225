package documents

import (
	"context"

	"fieldserve/internal/core/id"
	"fieldserve/internal/domain"
)

// Repository defines the interface for Document persistence.
type Repository interface {
	domain.Repository[*Document]

	// ListByJob retrieves active documents for a job.
	ListByJob(ctx context.Context, jobID id.ID) ([]*Document, error)

	// SetStatus flips a document's status.
	SetStatus(ctx context.Context, documentID id.ID, status string) error
}
