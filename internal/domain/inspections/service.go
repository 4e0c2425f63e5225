package inspections

import (
	"context"

	"fieldserve/internal/core/id"
	"fieldserve/internal/core/tx"
	"fieldserve/internal/domain"
)

// Service provides business logic for inspections.
type Service struct {
	*domain.RecordService[*Inspection]
	repo Repository
}

// NewService creates a new Inspection service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewRecordService(domain.RecordServiceConfig[*Inspection]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "inspection",
	})

	return &Service{
		RecordService: base,
		repo:          repo,
	}
}

// ListByJob retrieves all inspections for a job.
func (s *Service) ListByJob(ctx context.Context, jobID id.ID) ([]*Inspection, error) {
	return s.repo.ListByJob(ctx, jobID)
}

// Complete marks an inspection finished.
func (s *Service) Complete(ctx context.Context, inspectionID id.ID) (*Inspection, error) {
	insp, err := s.GetByID(ctx, inspectionID)
	if err != nil {
		return nil, err
	}
	if insp.Completed {
		return insp, nil
	}
	insp.Complete()
	insp.Touch()
	if err := s.Update(ctx, insp); err != nil {
		return nil, err
	}
	return insp, nil
}
