package replacements

import (
	"context"

	"fieldserve/internal/core/id"
	"fieldserve/internal/core/tx"
	"fieldserve/internal/domain"
)

// Service provides business logic for replacement estimates.
type Service struct {
	*domain.RecordService[*Replacement]
	repo Repository
}

// NewService creates a new Replacement service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewRecordService(domain.RecordServiceConfig[*Replacement]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "replacement",
	})

	svc := &Service{
		RecordService: base,
		repo:          repo,
	}

	// Totals are derived, never accepted from the caller
	base.Hooks().OnBeforeCreate(svc.recalculate)
	base.Hooks().OnBeforeUpdate(svc.recalculate)

	return svc
}

func (s *Service) recalculate(ctx context.Context, r *Replacement) error {
	r.Recalculate()
	return nil
}

// ListByJob retrieves all replacement estimates for a job.
func (s *Service) ListByJob(ctx context.Context, jobID id.ID) ([]*Replacement, error) {
	return s.repo.ListByJob(ctx, jobID)
}
