package pmquotes

import (
	"context"

	"fieldserve/internal/core/id"
	"fieldserve/internal/core/tx"
	"fieldserve/internal/domain"
)

// Service provides business logic for PM quotes.
type Service struct {
	*domain.RecordService[*PMQuote]
	repo Repository
}

// NewService creates a new PMQuote service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewRecordService(domain.RecordServiceConfig[*PMQuote]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "pm quote",
	})

	svc := &Service{
		RecordService: base,
		repo:          repo,
	}

	// Visit cost arrays and totals are normalized server-side
	base.Hooks().OnBeforeCreate(svc.recalculate)
	base.Hooks().OnBeforeUpdate(svc.recalculate)

	return svc
}

func (s *Service) recalculate(ctx context.Context, q *PMQuote) error {
	q.Recalculate()
	return nil
}

// ListByJob retrieves all PM quotes for a job.
func (s *Service) ListByJob(ctx context.Context, jobID id.ID) ([]*PMQuote, error) {
	return s.repo.ListByJob(ctx, jobID)
}
