package quotes

import (
	"context"
	"time"

	"fieldserve/internal/core/id"
	"fieldserve/internal/core/tx"
	"fieldserve/internal/domain"
)

// Service provides business logic for stored quote records.
type Service struct {
	*domain.RecordService[*JobQuote]
	repo Repository
}

// NewService creates a new JobQuote service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewRecordService(domain.RecordServiceConfig[*JobQuote]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "quote",
	})

	return &Service{
		RecordService: base,
		repo:          repo,
	}
}

// ListByJob retrieves all quote records for a job, newest first.
func (s *Service) ListByJob(ctx context.Context, jobID id.ID) ([]*JobQuote, error) {
	return s.repo.ListByJob(ctx, jobID)
}

// HasPriorQuoteOfType reports whether the job already has a quote of the
// given type. See UsedInPriorQuote for the exact matching semantics.
func (s *Service) HasPriorQuoteOfType(ctx context.Context, jobID id.ID, quoteType QuoteType) (bool, error) {
	prior, err := s.repo.ListByJob(ctx, jobID)
	if err != nil {
		return false, err
	}
	return UsedInPriorQuote(prior, quoteType), nil
}

// ConfirmLatest marks the job's newest quote record confirmed.
func (s *Service) ConfirmLatest(ctx context.Context, jobID id.ID, at time.Time) error {
	return s.repo.MarkLatestConfirmed(ctx, jobID, at)
}
