package jobs

import (
	"context"
	"fmt"
	"time"

	"fieldserve/internal/core/apperror"
	"fieldserve/internal/core/id"
	"fieldserve/internal/core/tx"
	"fieldserve/internal/domain"
	"fieldserve/pkg/numerator"
)

// Service provides business logic for jobs.
// Uses composition with domain.RecordService for common CRUD operations.
type Service struct {
	*domain.RecordService[*Job]
	repo      Repository
	txManager tx.Manager
	numerator *numerator.Service
}

// NewService creates a new Job service.
func NewService(repo Repository, txManager tx.Manager, num *numerator.Service) *Service {
	base := domain.NewRecordService(domain.RecordServiceConfig[*Job]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "job",
	})

	svc := &Service{
		RecordService: base,
		repo:          repo,
		txManager:     txManager,
		numerator:     num,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)
	base.Hooks().OnBeforeUpdate(svc.prepareForUpdate)

	return svc
}

// prepareForCreate assigns a job number and normalizes items before insert.
func (s *Service) prepareForCreate(ctx context.Context, job *Job) error {
	if job.JobNumber == "" {
		cfg := numerator.DefaultConfig("JOB")
		number, err := s.numerator.GetNextNumber(ctx, cfg, nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate job number: %w", err)
		}
		job.JobNumber = number
	}

	job.RecalculateItems()
	return nil
}

// prepareForUpdate normalizes items before update.
func (s *Service) prepareForUpdate(ctx context.Context, job *Job) error {
	job.RecalculateItems()
	return nil
}

// GetWithItems retrieves a job together with its line items.
func (s *Service) GetWithItems(ctx context.Context, jobID id.ID) (*Job, error) {
	job, err := s.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.GetItems(ctx, jobID)
	if err != nil {
		return nil, err
	}
	job.Items = items
	return job, nil
}

// SaveItems replaces the job's line items in one transaction.
// Item totals are recomputed server-side; submitted totals are ignored.
func (s *Service) SaveItems(ctx context.Context, jobID id.ID, items []JobItem) error {
	exists, err := s.repo.Exists(ctx, jobID)
	if err != nil {
		return err
	}
	if !exists {
		return apperror.NewNotFound("job", jobID.String())
	}

	for i := range items {
		if id.IsNil(items[i].LineID) {
			items[i].LineID = id.New()
		}
		items[i].LineNo = i + 1
		items[i].Recalculate()
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.SaveItems(ctx, jobID, items)
	})
}

// ListJobs retrieves jobs with job-specific filtering.
func (s *Service) ListJobs(ctx context.Context, filter ListFilter) (domain.ListResult[*Job], error) {
	return s.repo.ListJobs(ctx, filter)
}

// GetByQuoteToken retrieves a job by its quote token.
func (s *Service) GetByQuoteToken(ctx context.Context, token string) (*Job, error) {
	if token == "" {
		return nil, apperror.NewValidation("token is required").WithDetail("field", "token")
	}
	return s.repo.GetByQuoteToken(ctx, token)
}

// MarkQuoteSent records quote dispatch state on the job.
func (s *Service) MarkQuoteSent(ctx context.Context, jobID id.ID, token, contactEmail string, sentAt time.Time) error {
	return s.repo.MarkQuoteSent(ctx, jobID, token, contactEmail, sentAt)
}

// ConfirmQuote marks the job's quote as accepted by the customer.
// Confirming an already-confirmed quote is a no-op success; the original
// confirmation timestamp is preserved.
func (s *Service) ConfirmQuote(ctx context.Context, token string) (*Job, error) {
	job, err := s.GetByQuoteToken(ctx, token)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("quote", token)
		}
		return nil, err
	}

	if job.QuoteConfirmed {
		return job, nil
	}

	now := time.Now().UTC()
	if err := s.repo.MarkQuoteConfirmed(ctx, job.ID, now); err != nil {
		return nil, err
	}
	job.QuoteConfirmed = true
	job.QuoteConfirmedAt = &now
	return job, nil
}
