package templates

import (
	"context"

	"fieldserve/internal/core/apperror"
	"fieldserve/internal/core/id"
	"fieldserve/internal/core/tx"
	"fieldserve/internal/domain"
)

// Service provides business logic for quote email templates.
type Service struct {
	*domain.RecordService[*Template]
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new Template service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewRecordService(domain.RecordServiceConfig[*Template]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "template",
	})

	return &Service{
		RecordService: base,
		repo:          repo,
		txManager:     txManager,
	}
}

// GetDefaultForType retrieves the stored default template for a quote type.
func (s *Service) GetDefaultForType(ctx context.Context, quoteType string) (*Template, error) {
	tpl, err := s.repo.GetDefaultForType(ctx, quoteType)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("default template", quoteType)
		}
		return nil, err
	}
	return tpl, nil
}

// SetDefault makes one template the default for its quote type.
// The previous default for that type is cleared in the same transaction.
func (s *Service) SetDefault(ctx context.Context, templateID id.ID) error {
	tpl, err := s.GetByID(ctx, templateID)
	if err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.ClearDefault(ctx, tpl.QuoteType); err != nil {
			return err
		}
		return s.repo.SetDefault(ctx, templateID)
	})
}
