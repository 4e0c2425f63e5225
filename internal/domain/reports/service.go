package reports

import (
	"context"
	"fmt"
	"time"
)

// Service provides report generation operations.
type Service struct {
	repo Repository
}

// NewService creates a new reports service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetSummary generates the dashboard summary for the period.
func (s *Service) GetSummary(ctx context.Context, filter SummaryFilter) (*Summary, error) {
	// Default to last 30 days if period not specified
	if filter.ToDate == nil {
		now := time.Now()
		filter.ToDate = &now
	}
	if filter.FromDate == nil {
		from := filter.ToDate.AddDate(0, 0, -30)
		filter.FromDate = &from
	}

	if filter.FromDate.After(*filter.ToDate) {
		return nil, fmt.Errorf("fromDate must be before toDate")
	}

	summary, err := s.repo.GetSummary(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get dashboard summary: %w", err)
	}

	return summary, nil
}

// GetQuoteActivity returns the quote activity journal.
func (s *Service) GetQuoteActivity(ctx context.Context, filter QuoteActivityFilter) (*QuoteActivity, error) {
	// Set default pagination
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 500 {
		filter.Limit = 500
	}

	// Default sort
	if filter.SortBy == "" {
		filter.SortBy = "sent_at"
	}
	if filter.SortOrder == "" {
		filter.SortOrder = "desc"
	}

	journal, err := s.repo.GetQuoteActivity(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get quote activity: %w", err)
	}

	return journal, nil
}
