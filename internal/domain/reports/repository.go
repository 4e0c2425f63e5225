package reports

import (
	"context"
)

// Repository defines report data access interface.
type Repository interface {
	GetSummary(ctx context.Context, filter SummaryFilter) (*Summary, error)
	GetQuoteActivity(ctx context.Context, filter QuoteActivityFilter) (*QuoteActivity, error)
}
