package record_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"fieldserve/internal/core/id"
	"fieldserve/internal/domain/pmquotes"
	"fieldserve/internal/infrastructure/storage/postgres"
)

const pmQuotesTable = "pm_quotes"

// Compile-time check that PMQuoteRepo implements pmquotes.Repository.
var _ pmquotes.Repository = (*PMQuoteRepo)(nil)

// PMQuoteRepo implements pmquotes.Repository.
// Checklist types and per-visit cost arrays are stored as JSONB columns.
type PMQuoteRepo struct {
	*BaseRecordRepo[*pmquotes.PMQuote]
}

// NewPMQuoteRepo creates a new PM quote repository.
func NewPMQuoteRepo(txm *postgres.TxManager) *PMQuoteRepo {
	return &PMQuoteRepo{
		BaseRecordRepo: NewBaseRecordRepo[*pmquotes.PMQuote](
			txm,
			pmQuotesTable,
			postgres.ExtractDBColumns[pmquotes.PMQuote](),
			[]string{"service_period", "scope_of_work"},
			func() *pmquotes.PMQuote { return &pmquotes.PMQuote{} },
		),
	}
}

// ListByJob retrieves all PM quotes for a job.
func (r *PMQuoteRepo) ListByJob(ctx context.Context, jobID id.ID) ([]*pmquotes.PMQuote, error) {
	q := r.BaseSelect().
		Where(squirrel.Eq{"job_id": jobID}).
		OrderBy("created_at")

	return r.FindMany(ctx, q)
}
