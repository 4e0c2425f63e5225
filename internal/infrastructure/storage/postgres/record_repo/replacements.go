package record_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"fieldserve/internal/core/id"
	"fieldserve/internal/domain/replacements"
	"fieldserve/internal/infrastructure/storage/postgres"
)

const replacementsTable = "replacement_quotes"

// Compile-time check that ReplacementRepo implements replacements.Repository.
var _ replacements.Repository = (*ReplacementRepo)(nil)

// ReplacementRepo implements replacements.Repository.
type ReplacementRepo struct {
	*BaseRecordRepo[*replacements.Replacement]
}

// NewReplacementRepo creates a new replacement repository.
func NewReplacementRepo(txm *postgres.TxManager) *ReplacementRepo {
	return &ReplacementRepo{
		BaseRecordRepo: NewBaseRecordRepo[*replacements.Replacement](
			txm,
			replacementsTable,
			postgres.ExtractDBColumns[replacements.Replacement](),
			[]string{"warranty"},
			func() *replacements.Replacement { return &replacements.Replacement{} },
		),
	}
}

// ListByJob retrieves all replacement estimates for a job.
func (r *ReplacementRepo) ListByJob(ctx context.Context, jobID id.ID) ([]*replacements.Replacement, error) {
	q := r.BaseSelect().
		Where(squirrel.Eq{"job_id": jobID}).
		OrderBy("created_at")

	return r.FindMany(ctx, q)
}
