package record_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"fieldserve/internal/core/apperror"
	"fieldserve/internal/core/id"
	"fieldserve/internal/domain/documents"
	"fieldserve/internal/infrastructure/storage/postgres"
)

const documentsTable = "job_documents"

// Compile-time check that DocumentRepo implements documents.Repository.
var _ documents.Repository = (*DocumentRepo)(nil)

// DocumentRepo implements documents.Repository.
type DocumentRepo struct {
	*BaseRecordRepo[*documents.Document]
}

// NewDocumentRepo creates a new document repository.
func NewDocumentRepo(txm *postgres.TxManager) *DocumentRepo {
	base := NewBaseRecordRepo[*documents.Document](
		txm,
		documentsTable,
		postgres.ExtractDBColumns[documents.Document](),
		[]string{"file_name"},
		func() *documents.Document { return &documents.Document{} },
	).WithActiveCondition(squirrel.NotEq{"status": documents.StatusDeleted})

	return &DocumentRepo{BaseRecordRepo: base}
}

// ListByJob retrieves active documents for a job.
func (r *DocumentRepo) ListByJob(ctx context.Context, jobID id.ID) ([]*documents.Document, error) {
	q := r.BaseSelect().
		Where(squirrel.Eq{"job_id": jobID}).
		Where(squirrel.Eq{"status": documents.StatusActive}).
		OrderBy("created_at DESC")

	return r.FindMany(ctx, q)
}

// SetStatus flips a document's status.
func (r *DocumentRepo) SetStatus(ctx context.Context, documentID id.ID, status string) error {
	q := r.Builder().
		Update(documentsTable).
		Set("status", status).
		Set("updated_at", time.Now().UTC()).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": documentID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build set status: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("set status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(documentsTable, documentID.String())
	}

	return nil
}
