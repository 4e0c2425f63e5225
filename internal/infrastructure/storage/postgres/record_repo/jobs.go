package record_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"fieldserve/internal/core/apperror"
	"fieldserve/internal/core/id"
	"fieldserve/internal/domain"
	"fieldserve/internal/domain/jobs"
	"fieldserve/internal/infrastructure/storage/postgres"
)

const (
	jobsTable     = "jobs"
	jobItemsTable = "job_items"
)

// Compile-time check that JobRepo implements jobs.Repository.
var _ jobs.Repository = (*JobRepo)(nil)

// JobRepo implements jobs.Repository.
type JobRepo struct {
	*BaseRecordRepo[*jobs.Job]
}

// NewJobRepo creates a new job repository.
func NewJobRepo(txm *postgres.TxManager) *JobRepo {
	return &JobRepo{
		BaseRecordRepo: NewBaseRecordRepo[*jobs.Job](
			txm,
			jobsTable,
			postgres.ExtractDBColumns[jobs.Job](),
			[]string{"job_number", "customer_name", "address"},
			func() *jobs.Job { return &jobs.Job{} },
		),
	}
}

// GetByQuoteToken retrieves the job holding the given quote token.
func (r *JobRepo) GetByQuoteToken(ctx context.Context, token string) (*jobs.Job, error) {
	q := r.BaseSelect().
		Where(squirrel.Eq{"quote_token": token}).
		Limit(1)

	return r.FindOne(ctx, q)
}

// ListJobs retrieves jobs with job-specific filtering.
func (r *JobRepo) ListJobs(ctx context.Context, filter jobs.ListFilter) (domain.ListResult[*jobs.Job], error) {
	if filter.JobType != nil {
		filter.AdvancedFilters = append(filter.AdvancedFilters, eqFilter("job_type", *filter.JobType))
	}
	if filter.Status != nil {
		filter.AdvancedFilters = append(filter.AdvancedFilters, eqFilter("status", *filter.Status))
	}
	if filter.QuoteSent != nil {
		filter.AdvancedFilters = append(filter.AdvancedFilters, eqFilter("quote_sent", *filter.QuoteSent))
	}
	if filter.DateFrom != nil {
		filter.AdvancedFilters = append(filter.AdvancedFilters, gteFilter("scheduled_at", *filter.DateFrom))
	}
	if filter.DateTo != nil {
		filter.AdvancedFilters = append(filter.AdvancedFilters, lteFilter("scheduled_at", *filter.DateTo))
	}

	return r.List(ctx, filter.ListFilter)
}

// GetItems retrieves line items for a job.
func (r *JobRepo) GetItems(ctx context.Context, jobID id.ID) ([]jobs.JobItem, error) {
	q := r.Builder().
		Select(
			"line_id", "line_no", "item_type", "name", "description",
			"quantity", "unit_cost", "total_cost",
		).
		From(jobItemsTable).
		Where(squirrel.Eq{"job_id": jobID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []jobs.JobItem
	if err := pgxscan.Select(ctx, r.Querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("get items: %w", err)
	}

	return items, nil
}

// SaveItems saves line items for a job (delete existing + insert new).
func (r *JobRepo) SaveItems(ctx context.Context, jobID id.ID, items []jobs.JobItem) error {
	querier := r.Querier(ctx)

	// Delete existing items
	deleteSQL := "DELETE FROM " + jobItemsTable + " WHERE job_id = $1"
	if _, err := querier.Exec(ctx, deleteSQL, jobID); err != nil {
		return fmt.Errorf("delete existing items: %w", err)
	}

	if len(items) == 0 {
		return nil
	}

	// Insert new items
	q := r.Builder().
		Insert(jobItemsTable).
		Columns(
			"line_id", "job_id", "line_no", "item_type", "name", "description",
			"quantity", "unit_cost", "total_cost",
		)

	for _, item := range items {
		q = q.Values(
			item.LineID, jobID, item.LineNo, item.ItemType, item.Name, item.Description,
			item.Quantity, item.UnitCost, item.TotalCost,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert items: %w", err)
	}

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert items: %w", err)
	}

	return nil
}

// MarkQuoteSent writes the quote dispatch fields on the job row.
func (r *JobRepo) MarkQuoteSent(ctx context.Context, jobID id.ID, token, contactEmail string, sentAt time.Time) error {
	q := r.Builder().
		Update(jobsTable).
		Set("quote_token", token).
		Set("quote_sent", true).
		Set("quote_sent_at", sentAt).
		Set("contact_email", contactEmail).
		Set("updated_at", sentAt).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": jobID})

	return r.execMarkUpdate(ctx, q, jobID)
}

// MarkQuoteConfirmed writes the confirmation fields on the job row.
func (r *JobRepo) MarkQuoteConfirmed(ctx context.Context, jobID id.ID, confirmedAt time.Time) error {
	q := r.Builder().
		Update(jobsTable).
		Set("quote_confirmed", true).
		Set("quote_confirmed_at", confirmedAt).
		Set("updated_at", confirmedAt).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": jobID})

	return r.execMarkUpdate(ctx, q, jobID)
}

func (r *JobRepo) execMarkUpdate(ctx context.Context, q squirrel.UpdateBuilder, jobID id.ID) error {
	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", jobsTable, err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(jobsTable, jobID.String())
	}

	return nil
}
