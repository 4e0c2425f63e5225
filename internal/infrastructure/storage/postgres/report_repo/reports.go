// Package report_repo provides PostgreSQL implementations for report repositories.
package report_repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"fieldserve/internal/core/types"
	"fieldserve/internal/domain/quotes"
	"fieldserve/internal/domain/reports"
	"fieldserve/internal/infrastructure/storage/postgres"
)

// Compile-time check that ReportRepo implements reports.Repository.
var _ reports.Repository = (*ReportRepo)(nil)

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txm *postgres.TxManager) *ReportRepo {
	return &ReportRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetSummary generates the dashboard summary over the given period.
func (r *ReportRepo) GetSummary(ctx context.Context, filter reports.SummaryFilter) (*reports.Summary, error) {
	querier := r.txm.GetQuerier(ctx)

	summary := &reports.Summary{
		FromDate:        *filter.FromDate,
		ToDate:          *filter.ToDate,
		QuotedAmount:    types.Zero(),
		ConfirmedAmount: types.Zero(),
	}

	// Jobs by status
	statusQuery := `
		SELECT status, COUNT(*) as count
		FROM jobs
		WHERE created_at >= $1 AND created_at <= $2
		GROUP BY status
		ORDER BY status
	`
	if err := pgxscan.Select(ctx, querier, &summary.JobsByStatus, statusQuery, filter.FromDate, filter.ToDate); err != nil {
		return nil, fmt.Errorf("jobs by status: %w", err)
	}
	for _, row := range summary.JobsByStatus {
		summary.TotalJobs += row.Count
	}

	// Jobs by type
	typeQuery := `
		SELECT job_type, COUNT(*) as count
		FROM jobs
		WHERE created_at >= $1 AND created_at <= $2
		GROUP BY job_type
		ORDER BY job_type
	`
	if err := pgxscan.Select(ctx, querier, &summary.JobsByType, typeQuery, filter.FromDate, filter.ToDate); err != nil {
		return nil, fmt.Errorf("jobs by type: %w", err)
	}

	// Quote totals
	quoteQuery := `
		SELECT
			COUNT(*) as sent,
			COUNT(*) FILTER (WHERE status = $3) as confirmed,
			COALESCE(SUM(total_amount), 0) as quoted_amount,
			COALESCE(SUM(total_amount) FILTER (WHERE status = $3), 0) as confirmed_amount
		FROM job_quotes
		WHERE sent_at >= $1 AND sent_at <= $2
	`
	row := querier.QueryRow(ctx, quoteQuery, filter.FromDate, filter.ToDate, quotes.StatusConfirmed)
	if err := row.Scan(
		&summary.QuotesSent,
		&summary.QuotesConfirmed,
		&summary.QuotedAmount,
		&summary.ConfirmedAmount,
	); err != nil {
		return nil, fmt.Errorf("quote totals: %w", err)
	}

	return summary, nil
}

// GetQuoteActivity returns the quote activity journal joined with jobs.
func (r *ReportRepo) GetQuoteActivity(ctx context.Context, filter reports.QuoteActivityFilter) (*reports.QuoteActivity, error) {
	result := &reports.QuoteActivity{
		Items:  []reports.QuoteActivityItem{},
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.builder.
		Select(
			"q.id as quote_id",
			"q.quote_number",
			"q.quote_type",
			"q.status",
			"q.total_amount",
			"q.sent_to",
			"q.sent_at",
			"j.id as job_id",
			"j.job_number",
			"j.customer_name",
		).
		From("job_quotes q").
		Join("jobs j ON j.id = q.job_id")

	if filter.FromDate != nil {
		q = q.Where(squirrel.GtOrEq{"q.sent_at": *filter.FromDate})
	}
	if filter.ToDate != nil {
		q = q.Where(squirrel.LtOrEq{"q.sent_at": *filter.ToDate})
	}
	if len(filter.QuoteTypes) > 0 {
		q = q.Where(squirrel.Eq{"q.quote_type": filter.QuoteTypes})
	}
	if filter.Status != nil {
		q = q.Where(squirrel.Eq{"q.status": *filter.Status})
	}
	if filter.NumberContains != "" {
		q = q.Where(squirrel.ILike{"q.quote_number": "%" + filter.NumberContains + "%"})
	}

	// Count before pagination
	countQ := r.builder.Select("COUNT(*)").FromSelect(q, "sub")
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalItems); err != nil {
		return nil, fmt.Errorf("count: %w", err)
	}

	orderBy, err := quoteActivityOrderBy(filter.SortBy, filter.SortOrder)
	if err != nil {
		return nil, err
	}
	q = q.OrderBy(orderBy)

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return nil, fmt.Errorf("quote activity: %w", err)
	}

	return result, nil
}

func quoteActivityOrderBy(sortBy, sortOrder string) (string, error) {
	allowed := map[string]string{
		"sent_at":      "q.sent_at",
		"total_amount": "q.total_amount",
		"quote_number": "q.quote_number",
	}

	col, ok := allowed[sortBy]
	if !ok {
		return "", fmt.Errorf("invalid sort field: %s", sortBy)
	}

	direction := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		direction = "ASC"
	}

	return col + " " + direction, nil
}
