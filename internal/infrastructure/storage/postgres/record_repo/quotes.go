package record_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/klauspost/compress/zstd"

	"fieldserve/internal/core/apperror"
	"fieldserve/internal/core/id"
	"fieldserve/internal/domain/quotes"
	"fieldserve/internal/infrastructure/storage/postgres"
)

const jobQuotesTable = "job_quotes"

// CompressionAlgo specifies the compression algorithm used for stored
// quote payload snapshots.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// snapshotCompressThreshold is the payload size above which snapshots
// are stored compressed.
const snapshotCompressThreshold = 10 * 1024

// Compile-time check that QuoteRepo implements quotes.Repository.
var _ quotes.Repository = (*QuoteRepo)(nil)

// QuoteRepo implements quotes.Repository.
// Payload snapshots larger than the threshold are stored zstd-compressed
// in a side column; reads are transparent.
type QuoteRepo struct {
	*BaseRecordRepo[*quotes.JobQuote]
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// quoteRow adds the snapshot compression columns to the domain record.
type quoteRow struct {
	quotes.JobQuote
	QuoteDataCompressed []byte          `db:"quote_data_compressed"`
	CompressionAlgo     CompressionAlgo `db:"compression_algo"`
}

// NewQuoteRepo creates a new quote record repository.
func NewQuoteRepo(txm *postgres.TxManager) (*QuoteRepo, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &QuoteRepo{
		BaseRecordRepo: NewBaseRecordRepo[*quotes.JobQuote](
			txm,
			jobQuotesTable,
			postgres.ExtractDBColumns[quotes.JobQuote](),
			[]string{"quote_number", "sent_to"},
			func() *quotes.JobQuote { return &quotes.JobQuote{} },
		),
		encoder: encoder,
		decoder: decoder,
	}, nil
}

// Create inserts a quote record, compressing large payload snapshots.
func (r *QuoteRepo) Create(ctx context.Context, quote *quotes.JobQuote) error {
	data := postgres.StructToMap(quote)

	data["compression_algo"] = CompressionNone
	data["quote_data_compressed"] = []byte(nil)
	if len(quote.QuoteData) > snapshotCompressThreshold {
		data["quote_data_compressed"] = r.encoder.EncodeAll(quote.QuoteData, nil)
		data["quote_data"] = nil
		data["compression_algo"] = CompressionZstd
	}

	q := r.Builder().
		Insert(jobQuotesTable).
		SetMap(data)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert %s: %w", jobQuotesTable, err)
	}

	return nil
}

// GetByID retrieves a quote record with its payload snapshot.
func (r *QuoteRepo) GetByID(ctx context.Context, quoteID id.ID) (*quotes.JobQuote, error) {
	q := r.snapshotSelect().
		Where(squirrel.Eq{"id": quoteID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var row quoteRow
	if err := pgxscan.Get(ctx, r.Querier(ctx), &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(jobQuotesTable, quoteID.String())
		}
		return nil, fmt.Errorf("get by id: %w", err)
	}

	return r.restoreSnapshot(&row)
}

// ListByJob retrieves all quote records for a job, newest first.
func (r *QuoteRepo) ListByJob(ctx context.Context, jobID id.ID) ([]*quotes.JobQuote, error) {
	q := r.snapshotSelect().
		Where(squirrel.Eq{"job_id": jobID}).
		OrderBy("sent_at DESC", "created_at DESC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []*quoteRow
	if err := pgxscan.Select(ctx, r.Querier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list by job: %w", err)
	}

	result := make([]*quotes.JobQuote, 0, len(rows))
	for _, row := range rows {
		quote, err := r.restoreSnapshot(row)
		if err != nil {
			return nil, err
		}
		result = append(result, quote)
	}

	return result, nil
}

// MarkLatestConfirmed flips the newest quote record for the job to
// confirmed status.
func (r *QuoteRepo) MarkLatestConfirmed(ctx context.Context, jobID id.ID, at time.Time) error {
	sql := `
		UPDATE ` + jobQuotesTable + `
		SET status = $1, updated_at = $2, version = version + 1
		WHERE id = (
			SELECT id FROM ` + jobQuotesTable + `
			WHERE job_id = $3
			ORDER BY sent_at DESC, created_at DESC
			LIMIT 1
		)
	`

	result, err := r.Querier(ctx).Exec(ctx, sql, quotes.StatusConfirmed, at, jobID)
	if err != nil {
		return fmt.Errorf("mark latest confirmed: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(jobQuotesTable, jobID.String())
	}

	return nil
}

// snapshotSelect selects record columns plus the compression columns.
func (r *QuoteRepo) snapshotSelect() squirrel.SelectBuilder {
	cols := append([]string{}, postgres.ExtractDBColumns[quotes.JobQuote]()...)
	cols = append(cols, "quote_data_compressed", "compression_algo")
	return r.Builder().
		Select(cols...).
		From(jobQuotesTable)
}

// restoreSnapshot decompresses the payload snapshot when needed.
func (r *QuoteRepo) restoreSnapshot(row *quoteRow) (*quotes.JobQuote, error) {
	quote := row.JobQuote
	if row.CompressionAlgo == CompressionZstd && len(row.QuoteDataCompressed) > 0 {
		decompressed, err := r.decoder.DecodeAll(row.QuoteDataCompressed, nil)
		if err != nil {
			return nil, fmt.Errorf("decompress quote data: %w", err)
		}
		quote.QuoteData = decompressed
	}
	return &quote, nil
}
