// Package quotes builds, prices and dispatches customer quotes for jobs.
package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fieldserve/internal/core/apperror"
	"fieldserve/internal/core/entity"
	"fieldserve/internal/core/id"
	"fieldserve/internal/core/types"
)

// QuoteType identifies which kind of work a quote prices.
type QuoteType string

const (
	TypeInspection  QuoteType = "inspection"
	TypeReplacement QuoteType = "replacement"
	TypeRepair      QuoteType = "repair"
	TypeMaintenance QuoteType = "maintenance"
)

// ValidTypes lists all accepted quote types.
func ValidTypes() []QuoteType {
	return []QuoteType{TypeInspection, TypeReplacement, TypeRepair, TypeMaintenance}
}

// Status values for a quote record.
const (
	StatusSent      = "sent"
	StatusConfirmed = "confirmed"
)

// JobQuote is the persisted record of a dispatched quote, including a
// snapshot of the exact payload sent to the PDF generator.
type JobQuote struct {
	entity.BaseRecord

	JobID id.ID `db:"job_id" json:"jobId"`

	QuoteType   QuoteType   `db:"quote_type" json:"quoteType"`
	QuoteNumber string      `db:"quote_number" json:"quoteNumber"`
	TotalAmount types.Money `db:"total_amount" json:"totalAmount"`

	// QuoteData is the dispatched payload snapshot (JSON)
	QuoteData json.RawMessage `db:"quote_data" json:"quoteData,omitempty"`

	// PDFURL points at the stored quote document
	PDFURL string `db:"pdf_url" json:"pdfUrl,omitempty"`

	SentTo string    `db:"sent_to" json:"sentTo"`
	SentAt time.Time `db:"sent_at" json:"sentAt"`

	Status string `db:"status" json:"status"`
}

// NewJobQuote creates a quote record for a dispatched quote.
func NewJobQuote(jobID id.ID, quoteType QuoteType, number string, total types.Money) *JobQuote {
	return &JobQuote{
		BaseRecord:  entity.NewBaseRecord(),
		JobID:       jobID,
		QuoteType:   quoteType,
		QuoteNumber: number,
		TotalAmount: total,
		Status:      StatusSent,
	}
}

// Validate implements entity.Validatable.
func (q *JobQuote) Validate(ctx context.Context) error {
	if id.IsNil(q.JobID) {
		return apperror.NewValidation("job is required").
			WithDetail("field", "jobId")
	}
	if q.QuoteNumber == "" {
		return apperror.NewValidation("quote number is required").
			WithDetail("field", "quoteNumber")
	}
	return nil
}

// NewQuoteNumber builds a quote number from the dispatch instant.
// Format: QUOTE-<unix milliseconds>.
func NewQuoteNumber(now time.Time) string {
	return fmt.Sprintf("QUOTE-%d", now.UnixMilli())
}

// UsedInPriorQuote reports whether a source record of the given quote type
// is considered already quoted for the job.
//
// The check is keyed by quote type only: any prior quote of the same type
// flags every source record of that type, regardless of which record the
// prior quote actually priced.
func UsedInPriorQuote(prior []*JobQuote, quoteType QuoteType) bool {
	for _, q := range prior {
		if q.QuoteType == quoteType {
			return true
		}
	}
	return false
}
