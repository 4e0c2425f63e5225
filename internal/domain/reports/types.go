// Package reports provides dashboard report generation services.
package reports

import (
	"time"

	"fieldserve/internal/core/id"
	"fieldserve/internal/core/types"
)

// --- Dashboard Summary ---

// SummaryFilter defines the period for the dashboard summary.
type SummaryFilter struct {
	// FromDate / ToDate bound the period (defaults: last 30 days)
	FromDate *time.Time
	ToDate   *time.Time
}

// JobStatusCount is one row of the jobs-by-status breakdown.
type JobStatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// JobTypeCount is one row of the jobs-by-type breakdown.
type JobTypeCount struct {
	JobType string `json:"jobType"`
	Count   int64  `json:"count"`
}

// Summary is the dashboard headline report.
type Summary struct {
	FromDate time.Time `json:"fromDate"`
	ToDate   time.Time `json:"toDate"`

	TotalJobs    int64            `json:"totalJobs"`
	JobsByStatus []JobStatusCount `json:"jobsByStatus"`
	JobsByType   []JobTypeCount   `json:"jobsByType"`

	QuotesSent      int64       `json:"quotesSent"`
	QuotesConfirmed int64       `json:"quotesConfirmed"`
	QuotedAmount    types.Money `json:"quotedAmount"`
	ConfirmedAmount types.Money `json:"confirmedAmount"`
}

// --- Quote Activity ---

// QuoteActivityFilter defines filter for the quote activity journal.
type QuoteActivityFilter struct {
	FromDate *time.Time
	ToDate   *time.Time

	QuoteTypes []string
	Status     *string

	// Search by quote number
	NumberContains string

	// Sorting: "sent_at", "total_amount", "quote_number"
	SortBy    string
	SortOrder string // "asc", "desc"

	Limit  int
	Offset int
}

// QuoteActivityItem is one quote record joined with its job.
type QuoteActivityItem struct {
	QuoteID      id.ID       `json:"quoteId"`
	QuoteNumber  string      `json:"quoteNumber"`
	QuoteType    string      `json:"quoteType"`
	Status       string      `json:"status"`
	TotalAmount  types.Money `json:"totalAmount"`
	SentTo       string      `json:"sentTo"`
	SentAt       time.Time   `json:"sentAt"`
	JobID        id.ID       `json:"jobId"`
	JobNumber    string      `json:"jobNumber"`
	CustomerName string      `json:"customerName"`
}

// QuoteActivity is the paged quote activity journal.
type QuoteActivity struct {
	Items      []QuoteActivityItem `json:"items"`
	TotalItems int64               `json:"totalItems"`
	Limit      int                 `json:"limit"`
	Offset     int                 `json:"offset"`
}
