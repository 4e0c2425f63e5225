package dto

// SummaryReportRequest are the query parameters for the dashboard summary.
// Dates are RFC3339; both default to the last 30 days when omitted.
type SummaryReportRequest struct {
	FromDate string `form:"fromDate"`
	ToDate   string `form:"toDate"`
}

// QuoteActivityReportRequest are the query parameters for the quote
// activity journal.
type QuoteActivityReportRequest struct {
	FromDate string `form:"fromDate"`
	ToDate   string `form:"toDate"`

	QuoteTypes     []string `form:"quoteType"`
	Status         *string  `form:"status"`
	NumberContains string   `form:"numberContains"`

	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder"`

	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}
