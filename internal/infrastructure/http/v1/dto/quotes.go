package dto

import (
	"fieldserve/internal/core/id"
	"fieldserve/internal/domain/quotes"
)

// SendQuoteRequest dispatches a quote for a job. Only the ID set matching
// the quote type may be populated; the others must stay empty.
type SendQuoteRequest struct {
	QuoteType string `json:"quoteType" binding:"required"`

	InspectionIDs  []id.ID `json:"inspectionIds"`
	ReplacementIDs []id.ID `json:"replacementIds"`
	PMQuoteIDs     []id.ID `json:"pmQuoteIds"`
	JobItemIDs     []id.ID `json:"jobItemIds"`

	// ContactEmail overrides the job's customer email when set
	ContactEmail string `json:"contactEmail"`
}

// ToSendRequest converts the request for the dispatcher.
func (r SendQuoteRequest) ToSendRequest(jobID id.ID) quotes.SendRequest {
	return quotes.SendRequest{
		JobID: jobID,
		Selection: quotes.Selection{
			QuoteType:      quotes.QuoteType(r.QuoteType),
			InspectionIDs:  r.InspectionIDs,
			ReplacementIDs: r.ReplacementIDs,
			PMQuoteIDs:     r.PMQuoteIDs,
			JobItemIDs:     r.JobItemIDs,
		},
		ContactEmail: r.ContactEmail,
	}
}

// QuotePreviewResponse is what the preview endpoint returns: the payload
// that would be sent, plus the rendered email.
type QuotePreviewResponse struct {
	Payload *quotes.QuotePayload `json:"payload"`
	Subject string               `json:"subject"`
	Body    string               `json:"body"`
}
