package handlers

import (
	"fieldserve/internal/domain/pmquotes"
	"fieldserve/internal/infrastructure/http/v1/dto"
)

// PMQuotesHTTPHandler aliases the generic handler to keep signatures short.
type PMQuotesHTTPHandler = RecordHandler[
	*pmquotes.PMQuote,
	dto.CreatePMQuoteRequest,
	dto.UpdatePMQuoteRequest,
]

// NewPMQuotesHandler creates a new PM quotes handler.
func NewPMQuotesHandler(base *BaseHandler, service *pmquotes.Service) *PMQuotesHTTPHandler {
	return NewRecordHandler(base, RecordHandlerConfig[
		*pmquotes.PMQuote,
		dto.CreatePMQuoteRequest,
		dto.UpdatePMQuoteRequest,
	]{
		Service:    service.RecordService,
		EntityName: "pm quote",
		MapCreateDTO: func(req dto.CreatePMQuoteRequest) *pmquotes.PMQuote {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdatePMQuoteRequest, existing *pmquotes.PMQuote) *pmquotes.PMQuote {
			req.ApplyTo(existing)
			return existing
		},
	})
}
