package handlers

import (
	"fieldserve/internal/domain/replacements"
	"fieldserve/internal/infrastructure/http/v1/dto"
)

// ReplacementsHTTPHandler aliases the generic handler to keep signatures short.
type ReplacementsHTTPHandler = RecordHandler[
	*replacements.Replacement,
	dto.CreateReplacementRequest,
	dto.UpdateReplacementRequest,
]

// NewReplacementsHandler creates a new replacements handler.
func NewReplacementsHandler(base *BaseHandler, service *replacements.Service) *ReplacementsHTTPHandler {
	return NewRecordHandler(base, RecordHandlerConfig[
		*replacements.Replacement,
		dto.CreateReplacementRequest,
		dto.UpdateReplacementRequest,
	]{
		Service:    service.RecordService,
		EntityName: "replacement",
		MapCreateDTO: func(req dto.CreateReplacementRequest) *replacements.Replacement {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateReplacementRequest, existing *replacements.Replacement) *replacements.Replacement {
			req.ApplyTo(existing)
			return existing
		},
	})
}
