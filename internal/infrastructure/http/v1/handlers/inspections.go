package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fieldserve/internal/core/apperror"
	"fieldserve/internal/core/id"
	"fieldserve/internal/domain/inspections"
	"fieldserve/internal/infrastructure/http/v1/dto"
)

// InspectionsHandler handles HTTP requests for inspections.
type InspectionsHandler struct {
	*RecordHandler[*inspections.Inspection, dto.CreateInspectionRequest, dto.UpdateInspectionRequest]
	service *inspections.Service
}

// NewInspectionsHandler creates a new inspections handler.
func NewInspectionsHandler(base *BaseHandler, service *inspections.Service) *InspectionsHandler {
	inner := NewRecordHandler(base, RecordHandlerConfig[*inspections.Inspection, dto.CreateInspectionRequest, dto.UpdateInspectionRequest]{
		Service:    service.RecordService,
		EntityName: "inspection",
		MapCreateDTO: func(req dto.CreateInspectionRequest) *inspections.Inspection {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateInspectionRequest, existing *inspections.Inspection) *inspections.Inspection {
			req.ApplyTo(existing)
			return existing
		},
	})

	return &InspectionsHandler{
		RecordHandler: inner,
		service:       service,
	}
}

// Complete handles POST /inspections/:id/complete.
func (h *InspectionsHandler) Complete(c *gin.Context) {
	ctx := c.Request.Context()

	inspectionID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	insp, err := h.service.Complete(ctx, inspectionID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, insp)
}
