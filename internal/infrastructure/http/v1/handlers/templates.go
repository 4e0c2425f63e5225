package handlers

import (
	"github.com/gin-gonic/gin"

	"fieldserve/internal/core/apperror"
	"fieldserve/internal/core/id"
	"fieldserve/internal/domain/templates"
	"fieldserve/internal/infrastructure/http/v1/dto"
)

// TemplatesHandler handles HTTP requests for quote email templates.
type TemplatesHandler struct {
	*RecordHandler[*templates.Template, dto.CreateTemplateRequest, dto.UpdateTemplateRequest]
	service *templates.Service
}

// NewTemplatesHandler creates a new templates handler.
func NewTemplatesHandler(base *BaseHandler, service *templates.Service) *TemplatesHandler {
	inner := NewRecordHandler(base, RecordHandlerConfig[*templates.Template, dto.CreateTemplateRequest, dto.UpdateTemplateRequest]{
		Service:    service.RecordService,
		EntityName: "template",
		MapCreateDTO: func(req dto.CreateTemplateRequest) *templates.Template {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateTemplateRequest, existing *templates.Template) *templates.Template {
			req.ApplyTo(existing)
			return existing
		},
	})

	return &TemplatesHandler{
		RecordHandler: inner,
		service:       service,
	}
}

// SetDefault handles POST /templates/:id/default.
func (h *TemplatesHandler) SetDefault(c *gin.Context) {
	ctx := c.Request.Context()

	templateID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.SetDefault(ctx, templateID); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "default template updated")
}
