package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fieldserve/internal/core/apperror"
	"fieldserve/internal/core/id"
	"fieldserve/internal/infrastructure/storage/postgres"
)

// AuditHandler exposes per-entity change history.
type AuditHandler struct {
	*BaseHandler
	audit *postgres.AuditService
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(base *BaseHandler, audit *postgres.AuditService) *AuditHandler {
	return &AuditHandler{
		BaseHandler: base,
		audit:       audit,
	}
}

// History returns a handler for GET /{entity}/:id/history.
func (h *AuditHandler) History(entityType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		entityID, err := id.Parse(c.Param("id"))
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid id format"))
			return
		}

		limit := h.ParseIntQuery(c, "limit", 50)

		entries, err := h.audit.GetEntityHistory(ctx, entityType, entityID, limit)
		if err != nil {
			h.Error(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"items": entries})
	}
}
