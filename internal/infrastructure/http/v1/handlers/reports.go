package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fieldserve/internal/core/apperror"
	"fieldserve/internal/domain/reports"
	"fieldserve/internal/infrastructure/http/v1/dto"
)

// ReportsHandler handles HTTP requests for reports.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

func parseOptionalDate(value, field string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, apperror.NewValidation("invalid " + field + " format, expected RFC3339")
	}
	return &t, nil
}

// GetSummary handles GET /reports/summary
func (h *ReportsHandler) GetSummary(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SummaryReportRequest
	if !h.BindQuery(c, &req) {
		return
	}

	fromDate, err := parseOptionalDate(req.FromDate, "fromDate")
	if err != nil {
		h.Error(c, err)
		return
	}
	toDate, err := parseOptionalDate(req.ToDate, "toDate")
	if err != nil {
		h.Error(c, err)
		return
	}

	summary, err := h.service.GetSummary(ctx, reports.SummaryFilter{
		FromDate: fromDate,
		ToDate:   toDate,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetQuoteActivity handles GET /reports/quote-activity
func (h *ReportsHandler) GetQuoteActivity(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.QuoteActivityReportRequest
	if !h.BindQuery(c, &req) {
		return
	}

	fromDate, err := parseOptionalDate(req.FromDate, "fromDate")
	if err != nil {
		h.Error(c, err)
		return
	}
	toDate, err := parseOptionalDate(req.ToDate, "toDate")
	if err != nil {
		h.Error(c, err)
		return
	}

	activity, err := h.service.GetQuoteActivity(ctx, reports.QuoteActivityFilter{
		FromDate:       fromDate,
		ToDate:         toDate,
		QuoteTypes:     req.QuoteTypes,
		Status:         req.Status,
		NumberContains: req.NumberContains,
		SortBy:         req.SortBy,
		SortOrder:      req.SortOrder,
		Limit:          req.Limit,
		Offset:         req.Offset,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, activity)
}
