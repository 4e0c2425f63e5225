package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fieldserve/internal/core/apperror"
	"fieldserve/internal/core/id"
	"fieldserve/internal/domain/jobs"
	"fieldserve/internal/domain/quotes"
	"fieldserve/internal/infrastructure/http/v1/dto"
	"fieldserve/pkg/logger"
)

// QuotesHandler handles quote dispatch, preview, history and the public
// customer confirmation endpoint.
type QuotesHandler struct {
	*BaseHandler
	dispatcher   *quotes.Dispatcher
	quoteService *quotes.Service
	jobService   *jobs.Service
}

// NewQuotesHandler creates a new quotes handler.
func NewQuotesHandler(
	base *BaseHandler,
	dispatcher *quotes.Dispatcher,
	quoteService *quotes.Service,
	jobService *jobs.Service,
) *QuotesHandler {
	return &QuotesHandler{
		BaseHandler:  base,
		dispatcher:   dispatcher,
		quoteService: quoteService,
		jobService:   jobService,
	}
}

// Send handles POST /jobs/:id/quotes/send.
func (h *QuotesHandler) Send(c *gin.Context) {
	ctx := c.Request.Context()

	jobID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.SendQuoteRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.dispatcher.Send(ctx, req.ToSendRequest(jobID))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Preview handles POST /jobs/:id/quotes/preview. Nothing is dispatched;
// the assembled payload and rendered email come back for review.
func (h *QuotesHandler) Preview(c *gin.Context) {
	ctx := c.Request.Context()

	jobID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.SendQuoteRequest
	if !h.BindJSON(c, &req) {
		return
	}

	payload, subject, body, err := h.dispatcher.Preview(ctx, req.ToSendRequest(jobID))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.QuotePreviewResponse{
		Payload: payload,
		Subject: subject,
		Body:    body,
	})
}

// Usage handles GET /jobs/:id/quotes/usage. It reports, per quote type,
// whether the job already has a sent quote of that type, so clients can
// flag source records that were already quoted.
func (h *QuotesHandler) Usage(c *gin.Context) {
	ctx := c.Request.Context()

	jobID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	usage := make(map[quotes.QuoteType]bool, len(quotes.ValidTypes()))
	for _, t := range quotes.ValidTypes() {
		used, err := h.quoteService.HasPriorQuoteOfType(ctx, jobID, t)
		if err != nil {
			h.Error(c, err)
			return
		}
		usage[t] = used
	}

	c.JSON(http.StatusOK, gin.H{"usage": usage})
}

// ListByJob handles GET /jobs/:id/quotes, newest first.
func (h *QuotesHandler) ListByJob(c *gin.Context) {
	ctx := c.Request.Context()

	jobID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	records, err := h.quoteService.ListByJob(ctx, jobID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      records,
		TotalCount: int64(len(records)),
		Limit:      len(records),
	})
}

// ViewByToken handles GET /public/quotes/:token. It powers the customer
// confirmation page, so it runs without authentication.
func (h *QuotesHandler) ViewByToken(c *gin.Context) {
	ctx := c.Request.Context()

	job, err := h.jobService.GetByQuoteToken(ctx, c.Param("token"))
	if err != nil {
		if apperror.IsNotFound(err) {
			h.Error(c, apperror.NewNotFound("quote", c.Param("token")))
			return
		}
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// Confirm handles POST /public/quotes/:token/confirm. Confirming twice is
// a no-op success. The quote record update is best effort; the job row is
// the source of truth for confirmation.
func (h *QuotesHandler) Confirm(c *gin.Context) {
	ctx := c.Request.Context()

	job, err := h.jobService.ConfirmQuote(ctx, c.Param("token"))
	if err != nil {
		h.Error(c, err)
		return
	}

	if job.QuoteConfirmedAt != nil {
		if err := h.quoteService.ConfirmLatest(ctx, job.ID, *job.QuoteConfirmedAt); err != nil && !apperror.IsNotFound(err) {
			logger.Warn(ctx, "quote record confirmation failed", "error", err, "job_id", job.ID)
		}
	}

	c.JSON(http.StatusOK, job)
}
