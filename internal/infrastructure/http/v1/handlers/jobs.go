package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fieldserve/internal/core/apperror"
	"fieldserve/internal/core/id"
	"fieldserve/internal/domain/jobs"
	"fieldserve/internal/infrastructure/http/v1/dto"
)

// JobsHandler handles HTTP requests for jobs and their line items.
type JobsHandler struct {
	*RecordHandler[*jobs.Job, dto.CreateJobRequest, dto.UpdateJobRequest]
	service *jobs.Service
}

// NewJobsHandler creates a new jobs handler.
func NewJobsHandler(base *BaseHandler, service *jobs.Service) *JobsHandler {
	inner := NewRecordHandler(base, RecordHandlerConfig[*jobs.Job, dto.CreateJobRequest, dto.UpdateJobRequest]{
		Service:    service.RecordService,
		EntityName: "job",
		MapCreateDTO: func(req dto.CreateJobRequest) *jobs.Job {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateJobRequest, existing *jobs.Job) *jobs.Job {
			req.ApplyTo(existing)
			return existing
		},
	})

	return &JobsHandler{
		RecordHandler: inner,
		service:       service,
	}
}

// List handles GET /jobs with job-specific filters on top of the common ones.
func (h *JobsHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	base, err := h.ParseListFilter(c)
	if err != nil {
		h.Error(c, err)
		return
	}

	filter := jobs.ListFilter{ListFilter: base}

	if v := c.Query("jobType"); v != "" {
		jt := jobs.JobType(v)
		filter.JobType = &jt
	}
	if v := c.Query("status"); v != "" {
		st := jobs.Status(v)
		filter.Status = &st
	}
	if v := c.Query("quoteSent"); v != "" {
		sent := v == "true"
		filter.QuoteSent = &sent
	}
	if v := c.Query("dateFrom"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid dateFrom format, expected RFC3339"))
			return
		}
		filter.DateFrom = &t
	}
	if v := c.Query("dateTo"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid dateTo format, expected RFC3339"))
			return
		}
		filter.DateTo = &t
	}

	result, err := h.service.ListJobs(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      result.Items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Get handles GET /jobs/:id and includes the job's line items.
func (h *JobsHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	jobID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	job, err := h.service.GetWithItems(ctx, jobID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// SaveItems handles PUT /jobs/:id/items, replacing the job's line items.
func (h *JobsHandler) SaveItems(c *gin.Context) {
	ctx := c.Request.Context()

	jobID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.SaveJobItemsRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.SaveItems(ctx, jobID, req.ToItems()); err != nil {
		h.Error(c, err)
		return
	}

	job, err := h.service.GetWithItems(ctx, jobID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}
