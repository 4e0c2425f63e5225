// Package v1 provides HTTP API version 1.
package v1

import (
	"context"

	"github.com/gin-gonic/gin"

	"fieldserve/internal/domain/audit"
	"fieldserve/internal/domain/documents"
	"fieldserve/internal/domain/inspections"
	"fieldserve/internal/domain/jobs"
	"fieldserve/internal/domain/pmquotes"
	"fieldserve/internal/domain/quotes"
	"fieldserve/internal/domain/replacements"
	"fieldserve/internal/domain/reports"
	"fieldserve/internal/domain/templates"
	"fieldserve/internal/infrastructure/http/v1/handlers"
	"fieldserve/internal/infrastructure/http/v1/middleware"
	"fieldserve/internal/infrastructure/storage/postgres"
	"fieldserve/pkg/logger"
)

// RouterConfig holds the wired services the router exposes.
type RouterConfig struct {
	// Pool is the database connection pool (for health checks)
	Pool *postgres.Pool

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// Domain services
	Jobs         *jobs.Service
	Inspections  *inspections.Service
	Replacements *replacements.Service
	PMQuotes     *pmquotes.Service
	Quotes       *quotes.Service
	Templates    *templates.Service
	Documents    *documents.Service
	Reports      *reports.Service

	// Dispatcher runs the quote send chain
	Dispatcher *quotes.Dispatcher

	// Audit records entity change history
	Audit *postgres.AuditService
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	registerAuditHooks(cfg)

	// Health endpoints (no auth)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	baseHandler := handlers.NewBaseHandler()
	quotesHandler := handlers.NewQuotesHandler(baseHandler, cfg.Dispatcher, cfg.Quotes, cfg.Jobs)
	documentsHandler := handlers.NewDocumentsHandler(baseHandler, cfg.Documents)

	// Public customer-facing endpoints. The quote token in the URL is the
	// only credential.
	public := router.Group("/public")
	{
		public.GET("/quotes/:token", quotesHandler.ViewByToken)
		public.POST("/quotes/:token/confirm", quotesHandler.Confirm)
	}

	// API v1 (JWT required)
	v1 := router.Group("/api/v1")
	v1.Use(middleware.Auth(cfg.JWTValidator))
	{
		registerJobRoutes(v1, cfg, baseHandler, quotesHandler, documentsHandler)
		registerSourceRecordRoutes(v1, cfg, baseHandler)
		registerTemplateRoutes(v1, cfg, baseHandler)
		registerDocumentRoutes(v1, documentsHandler)
		registerReportRoutes(v1, cfg, baseHandler)
	}

	return router
}

// registerAuditHooks attaches audit-field enrichment and change logging to
// the mutating service operations. After-hook failures never roll back the
// record; RecordService swallows them.
func registerAuditHooks(cfg RouterConfig) {
	cfg.Jobs.Hooks().OnBeforeCreate(func(ctx context.Context, j *jobs.Job) error {
		audit.EnrichCreatedByDirect(ctx, &j.CreatedBy, &j.UpdatedBy)
		return nil
	})
	cfg.Jobs.Hooks().OnBeforeUpdate(func(ctx context.Context, j *jobs.Job) error {
		audit.EnrichUpdatedByDirect(ctx, &j.UpdatedBy)
		return nil
	})
	cfg.Jobs.Hooks().OnAfterCreate(func(ctx context.Context, j *jobs.Job) error {
		return cfg.Audit.LogChange(ctx, "job", j.ID, postgres.AuditActionCreate,
			map[string]any{"jobNumber": j.JobNumber, "jobType": j.JobType})
	})
	cfg.Jobs.Hooks().OnAfterUpdate(func(ctx context.Context, j *jobs.Job) error {
		return cfg.Audit.LogChange(ctx, "job", j.ID, postgres.AuditActionUpdate,
			map[string]any{"version": j.Version, "status": j.Status})
	})
	cfg.Jobs.Hooks().OnAfterDelete(func(ctx context.Context, j *jobs.Job) error {
		return cfg.Audit.LogChange(ctx, "job", j.ID, postgres.AuditActionDelete, nil)
	})

	cfg.Inspections.Hooks().OnBeforeCreate(func(ctx context.Context, i *inspections.Inspection) error {
		audit.EnrichCreatedByDirect(ctx, &i.CreatedBy, &i.UpdatedBy)
		return nil
	})
	cfg.Inspections.Hooks().OnBeforeUpdate(func(ctx context.Context, i *inspections.Inspection) error {
		audit.EnrichUpdatedByDirect(ctx, &i.UpdatedBy)
		return nil
	})

	cfg.Replacements.Hooks().OnBeforeCreate(func(ctx context.Context, r *replacements.Replacement) error {
		audit.EnrichCreatedByDirect(ctx, &r.CreatedBy, &r.UpdatedBy)
		return nil
	})
	cfg.Replacements.Hooks().OnBeforeUpdate(func(ctx context.Context, r *replacements.Replacement) error {
		audit.EnrichUpdatedByDirect(ctx, &r.UpdatedBy)
		return nil
	})

	cfg.PMQuotes.Hooks().OnBeforeCreate(func(ctx context.Context, q *pmquotes.PMQuote) error {
		audit.EnrichCreatedByDirect(ctx, &q.CreatedBy, &q.UpdatedBy)
		return nil
	})
	cfg.PMQuotes.Hooks().OnBeforeUpdate(func(ctx context.Context, q *pmquotes.PMQuote) error {
		audit.EnrichUpdatedByDirect(ctx, &q.UpdatedBy)
		return nil
	})

	cfg.Templates.Hooks().OnBeforeCreate(func(ctx context.Context, t *templates.Template) error {
		audit.EnrichCreatedByDirect(ctx, &t.CreatedBy, &t.UpdatedBy)
		return nil
	})
	cfg.Templates.Hooks().OnBeforeUpdate(func(ctx context.Context, t *templates.Template) error {
		audit.EnrichUpdatedByDirect(ctx, &t.UpdatedBy)
		return nil
	})
	cfg.Templates.Hooks().OnAfterUpdate(func(ctx context.Context, t *templates.Template) error {
		return cfg.Audit.LogChange(ctx, "template", t.ID, postgres.AuditActionUpdate,
			map[string]any{"version": t.Version, "isDefault": t.IsDefault})
	})

	cfg.Documents.Hooks().OnBeforeCreate(func(ctx context.Context, d *documents.Document) error {
		audit.EnrichCreatedByDirect(ctx, &d.CreatedBy, &d.UpdatedBy)
		return nil
	})
	cfg.Documents.Hooks().OnAfterCreate(func(ctx context.Context, d *documents.Document) error {
		return cfg.Audit.LogChange(ctx, "document", d.ID, postgres.AuditActionCreate,
			map[string]any{"fileName": d.FileName, "sizeBytes": d.SizeBytes})
	})
}

func registerJobRoutes(
	rg *gin.RouterGroup,
	cfg RouterConfig,
	base *handlers.BaseHandler,
	quotesHandler *handlers.QuotesHandler,
	documentsHandler *handlers.DocumentsHandler,
) {
	jobsHandler := handlers.NewJobsHandler(base, cfg.Jobs)
	auditHandler := handlers.NewAuditHandler(base, cfg.Audit)

	group := rg.Group("/jobs")

	RegisterRecordRoutes(group, jobsHandler)
	group.PUT("/:id/items", jobsHandler.SaveItems)
	group.GET("/:id/history", auditHandler.History("job"))

	// Quote operations are job-scoped
	group.GET("/:id/quotes", quotesHandler.ListByJob)
	group.GET("/:id/quotes/usage", quotesHandler.Usage)
	group.POST("/:id/quotes/send", quotesHandler.Send)
	group.POST("/:id/quotes/preview", quotesHandler.Preview)

	// Document attachments are job-scoped
	group.GET("/:id/documents", documentsHandler.ListByJob)
	group.POST("/:id/documents", documentsHandler.Upload)
}

func registerSourceRecordRoutes(rg *gin.RouterGroup, cfg RouterConfig, base *handlers.BaseHandler) {
	inspectionsHandler := handlers.NewInspectionsHandler(base, cfg.Inspections)
	inspGroup := rg.Group("/inspections")
	RegisterRecordRoutes(inspGroup, inspectionsHandler)
	inspGroup.POST("/:id/complete", inspectionsHandler.Complete)

	RegisterRecordRoutes(rg.Group("/replacements"), handlers.NewReplacementsHandler(base, cfg.Replacements))
	RegisterRecordRoutes(rg.Group("/pm-quotes"), handlers.NewPMQuotesHandler(base, cfg.PMQuotes))
}

func registerTemplateRoutes(rg *gin.RouterGroup, cfg RouterConfig, base *handlers.BaseHandler) {
	handler := handlers.NewTemplatesHandler(base, cfg.Templates)

	group := rg.Group("/templates")
	group.Use(middleware.RequireRole("admin", "manager"))

	RegisterRecordRoutes(group, handler)
	group.POST("/:id/default", handler.SetDefault)
}

func registerDocumentRoutes(rg *gin.RouterGroup, handler *handlers.DocumentsHandler) {
	group := rg.Group("/documents")
	group.GET("/:id/download-url", handler.DownloadURL)
	group.DELETE("/:id", handler.Delete)
}

func registerReportRoutes(rg *gin.RouterGroup, cfg RouterConfig, base *handlers.BaseHandler) {
	handler := handlers.NewReportsHandler(base, cfg.Reports)

	group := rg.Group("/reports")
	group.GET("/summary", handler.GetSummary)
	group.GET("/quote-activity", handler.GetQuoteActivity)
}
