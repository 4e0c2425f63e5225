// Package main is the entry point for the fieldserve API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"fieldserve/internal/domain/auth"
	"fieldserve/internal/domain/documents"
	"fieldserve/internal/domain/inspections"
	"fieldserve/internal/domain/jobs"
	"fieldserve/internal/domain/pmquotes"
	"fieldserve/internal/domain/quotes"
	"fieldserve/internal/domain/replacements"
	"fieldserve/internal/domain/reports"
	"fieldserve/internal/domain/templates"
	"fieldserve/internal/infrastructure/emailclient"
	v1 "fieldserve/internal/infrastructure/http/v1"
	"fieldserve/internal/infrastructure/objstore"
	"fieldserve/internal/infrastructure/pdfclient"
	"fieldserve/internal/infrastructure/storage/postgres"
	"fieldserve/internal/infrastructure/storage/postgres/record_repo"
	"fieldserve/internal/infrastructure/storage/postgres/report_repo"
	"fieldserve/pkg/logger"
	"fieldserve/pkg/numerator"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting fieldserve server")

	// --- Database ---
	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(mustEnv("DATABASE_URL")))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	// --- Repositories ---
	jobRepo := record_repo.NewJobRepo(txManager)
	inspectionRepo := record_repo.NewInspectionRepo(txManager)
	replacementRepo := record_repo.NewReplacementRepo(txManager)
	pmQuoteRepo := record_repo.NewPMQuoteRepo(txManager)
	templateRepo := record_repo.NewTemplateRepo(txManager)
	documentRepo := record_repo.NewDocumentRepo(txManager)
	reportRepo := report_repo.NewReportRepo(txManager)

	quoteRepo, err := record_repo.NewQuoteRepo(txManager)
	if err != nil {
		log.Fatalw("failed to create quote repository", "error", err)
	}

	auditService, err := postgres.NewAuditService(txManager)
	if err != nil {
		log.Fatalw("failed to create audit service", "error", err)
	}

	// --- External collaborators ---
	docStore, err := objstore.NewGCSStore(ctx, objstore.Config{
		Bucket:          mustEnv("GCS_BUCKET"),
		CredentialsJSON: getEnv("GCS_CREDENTIALS_JSON", ""),
	})
	if err != nil {
		log.Fatalw("failed to create document store", "error", err)
	}
	defer docStore.Close()

	pdfGenerator := pdfclient.New(pdfclient.Config{
		BaseURL:      mustEnv("PDF_SERVICE_URL"),
		ServiceToken: getEnv("PDF_SERVICE_TOKEN", ""),
		Timeout:      getEnvDuration("PDF_SERVICE_TIMEOUT", 30*time.Second),
	})

	emailSender := emailclient.NewSendGridSender(emailclient.Config{
		APIKey:    mustEnv("SENDGRID_API_KEY"),
		FromEmail: mustEnv("EMAIL_FROM_ADDRESS"),
		FromName:  getEnv("EMAIL_FROM_NAME", "FieldServe"),
	})

	// --- Domain services ---
	numeratorService := numerator.New(pool)

	jobService := jobs.NewService(jobRepo, txManager, numeratorService)
	inspectionService := inspections.NewService(inspectionRepo, txManager)
	replacementService := replacements.NewService(replacementRepo, txManager)
	pmQuoteService := pmquotes.NewService(pmQuoteRepo, txManager)
	templateService := templates.NewService(templateRepo, txManager)
	quoteService := quotes.NewService(quoteRepo, txManager)
	documentService := documents.NewService(documentRepo, docStore, txManager)
	reportService := reports.NewService(reportRepo)

	dispatcher := quotes.NewDispatcher(quotes.DispatcherConfig{
		Jobs:           jobService,
		Inspections:    inspectionService,
		Replacements:   replacementService,
		PMQuotes:       pmQuoteService,
		Records:        quoteRepo,
		Templates:      templateService,
		PDF:            pdfGenerator,
		Email:          emailSender,
		ConfirmBaseURL: mustEnv("QUOTE_CONFIRM_BASE_URL"),
		CompanyName:    getEnv("COMPANY_NAME", "FieldServe"),
	})

	// --- JWT ---
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(mustEnv("JWT_SECRET")))

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:         pool,
		Logger:       log,
		JWTValidator: jwtService,
		Jobs:         jobService,
		Inspections:  inspectionService,
		Replacements: replacementService,
		PMQuotes:     pmQuoteService,
		Quotes:       quoteService,
		Templates:    templateService,
		Documents:    documentService,
		Reports:      reportService,
		Dispatcher:   dispatcher,
		Audit:        auditService,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
