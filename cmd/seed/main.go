// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"fieldserve/internal/core/apperror"
	"fieldserve/internal/core/types"
	"fieldserve/internal/domain/inspections"
	"fieldserve/internal/domain/jobs"
	"fieldserve/internal/domain/pmquotes"
	"fieldserve/internal/domain/quotes"
	"fieldserve/internal/domain/replacements"
	"fieldserve/internal/domain/templates"
	"fieldserve/internal/infrastructure/storage/postgres"
	"fieldserve/internal/infrastructure/storage/postgres/record_repo"
	"fieldserve/pkg/logger"
	"fieldserve/pkg/numerator"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	txManager := postgres.NewTxManager(pool)

	templateService := templates.NewService(record_repo.NewTemplateRepo(txManager), txManager)

	if err := seedDefaultTemplates(ctx, templateService, log); err != nil {
		log.Fatalw("failed to seed templates", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, pool, txManager, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

// seedDefaultTemplates installs the built-in email template as the stored
// default for every quote type that has none. Dispatching requires a stored
// default, so a fresh install gets one per type.
func seedDefaultTemplates(ctx context.Context, svc *templates.Service, log *logger.Logger) error {
	for _, quoteType := range quotes.ValidTypes() {
		qt := string(quoteType)

		_, err := svc.GetDefaultForType(ctx, qt)
		if err == nil {
			log.Infow("default template already present", "quote_type", qt)
			continue
		}
		if !apperror.IsNotFound(err) {
			return err
		}

		fallback := templates.Fallback(qt)
		tpl := templates.NewTemplate("Standard "+qt+" quote", qt)
		tpl.Subject = fallback.Subject
		tpl.Body = fallback.Body

		if err := svc.Create(ctx, tpl); err != nil {
			return fmt.Errorf("create %s template: %w", qt, err)
		}
		if err := svc.SetDefault(ctx, tpl.ID); err != nil {
			return fmt.Errorf("set %s default: %w", qt, err)
		}

		log.Infow("seeded default template", "quote_type", qt, "template_id", tpl.ID)
	}
	return nil
}

// seedDemoData creates a sample job with source records for each quote type.
func seedDemoData(ctx context.Context, pool *postgres.Pool, txManager *postgres.TxManager, log *logger.Logger) error {
	jobService := jobs.NewService(record_repo.NewJobRepo(txManager), txManager, numerator.New(pool))
	inspectionService := inspections.NewService(record_repo.NewInspectionRepo(txManager), txManager)
	replacementService := replacements.NewService(record_repo.NewReplacementRepo(txManager), txManager)
	pmQuoteService := pmquotes.NewService(record_repo.NewPMQuoteRepo(txManager), txManager)

	job := jobs.NewJob("Dana Whitfield", "412 Meadowlark Lane, Austin TX", jobs.TypeRepair)
	email := "dana.whitfield@example.com"
	job.CustomerEmail = &email
	job.Description = "No cooling on second floor, suspected capacitor failure"
	job.AddItem(jobs.ItemPart, "Run capacitor 45/5 MFD", 1, types.MustMoney("38.50"))
	job.AddItem(jobs.ItemLabor, "Diagnostic and replacement labor", 2, types.MustMoney("95"))

	if err := jobService.Create(ctx, job); err != nil {
		return fmt.Errorf("create demo job: %w", err)
	}
	if err := jobService.SaveItems(ctx, job.ID, job.Items); err != nil {
		return fmt.Errorf("save demo job items: %w", err)
	}
	log.Infow("seeded demo job", "job_id", job.ID, "job_number", job.JobNumber)

	age := 14
	insp := inspections.NewInspection(job.ID)
	insp.ModelNumber = "4TWR6036H1000A"
	insp.SerialNumber = "22181KDACA"
	insp.Age = &age
	insp.Tonnage = "3"
	insp.UnitType = inspections.UnitElectric
	insp.SystemType = inspections.SystemSplit
	insp.Comment = "Capacitor reading 21 MFD against 45 MFD rating. Contactor pitted."
	if err := inspectionService.Create(ctx, insp); err != nil {
		return fmt.Errorf("create demo inspection: %w", err)
	}

	repl := replacements.NewReplacement(job.ID)
	repl.InspectionID = &insp.ID
	repl.Phase1.Cost = types.Ptr(types.MustMoney("4200"))
	repl.Phase2.Cost = types.Ptr(types.MustMoney("4800"))
	repl.Phase3.Cost = types.Ptr(types.MustMoney("5900"))
	repl.Labor = types.Ptr(types.MustMoney("1600"))
	repl.StartUpCosts = types.Ptr(types.MustMoney("450"))
	repl.PermitCost = types.Ptr(types.MustMoney("250"))
	repl.RequiresPermit = true
	repl.Accessories = []replacements.CostedItem{
		{Name: "Pad and line set", Cost: types.Ptr(types.MustMoney("320"))},
	}
	repl.Warranty = "10 year parts, 1 year labor"
	if err := replacementService.Create(ctx, repl); err != nil {
		return fmt.Errorf("create demo replacement: %w", err)
	}

	pm := pmquotes.NewPMQuote(job.ID)
	pm.ChecklistTypes = []pmquotes.ChecklistType{pmquotes.ChecklistComprehensive, pmquotes.ChecklistFilter}
	pm.ComprehensiveVisitsPerYear = 2
	pm.FilterVisitsPerYear = 4
	pm.ServicePeriod = "12 months"
	pm.ScopeOfWork = "Seasonal tune-ups plus quarterly filter service"
	if err := pmQuoteService.Create(ctx, pm); err != nil {
		return fmt.Errorf("create demo pm quote: %w", err)
	}

	log.Info("seeded demo source records")
	return nil
}
