package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"fieldserve/internal/core/apperror"
	"fieldserve/internal/core/id"
	"fieldserve/internal/domain/inspections"
	"fieldserve/internal/domain/jobs"
	"fieldserve/internal/domain/pmquotes"
	"fieldserve/internal/domain/replacements"
	"fieldserve/internal/domain/templates"
	"fieldserve/pkg/logger"
)

// Stage identifies a step of the dispatch chain.
type Stage string

const (
	StageDraft         Stage = "DRAFT"
	StageValidating    Stage = "VALIDATING"
	StageGeneratingPDF Stage = "GENERATING_PDF"
	StagePersisting    Stage = "PERSISTING"
	StageEmailing      Stage = "EMAILING"
	StageSent          Stage = "SENT"
)

// --- Collaborator ports ---

// PDFGenerator renders and stores the quote document, returning the URL
// of the stored PDF.
type PDFGenerator interface {
	Generate(ctx context.Context, payload *QuotePayload) (string, error)
}

// EmailMessage is what the email sender dispatches. TotalAmount carries the
// two-decimal formatted amount for the generic body variant.
type EmailMessage struct {
	To          string
	Subject     string
	Body        string
	QuoteType   QuoteType
	QuoteNumber string
	TotalAmount string

	// PDFURL points at the generated quote document; the sender attaches it
	PDFURL string
}

// EmailSender delivers the quote email.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// JobStore is the slice of job operations the dispatcher needs.
type JobStore interface {
	GetWithItems(ctx context.Context, jobID id.ID) (*jobs.Job, error)
	MarkQuoteSent(ctx context.Context, jobID id.ID, token, contactEmail string, sentAt time.Time) error
}

// TemplateSource resolves the stored default email template per quote type.
type TemplateSource interface {
	GetDefaultForType(ctx context.Context, quoteType string) (*templates.Template, error)
}

// InspectionSource loads inspections for a job.
type InspectionSource interface {
	ListByJob(ctx context.Context, jobID id.ID) ([]*inspections.Inspection, error)
}

// ReplacementSource loads replacement estimates for a job.
type ReplacementSource interface {
	ListByJob(ctx context.Context, jobID id.ID) ([]*replacements.Replacement, error)
}

// PMQuoteSource loads PM quotes for a job.
type PMQuoteSource interface {
	ListByJob(ctx context.Context, jobID id.ID) ([]*pmquotes.PMQuote, error)
}

// --- Dispatcher ---

// DispatcherConfig wires the dispatch chain's collaborators.
type DispatcherConfig struct {
	Jobs         JobStore
	Inspections  InspectionSource
	Replacements ReplacementSource
	PMQuotes     PMQuoteSource
	Records      Repository
	Templates    TemplateSource
	PDF          PDFGenerator
	Email        EmailSender

	// ConfirmBaseURL prefixes the customer confirmation link
	ConfirmBaseURL string
	// CompanyName appears in rendered templates
	CompanyName string

	// Now and NewToken exist for tests; defaults are used when nil
	Now      func() time.Time
	NewToken func() string
}

// Dispatcher runs the quote send chain:
// validate, generate PDF, persist record, update job, email.
//
// The chain is strictly sequential and single-shot: no retries, no
// cancellation between stages, no guard against a second concurrent send
// for the same job. Persisting the quote record is best effort; a PDF that
// was generated wins over a record that failed to store.
type Dispatcher struct {
	cfg DispatcherConfig
}

// NewDispatcher creates a quote dispatcher.
func NewDispatcher(cfg DispatcherConfig) *Dispatcher {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.NewToken == nil {
		cfg.NewToken = NewQuoteToken
	}
	return &Dispatcher{cfg: cfg}
}

// SendRequest describes one dispatch.
type SendRequest struct {
	JobID     id.ID
	Selection Selection

	// ContactEmail overrides the job's customer email when set
	ContactEmail string
}

// DispatchResult reports what a dispatch produced.
type DispatchResult struct {
	Stage       Stage         `json:"stage"`
	QuoteNumber string        `json:"quoteNumber"`
	QuoteToken  string        `json:"quoteToken"`
	PDFURL      string        `json:"pdfUrl,omitempty"`
	TotalAmount string        `json:"totalAmount"`
	SentTo      string        `json:"sentTo"`
	Payload     *QuotePayload `json:"-"`
}

// Send runs the full dispatch chain for one quote.
func (d *Dispatcher) Send(ctx context.Context, req SendRequest) (*DispatchResult, error) {
	result := &DispatchResult{Stage: StageDraft}

	// VALIDATING
	result.Stage = StageValidating
	payload, job, err := d.prepare(ctx, req)
	if err != nil {
		return result, err
	}
	result.QuoteNumber = payload.QuoteNumber
	result.QuoteToken = payload.QuoteToken
	result.TotalAmount = payload.TotalAmount.StringFixed(2)
	result.SentTo = payload.CustomerEmail
	result.Payload = payload

	// GENERATING_PDF
	result.Stage = StageGeneratingPDF
	pdfURL, err := d.cfg.PDF.Generate(ctx, payload)
	if err != nil {
		return result, err
	}
	result.PDFURL = pdfURL

	// PERSISTING (best effort: the PDF already exists, a failed record
	// insert must not undo the dispatch)
	result.Stage = StagePersisting
	d.persistRecord(ctx, payload, job, pdfURL)

	// EMAILING
	result.Stage = StageEmailing
	if err := d.email(ctx, payload, job, pdfURL); err != nil {
		return result, err
	}

	result.Stage = StageSent
	return result, nil
}

// prepare validates the request and assembles the payload.
func (d *Dispatcher) prepare(ctx context.Context, req SendRequest) (*QuotePayload, *jobs.Job, error) {
	if err := req.Selection.Validate(); err != nil {
		return nil, nil, err
	}

	job, err := d.cfg.Jobs.GetWithItems(ctx, req.JobID)
	if err != nil {
		return nil, nil, err
	}

	recipient := req.ContactEmail
	if recipient == "" && job.CustomerEmail != nil {
		recipient = *job.CustomerEmail
	}
	if !plausibleEmail(recipient) {
		return nil, nil, apperror.NewValidation("a valid recipient email is required").
			WithDetail("field", "contactEmail")
	}

	sources, err := d.loadSources(ctx, job, req.Selection)
	if err != nil {
		return nil, nil, err
	}

	now := d.cfg.Now()
	payload, err := Assemble(AssembleInput{
		Job:          job,
		Selection:    req.Selection,
		Sources:      sources,
		QuoteNumber:  NewQuoteNumber(now),
		QuoteToken:   d.cfg.NewToken(),
		ContactEmail: recipient,
	})
	if err != nil {
		return nil, nil, err
	}
	return payload, job, nil
}

// loadSources fetches only the records the selection's quote type needs.
func (d *Dispatcher) loadSources(ctx context.Context, job *jobs.Job, sel Selection) (Sources, error) {
	var src Sources
	var err error
	switch sel.QuoteType {
	case TypeInspection:
		src.Inspections, err = d.cfg.Inspections.ListByJob(ctx, job.ID)
	case TypeReplacement:
		src.Replacements, err = d.cfg.Replacements.ListByJob(ctx, job.ID)
	case TypeMaintenance:
		src.PMQuotes, err = d.cfg.PMQuotes.ListByJob(ctx, job.ID)
	case TypeRepair:
		src.JobItems = job.Items
	}
	return src, err
}

// persistRecord stores the quote record with its payload snapshot.
// Failures are logged and swallowed.
func (d *Dispatcher) persistRecord(ctx context.Context, payload *QuotePayload, job *jobs.Job, pdfURL string) {
	record := NewJobQuote(job.ID, payload.QuoteType, payload.QuoteNumber, payload.TotalAmount)
	record.SentTo = payload.CustomerEmail
	record.SentAt = d.cfg.Now().UTC()
	record.PDFURL = pdfURL

	data, err := json.Marshal(payload)
	if err != nil {
		logger.Warn(ctx, "quote payload snapshot not serializable", "error", err, "job_id", job.ID)
	} else {
		record.QuoteData = data
	}

	if err := d.cfg.Records.Create(ctx, record); err != nil {
		logger.Warn(ctx, "quote record insert failed, continuing dispatch",
			"error", err, "job_id", job.ID, "quote_number", payload.QuoteNumber)
	}
}

// email updates the job's dispatch state, then delivers the quote email.
// Sending requires a stored default template for the quote type.
func (d *Dispatcher) email(ctx context.Context, payload *QuotePayload, job *jobs.Job, pdfURL string) error {
	sentAt := d.cfg.Now().UTC()
	if err := d.cfg.Jobs.MarkQuoteSent(ctx, job.ID, payload.QuoteToken, payload.CustomerEmail, sentAt); err != nil {
		return apperror.NewInternal(fmt.Errorf("mark quote sent: %w", err))
	}

	tpl, err := d.cfg.Templates.GetDefaultForType(ctx, string(payload.QuoteType))
	if err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewMissingDefaultTemplate(string(payload.QuoteType))
		}
		return err
	}

	subject, body := tpl.Render(d.templateVars(payload))

	return d.cfg.Email.Send(ctx, EmailMessage{
		To:          payload.CustomerEmail,
		Subject:     subject,
		Body:        body,
		QuoteType:   payload.QuoteType,
		QuoteNumber: payload.QuoteNumber,
		TotalAmount: payload.TotalAmount.StringFixed(2),
		PDFURL:      pdfURL,
	})
}

// Preview assembles the payload and renders the email without dispatching
// anything. Unlike Send, preview falls back to the built-in template when
// no stored default exists.
func (d *Dispatcher) Preview(ctx context.Context, req SendRequest) (*QuotePayload, string, string, error) {
	payload, _, err := d.prepare(ctx, req)
	if err != nil {
		return nil, "", "", err
	}

	tpl, err := d.cfg.Templates.GetDefaultForType(ctx, string(payload.QuoteType))
	if err != nil {
		if !apperror.IsNotFound(err) {
			return nil, "", "", err
		}
		tpl = templates.Fallback(string(payload.QuoteType))
	}

	subject, body := tpl.Render(d.templateVars(payload))
	return payload, subject, body, nil
}

func (d *Dispatcher) templateVars(payload *QuotePayload) templates.Vars {
	return templates.Vars{
		CustomerName: payload.CustomerName,
		QuoteNumber:  payload.QuoteNumber,
		TotalAmount:  payload.TotalAmount.StringFixed(2),
		ConfirmURL:   strings.TrimSuffix(d.cfg.ConfirmBaseURL, "/") + "/" + payload.QuoteToken,
		CompanyName:  d.cfg.CompanyName,
	}
}

func plausibleEmail(s string) bool {
	at := strings.Index(s, "@")
	return at > 0 && at < len(s)-1 && !strings.ContainsAny(s, " \t")
}
