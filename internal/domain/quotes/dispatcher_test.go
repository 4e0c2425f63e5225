package quotes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldserve/internal/core/apperror"
	"fieldserve/internal/core/id"
	"fieldserve/internal/domain"
	"fieldserve/internal/domain/inspections"
	"fieldserve/internal/domain/jobs"
	"fieldserve/internal/domain/pmquotes"
	"fieldserve/internal/domain/replacements"
	"fieldserve/internal/domain/templates"
)

// --- fakes ---

type fakeJobStore struct {
	job        *jobs.Job
	markedSent bool
	markErr    error
}

func (f *fakeJobStore) GetWithItems(ctx context.Context, jobID id.ID) (*jobs.Job, error) {
	if f.job == nil || f.job.ID != jobID {
		return nil, apperror.NewNotFound("job", jobID.String())
	}
	return f.job, nil
}

func (f *fakeJobStore) MarkQuoteSent(ctx context.Context, jobID id.ID, token, contactEmail string, sentAt time.Time) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.markedSent = true
	return nil
}

type fakeRecords struct {
	created   []*JobQuote
	createErr error
}

func (f *fakeRecords) Create(ctx context.Context, q *JobQuote) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, q)
	return nil
}

func (f *fakeRecords) GetByID(ctx context.Context, recordID id.ID) (*JobQuote, error) {
	return nil, apperror.NewNotFound("quote", recordID.String())
}
func (f *fakeRecords) Update(ctx context.Context, q *JobQuote) error { return nil }
func (f *fakeRecords) Delete(ctx context.Context, recordID id.ID) error {
	return nil
}
func (f *fakeRecords) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*JobQuote], error) {
	return domain.ListResult[*JobQuote]{}, nil
}
func (f *fakeRecords) Exists(ctx context.Context, recordID id.ID) (bool, error) { return false, nil }
func (f *fakeRecords) ListByJob(ctx context.Context, jobID id.ID) ([]*JobQuote, error) {
	return f.created, nil
}
func (f *fakeRecords) MarkLatestConfirmed(ctx context.Context, jobID id.ID, at time.Time) error {
	return nil
}

type fakeTemplates struct {
	tpl *templates.Template
}

func (f *fakeTemplates) GetDefaultForType(ctx context.Context, quoteType string) (*templates.Template, error) {
	if f.tpl == nil {
		return nil, apperror.NewNotFound("default template", quoteType)
	}
	return f.tpl, nil
}

type fakePDF struct {
	calls int
	url   string
	err   error
}

func (f *fakePDF) Generate(ctx context.Context, payload *QuotePayload) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

type fakeEmail struct {
	sent []EmailMessage
	err  error
}

func (f *fakeEmail) Send(ctx context.Context, msg EmailMessage) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fakeReplacementSource struct {
	list []*replacements.Replacement
}

func (f *fakeReplacementSource) ListByJob(ctx context.Context, jobID id.ID) ([]*replacements.Replacement, error) {
	return f.list, nil
}

type emptyInspectionSource struct{}

func (emptyInspectionSource) ListByJob(ctx context.Context, jobID id.ID) ([]*inspections.Inspection, error) {
	return nil, nil
}

type emptyPMQuoteSource struct{}

func (emptyPMQuoteSource) ListByJob(ctx context.Context, jobID id.ID) ([]*pmquotes.PMQuote, error) {
	return nil, nil
}

// --- fixture ---

type dispatchFixture struct {
	dispatcher *Dispatcher
	jobs       *fakeJobStore
	records    *fakeRecords
	pdf        *fakePDF
	email      *fakeEmail
	tpls       *fakeTemplates
	req        SendRequest
}

func newDispatchFixture(t *testing.T) *dispatchFixture {
	t.Helper()

	job := jobs.NewJob("Dana Whitfield", "48 Alder Ct", jobs.TypeReplacement)
	email := "dana@example.com"
	job.CustomerEmail = &email

	r := replacements.NewReplacement(job.ID)
	r.Phase2.Cost = money("600")
	r.Recalculate()

	sel := NewSelection(TypeReplacement)
	sel.ToggleRecord(r.ID)

	tpl := templates.NewTemplate("standard", string(TypeReplacement))
	tpl.Subject = "Quote {{quote_number}}"
	tpl.Body = "Total: ${{total_amount}}"
	tpl.IsDefault = true

	f := &dispatchFixture{
		jobs:    &fakeJobStore{job: job},
		records: &fakeRecords{},
		pdf:     &fakePDF{url: "https://files.example.com/quotes/fixed.pdf"},
		email:   &fakeEmail{},
		tpls:    &fakeTemplates{tpl: tpl},
		req:     SendRequest{JobID: job.ID, Selection: sel},
	}

	f.dispatcher = NewDispatcher(DispatcherConfig{
		Jobs:           f.jobs,
		Inspections:    emptyInspectionSource{},
		Replacements:   &fakeReplacementSource{list: []*replacements.Replacement{r}},
		PMQuotes:       emptyPMQuoteSource{},
		Records:        f.records,
		Templates:      f.tpls,
		PDF:            f.pdf,
		Email:          f.email,
		ConfirmBaseURL: "https://quotes.example.com/confirm",
		CompanyName:    "Summit Air",
		Now:            func() time.Time { return time.Unix(1700000000, 0).UTC() },
		NewToken:       func() string { return "fixed-token" },
	})
	return f
}

// --- tests ---

func TestDispatch_SuccessRunsFullChain(t *testing.T) {
	f := newDispatchFixture(t)

	result, err := f.dispatcher.Send(context.Background(), f.req)
	require.NoError(t, err)

	assert.Equal(t, StageSent, result.Stage)
	assert.Equal(t, "QUOTE-1700000000000", result.QuoteNumber)
	assert.Equal(t, "fixed-token", result.QuoteToken)
	assert.Equal(t, "1000.00", result.TotalAmount)
	assert.Equal(t, "https://files.example.com/quotes/fixed.pdf", result.PDFURL)

	assert.Equal(t, 1, f.pdf.calls)
	require.Len(t, f.records.created, 1)
	assert.NotEmpty(t, f.records.created[0].QuoteData, "payload snapshot stored")
	assert.Equal(t, "https://files.example.com/quotes/fixed.pdf", f.records.created[0].PDFURL)
	assert.True(t, f.jobs.markedSent)
	require.Len(t, f.email.sent, 1)
	assert.Equal(t, "Quote QUOTE-1700000000000", f.email.sent[0].Subject)
	assert.Equal(t, "Total: $1000.00", f.email.sent[0].Body)
	assert.Equal(t, "https://files.example.com/quotes/fixed.pdf", f.email.sent[0].PDFURL)
}

func TestDispatch_RecordInsertFailureIsSwallowed(t *testing.T) {
	f := newDispatchFixture(t)
	f.records.createErr = errors.New("record store down")

	result, err := f.dispatcher.Send(context.Background(), f.req)
	require.NoError(t, err, "PDF success wins over record-store failure")

	assert.Equal(t, StageSent, result.Stage)
	assert.Empty(t, f.records.created)
	assert.Len(t, f.email.sent, 1)
}

func TestDispatch_PDFFailureAbortsBeforePersistAndEmail(t *testing.T) {
	f := newDispatchFixture(t)
	f.pdf.err = apperror.NewUpstream("pdf", "generator returned 500")

	result, err := f.dispatcher.Send(context.Background(), f.req)
	require.Error(t, err)
	assert.True(t, apperror.IsUpstream(err))

	assert.Equal(t, StageGeneratingPDF, result.Stage)
	assert.Empty(t, f.records.created)
	assert.False(t, f.jobs.markedSent)
	assert.Empty(t, f.email.sent)
}

func TestDispatch_EmptySelectionAbortsEverything(t *testing.T) {
	f := newDispatchFixture(t)
	f.req.Selection = NewSelection(TypeReplacement)

	result, err := f.dispatcher.Send(context.Background(), f.req)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	assert.Equal(t, StageValidating, result.Stage)
	assert.Equal(t, 0, f.pdf.calls)
	assert.Empty(t, f.records.created)
	assert.Empty(t, f.email.sent)
}

func TestDispatch_MissingRecipientRejected(t *testing.T) {
	f := newDispatchFixture(t)
	f.jobs.job.CustomerEmail = nil

	_, err := f.dispatcher.Send(context.Background(), f.req)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	assert.Equal(t, 0, f.pdf.calls)
}

func TestDispatch_MissingDefaultTemplateIsFatalAfterPersist(t *testing.T) {
	f := newDispatchFixture(t)
	f.tpls.tpl = nil

	result, err := f.dispatcher.Send(context.Background(), f.req)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeMissingDefaultTemplate, appErr.Code)

	// The chain reached emailing: PDF generated, record stored, job updated
	assert.Equal(t, StageEmailing, result.Stage)
	assert.Equal(t, 1, f.pdf.calls)
	assert.Len(t, f.records.created, 1)
	assert.True(t, f.jobs.markedSent)
	assert.Empty(t, f.email.sent)
}

func TestDispatch_EmailFailureAfterJobUpdate(t *testing.T) {
	f := newDispatchFixture(t)
	f.email.err = apperror.NewUpstream("email", "mailer returned 502")

	result, err := f.dispatcher.Send(context.Background(), f.req)
	require.Error(t, err)

	// Job already carries the dispatch state; there is no rollback
	assert.Equal(t, StageEmailing, result.Stage)
	assert.True(t, f.jobs.markedSent)
}

func TestPreview_FallsBackToBuiltInTemplate(t *testing.T) {
	f := newDispatchFixture(t)
	f.tpls.tpl = nil

	payload, subject, body, err := f.dispatcher.Preview(context.Background(), f.req)
	require.NoError(t, err)

	assert.Equal(t, "QUOTE-1700000000000", payload.QuoteNumber)
	assert.Contains(t, subject, "QUOTE-1700000000000")
	assert.Contains(t, body, "https://quotes.example.com/confirm/fixed-token")
	assert.Contains(t, body, "Summit Air")

	// Preview dispatches nothing
	assert.Empty(t, f.records.created)
	assert.False(t, f.jobs.markedSent)
	assert.Empty(t, f.email.sent)
}

func TestPreview_PrefersStoredDefault(t *testing.T) {
	f := newDispatchFixture(t)

	_, subject, _, err := f.dispatcher.Preview(context.Background(), f.req)
	require.NoError(t, err)
	assert.Equal(t, "Quote QUOTE-1700000000000", subject)
}

func TestNewQuoteNumber(t *testing.T) {
	now := time.Unix(1700000000, 0)
	assert.Equal(t, "QUOTE-1700000000000", NewQuoteNumber(now))
}

func TestNewQuoteToken_Shape(t *testing.T) {
	a := NewQuoteToken()
	b := NewQuoteToken()
	assert.NotEqual(t, a, b)
	assert.LessOrEqual(t, len(a), 2*tokenChunkLen)
	assert.Greater(t, len(a), 0)
}
