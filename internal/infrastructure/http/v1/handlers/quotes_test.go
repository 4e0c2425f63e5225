package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldserve/internal/core/apperror"
	"fieldserve/internal/core/id"
	"fieldserve/internal/core/types"
	"fieldserve/internal/domain"
	"fieldserve/internal/domain/quotes"
)

type stubQuoteRepo struct {
	records []*quotes.JobQuote
}

func (s *stubQuoteRepo) Create(ctx context.Context, q *quotes.JobQuote) error { return nil }
func (s *stubQuoteRepo) GetByID(ctx context.Context, recordID id.ID) (*quotes.JobQuote, error) {
	return nil, apperror.NewNotFound("quote", recordID.String())
}
func (s *stubQuoteRepo) Update(ctx context.Context, q *quotes.JobQuote) error { return nil }
func (s *stubQuoteRepo) Delete(ctx context.Context, recordID id.ID) error     { return nil }
func (s *stubQuoteRepo) Exists(ctx context.Context, recordID id.ID) (bool, error) {
	return false, nil
}
func (s *stubQuoteRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*quotes.JobQuote], error) {
	return domain.ListResult[*quotes.JobQuote]{}, nil
}
func (s *stubQuoteRepo) ListByJob(ctx context.Context, jobID id.ID) ([]*quotes.JobQuote, error) {
	return s.records, nil
}
func (s *stubQuoteRepo) MarkLatestConfirmed(ctx context.Context, jobID id.ID, at time.Time) error {
	return nil
}

func TestUsage_ReportsPriorQuoteTypes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	jobID := id.New()
	repo := &stubQuoteRepo{records: []*quotes.JobQuote{
		quotes.NewJobQuote(jobID, quotes.TypeRepair, "QUOTE-1", types.MustMoney("690")),
	}}

	h := NewQuotesHandler(NewBaseHandler(), nil, quotes.NewService(repo, nil), nil)
	router := gin.New()
	router.GET("/jobs/:id/quotes/usage", h.Usage)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/jobs/"+jobID.String()+"/quotes/usage", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Usage map[string]bool `json:"usage"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Usage["repair"])
	assert.False(t, resp.Usage["replacement"])
	assert.False(t, resp.Usage["inspection"])
	assert.False(t, resp.Usage["maintenance"])
}
