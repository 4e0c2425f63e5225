package pdfclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldserve/internal/core/apperror"
	"fieldserve/internal/domain/quotes"
)

func testPayload() *quotes.QuotePayload {
	return &quotes.QuotePayload{QuoteNumber: "QUOTE-42"}
}

func TestGenerate_ReturnsStoredDocumentURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/generate-quote-pdf", r.URL.Path)
		assert.Equal(t, "Bearer svc-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pdfUrl":"https://files.example.com/quotes/42.pdf"}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, ServiceToken: "svc-token"})
	url, err := c.Generate(context.Background(), testPayload())
	require.NoError(t, err)
	assert.Equal(t, "https://files.example.com/quotes/42.pdf", url)
}

func TestGenerate_MissingDocumentURLIsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	_, err := c.Generate(context.Background(), testPayload())
	require.Error(t, err)
	assert.True(t, apperror.IsUpstream(err))
}

func TestGenerate_RejectedRenderIsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "template error", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	_, err := c.Generate(context.Background(), testPayload())
	require.Error(t, err)
	assert.True(t, apperror.IsUpstream(err))
}
