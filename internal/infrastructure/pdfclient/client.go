// Package pdfclient calls the external quote PDF rendering service.
package pdfclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"fieldserve/internal/core/apperror"
	"fieldserve/internal/domain/quotes"
	"fieldserve/pkg/logger"
)

// Compile-time check that Client implements quotes.PDFGenerator.
var _ quotes.PDFGenerator = (*Client)(nil)

// Config holds PDF service configuration.
type Config struct {
	// BaseURL of the rendering service, e.g. https://pdf.internal.example.com
	BaseURL string

	// ServiceToken is sent as a bearer token
	ServiceToken string

	// Timeout for a single render call (default 30s)
	Timeout time.Duration
}

// Client renders and stores quote PDFs through the external service.
// The service persists the rendered document itself and responds with
// the URL of the stored file.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New creates a PDF service client.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		token:   cfg.ServiceToken,
		http:    &http.Client{Timeout: timeout},
	}
}

// Generate submits the quote payload for rendering and returns the URL
// of the stored PDF.
func (c *Client) Generate(ctx context.Context, payload *quotes.QuotePayload) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	url := c.baseURL + "/generate-quote-pdf"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", apperror.NewUpstream("pdf", "pdf service unreachable").WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet := readSnippet(resp.Body)
		logger.Error(ctx, "pdf service rejected render",
			"status", resp.StatusCode, "quote_number", payload.QuoteNumber, "body", snippet)
		return "", apperror.NewUpstream("pdf", fmt.Sprintf("pdf service returned %d", resp.StatusCode)).
			WithDetail("quoteNumber", payload.QuoteNumber)
	}

	var rendered struct {
		PDFURL string `json:"pdfUrl"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&rendered); err != nil {
		return "", apperror.NewUpstream("pdf", "pdf service response not decodable").WithCause(err).
			WithDetail("quoteNumber", payload.QuoteNumber)
	}
	if rendered.PDFURL == "" {
		return "", apperror.NewUpstream("pdf", "pdf service returned no document url").
			WithDetail("quoteNumber", payload.QuoteNumber)
	}

	return rendered.PDFURL, nil
}

// readSnippet reads a bounded prefix of the response body for logging.
func readSnippet(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 512))
	return string(b)
}
