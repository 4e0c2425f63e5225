// Package emailclient delivers quote emails through the SendGrid API.
package emailclient

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"fieldserve/internal/core/apperror"
	"fieldserve/internal/domain/quotes"
	"fieldserve/pkg/logger"
)

const defaultAPIURL = "https://api.sendgrid.com/v3/mail/send"

// Compile-time check that SendGridSender implements quotes.EmailSender.
var _ quotes.EmailSender = (*SendGridSender)(nil)

// Config holds SendGrid configuration.
type Config struct {
	APIKey    string
	FromEmail string
	FromName  string

	// APIURL overrides the SendGrid endpoint (used in tests)
	APIURL string

	Timeout time.Duration
}

// SendGridSender sends mail via the SendGrid v3 API.
type SendGridSender struct {
	cfg  Config
	http *http.Client
}

// NewSendGridSender creates a SendGrid-backed email sender.
func NewSendGridSender(cfg Config) *SendGridSender {
	if cfg.APIURL == "" {
		cfg.APIURL = defaultAPIURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &SendGridSender{
		cfg:  cfg,
		http: &http.Client{Timeout: timeout},
	}
}

// sendgrid v3 request shapes
type sgAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sgPersonalization struct {
	To []sgAddress `json:"to"`
}

type sgContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sgAttachment struct {
	Content     string `json:"content"`
	Type        string `json:"type"`
	Filename    string `json:"filename"`
	Disposition string `json:"disposition"`
}

type sgRequest struct {
	Personalizations []sgPersonalization `json:"personalizations"`
	From             sgAddress           `json:"from"`
	Subject          string              `json:"subject"`
	Content          []sgContent         `json:"content"`
	Attachments      []sgAttachment      `json:"attachments,omitempty"`
}

// Send delivers one quote email. When the message carries a document URL
// the PDF is fetched and attached; a document that cannot be fetched fails
// the send.
func (s *SendGridSender) Send(ctx context.Context, msg quotes.EmailMessage) error {
	payload := sgRequest{
		Personalizations: []sgPersonalization{
			{To: []sgAddress{{Email: msg.To}}},
		},
		From:    sgAddress{Email: s.cfg.FromEmail, Name: s.cfg.FromName},
		Subject: msg.Subject,
		Content: []sgContent{
			{Type: "text/html", Value: msg.Body},
		},
	}

	if msg.PDFURL != "" {
		pdf, err := s.fetchPDF(ctx, msg.PDFURL)
		if err != nil {
			return err
		}
		payload.Attachments = []sgAttachment{{
			Content:     base64.StdEncoding.EncodeToString(pdf),
			Type:        "application/pdf",
			Filename:    fmt.Sprintf("quote-%s.pdf", msg.QuoteNumber),
			Disposition: "attachment",
		}}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.http.Do(req)
	if err != nil {
		return apperror.NewUpstream("email", "email service unreachable").WithCause(err)
	}
	defer resp.Body.Close()

	// SendGrid answers 202 on accepted delivery
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		logger.Error(ctx, "email delivery rejected",
			"status", resp.StatusCode, "to", msg.To, "quote_number", msg.QuoteNumber, "body", string(snippet))
		return apperror.NewUpstream("email", fmt.Sprintf("email service returned %d", resp.StatusCode)).
			WithDetail("quoteNumber", msg.QuoteNumber)
	}

	logger.Info(ctx, "quote email sent",
		"to", msg.To, "quote_type", msg.QuoteType, "quote_number", msg.QuoteNumber, "total", msg.TotalAmount)
	return nil
}

// maxAttachmentBytes bounds the fetched document size; SendGrid caps the
// whole message at 30MB.
const maxAttachmentBytes = 20 * 1024 * 1024

// fetchPDF downloads the rendered quote document for attachment.
func (s *SendGridSender) fetchPDF(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build pdf request: %w", err)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, apperror.NewUpstream("email", "quote document unreachable").WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperror.NewUpstream("email", fmt.Sprintf("quote document fetch returned %d", resp.StatusCode)).
			WithDetail("pdfUrl", url)
	}

	pdf, err := io.ReadAll(io.LimitReader(resp.Body, maxAttachmentBytes+1))
	if err != nil {
		return nil, apperror.NewUpstream("email", "quote document read failed").WithCause(err)
	}
	if len(pdf) > maxAttachmentBytes {
		return nil, apperror.NewUpstream("email", "quote document too large to attach").
			WithDetail("pdfUrl", url)
	}

	return pdf, nil
}
