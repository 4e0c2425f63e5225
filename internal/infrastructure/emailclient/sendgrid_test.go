package emailclient

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldserve/internal/core/apperror"
	"fieldserve/internal/domain/quotes"
)

func testSender(apiURL string) *SendGridSender {
	return NewSendGridSender(Config{
		APIKey:    "test-key",
		FromEmail: "quotes@example.com",
		FromName:  "Summit Air",
		APIURL:    apiURL,
	})
}

func TestSend_AttachesQuoteDocument(t *testing.T) {
	pdfBytes := []byte("%PDF-1.4 fake document")
	pdfSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(pdfBytes)
	}))
	defer pdfSrv.Close()

	var got sgRequest
	apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer apiSrv.Close()

	err := testSender(apiSrv.URL).Send(context.Background(), quotes.EmailMessage{
		To:          "dana@example.com",
		Subject:     "Your quote",
		Body:        "<p>Attached.</p>",
		QuoteNumber: "QUOTE-42",
		PDFURL:      pdfSrv.URL + "/quotes/42.pdf",
	})
	require.NoError(t, err)

	require.Len(t, got.Attachments, 1)
	att := got.Attachments[0]
	assert.Equal(t, "application/pdf", att.Type)
	assert.Equal(t, "quote-QUOTE-42.pdf", att.Filename)
	assert.Equal(t, "attachment", att.Disposition)

	decoded, err := base64.StdEncoding.DecodeString(att.Content)
	require.NoError(t, err)
	assert.Equal(t, pdfBytes, decoded)
}

func TestSend_NoDocumentURLSendsWithoutAttachment(t *testing.T) {
	var got sgRequest
	apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer apiSrv.Close()

	err := testSender(apiSrv.URL).Send(context.Background(), quotes.EmailMessage{
		To:      "dana@example.com",
		Subject: "Your quote",
		Body:    "<p>No document.</p>",
	})
	require.NoError(t, err)
	assert.Empty(t, got.Attachments)
}

func TestSend_DocumentFetchFailureIsFatal(t *testing.T) {
	pdfSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer pdfSrv.Close()

	apiCalled := false
	apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiCalled = true
		w.WriteHeader(http.StatusAccepted)
	}))
	defer apiSrv.Close()

	err := testSender(apiSrv.URL).Send(context.Background(), quotes.EmailMessage{
		To:          "dana@example.com",
		Subject:     "Your quote",
		Body:        "<p>Attached.</p>",
		QuoteNumber: "QUOTE-42",
		PDFURL:      pdfSrv.URL + "/quotes/missing.pdf",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsUpstream(err))
	assert.False(t, apiCalled, "no email attempt when the document is missing")
}
