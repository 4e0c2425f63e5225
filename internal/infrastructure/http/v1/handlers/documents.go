package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fieldserve/internal/core/apperror"
	"fieldserve/internal/core/id"
	"fieldserve/internal/domain/documents"
)

// DocumentsHandler handles HTTP requests for job document attachments.
type DocumentsHandler struct {
	*BaseHandler
	service *documents.Service
}

// NewDocumentsHandler creates a new documents handler.
func NewDocumentsHandler(base *BaseHandler, service *documents.Service) *DocumentsHandler {
	return &DocumentsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Upload handles POST /jobs/:id/documents as multipart/form-data with a
// single "file" field.
func (h *DocumentsHandler) Upload(c *gin.Context) {
	ctx := c.Request.Context()

	jobID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.Error(c, apperror.NewValidation("file is required").WithDetail("error", err.Error()))
		return
	}

	if fileHeader.Size > documents.MaxUploadBytes {
		h.Error(c, apperror.NewPayloadTooLarge(documents.MaxUploadBytes))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.Error(c, apperror.NewValidation("file is not readable").WithDetail("error", err.Error()))
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	doc, err := h.service.Upload(ctx, documents.UploadInput{
		JobID:       jobID,
		FileName:    fileHeader.Filename,
		ContentType: contentType,
		Size:        fileHeader.Size,
		Content:     file,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, doc)
}

// ListByJob handles GET /jobs/:id/documents.
func (h *DocumentsHandler) ListByJob(c *gin.Context) {
	ctx := c.Request.Context()

	jobID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	docs, err := h.service.ListByJob(ctx, jobID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": docs})
}

// DownloadURL handles GET /documents/:id/download-url. The returned link
// expires after documents.SignedURLTTL.
func (h *DocumentsHandler) DownloadURL(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	url, err := h.service.DownloadURL(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":       url,
		"expiresIn": int(documents.SignedURLTTL.Seconds()),
	})
}

// Delete handles DELETE /documents/:id.
func (h *DocumentsHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.Remove(ctx, docID); err != nil {
		h.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
