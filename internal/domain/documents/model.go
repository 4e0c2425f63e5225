// Package documents provides file attachments stored against jobs.
package documents

import (
	"context"

	"fieldserve/internal/core/apperror"
	"fieldserve/internal/core/entity"
	"fieldserve/internal/core/id"
)

// MaxUploadBytes caps a single document upload at 10MB.
const MaxUploadBytes int64 = 10 * 1024 * 1024

// Status values for a document. Deletion is a status flip, never a row removal.
const (
	StatusActive  = "active"
	StatusDeleted = "deleted"
)

// Document is the metadata record of an uploaded file. The bytes live in
// object storage under ObjectPath.
type Document struct {
	entity.BaseRecord

	JobID id.ID `db:"job_id" json:"jobId"`

	FileName    string `db:"file_name" json:"fileName"`
	ContentType string `db:"content_type" json:"contentType"`
	ObjectPath  string `db:"object_path" json:"objectPath"`
	SizeBytes   int64  `db:"size_bytes" json:"sizeBytes"`

	UploadedBy string `db:"uploaded_by" json:"uploadedBy,omitempty"`

	Status string `db:"status" json:"status"`
}

// NewDocument creates a new active document record.
func NewDocument(jobID id.ID, fileName, contentType string, size int64) *Document {
	return &Document{
		BaseRecord:  entity.NewBaseRecord(),
		JobID:       jobID,
		FileName:    fileName,
		ContentType: contentType,
		SizeBytes:   size,
		Status:      StatusActive,
	}
}

// Validate implements entity.Validatable.
func (d *Document) Validate(ctx context.Context) error {
	if id.IsNil(d.JobID) {
		return apperror.NewValidation("job is required").
			WithDetail("field", "jobId")
	}
	if d.FileName == "" {
		return apperror.NewValidation("file name is required").
			WithDetail("field", "fileName")
	}
	if d.SizeBytes > MaxUploadBytes {
		return apperror.NewPayloadTooLarge(MaxUploadBytes)
	}
	return nil
}
