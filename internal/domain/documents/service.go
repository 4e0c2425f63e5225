package documents

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"fieldserve/internal/core/apperror"
	appctx "fieldserve/internal/core/context"
	"fieldserve/internal/core/id"
	"fieldserve/internal/core/tx"
	"fieldserve/internal/domain"
	"fieldserve/pkg/logger"
)

// SignedURLTTL is how long a download link stays valid.
const SignedURLTTL = time.Hour

// Store is the object storage the document bytes live in.
type Store interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) error
	SignedURL(ctx context.Context, objectPath string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, objectPath string) error
}

// Service provides business logic for job documents.
type Service struct {
	*domain.RecordService[*Document]
	repo  Repository
	store Store
}

// NewService creates a new Document service.
func NewService(repo Repository, store Store, txManager tx.Manager) *Service {
	base := domain.NewRecordService(domain.RecordServiceConfig[*Document]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "document",
	})

	return &Service{
		RecordService: base,
		repo:          repo,
		store:         store,
	}
}

// UploadInput describes one upload.
type UploadInput struct {
	JobID       id.ID
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// Upload stores the file bytes and inserts the metadata record.
func (s *Service) Upload(ctx context.Context, in UploadInput) (*Document, error) {
	if in.Size > MaxUploadBytes {
		return nil, apperror.NewPayloadTooLarge(MaxUploadBytes)
	}

	doc := NewDocument(in.JobID, in.FileName, in.ContentType, in.Size)
	doc.UploadedBy = appctx.GetUserID(ctx)
	doc.ObjectPath = objectPath(in.JobID, doc.ID, in.FileName)

	if err := doc.Validate(ctx); err != nil {
		return nil, err
	}

	if err := s.store.Upload(ctx, doc.ObjectPath, in.ContentType, in.Content); err != nil {
		return nil, mapStoreError(err)
	}

	if err := s.Create(ctx, doc); err != nil {
		// The object exists but its record does not; remove the orphan
		if delErr := s.store.Delete(ctx, doc.ObjectPath); delErr != nil {
			logger.Warn(ctx, "orphaned upload cleanup failed",
				"error", delErr, "object_path", doc.ObjectPath)
		}
		return nil, err
	}

	return doc, nil
}

// DownloadURL returns a signed URL for a document, valid for SignedURLTTL.
func (s *Service) DownloadURL(ctx context.Context, documentID id.ID) (string, error) {
	doc, err := s.GetByID(ctx, documentID)
	if err != nil {
		return "", err
	}
	if doc.Status != StatusActive {
		return "", apperror.NewNotFound("document", documentID.String())
	}

	url, err := s.store.SignedURL(ctx, doc.ObjectPath, SignedURLTTL)
	if err != nil {
		return "", mapStoreError(err)
	}
	return url, nil
}

// Remove soft-deletes the record and best-effort removes the object.
func (s *Service) Remove(ctx context.Context, documentID id.ID) error {
	doc, err := s.GetByID(ctx, documentID)
	if err != nil {
		return err
	}

	if err := s.repo.SetStatus(ctx, documentID, StatusDeleted); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, doc.ObjectPath); err != nil {
		logger.Warn(ctx, "document object removal failed",
			"error", err, "object_path", doc.ObjectPath)
	}
	return nil
}

// ListByJob retrieves active documents for a job.
func (s *Service) ListByJob(ctx context.Context, jobID id.ID) ([]*Document, error) {
	return s.repo.ListByJob(ctx, jobID)
}

func objectPath(jobID, docID id.ID, fileName string) string {
	return path.Join("jobs", jobID.String(), fmt.Sprintf("%s-%s", docID.String(), fileName))
}

// mapStoreError translates object-store failures into user-facing errors.
// The store reports auth problems only through message text, so matching
// is by substring.
func mapStoreError(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "JWT"):
		return apperror.NewSessionExpired().WithCause(err)
	case strings.Contains(msg, "policy"):
		return apperror.NewForbidden("You do not have permission to manage documents").WithCause(err)
	default:
		return apperror.NewInternal(err)
	}
}
