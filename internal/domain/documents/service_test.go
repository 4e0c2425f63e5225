package documents

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldserve/internal/core/apperror"
	"fieldserve/internal/core/id"
	"fieldserve/internal/domain"
)

type fakeRepo struct {
	docs      map[id.ID]*Document
	createErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{docs: make(map[id.ID]*Document)}
}

func (f *fakeRepo) Create(ctx context.Context, d *Document) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.docs[d.ID] = d
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, docID id.ID) (*Document, error) {
	d, ok := f.docs[docID]
	if !ok {
		return nil, apperror.NewNotFound("document", docID.String())
	}
	return d, nil
}

func (f *fakeRepo) Update(ctx context.Context, d *Document) error { return nil }
func (f *fakeRepo) Delete(ctx context.Context, docID id.ID) error { return nil }
func (f *fakeRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Document], error) {
	return domain.ListResult[*Document]{}, nil
}
func (f *fakeRepo) Exists(ctx context.Context, docID id.ID) (bool, error) {
	_, ok := f.docs[docID]
	return ok, nil
}
func (f *fakeRepo) ListByJob(ctx context.Context, jobID id.ID) ([]*Document, error) {
	return nil, nil
}
func (f *fakeRepo) SetStatus(ctx context.Context, docID id.ID, status string) error {
	if d, ok := f.docs[docID]; ok {
		d.Status = status
	}
	return nil
}

type fakeStore struct {
	objects   map[string][]byte
	uploadErr error
	signErr   error
	deleted   []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: make(map[string][]byte)}
}

func (f *fakeStore) Upload(ctx context.Context, objectPath, contentType string, r io.Reader) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	data, _ := io.ReadAll(r)
	f.objects[objectPath] = data
	return nil
}

func (f *fakeStore) SignedURL(ctx context.Context, objectPath string, ttl time.Duration) (string, error) {
	if f.signErr != nil {
		return "", f.signErr
	}
	return "https://storage.example.com/" + objectPath + "?signed", nil
}

func (f *fakeStore) Delete(ctx context.Context, objectPath string) error {
	f.deleted = append(f.deleted, objectPath)
	delete(f.objects, objectPath)
	return nil
}

type noopTx struct{}

func (noopTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService() (*Service, *fakeRepo, *fakeStore) {
	repo := newFakeRepo()
	store := newFakeStore()
	return NewService(repo, store, noopTx{}), repo, store
}

func TestUpload_StoresObjectAndRecord(t *testing.T) {
	svc, repo, store := newTestService()

	doc, err := svc.Upload(context.Background(), UploadInput{
		JobID:       id.New(),
		FileName:    "report.pdf",
		ContentType: "application/pdf",
		Size:        4,
		Content:     bytes.NewReader([]byte("data")),
	})
	require.NoError(t, err)

	assert.Equal(t, StatusActive, doc.Status)
	assert.Contains(t, doc.ObjectPath, "report.pdf")
	assert.Contains(t, store.objects, doc.ObjectPath)
	_, ok := repo.docs[doc.ID]
	assert.True(t, ok)
}

func TestUpload_SizeLimit(t *testing.T) {
	svc, _, store := newTestService()

	_, err := svc.Upload(context.Background(), UploadInput{
		JobID:       id.New(),
		FileName:    "huge.bin",
		ContentType: "application/octet-stream",
		Size:        MaxUploadBytes + 1,
		Content:     bytes.NewReader(nil),
	})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodePayloadTooLarge, appErr.Code)
	assert.Empty(t, store.objects, "nothing uploaded")
}

func TestUpload_StoreErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		storeErr error
		wantCode string
	}{
		{"expired session", errors.New("InvalidJWT: token is expired"), apperror.CodeSessionExpired},
		{"bucket policy", errors.New("new row violates row-level security policy"), apperror.CodeForbidden},
		{"anything else", errors.New("connection reset"), apperror.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, store := newTestService()
			store.uploadErr = tt.storeErr

			_, err := svc.Upload(context.Background(), UploadInput{
				JobID:       id.New(),
				FileName:    "report.pdf",
				ContentType: "application/pdf",
				Size:        4,
				Content:     bytes.NewReader([]byte("data")),
			})
			require.Error(t, err)
			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, appErr.Code)
		})
	}
}

func TestUpload_RecordFailureCleansUpObject(t *testing.T) {
	svc, repo, store := newTestService()
	repo.createErr = errors.New("insert failed")

	_, err := svc.Upload(context.Background(), UploadInput{
		JobID:       id.New(),
		FileName:    "report.pdf",
		ContentType: "application/pdf",
		Size:        4,
		Content:     bytes.NewReader([]byte("data")),
	})
	require.Error(t, err)
	assert.Empty(t, store.objects)
	assert.Len(t, store.deleted, 1)
}

func TestDownloadURL(t *testing.T) {
	svc, _, _ := newTestService()

	doc, err := svc.Upload(context.Background(), UploadInput{
		JobID:       id.New(),
		FileName:    "report.pdf",
		ContentType: "application/pdf",
		Size:        4,
		Content:     bytes.NewReader([]byte("data")),
	})
	require.NoError(t, err)

	url, err := svc.DownloadURL(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Contains(t, url, doc.ObjectPath)

	// Soft-deleted documents are not downloadable
	require.NoError(t, svc.Remove(context.Background(), doc.ID))
	_, err = svc.DownloadURL(context.Background(), doc.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestRemove_SoftDeletesAndDropsObject(t *testing.T) {
	svc, repo, store := newTestService()

	doc, err := svc.Upload(context.Background(), UploadInput{
		JobID:       id.New(),
		FileName:    "report.pdf",
		ContentType: "application/pdf",
		Size:        4,
		Content:     bytes.NewReader([]byte("data")),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Remove(context.Background(), doc.ID))

	assert.Equal(t, StatusDeleted, repo.docs[doc.ID].Status, "row survives as a status flip")
	assert.NotContains(t, store.objects, doc.ObjectPath)
}
