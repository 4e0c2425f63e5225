// Package objstore provides the Google Cloud Storage backed document store.
package objstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"fieldserve/internal/domain/documents"
)

// Compile-time check that GCSStore implements documents.Store.
var _ documents.Store = (*GCSStore)(nil)

// Config holds GCS store configuration.
type Config struct {
	Bucket string

	// CredentialsJSON is the service account key. When empty, Application
	// Default Credentials are used (Cloud Run service account or
	// GOOGLE_APPLICATION_CREDENTIALS).
	CredentialsJSON string
}

// GCSStore stores job documents in a Google Cloud Storage bucket.
type GCSStore struct {
	client *storage.Client
	bucket string

	// signing identity, parsed from the credentials JSON
	signerEmail string
	signerKey   []byte
}

type serviceAccountJSON struct {
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
}

// NewGCSStore creates a GCS-backed document store.
func NewGCSStore(ctx context.Context, cfg Config) (*GCSStore, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, errors.New("gcs bucket is required")
	}

	store := &GCSStore{bucket: cfg.Bucket}

	var opts []option.ClientOption
	if credJSON := strings.TrimSpace(cfg.CredentialsJSON); credJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credJSON)))

		var key serviceAccountJSON
		if err := json.Unmarshal([]byte(credJSON), &key); err != nil {
			return nil, fmt.Errorf("invalid gcs credentials json: %w", err)
		}
		store.signerEmail = key.ClientEmail
		store.signerKey = normalizePrivateKey(key.PrivateKey)
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}
	store.client = client

	return store, nil
}

// Upload writes an object to the bucket.
func (s *GCSStore) Upload(ctx context.Context, objectPath, contentType string, r io.Reader) error {
	wc := s.client.Bucket(s.bucket).Object(objectPath).NewWriter(ctx)
	wc.ContentType = contentType

	if _, err := io.Copy(wc, r); err != nil {
		_ = wc.Close()
		return fmt.Errorf("write object %s: %w", objectPath, err)
	}

	if err := wc.Close(); err != nil {
		return fmt.Errorf("close writer for %s: %w", objectPath, err)
	}

	return nil
}

// SignedURL returns a V4 signed GET URL for the object.
func (s *GCSStore) SignedURL(ctx context.Context, objectPath string, ttl time.Duration) (string, error) {
	opts := &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  "GET",
		Expires: time.Now().Add(ttl),
	}

	if s.signerEmail != "" && len(s.signerKey) > 0 {
		opts.GoogleAccessID = s.signerEmail
		opts.PrivateKey = s.signerKey
		url, err := storage.SignedURL(s.bucket, objectPath, opts)
		if err != nil {
			return "", fmt.Errorf("sign url for %s: %w", objectPath, err)
		}
		return url, nil
	}

	// Without an explicit key, the client signs via the ambient
	// credentials (requires iam.serviceAccounts.signBlob).
	url, err := s.client.Bucket(s.bucket).SignedURL(objectPath, opts)
	if err != nil {
		return "", fmt.Errorf("sign url for %s: %w", objectPath, err)
	}
	return url, nil
}

// Delete removes an object from the bucket. Missing objects are not an error.
func (s *GCSStore) Delete(ctx context.Context, objectPath string) error {
	err := s.client.Bucket(s.bucket).Object(objectPath).Delete(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil
		}
		return fmt.Errorf("delete object %s: %w", objectPath, err)
	}
	return nil
}

// Close releases the underlying client.
func (s *GCSStore) Close() error {
	return s.client.Close()
}

func normalizePrivateKey(key string) []byte {
	key = strings.ReplaceAll(key, "\\n", "\n")
	return []byte(key)
}
