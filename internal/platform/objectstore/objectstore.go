// Package objectstore issues pre-signed upload URLs for the image bucket.
// Uploads go straight from the client to object storage; this service never
// proxies the bytes.
package objectstore

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/dmorales-dev/tienda-api/internal/config"
)

// DefaultContentType is used when a file extension is not in the table.
const DefaultContentType = "image/jpeg"

// contentTypes maps the accepted file extensions to their content types.
var contentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
	".bmp":  "image/bmp",
}

// ContentTypeFor returns the content type for the file's extension,
// falling back to DefaultContentType for unrecognized extensions.
func ContentTypeFor(fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	if ct, ok := contentTypes[ext]; ok {
		return ct
	}
	return DefaultContentType
}

// AllowedExtensions lists the extensions with an explicit content-type
// mapping, for validation messages.
func AllowedExtensions() []string {
	exts := make([]string, 0, len(contentTypes))
	for ext := range contentTypes {
		exts = append(exts, ext)
	}
	return exts
}

// UploadURL is a signed, time-bounded grant to PUT one object.
type UploadURL struct {
	URL         string    `json:"url"`
	Key         string    `json:"key"`
	ContentType string    `json:"contentType"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// URLSigner issues pre-signed upload URLs.
type URLSigner interface {
	// SignUpload returns a pre-signed PUT URL for the given object key that
	// requires the given Content-Type header on upload.
	SignUpload(ctx context.Context, objectKey, contentType string) (*UploadURL, error)
}

// MinioSigner is a URLSigner backed by an S3-compatible endpoint.
type MinioSigner struct {
	client *minio.Client
	bucket string
	expiry time.Duration
}

var _ URLSigner = (*MinioSigner)(nil)

// NewMinioSigner creates a MinioSigner from the storage configuration.
// No network calls happen here; signing is a local computation.
func NewMinioSigner(cfg config.StorageConfig) (*MinioSigner, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client: %w", err)
	}

	return &MinioSigner{
		client: client,
		bucket: cfg.Bucket,
		expiry: cfg.URLExpiry,
	}, nil
}

// SignUpload implements URLSigner.
func (s *MinioSigner) SignUpload(ctx context.Context, objectKey, contentType string) (*UploadURL, error) {
	signed, err := s.client.PresignHeader(ctx, http.MethodPut, s.bucket, objectKey, s.expiry,
		url.Values{}, http.Header{"Content-Type": []string{contentType}})
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload URL: %w", err)
	}

	return &UploadURL{
		URL:         signed.String(),
		Key:         objectKey,
		ContentType: contentType,
		ExpiresAt:   time.Now().UTC().Add(s.expiry),
	}, nil
}
