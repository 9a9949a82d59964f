package objectstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmorales-dev/tienda-api/internal/config"
)

func TestContentTypeFor(t *testing.T) {
	tests := []struct {
		fileName string
		want     string
	}{
		{fileName: "foto.jpg", want: "image/jpeg"},
		{fileName: "foto.jpeg", want: "image/jpeg"},
		{fileName: "logo.PNG", want: "image/png"},
		{fileName: "anim.gif", want: "image/gif"},
		{fileName: "banner.webp", want: "image/webp"},
		{fileName: "icono.svg", want: "image/svg+xml"},
		{fileName: "mapa.bmp", want: "image/bmp"},
		// Unrecognized extensions fall back to the generic image type.
		{fileName: "archivo.tiff", want: DefaultContentType},
		{fileName: "sin-extension", want: DefaultContentType},
		{fileName: "carpeta/foto.png", want: "image/png"},
	}

	for _, tc := range tests {
		t.Run(tc.fileName, func(t *testing.T) {
			assert.Equal(t, tc.want, ContentTypeFor(tc.fileName))
		})
	}
}

func TestAllowedExtensions(t *testing.T) {
	exts := AllowedExtensions()
	assert.Contains(t, exts, ".jpg")
	assert.Contains(t, exts, ".png")
	assert.Len(t, exts, 7)
}

func testStorageConfig() config.StorageConfig {
	return config.StorageConfig{
		Endpoint:  "storage.example.com",
		AccessKey: "tienda-access",
		SecretKey: "tienda-secret",
		Bucket:    "tienda-images",
		UseSSL:    true,
		URLExpiry: 24 * time.Hour,
	}
}

func TestSignUpload(t *testing.T) {
	signer, err := NewMinioSigner(testStorageConfig())
	require.NoError(t, err)

	before := time.Now().UTC()
	signed, err := signer.SignUpload(context.Background(), "products/foto.png", "image/png")
	require.NoError(t, err)

	assert.Contains(t, signed.URL, "https://storage.example.com/tienda-images/products/foto.png")
	assert.Contains(t, signed.URL, "X-Amz-Signature=")
	assert.Contains(t, signed.URL, "X-Amz-Expires=86400")
	assert.Equal(t, "products/foto.png", signed.Key)
	assert.Equal(t, "image/png", signed.ContentType)

	// Expiry is the fixed 24h window.
	assert.WithinDuration(t, before.Add(24*time.Hour), signed.ExpiresAt, 5*time.Second)
}

func TestNewMinioSigner_BadEndpoint(t *testing.T) {
	cfg := testStorageConfig()
	cfg.Endpoint = "https://storage.example.com" // scheme not allowed in endpoint
	_, err := NewMinioSigner(cfg)
	assert.Error(t, err)
}
