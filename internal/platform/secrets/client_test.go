package secrets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmorales-dev/tienda-api/internal/config"
)

func newTestClient(baseURL string) *Client {
	return NewClient(config.SecretsConfig{
		BaseURL:      baseURL,
		FetchTimeout: 5 * time.Second,
	})
}

func TestConnectionString_FetchesAndCaches(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/v1/secrets/tienda-db", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"connection_string":"postgres://tienda:pw@db:5432/tienda"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)

	got, err := c.ConnectionString(context.Background(), "tienda-db")
	require.NoError(t, err)
	assert.Equal(t, "postgres://tienda:pw@db:5432/tienda", got)

	// Second call is served from the cache.
	got, err = c.ConnectionString(context.Background(), "tienda-db")
	require.NoError(t, err)
	assert.Equal(t, "postgres://tienda:pw@db:5432/tienda", got)
	assert.Equal(t, int32(1), calls.Load())
}

func TestConnectionString_StoreError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).ConnectionString(context.Background(), "tienda-db")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestConnectionString_EmptyPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).ConnectionString(context.Background(), "tienda-db")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not contain a connection string")
}

func TestConnectionString_TimeoutBound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClient(config.SecretsConfig{
		BaseURL:      srv.URL,
		FetchTimeout: 50 * time.Millisecond,
	})

	start := time.Now()
	_, err := c.ConnectionString(context.Background(), "tienda-db")
	require.Error(t, err)
	assert.Less(t, time.Since(start), 150*time.Millisecond)
}

func TestConnectionString_FailureNotCached(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "warming up", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"connection_string":"postgres://tienda:pw@db:5432/tienda"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)

	_, err := c.ConnectionString(context.Background(), "tienda-db")
	require.Error(t, err)

	got, err := c.ConnectionString(context.Background(), "tienda-db")
	require.NoError(t, err)
	assert.Equal(t, "postgres://tienda:pw@db:5432/tienda", got)
}
