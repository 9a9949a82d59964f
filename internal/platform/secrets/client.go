// Package secrets fetches credentials from the external secret store over
// HTTP. Values are cached after the first successful fetch: a warm process
// pays the network round-trip exactly once.
package secrets

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/dmorales-dev/tienda-api/internal/config"
)

// Store retrieves named secrets.
type Store interface {
	// ConnectionString fetches the database connection string held in the
	// named secret. The fetch is bounded by the configured timeout and
	// fails fast when the store is unreachable.
	ConnectionString(ctx context.Context, name string) (string, error)
}

// secretPayload is the JSON blob the secret store returns.
type secretPayload struct {
	ConnectionString string `json:"connection_string"`
}

// Client is a Store backed by the secret-store HTTP API.
type Client struct {
	http *resty.Client

	mu    sync.Mutex
	cache map[string]string
}

var _ Store = (*Client)(nil)

// NewClient creates a Client from the secrets configuration.
func NewClient(cfg config.SecretsConfig) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.FetchTimeout)
	if cfg.Token != "" {
		httpClient.SetAuthToken(cfg.Token)
	}

	return &Client{
		http:  httpClient,
		cache: make(map[string]string),
	}
}

// ConnectionString implements Store.
func (c *Client) ConnectionString(ctx context.Context, name string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cached, ok := c.cache[name]; ok {
		return cached, nil
	}

	var payload secretPayload
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&payload).
		Get("/v1/secrets/" + name)
	if err != nil {
		return "", fmt.Errorf("failed to fetch secret %q: %w", name, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("secret store returned status %d for secret %q", resp.StatusCode(), name)
	}
	if payload.ConnectionString == "" {
		return "", fmt.Errorf("secret %q does not contain a connection string", name)
	}

	c.cache[name] = payload.ConnectionString
	return payload.ConnectionString, nil
}
