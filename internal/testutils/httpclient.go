// Package testutils holds helpers for tests that exercise the HTTP surface
// end to end. Production request paths never retry; the retrying client here
// exists only so suites hitting a server that is still warming up do not
// flake.
package testutils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// Retry posture for test clients. Bounded and short: a suite should fail
// fast when the server is genuinely broken.
const (
	retryCount       = 3
	retryWaitTime    = 100 * time.Millisecond
	retryMaxWaitTime = time.Second
)

// NewAPIClient returns a resty client aimed at baseURL that retries
// transport errors and 5xx responses with exponential backoff. When token is
// non-empty every request carries it as a bearer credential.
func NewAPIClient(baseURL, token string) *resty.Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetRetryCount(retryCount).
		SetRetryWaitTime(retryWaitTime).
		SetRetryMaxWaitTime(retryMaxWaitTime).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= 500
		})
	if token != "" {
		client.SetAuthToken(token)
	}
	return client
}
