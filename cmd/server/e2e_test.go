package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmorales-dev/tienda-api/internal/api/shared"
	"github.com/dmorales-dev/tienda-api/internal/testutils"
)

// Drives the assembled router over a real listener with the retrying test
// client, the way the deployment smoke checks do.
func TestEndToEnd_HealthAndAuth(t *testing.T) {
	cfg := testConfig()
	srv := httptest.NewServer(testRouter(t, cfg))
	defer srv.Close()

	anon := testutils.NewAPIClient(srv.URL, "")

	resp, err := anon.R().Get("/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())

	resp, err = anon.R().Get("/deal")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())

	authed := testutils.NewAPIClient(srv.URL, signTestToken(t, cfg))

	resp, err = authed.R().Patch("/product")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())

	var env shared.Envelope
	require.NoError(t, json.Unmarshal(resp.Body(), &env))
	assert.Equal(t, "Ruta no encontrada", env.Message)
}
