package shared

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmorales-dev/tienda-api/internal/service/auth"
)

func TestWriteEnvelope(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		message     string
		data        interface{}
		wantSuccess bool
		wantData    bool
	}{
		{
			name:        "success with data",
			status:      http.StatusOK,
			message:     "Productos obtenidos",
			data:        map[string]interface{}{"total": 3},
			wantSuccess: true,
			wantData:    true,
		},
		{
			name:        "created",
			status:      http.StatusCreated,
			message:     "Producto creado",
			wantSuccess: true,
		},
		{
			name:        "validation error",
			status:      http.StatusBadRequest,
			message:     "Error de validación de datos",
			data:        map[string]interface{}{"errors": []string{}},
			wantSuccess: false,
			wantData:    true,
		},
		{
			name:        "unauthorized without data",
			status:      http.StatusUnauthorized,
			message:     "No autorizado",
			wantSuccess: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			w := httptest.NewRecorder()

			WriteEnvelope(w, req, tc.status, tc.message, tc.data)

			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var env Envelope
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
			assert.Equal(t, tc.wantSuccess, env.Success)
			assert.Equal(t, tc.message, env.Message)
			if !tc.wantData {
				assert.Nil(t, env.Data)
			}
		})
	}
}

func TestWriteEnvelope_OmitsEmptyData(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	WriteEnvelope(w, req, http.StatusOK, "ok", nil)

	assert.NotContains(t, w.Body.String(), `"data"`)
}

func TestTraceID(t *testing.T) {
	ctx := SetTraceID(context.Background())

	traceID := GetTraceID(ctx)
	assert.NotEmpty(t, traceID)

	// A fresh context has none.
	assert.Empty(t, GetTraceID(context.Background()))
}

func TestClaimsRoundTrip(t *testing.T) {
	claims := &auth.Claims{UserID: "u-1", Email: "ana@example.com"}
	ctx := WithClaims(context.Background(), claims)

	got, ok := ClaimsFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, claims, got)

	_, ok = ClaimsFromContext(context.Background())
	assert.False(t, ok)
}
