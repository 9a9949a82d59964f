package api

import (
	"net/http"
	"time"

	"github.com/dmorales-dev/tienda-api/internal/api/shared"
)

// HealthHandler answers liveness probes. It is the only unauthenticated
// route and never touches the database; a healthy process answers even when
// the pool is down.
type HealthHandler struct {
	service string
}

// NewHealthHandler creates a HealthHandler reporting the given service name.
func NewHealthHandler(service string) *HealthHandler {
	return &HealthHandler{service: service}
}

// ServeHTTP implements http.Handler.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	shared.WriteEnvelope(w, r, http.StatusOK, "Servicio disponible", map[string]interface{}{
		"service": h.service,
		"status":  "ok",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}
