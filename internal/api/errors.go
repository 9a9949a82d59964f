// Package api contains the HTTP surface: the adapter that bridges the router
// to the per-resource dispatchers, the resource handlers themselves, and the
// single place where errors become response envelopes.
package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmorales-dev/tienda-api/internal/api/shared"
	"github.com/dmorales-dev/tienda-api/internal/apperr"
	"github.com/dmorales-dev/tienda-api/internal/platform/logger"
	"github.com/dmorales-dev/tienda-api/internal/redact"
	"github.com/dmorales-dev/tienda-api/internal/store"
)

// Client messages for mapped failures. Everything the caller sees goes
// through this file; handlers never write raw error text into a response.
const (
	msgValidation   = "Error de validación de datos"
	msgUnauthorized = "No autorizado"
	msgNotFound     = "Recurso no encontrado"
	msgConflict     = "Conflicto con un recurso existente"
	msgInternal     = "Error interno del servidor"
)

// mapped is the envelope-shaped outcome of classifying an error.
type mapped struct {
	Status  int
	Message string
	Data    interface{}
}

// mapError classifies an error into a status, client message, and optional
// data payload. Store sentinels are matched first so the caller gets the
// entity-specific message; everything else falls through to the taxonomy
// kind.
func mapError(err error) mapped {
	switch {
	case errors.Is(err, store.ErrUserNotFound):
		return mapped{Status: http.StatusNotFound, Message: "Usuario no encontrado"}
	case errors.Is(err, store.ErrProductNotFound):
		return mapped{Status: http.StatusNotFound, Message: "Producto no encontrado"}
	case errors.Is(err, store.ErrCategoryNotFound):
		return mapped{Status: http.StatusNotFound, Message: "Categoría no encontrada"}
	case errors.Is(err, store.ErrNotFound):
		return mapped{Status: http.StatusNotFound, Message: msgNotFound}
	case errors.Is(err, store.ErrEmailExists):
		return mapped{Status: http.StatusConflict, Message: "El correo electrónico ya está registrado"}
	case errors.Is(err, store.ErrCategoryNameExists):
		return mapped{Status: http.StatusConflict, Message: "El nombre de la categoría ya existe"}
	case errors.Is(err, store.ErrDuplicate):
		return mapped{Status: http.StatusConflict, Message: msgConflict}
	}

	switch apperr.KindOf(err) {
	case apperr.KindAuth:
		return mapped{Status: http.StatusUnauthorized, Message: msgUnauthorized}
	case apperr.KindValidation:
		if fields := apperr.FieldsOf(err); len(fields) > 0 {
			return mapped{
				Status:  http.StatusBadRequest,
				Message: msgValidation,
				Data:    map[string]interface{}{"errors": fields},
			}
		}
		return mapped{Status: http.StatusBadRequest, Message: operationalMessage(err, msgValidation)}
	case apperr.KindNotFound:
		return mapped{Status: http.StatusNotFound, Message: operationalMessage(err, msgNotFound)}
	case apperr.KindConflict:
		return mapped{Status: http.StatusConflict, Message: operationalMessage(err, msgConflict)}
	default:
		return mapped{Status: http.StatusInternalServerError, Message: msgInternal}
	}
}

// operationalMessage returns the error's own message when it is safe to show,
// falling back otherwise.
func operationalMessage(err error, fallback string) string {
	var appErr *apperr.Error
	if errors.As(err, &appErr) && appErr.Operational && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}

// HandleError maps err and writes the failure envelope. Internal failures are
// logged with the redacted cause; the client only ever sees the generic
// message.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	m := mapError(err)

	log := logger.FromContextOrDefault(r.Context(), slog.Default())
	if m.Status >= http.StatusInternalServerError {
		log.Error("request failed",
			slog.String("error", redact.Error(err)),
			slog.Int("status", m.Status))
	} else {
		log.Debug("request rejected",
			slog.String("error", redact.Error(err)),
			slog.Int("status", m.Status))
	}

	shared.WriteEnvelope(w, r, m.Status, m.Message, m.Data)
}
