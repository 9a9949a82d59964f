package api

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmorales-dev/tienda-api/internal/api/shared"
	"github.com/dmorales-dev/tienda-api/internal/apperr"
	"github.com/dmorales-dev/tienda-api/internal/dispatch"
	"github.com/dmorales-dev/tienda-api/internal/platform/logger"
)

// maxBodyBytes bounds request bodies. The largest legitimate payload is a
// product document; anything past 1 MiB is abuse.
const maxBodyBytes = 1 << 20

// NewResourceHandler adapts a resource dispatcher to net/http. It builds the
// normalized request, dispatches it, and writes either the result envelope or
// the mapped error envelope. The router mounts the same handler at the
// collection path and the item path; presence of the "id" URL parameter is
// what selects between them.
func NewResourceHandler(d *dispatch.Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
		if err != nil {
			HandleError(w, r, apperr.Internal("reading request body", err))
			return
		}
		if len(body) > maxBodyBytes {
			HandleError(w, r, apperr.New(apperr.KindValidation, "Formato de solicitud inválido"))
			return
		}

		req := &dispatch.Request{
			Method:  r.Method,
			Query:   r.URL.Query(),
			Headers: r.Header,
			Body:    body,
		}
		if id := chi.URLParam(r, "id"); id != "" {
			req.PathParams = map[string]string{"id": id}
		}

		result, err := d.Dispatch(r.Context(), req)
		if err != nil {
			HandleError(w, r, err)
			return
		}

		log := logger.FromContextOrDefault(r.Context(), slog.Default())
		log.Info("request completed",
			slog.String("resource", d.Resource()),
			slog.String("method", r.Method),
			slog.Int("status", result.Status))

		shared.WriteEnvelope(w, r, result.Status, result.Message, result.Data)
	}
}
