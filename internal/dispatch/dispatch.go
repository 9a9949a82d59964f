// Package dispatch implements the route-matching core of the request
// pipeline. The upstream gateway has already resolved the resource name, so
// dispatch within one resource is two-dimensional: HTTP verb crossed with
// "does the request address one item or the collection". Routes are declared
// in an ordered table and the first match wins.
package dispatch

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmorales-dev/tienda-api/internal/apperr"
)

// Request is the normalized view of an inbound call, constructed once per
// invocation by the HTTP adapter and passed by reference through the
// pipeline.
type Request struct {
	Method     string
	PathParams map[string]string
	Query      url.Values
	Headers    http.Header
	Body       []byte
}

// HasPathParams reports whether the request addresses a single item rather
// than the collection.
func (r *Request) HasPathParams() bool {
	return len(r.PathParams) > 0
}

// PathParam returns the named path parameter, or "" when absent.
func (r *Request) PathParam(name string) string {
	return r.PathParams[name]
}

// DecodeBody unmarshals the raw JSON body into v. A missing or malformed
// body is a validation failure, not an internal error.
func (r *Request) DecodeBody(v interface{}) error {
	if len(r.Body) == 0 {
		return apperr.New(apperr.KindValidation, "Formato de solicitud inválido")
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return apperr.Wrap(apperr.KindValidation, "Formato de solicitud inválido", err)
	}
	return nil
}

// Result is a handler's successful outcome: the status code plus the message
// and data placed into the response envelope.
type Result struct {
	Status  int
	Message string
	Data    interface{}
}

// HandlerFunc processes a dispatched request. Failures are reported through
// the error return and mapped to the envelope exactly once at the boundary.
type HandlerFunc func(ctx context.Context, req *Request) (*Result, error)

// Route is one declarative descriptor in a resource's route table.
type Route struct {
	Method             string
	RequiresPathParams bool
	Handler            HandlerFunc
	Description        string
}

// Dispatcher holds the ordered route table for one resource.
type Dispatcher struct {
	resource string
	routes   []Route
	logger   *slog.Logger
}

// New creates a Dispatcher for the named resource.
func New(resource string, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		resource: resource,
		logger:   logger.With(slog.String("component", "dispatcher"), slog.String("resource", resource)),
	}
}

// Register appends a route to the table. Registration order is match order:
// a route whose (method, requiresPathParams) pair is already present will
// never be selected. That mirrors the first-registered-wins behavior of the
// route tables this service replaces; the shadowing is logged rather than
// rejected.
func (d *Dispatcher) Register(route Route) {
	for _, existing := range d.routes {
		if strings.EqualFold(existing.Method, route.Method) &&
			existing.RequiresPathParams == route.RequiresPathParams {
			d.logger.Debug("route shadowed by earlier registration",
				slog.String("method", route.Method),
				slog.Bool("requires_path_params", route.RequiresPathParams),
				slog.String("description", route.Description))
			break
		}
	}
	d.routes = append(d.routes, route)
}

// Resource returns the resource name this dispatcher serves.
func (d *Dispatcher) Resource() string {
	return d.resource
}

// Descriptions lists every registered route description, in registration
// order. Used for the not-found diagnostic payload.
func (d *Dispatcher) Descriptions() []string {
	descriptions := make([]string, 0, len(d.routes))
	for _, rt := range d.routes {
		descriptions = append(descriptions, rt.Description)
	}
	return descriptions
}

// Dispatch scans the route table and invokes the first route whose
// (method, requiresPathParams) tuple matches the request. The handler's
// result or error is propagated unchanged. When nothing matches, the result
// is a 404 listing every registered route for diagnostics.
func (d *Dispatcher) Dispatch(ctx context.Context, req *Request) (*Result, error) {
	hasParams := req.HasPathParams()

	for _, rt := range d.routes {
		if strings.EqualFold(rt.Method, req.Method) && rt.RequiresPathParams == hasParams {
			return rt.Handler(ctx, req)
		}
	}

	d.logger.Warn("no route matched",
		slog.String("method", req.Method),
		slog.Bool("has_path_params", hasParams))

	return &Result{
		Status:  http.StatusNotFound,
		Message: "Ruta no encontrada",
		Data: map[string]interface{}{
			"availableRoutes": d.Descriptions(),
		},
	}, nil
}
