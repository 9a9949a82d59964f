package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmorales-dev/tienda-api/internal/dispatch"
	"github.com/dmorales-dev/tienda-api/internal/store"
)

// DealHandler serves the deal resource. The surface is list-only: deals are
// provisioned out of band and the storefront only reads the ones currently
// running.
type DealHandler struct {
	deals store.DealStore
}

// NewDealHandler creates a DealHandler backed by the given store.
func NewDealHandler(deals store.DealStore) *DealHandler {
	return &DealHandler{deals: deals}
}

// Routes returns the deal route table.
func (h *DealHandler) Routes(logger *slog.Logger) *dispatch.Dispatcher {
	d := dispatch.New("deal", logger)
	d.Register(dispatch.Route{Method: http.MethodGet, RequiresPathParams: false, Handler: h.list, Description: "GET /deal - listar ofertas activas"})
	return d
}

func (h *DealHandler) list(ctx context.Context, req *dispatch.Request) (*dispatch.Result, error) {
	deals, err := h.deals.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	return &dispatch.Result{
		Status:  http.StatusOK,
		Message: "Ofertas obtenidas",
		Data: map[string]interface{}{
			"deals": deals,
			"count": len(deals),
		},
	}, nil
}
