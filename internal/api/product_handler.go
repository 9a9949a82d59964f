package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmorales-dev/tienda-api/internal/apperr"
	"github.com/dmorales-dev/tienda-api/internal/dispatch"
	"github.com/dmorales-dev/tienda-api/internal/domain"
	"github.com/dmorales-dev/tienda-api/internal/store"
	"github.com/dmorales-dev/tienda-api/internal/validation"
)

// ProductHandler serves the product resource.
type ProductHandler struct {
	products store.ProductStore
}

// NewProductHandler creates a ProductHandler backed by the given store.
func NewProductHandler(products store.ProductStore) *ProductHandler {
	return &ProductHandler{products: products}
}

// Routes returns the product route table.
func (h *ProductHandler) Routes(logger *slog.Logger) *dispatch.Dispatcher {
	d := dispatch.New("product", logger)
	d.Register(dispatch.Route{Method: http.MethodGet, RequiresPathParams: false, Handler: h.list, Description: "GET /product - listar productos"})
	d.Register(dispatch.Route{Method: http.MethodGet, RequiresPathParams: true, Handler: h.get, Description: "GET /product/:id - obtener producto"})
	d.Register(dispatch.Route{Method: http.MethodPost, RequiresPathParams: false, Handler: h.create, Description: "POST /product - crear producto"})
	d.Register(dispatch.Route{Method: http.MethodPut, RequiresPathParams: true, Handler: h.update, Description: "PUT /product/:id - actualizar producto"})
	d.Register(dispatch.Route{Method: http.MethodDelete, RequiresPathParams: true, Handler: h.delete, Description: "DELETE /product/:id - eliminar producto"})
	return d
}

type createProductRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description string  `json:"description" validate:"max=500"`
	Price       float64 `json:"price" validate:"required,gt=0,lte=999999.99"`
	Stock       *int    `json:"stock" validate:"omitempty,gte=0"`
	CategoryID  string  `json:"categoryId" validate:"omitempty,len=24,hexadecimal"`
	ImageURL    string  `json:"imageUrl" validate:"omitempty,url"`
	IsActive    *bool   `json:"isActive"`
}

type updateProductRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string  `json:"description" validate:"omitempty,max=500"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0,lte=999999.99"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	CategoryID  *string  `json:"categoryId" validate:"omitempty,len=24,hexadecimal"`
	ImageURL    *string  `json:"imageUrl" validate:"omitempty,url"`
	IsActive    *bool    `json:"isActive"`
}

func (h *ProductHandler) list(ctx context.Context, req *dispatch.Request) (*dispatch.Result, error) {
	page, err := parsePage(req.Query)
	if err != nil {
		return nil, err
	}

	products, err := h.products.List(ctx, page)
	if err != nil {
		return nil, err
	}

	return &dispatch.Result{
		Status:  http.StatusOK,
		Message: "Productos obtenidos",
		Data: map[string]interface{}{
			"products": products,
			"page":     page.Number,
			"limit":    page.Size,
			"count":    len(products),
		},
	}, nil
}

func (h *ProductHandler) get(ctx context.Context, req *dispatch.Request) (*dispatch.Result, error) {
	id, err := catalogIDParam(req)
	if err != nil {
		return nil, err
	}

	product, err := h.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dispatch.Result{Status: http.StatusOK, Message: "Producto obtenido", Data: product}, nil
}

// create uses the list-returning validation convention: violations are
// assembled into the 400 result right here instead of traveling up as an
// error. Both paths produce the identical envelope.
func (h *ProductHandler) create(ctx context.Context, req *dispatch.Request) (*dispatch.Result, error) {
	var payload createProductRequest
	if err := req.DecodeBody(&payload); err != nil {
		return nil, err
	}

	if fields := validation.Check(payload); fields != nil {
		return &dispatch.Result{
			Status:  http.StatusBadRequest,
			Message: "Error de validación de datos",
			Data:    map[string]interface{}{"errors": fields},
		}, nil
	}

	product, err := domain.NewProduct(payload.Name, payload.Description, payload.Price,
		payload.Stock, payload.CategoryID, payload.ImageURL, payload.IsActive)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "Error de validación de datos", err)
	}

	if err := h.products.Create(ctx, product); err != nil {
		return nil, err
	}

	return &dispatch.Result{Status: http.StatusCreated, Message: "Producto creado", Data: product}, nil
}

func (h *ProductHandler) update(ctx context.Context, req *dispatch.Request) (*dispatch.Result, error) {
	id, err := catalogIDParam(req)
	if err != nil {
		return nil, err
	}

	var payload updateProductRequest
	if err := req.DecodeBody(&payload); err != nil {
		return nil, err
	}
	if err := validation.MustCheck(payload); err != nil {
		return nil, err
	}

	product, err := h.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applyProductUpdate(product, payload)

	if err := h.products.Update(ctx, product); err != nil {
		return nil, err
	}

	return &dispatch.Result{Status: http.StatusOK, Message: "Producto actualizado", Data: product}, nil
}

func (h *ProductHandler) delete(ctx context.Context, req *dispatch.Request) (*dispatch.Result, error) {
	id, err := catalogIDParam(req)
	if err != nil {
		return nil, err
	}

	if err := h.products.Delete(ctx, id); err != nil {
		return nil, err
	}

	return &dispatch.Result{Status: http.StatusOK, Message: "Producto eliminado"}, nil
}

func applyProductUpdate(product *domain.Product, payload updateProductRequest) {
	if payload.Name != nil {
		product.Name = *payload.Name
	}
	if payload.Description != nil {
		product.Description = *payload.Description
	}
	if payload.Price != nil {
		product.Price = *payload.Price
	}
	if payload.Stock != nil {
		product.Stock = *payload.Stock
	}
	if payload.CategoryID != nil {
		product.CategoryID = *payload.CategoryID
	}
	if payload.ImageURL != nil {
		product.ImageURL = *payload.ImageURL
	}
	if payload.IsActive != nil {
		product.IsActive = *payload.IsActive
	}
}

// catalogIDParam validates the id path parameter's 24-hex shape before any
// store call. A malformed id is the caller's mistake, never a 500.
func catalogIDParam(req *dispatch.Request) (string, error) {
	id := req.PathParam("id")
	if !domain.IsCatalogID(id) {
		return "", apperr.New(apperr.KindValidation, "Identificador inválido")
	}
	return id, nil
}
