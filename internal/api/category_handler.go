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

// CategoryHandler serves the category resource.
type CategoryHandler struct {
	categories store.CategoryStore
}

// NewCategoryHandler creates a CategoryHandler backed by the given store.
func NewCategoryHandler(categories store.CategoryStore) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// Routes returns the category route table.
func (h *CategoryHandler) Routes(logger *slog.Logger) *dispatch.Dispatcher {
	d := dispatch.New("category", logger)
	d.Register(dispatch.Route{Method: http.MethodGet, RequiresPathParams: false, Handler: h.list, Description: "GET /category - listar categorías"})
	d.Register(dispatch.Route{Method: http.MethodGet, RequiresPathParams: true, Handler: h.get, Description: "GET /category/:id - obtener categoría"})
	d.Register(dispatch.Route{Method: http.MethodPost, RequiresPathParams: false, Handler: h.create, Description: "POST /category - crear categoría"})
	d.Register(dispatch.Route{Method: http.MethodPut, RequiresPathParams: true, Handler: h.update, Description: "PUT /category/:id - actualizar categoría"})
	d.Register(dispatch.Route{Method: http.MethodDelete, RequiresPathParams: true, Handler: h.delete, Description: "DELETE /category/:id - eliminar categoría"})
	return d
}

type createCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
	ParentID    string `json:"parentId" validate:"omitempty,len=24,hexadecimal"`
	ImageURL    string `json:"imageUrl" validate:"omitempty,url"`
}

type updateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	ParentID    *string `json:"parentId" validate:"omitempty,len=24,hexadecimal"`
	ImageURL    *string `json:"imageUrl" validate:"omitempty,url"`
}

func (h *CategoryHandler) list(ctx context.Context, req *dispatch.Request) (*dispatch.Result, error) {
	page, err := parsePage(req.Query)
	if err != nil {
		return nil, err
	}

	categories, err := h.categories.List(ctx, page)
	if err != nil {
		return nil, err
	}

	return &dispatch.Result{
		Status:  http.StatusOK,
		Message: "Categorías obtenidas",
		Data: map[string]interface{}{
			"categories": categories,
			"page":       page.Number,
			"limit":      page.Size,
			"count":      len(categories),
		},
	}, nil
}

func (h *CategoryHandler) get(ctx context.Context, req *dispatch.Request) (*dispatch.Result, error) {
	id, err := catalogIDParam(req)
	if err != nil {
		return nil, err
	}

	category, err := h.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dispatch.Result{Status: http.StatusOK, Message: "Categoría obtenida", Data: category}, nil
}

func (h *CategoryHandler) create(ctx context.Context, req *dispatch.Request) (*dispatch.Result, error) {
	var payload createCategoryRequest
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

	category, err := domain.NewCategory(payload.Name, payload.Description, payload.ParentID, payload.ImageURL)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "Error de validación de datos", err)
	}

	if err := h.categories.Create(ctx, category); err != nil {
		return nil, err
	}

	return &dispatch.Result{Status: http.StatusCreated, Message: "Categoría creada", Data: category}, nil
}

func (h *CategoryHandler) update(ctx context.Context, req *dispatch.Request) (*dispatch.Result, error) {
	id, err := catalogIDParam(req)
	if err != nil {
		return nil, err
	}

	var payload updateCategoryRequest
	if err := req.DecodeBody(&payload); err != nil {
		return nil, err
	}
	if err := validation.MustCheck(payload); err != nil {
		return nil, err
	}

	category, err := h.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Name != nil {
		category.Name = *payload.Name
	}
	if payload.Description != nil {
		category.Description = *payload.Description
	}
	if payload.ParentID != nil {
		category.ParentID = *payload.ParentID
	}
	if payload.ImageURL != nil {
		category.ImageURL = *payload.ImageURL
	}

	if err := h.categories.Update(ctx, category); err != nil {
		return nil, err
	}

	return &dispatch.Result{Status: http.StatusOK, Message: "Categoría actualizada", Data: category}, nil
}

func (h *CategoryHandler) delete(ctx context.Context, req *dispatch.Request) (*dispatch.Result, error) {
	id, err := catalogIDParam(req)
	if err != nil {
		return nil, err
	}

	if err := h.categories.Delete(ctx, id); err != nil {
		return nil, err
	}

	return &dispatch.Result{Status: http.StatusOK, Message: "Categoría eliminada"}, nil
}
