package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dmorales-dev/tienda-api/internal/apperr"
	"github.com/dmorales-dev/tienda-api/internal/dispatch"
	"github.com/dmorales-dev/tienda-api/internal/domain"
	"github.com/dmorales-dev/tienda-api/internal/store"
	"github.com/dmorales-dev/tienda-api/internal/validation"
)

// UserHandler serves the user resource. User identifiers are UUIDs, unlike
// the 24-hex catalog identifiers; deletes are soft.
type UserHandler struct {
	users store.UserStore
}

// NewUserHandler creates a UserHandler backed by the given store.
func NewUserHandler(users store.UserStore) *UserHandler {
	return &UserHandler{users: users}
}

// Routes returns the user route table.
func (h *UserHandler) Routes(logger *slog.Logger) *dispatch.Dispatcher {
	d := dispatch.New("user", logger)
	d.Register(dispatch.Route{Method: http.MethodGet, RequiresPathParams: false, Handler: h.list, Description: "GET /user - listar usuarios"})
	d.Register(dispatch.Route{Method: http.MethodGet, RequiresPathParams: true, Handler: h.get, Description: "GET /user/:id - obtener usuario"})
	d.Register(dispatch.Route{Method: http.MethodPost, RequiresPathParams: false, Handler: h.create, Description: "POST /user - crear usuario"})
	d.Register(dispatch.Route{Method: http.MethodPut, RequiresPathParams: true, Handler: h.update, Description: "PUT /user/:id - actualizar usuario"})
	d.Register(dispatch.Route{Method: http.MethodDelete, RequiresPathParams: true, Handler: h.delete, Description: "DELETE /user/:id - eliminar usuario"})
	return d
}

type createUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"fullName" validate:"required,max=200"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type updateUserRequest struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	FullName *string `json:"fullName" validate:"omitempty,min=1,max=200"`
	Role     *string `json:"role" validate:"omitempty,oneof=customer admin"`
	Password *string `json:"password" validate:"omitempty,min=8,max=72"`
}

func (h *UserHandler) list(ctx context.Context, req *dispatch.Request) (*dispatch.Result, error) {
	page, err := parsePage(req.Query)
	if err != nil {
		return nil, err
	}

	users, err := h.users.List(ctx, page)
	if err != nil {
		return nil, err
	}

	return &dispatch.Result{
		Status:  http.StatusOK,
		Message: "Usuarios obtenidos",
		Data: map[string]interface{}{
			"users": users,
			"page":  page.Number,
			"limit": page.Size,
			"count": len(users),
		},
	}, nil
}

func (h *UserHandler) get(ctx context.Context, req *dispatch.Request) (*dispatch.Result, error) {
	id, err := userIDParam(req)
	if err != nil {
		return nil, err
	}

	user, err := h.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dispatch.Result{Status: http.StatusOK, Message: "Usuario obtenido", Data: user}, nil
}

func (h *UserHandler) create(ctx context.Context, req *dispatch.Request) (*dispatch.Result, error) {
	var payload createUserRequest
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

	user, err := domain.NewUser(payload.Email, payload.FullName, payload.Password)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "Error de validación de datos", err)
	}

	if err := h.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return &dispatch.Result{Status: http.StatusCreated, Message: "Usuario creado", Data: user}, nil
}

func (h *UserHandler) update(ctx context.Context, req *dispatch.Request) (*dispatch.Result, error) {
	id, err := userIDParam(req)
	if err != nil {
		return nil, err
	}

	var payload updateUserRequest
	if err := req.DecodeBody(&payload); err != nil {
		return nil, err
	}
	if err := validation.MustCheck(payload); err != nil {
		return nil, err
	}

	user, err := h.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Email != nil {
		user.Email = *payload.Email
	}
	if payload.FullName != nil {
		user.FullName = *payload.FullName
	}
	if payload.Role != nil {
		user.Role = *payload.Role
	}
	if payload.Password != nil {
		user.Password = *payload.Password
	}
	user.UpdatedAt = time.Now().UTC()

	if err := h.users.Update(ctx, user); err != nil {
		return nil, err
	}

	return &dispatch.Result{Status: http.StatusOK, Message: "Usuario actualizado", Data: user}, nil
}

func (h *UserHandler) delete(ctx context.Context, req *dispatch.Request) (*dispatch.Result, error) {
	id, err := userIDParam(req)
	if err != nil {
		return nil, err
	}

	if err := h.users.Delete(ctx, id); err != nil {
		return nil, err
	}

	return &dispatch.Result{Status: http.StatusOK, Message: "Usuario eliminado"}, nil
}

func userIDParam(req *dispatch.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(req.PathParam("id"))
	if err != nil {
		return uuid.Nil, apperr.Wrap(apperr.KindValidation, "Identificador inválido", err)
	}
	return id, nil
}
