package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmorales-dev/tienda-api/internal/apperr"
	"github.com/dmorales-dev/tienda-api/internal/domain"
	"github.com/dmorales-dev/tienda-api/internal/store"
)

func seedUser(t *testing.T, f *fakeUserStore) *domain.User {
	t.Helper()
	u, err := domain.NewUser("ana@example.com", "Ana García", "contraseña-segura")
	require.NoError(t, err)
	require.NoError(t, f.Create(context.Background(), u))
	return u
}

func TestUserCreate(t *testing.T) {
	f := newFakeUserStore()
	h := NewUserHandler(f)

	res, err := h.create(context.Background(), bodyRequest(http.MethodPost,
		`{"email":"ana@example.com","fullName":"Ana García","password":"contraseña-segura"}`))

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, res.Status)
	assert.Equal(t, "Usuario creado", res.Message)

	user, ok := res.Data.(*domain.User)
	require.True(t, ok)
	assert.Equal(t, domain.RoleCustomer, user.Role)
	assert.Empty(t, user.Password, "plaintext cleared after hashing")
	assert.NotEmpty(t, user.HashedPassword)
}

// The response envelope must never leak password material.
func TestUserCreate_PasswordNotSerialized(t *testing.T) {
	f := newFakeUserStore()
	h := NewUserHandler(f)

	res, err := h.create(context.Background(), bodyRequest(http.MethodPost,
		`{"email":"ana@example.com","fullName":"Ana","password":"contraseña-segura"}`))
	require.NoError(t, err)

	raw, err := json.Marshal(res.Data)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "contraseña-segura")
	assert.NotContains(t, string(raw), "password")
	assert.NotContains(t, string(raw), "hashed")
}

func TestUserCreate_Validation(t *testing.T) {
	h := NewUserHandler(newFakeUserStore())

	tests := []struct {
		name string
		body string
	}{
		{name: "bad email", body: `{"email":"not-an-email","fullName":"Ana","password":"contraseña-segura"}`},
		{name: "short password", body: `{"email":"ana@example.com","fullName":"Ana","password":"corta"}`},
		{name: "missing fullName", body: `{"email":"ana@example.com","password":"contraseña-segura"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := h.create(context.Background(), bodyRequest(http.MethodPost, tc.body))
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, res.Status)
			assert.Equal(t, "Error de validación de datos", res.Message)
		})
	}
}

func TestUserCreate_DuplicateEmail(t *testing.T) {
	f := newFakeUserStore()
	seedUser(t, f)
	h := NewUserHandler(f)

	_, err := h.create(context.Background(), bodyRequest(http.MethodPost,
		`{"email":"ana@example.com","fullName":"Otra Ana","password":"contraseña-segura"}`))

	assert.ErrorIs(t, err, store.ErrEmailExists)
}

func TestUserUpdate(t *testing.T) {
	f := newFakeUserStore()
	u := seedUser(t, f)
	h := NewUserHandler(f)

	res, err := h.update(context.Background(),
		itemRequest(http.MethodPut, u.ID.String(), `{"fullName":"Ana María García","role":"admin"}`))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.Status)

	got := f.users[u.ID]
	assert.Equal(t, "Ana María García", got.FullName)
	assert.Equal(t, domain.RoleAdmin, got.Role)
	assert.Equal(t, u.Email, got.Email)
}

func TestUserUpdate_RejectsUnknownRole(t *testing.T) {
	f := newFakeUserStore()
	u := seedUser(t, f)
	h := NewUserHandler(f)

	_, err := h.update(context.Background(),
		itemRequest(http.MethodPut, u.ID.String(), `{"role":"superuser"}`))

	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestUserGet_InvalidID(t *testing.T) {
	h := NewUserHandler(newFakeUserStore())

	_, err := h.get(context.Background(), itemRequest(http.MethodGet, "not-a-uuid", ""))

	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestUserDelete(t *testing.T) {
	f := newFakeUserStore()
	u := seedUser(t, f)
	h := NewUserHandler(f)

	res, err := h.delete(context.Background(), itemRequest(http.MethodDelete, u.ID.String(), ""))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "Usuario eliminado", res.Message)

	_, err = h.get(context.Background(), itemRequest(http.MethodGet, u.ID.String(), ""))
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestUserList(t *testing.T) {
	f := newFakeUserStore()
	for i := 0; i < 3; i++ {
		u, err := domain.NewUser(fmt.Sprintf("u%d@example.com", i), "Usuario", "contraseña-segura")
		require.NoError(t, err)
		require.NoError(t, f.Create(context.Background(), u))
	}
	h := NewUserHandler(f)

	res, err := h.list(context.Background(), bodyRequest(http.MethodGet, ""))

	require.NoError(t, err)
	data := res.Data.(map[string]interface{})
	assert.Equal(t, 3, data["count"])
}
