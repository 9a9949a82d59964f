package api

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dmorales-dev/tienda-api/internal/domain"
	"github.com/dmorales-dev/tienda-api/internal/platform/objectstore"
	"github.com/dmorales-dev/tienda-api/internal/store"
)

// fakeProductStore is an in-memory store.ProductStore with per-method
// error overrides.
type fakeProductStore struct {
	products map[string]*domain.Product
	err      error
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{products: make(map[string]*domain.Product)}
}

func (f *fakeProductStore) Create(ctx context.Context, p *domain.Product) error {
	if f.err != nil {
		return f.err
	}
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductStore) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.products[id]
	if !ok {
		return nil, store.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductStore) List(ctx context.Context, page store.Page) ([]domain.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProductStore) Update(ctx context.Context, p *domain.Product) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.products[p.ID]; !ok {
		return store.ErrProductNotFound
	}
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductStore) Delete(ctx context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.products[id]; !ok {
		return store.ErrProductNotFound
	}
	delete(f.products, id)
	return nil
}

type fakeCategoryStore struct {
	categories map[string]*domain.Category
	err        error
}

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{categories: make(map[string]*domain.Category)}
}

func (f *fakeCategoryStore) Create(ctx context.Context, c *domain.Category) error {
	if f.err != nil {
		return f.err
	}
	for _, existing := range f.categories {
		if existing.Name == c.Name {
			return store.ErrCategoryNameExists
		}
	}
	f.categories[c.ID] = c
	return nil
}

func (f *fakeCategoryStore) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.categories[id]
	if !ok {
		return nil, store.ErrCategoryNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCategoryStore) List(ctx context.Context, page store.Page) ([]domain.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.Category, 0, len(f.categories))
	for _, c := range f.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCategoryStore) Update(ctx context.Context, c *domain.Category) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.categories[c.ID]; !ok {
		return store.ErrCategoryNotFound
	}
	f.categories[c.ID] = c
	return nil
}

func (f *fakeCategoryStore) Delete(ctx context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.categories[id]; !ok {
		return store.ErrCategoryNotFound
	}
	delete(f.categories, id)
	return nil
}

type fakeUserStore struct {
	users map[uuid.UUID]*domain.User
	err   error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*domain.User)}
}

func (f *fakeUserStore) Create(ctx context.Context, u *domain.User) error {
	if f.err != nil {
		return f.err
	}
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return store.ErrEmailExists
		}
	}
	u.HashedPassword = "hashed:" + u.Password
	u.Password = ""
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) List(ctx context.Context, page store.Page) ([]domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserStore) Update(ctx context.Context, u *domain.User) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.users[u.ID]; !ok {
		return store.ErrUserNotFound
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.users[id]; !ok {
		return store.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeDealStore struct {
	deals []domain.Deal
	err   error
}

func (f *fakeDealStore) ListActive(ctx context.Context) ([]domain.Deal, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.deals, nil
}

type fakeSigner struct {
	lastKey         string
	lastContentType string
	err             error
}

func (f *fakeSigner) SignUpload(ctx context.Context, objectKey, contentType string) (*objectstore.UploadURL, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastKey = objectKey
	f.lastContentType = contentType
	return &objectstore.UploadURL{
		URL:         "https://storage.example.com/" + objectKey + "?sig=abc",
		Key:         objectKey,
		ContentType: contentType,
		ExpiresAt:   time.Now().UTC().Add(24 * time.Hour),
	}, nil
}
