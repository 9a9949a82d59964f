package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmorales-dev/tienda-api/internal/domain"
	"github.com/dmorales-dev/tienda-api/internal/store"
)

func newCatalogTest(t *testing.T) (*sqlmock.Sqlmock, *ProductStore, *CategoryStore, *DealStore) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &mock, NewProductStore(db), NewCategoryStore(db), NewDealStore(db)
}

func TestProductStore_GetByID_NotFound(t *testing.T) {
	mock, products, _, _ := newCatalogTest(t)

	(*mock).ExpectQuery(`SELECT .* FROM products WHERE id = \$1`).
		WithArgs("64a1f0c2e4b09a3d5c7e8f01").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := products.GetByID(context.Background(), "64a1f0c2e4b09a3d5c7e8f01")
	assert.ErrorIs(t, err, store.ErrProductNotFound)
}

func TestProductStore_GetByID(t *testing.T) {
	mock, products, _, _ := newCatalogTest(t)
	now := time.Now().UTC()

	(*mock).ExpectQuery(`SELECT .* FROM products`).
		WithArgs("64a1f0c2e4b09a3d5c7e8f01").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "name", "description", "price", "stock", "category_id", "image_url", "is_active", "created_at", "updated_at"}).
			AddRow("64a1f0c2e4b09a3d5c7e8f01", "Cafetera", "italiana", 499.90, 3, nil, "", true, now, now))

	p, err := products.GetByID(context.Background(), "64a1f0c2e4b09a3d5c7e8f01")
	require.NoError(t, err)
	assert.Equal(t, "Cafetera", p.Name)
	assert.Empty(t, p.CategoryID)
}

func TestProductStore_Create(t *testing.T) {
	mock, products, _, _ := newCatalogTest(t)

	p, err := domain.NewProduct("Cafetera", "italiana", 499.90, nil, "", "", nil)
	require.NoError(t, err)

	(*mock).ExpectExec(`INSERT INTO products`).
		WithArgs(p.ID, p.Name, p.Description, p.Price, p.Stock, p.CategoryID, p.ImageURL,
			p.IsActive, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, products.Create(context.Background(), p))
}

func TestProductStore_Delete_NotFound(t *testing.T) {
	mock, products, _, _ := newCatalogTest(t)

	(*mock).ExpectExec(`DELETE FROM products`).
		WithArgs("64a1f0c2e4b09a3d5c7e8f01").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := products.Delete(context.Background(), "64a1f0c2e4b09a3d5c7e8f01")
	assert.ErrorIs(t, err, store.ErrProductNotFound)
}

func TestCategoryStore_Create_DuplicateName(t *testing.T) {
	mock, _, categories, _ := newCatalogTest(t)

	c, err := domain.NewCategory("Cocina", "", "", "")
	require.NoError(t, err)

	(*mock).ExpectExec(`INSERT INTO categories`).
		WillReturnError(&pgconn.PgError{Code: uniqueViolationCode})

	err = categories.Create(context.Background(), c)
	assert.ErrorIs(t, err, store.ErrCategoryNameExists)
}

func TestCategoryStore_Update_NotFound(t *testing.T) {
	mock, _, categories, _ := newCatalogTest(t)

	c, err := domain.NewCategory("Cocina", "", "", "")
	require.NoError(t, err)

	(*mock).ExpectExec(`UPDATE categories`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = categories.Update(context.Background(), c)
	assert.ErrorIs(t, err, store.ErrCategoryNotFound)
}

func TestDealStore_ListActive(t *testing.T) {
	mock, _, _, deals := newCatalogTest(t)
	now := time.Now().UTC()

	(*mock).ExpectQuery(`SELECT .* FROM deals`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "product_id", "discount", "starts_at", "ends_at", "active"}).
			AddRow("64a1f0c2e4b09a3d5c7e8f02", "64a1f0c2e4b09a3d5c7e8f01", 15.0,
				now.Add(-time.Hour), now.Add(time.Hour), true))

	got, err := deals.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 15.0, got[0].Discount)
}

func TestDealStore_ListActive_Empty(t *testing.T) {
	mock, _, _, deals := newCatalogTest(t)

	(*mock).ExpectQuery(`SELECT .* FROM deals`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "discount", "starts_at", "ends_at", "active"}))

	got, err := deals.ListActive(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}
