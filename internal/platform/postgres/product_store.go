package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmorales-dev/tienda-api/internal/domain"
	"github.com/dmorales-dev/tienda-api/internal/store"
)

// ProductStore implements store.ProductStore on PostgreSQL.
type ProductStore struct {
	db DB
}

var _ store.ProductStore = (*ProductStore)(nil)

// NewProductStore creates a ProductStore.
func NewProductStore(db DB) *ProductStore {
	return &ProductStore{db: db}
}

// Create implements store.ProductStore.
func (s *ProductStore) Create(ctx context.Context, p *domain.Product) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO products (id, name, description, price, stock, category_id, image_url, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9, $10)`,
		p.ID, p.Name, p.Description, p.Price, p.Stock, p.CategoryID, p.ImageURL,
		p.IsActive, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

// GetByID implements store.ProductStore.
func (s *ProductStore) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, description, price, stock, category_id, image_url, is_active, created_at, updated_at
		 FROM products WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to get product: %w", err)
		}
		return nil, store.ErrProductNotFound
	}

	var p domain.Product
	var categoryID sql.NullString
	if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &categoryID,
		&p.ImageURL, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, fmt.Errorf("failed to scan product row: %w", err)
	}
	p.CategoryID = categoryID.String
	return &p, nil
}

// List implements store.ProductStore.
func (s *ProductStore) List(ctx context.Context, page store.Page) ([]domain.Product, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, description, price, stock, category_id, image_url, is_active, created_at, updated_at
		 FROM products ORDER BY created_at, id LIMIT $1 OFFSET $2`,
		page.Size, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer func() { _ = rows.Close() }()

	products := make([]domain.Product, 0, page.Size)
	for rows.Next() {
		var p domain.Product
		var categoryID sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &categoryID,
			&p.ImageURL, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		p.CategoryID = categoryID.String
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate product rows: %w", err)
	}
	return products, nil
}

// Update implements store.ProductStore.
func (s *ProductStore) Update(ctx context.Context, p *domain.Product) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE products
		 SET name = $2, description = $3, price = $4, stock = $5,
		     category_id = NULLIF($6, ''), image_url = $7, is_active = $8, updated_at = $9
		 WHERE id = $1`,
		p.ID, p.Name, p.Description, p.Price, p.Stock, p.CategoryID, p.ImageURL,
		p.IsActive, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if affected, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	} else if affected == 0 {
		return store.ErrProductNotFound
	}
	return nil
}

// Delete implements store.ProductStore.
func (s *ProductStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if affected, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	} else if affected == 0 {
		return store.ErrProductNotFound
	}
	return nil
}
