package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmorales-dev/tienda-api/internal/domain"
	"github.com/dmorales-dev/tienda-api/internal/store"
)

// CategoryStore implements store.CategoryStore on PostgreSQL.
type CategoryStore struct {
	db DB
}

var _ store.CategoryStore = (*CategoryStore)(nil)

// NewCategoryStore creates a CategoryStore.
func NewCategoryStore(db DB) *CategoryStore {
	return &CategoryStore{db: db}
}

// Create implements store.CategoryStore.
func (s *CategoryStore) Create(ctx context.Context, c *domain.Category) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO categories (id, name, description, parent_id, image_url, created_at, updated_at)
		 VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7)`,
		c.ID, c.Name, c.Description, c.ParentID, c.ImageURL, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrCategoryNameExists
		}
		return fmt.Errorf("failed to insert category: %w", err)
	}
	return nil
}

// GetByID implements store.CategoryStore.
func (s *CategoryStore) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, description, parent_id, image_url, created_at, updated_at
		 FROM categories WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to get category: %w", err)
		}
		return nil, store.ErrCategoryNotFound
	}

	var c domain.Category
	var parentID sql.NullString
	if err := rows.Scan(&c.ID, &c.Name, &c.Description, &parentID, &c.ImageURL, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, fmt.Errorf("failed to scan category row: %w", err)
	}
	c.ParentID = parentID.String
	return &c, nil
}

// List implements store.CategoryStore.
func (s *CategoryStore) List(ctx context.Context, page store.Page) ([]domain.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, description, parent_id, image_url, created_at, updated_at
		 FROM categories ORDER BY name LIMIT $1 OFFSET $2`,
		page.Size, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	categories := make([]domain.Category, 0, page.Size)
	for rows.Next() {
		var c domain.Category
		var parentID sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &parentID, &c.ImageURL,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		c.ParentID = parentID.String
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate category rows: %w", err)
	}
	return categories, nil
}

// Update implements store.CategoryStore.
func (s *CategoryStore) Update(ctx context.Context, c *domain.Category) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE categories
		 SET name = $2, description = $3, parent_id = NULLIF($4, ''), image_url = $5, updated_at = $6
		 WHERE id = $1`,
		c.ID, c.Name, c.Description, c.ParentID, c.ImageURL, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrCategoryNameExists
		}
		return fmt.Errorf("failed to update category: %w", err)
	}
	if affected, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	} else if affected == 0 {
		return store.ErrCategoryNotFound
	}
	return nil
}

// Delete implements store.CategoryStore.
func (s *CategoryStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if affected, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	} else if affected == 0 {
		return store.ErrCategoryNotFound
	}
	return nil
}
