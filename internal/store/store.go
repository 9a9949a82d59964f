// Package store defines the persistence interfaces consumed by the domain
// handlers. Implementations live under internal/platform; handlers only see
// these interfaces and the sentinel errors in this package.
package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmorales-dev/tienda-api/internal/domain"
)

// Pagination bounds enforced on listing operations.
const (
	MinPage  = 1
	MinLimit = 1
	MaxLimit = 100
)

// Page describes a bounded slice of a listing.
type Page struct {
	Number int
	Size   int
}

// Offset returns the row offset for this page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// UserStore defines user persistence. Deletes are soft (a deleted_at
// timestamp); deleted users are invisible to reads. Every mutation also
// writes an audit_logs row in the same transaction.
type UserStore interface {
	// Create saves a new user, hashing the plaintext Password when one is
	// set. Returns ErrEmailExists if the email is taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID. Returns ErrUserNotFound if the user
	// does not exist or has been soft-deleted.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// List retrieves a page of non-deleted users ordered by creation time.
	List(ctx context.Context, page Page) ([]domain.User, error)

	// Update modifies an existing user's email, full name, role, and
	// (when set) hashed password. Returns ErrUserNotFound if the user does
	// not exist; ErrEmailExists when moving to a taken email.
	Update(ctx context.Context, user *domain.User) error

	// Delete soft-deletes a user. Returns ErrUserNotFound if the user does
	// not exist or was already deleted.
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductStore defines product persistence.
type ProductStore interface {
	Create(ctx context.Context, product *domain.Product) error

	// GetByID returns ErrProductNotFound when the id is unknown.
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// List retrieves a page of products ordered by creation time.
	List(ctx context.Context, page Page) ([]domain.Product, error)

	// Update returns ErrProductNotFound when the id is unknown.
	Update(ctx context.Context, product *domain.Product) error

	// Delete returns ErrProductNotFound when the id is unknown.
	Delete(ctx context.Context, id string) error
}

// CategoryStore defines category persistence. Category names are unique.
type CategoryStore interface {
	// Create returns ErrCategoryNameExists on a duplicate name.
	Create(ctx context.Context, category *domain.Category) error

	// GetByID returns ErrCategoryNotFound when the id is unknown.
	GetByID(ctx context.Context, id string) (*domain.Category, error)

	// List retrieves a page of categories ordered by name.
	List(ctx context.Context, page Page) ([]domain.Category, error)

	// Update returns ErrCategoryNotFound when the id is unknown and
	// ErrCategoryNameExists when renaming to a taken name.
	Update(ctx context.Context, category *domain.Category) error

	// Delete returns ErrCategoryNotFound when the id is unknown.
	Delete(ctx context.Context, id string) error
}

// DealStore defines deal persistence. The deal surface is list-only.
type DealStore interface {
	// ListActive retrieves the deals currently running.
	ListActive(ctx context.Context) ([]domain.Deal, error)
}
