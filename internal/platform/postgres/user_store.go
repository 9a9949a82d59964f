package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmorales-dev/tienda-api/internal/domain"
	"github.com/dmorales-dev/tienda-api/internal/service/auth"
	"github.com/dmorales-dev/tienda-api/internal/store"
)

// UserStore implements store.UserStore on PostgreSQL. Deletes are soft;
// every mutation writes an audit_logs row in the same transaction.
type UserStore struct {
	db     DB
	hasher auth.PasswordHasher
}

var _ store.UserStore = (*UserStore)(nil)

// NewUserStore creates a UserStore. The connection is initialized and
// managed by the caller.
func NewUserStore(db DB, hasher auth.PasswordHasher) *UserStore {
	return &UserStore{db: db, hasher: hasher}
}

// Create implements store.UserStore.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	if user.Password != "" {
		hashed, err := s.hasher.Hash(user.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		user.HashedPassword = hashed
		user.Password = ""
	}
	if user.HashedPassword == "" {
		return fmt.Errorf("%w: user has no password", store.ErrInvalidEntity)
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO users (id, email, hashed_password, full_name, role, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			user.ID, user.Email, user.HashedPassword, user.FullName, user.Role,
			user.CreatedAt, user.UpdatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return store.ErrEmailExists
			}
			return fmt.Errorf("failed to insert user: %w", err)
		}
		return s.audit(ctx, tx, user.ID, domain.AuditActionCreate)
	})
}

// GetByID implements store.UserStore. Soft-deleted users are invisible.
func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, email, hashed_password, full_name, role, created_at, updated_at
		 FROM users WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to get user: %w", err)
		}
		return nil, store.ErrUserNotFound
	}

	var u domain.User
	if err := rows.Scan(&u.ID, &u.Email, &u.HashedPassword, &u.FullName, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, fmt.Errorf("failed to scan user row: %w", err)
	}
	return &u, nil
}

// List implements store.UserStore.
func (s *UserStore) List(ctx context.Context, page store.Page) ([]domain.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, email, full_name, role, created_at, updated_at
		 FROM users WHERE deleted_at IS NULL
		 ORDER BY created_at, id LIMIT $1 OFFSET $2`,
		page.Size, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer func() { _ = rows.Close() }()

	users := make([]domain.User, 0, page.Size)
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Email, &u.FullName, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user rows: %w", err)
	}
	return users, nil
}

// Update implements store.UserStore.
func (s *UserStore) Update(ctx context.Context, user *domain.User) error {
	if user.Password != "" {
		hashed, err := s.hasher.Hash(user.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		user.HashedPassword = hashed
		user.Password = ""
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE users
			 SET email = $2, hashed_password = $3, full_name = $4, role = $5, updated_at = $6
			 WHERE id = $1 AND deleted_at IS NULL`,
			user.ID, user.Email, user.HashedPassword, user.FullName, user.Role, user.UpdatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return store.ErrEmailExists
			}
			return fmt.Errorf("failed to update user: %w", err)
		}
		if affected, err := res.RowsAffected(); err != nil {
			return fmt.Errorf("failed to read update result: %w", err)
		} else if affected == 0 {
			return store.ErrUserNotFound
		}
		return s.audit(ctx, tx, user.ID, domain.AuditActionUpdate)
	})
}

// Delete implements store.UserStore. Refresh tokens and audit rows go away
// with the user row itself only on a schema-level hard delete; the API path
// is always a soft delete.
func (s *UserStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE users SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
		if err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		if affected, err := res.RowsAffected(); err != nil {
			return fmt.Errorf("failed to read delete result: %w", err)
		} else if affected == 0 {
			return store.ErrUserNotFound
		}
		return s.audit(ctx, tx, id, domain.AuditActionDelete)
	})
}

func (s *UserStore) audit(ctx context.Context, tx *sql.Tx, userID uuid.UUID, action string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO audit_logs (user_id, action, entity, entity_id, created_at)
		 VALUES ($1, $2, 'user', $3, now())`,
		userID, action, userID.String())
	if err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}

func (s *UserStore) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
