package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// User validation errors.
var (
	ErrEmptyEmail       = errors.New("email cannot be empty")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong  = errors.New("password must be at most 72 characters long")
)

// User roles.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User is a registered account. Password carries the plaintext only between
// request decoding and hashing; it is never serialized or stored.
type User struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	FullName       string     `json:"fullName"`
	Role           string     `json:"role"`
	Password       string     `json:"-"`
	HashedPassword string     `json:"-"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	DeletedAt      *time.Time `json:"-"`
}

// NewUser creates a User with a generated UUID and timestamps. The caller is
// responsible for hashing Password before the user reaches a store.
func NewUser(email, fullName, password string) (*User, error) {
	if email == "" {
		return nil, ErrEmptyEmail
	}
	if len(password) < 8 {
		return nil, ErrPasswordTooShort
	}
	if len(password) > 72 {
		// bcrypt truncates beyond 72 bytes
		return nil, ErrPasswordTooLong
	}

	now := time.Now().UTC()
	return &User{
		ID:        uuid.New(),
		Email:     email,
		FullName:  fullName,
		Role:      RoleCustomer,
		Password:  password,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// IsDeleted reports whether the user has been soft-deleted.
func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}
