// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"time"
)

// Common domain errors used across the application.
var (
	// ErrInvalidID is returned when an entity ID is malformed.
	ErrInvalidID = errors.New("invalid ID")

	// ErrEmptyName is returned when a required name is empty.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrInvalidPrice is returned when a price is outside (0, 999999.99].
	ErrInvalidPrice = errors.New("invalid price")
)

// MaxPrice is the upper bound for product prices.
const MaxPrice = 999999.99

// Product is a catalog product.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	CategoryID  string    `json:"categoryId,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewProduct creates a Product with a fresh catalog ID and timestamps.
// Stock defaults to 0 and IsActive to true when the caller leaves them
// unset; the request layer passes nil for omitted optional fields.
func NewProduct(name, description string, price float64, stock *int, categoryID, imageURL string, isActive *bool) (*Product, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if price <= 0 || price > MaxPrice {
		return nil, ErrInvalidPrice
	}

	now := time.Now().UTC()
	p := &Product{
		ID:          NewCatalogID(),
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       0,
		CategoryID:  categoryID,
		ImageURL:    imageURL,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if stock != nil {
		p.Stock = *stock
	}
	if isActive != nil {
		p.IsActive = *isActive
	}
	return p, nil
}
