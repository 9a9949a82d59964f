package domain

import "time"

// Category is a catalog category. Categories form a shallow tree through
// ParentID; the root categories have an empty ParentID.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ParentID    string    `json:"parentId,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewCategory creates a Category with a fresh catalog ID and timestamps.
func NewCategory(name, description, parentID, imageURL string) (*Category, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if parentID != "" && !IsCatalogID(parentID) {
		return nil, ErrInvalidID
	}

	now := time.Now().UTC()
	return &Category{
		ID:          NewCatalogID(),
		Name:        name,
		Description: description,
		ParentID:    parentID,
		ImageURL:    imageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
