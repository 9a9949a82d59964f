package domain

import "time"

// Deal is a time-bounded discount on a product. Discount is a percentage in
// [0, 100].
type Deal struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	Discount  float64   `json:"discount"`
	StartsAt  time.Time `json:"startsAt"`
	EndsAt    time.Time `json:"endsAt"`
	Active    bool      `json:"active"`
}

// AuditLog records one mutation performed on behalf of a user. Rows are
// written alongside user mutations and removed by cascade when the user row
// is hard-deleted.
type AuditLog struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"userId"`
	Action    string    `json:"action"`
	Entity    string    `json:"entity"`
	EntityID  string    `json:"entityId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Audit actions.
const (
	AuditActionCreate = "create"
	AuditActionUpdate = "update"
	AuditActionDelete = "delete"
)
