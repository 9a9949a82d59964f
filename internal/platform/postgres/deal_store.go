package postgres

import (
	"context"
	"fmt"

	"github.com/dmorales-dev/tienda-api/internal/domain"
	"github.com/dmorales-dev/tienda-api/internal/store"
)

// DealStore implements store.DealStore on PostgreSQL.
type DealStore struct {
	db DB
}

var _ store.DealStore = (*DealStore)(nil)

// NewDealStore creates a DealStore.
func NewDealStore(db DB) *DealStore {
	return &DealStore{db: db}
}

// ListActive implements store.DealStore.
func (s *DealStore) ListActive(ctx context.Context) ([]domain.Deal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, product_id, discount, starts_at, ends_at, active
		 FROM deals
		 WHERE active AND now() BETWEEN starts_at AND ends_at
		 ORDER BY starts_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list deals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	deals := make([]domain.Deal, 0)
	for rows.Next() {
		var d domain.Deal
		if err := rows.Scan(&d.ID, &d.ProductID, &d.Discount, &d.StartsAt, &d.EndsAt, &d.Active); err != nil {
			return nil, fmt.Errorf("failed to scan deal row: %w", err)
		}
		deals = append(deals, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate deal rows: %w", err)
	}
	return deals, nil
}
