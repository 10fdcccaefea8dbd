package stock

import "context"

// Repository defines persistence for the stock register.
type Repository interface {
	// List returns all stock rows ordered by item name.
	List(ctx context.Context) ([]QtyRow, error)

	// Get returns the row for one item code, or nil when absent.
	Get(ctx context.Context, itemCode string) (*QtyRow, error)

	// Upsert writes a stock row keyed by item code.
	Upsert(ctx context.Context, row QtyRow) error
}
