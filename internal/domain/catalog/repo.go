package catalog

import (
	"context"
)

// Repository defines persistence for the item catalog.
type Repository interface {
	// ListItems returns all catalog items ordered by English name.
	ListItems(ctx context.Context) ([]Item, error)

	// GetItemByCode retrieves a single item.
	GetItemByCode(ctx context.Context, code string) (*Item, error)

	// UpsertItem inserts or updates an item keyed by code.
	UpsertItem(ctx context.Context, item Item) error

	// ListAvailability returns availability flags for all items.
	ListAvailability(ctx context.Context) ([]Availability, error)

	// UpsertAvailability inserts or updates availability keyed by item name.
	UpsertAvailability(ctx context.Context, row Availability) error
}
