package orders

import (
	"context"

	"mandiflow/internal/core/id"
)

// Repository defines persistence for orders.
type Repository interface {
	// Create inserts an order with its line items.
	Create(ctx context.Context, order *Order) error

	// GetByID retrieves one order.
	GetByID(ctx context.Context, orderID id.ID) (*Order, error)

	// ListByOrderDate returns orders placed within [fromDate, toDate],
	// newest first.
	ListByOrderDate(ctx context.Context, fromDate, toDate string) ([]Order, error)

	// ListDelivered returns delivered orders by delivery date range,
	// for invoicing.
	ListDelivered(ctx context.Context, fromDate, toDate string) ([]Order, error)

	// UpdateStatus changes the workflow status.
	UpdateStatus(ctx context.Context, orderID id.ID, status Status) error
}
