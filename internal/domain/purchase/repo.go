package purchase

import (
	"context"
)

// Repository defines persistence for purchase plans.
//
// Plan rows are upserted keyed by (purchase_date, item_code); the backend
// guarantees per-row atomicity, nothing more.
type Repository interface {
	// ListPlanRows returns the saved plan snapshot for a purchase date.
	ListPlanRows(ctx context.Context, purchaseDate string) ([]DBRow, error)

	// UpsertPlanRow writes one computed row for a purchase date.
	UpsertPlanRow(ctx context.Context, purchaseDate string, row PlanRow) error

	// MarkFinalized stamps all rows of the date as finalized.
	MarkFinalized(ctx context.Context, purchaseDate string, finalizedBy string) (int, error)

	// GetDayLock returns the lock row for a date, or nil when absent.
	GetDayLock(ctx context.Context, purchaseDate string) (*DayLock, error)

	// SetDayLock locks or reopens a purchase date (upsert by date).
	SetDayLock(ctx context.Context, purchaseDate string, locked bool) error

	// ListHistory returns finalized rows in a date range, newest date first.
	ListHistory(ctx context.Context, fromDate, toDate string) ([]DBRow, error)
}
