package accounts

import "context"

// Repository defines persistence for vouchers and day closes.
type Repository interface {
	// CreateVoucher inserts one cash movement.
	CreateVoucher(ctx context.Context, voucher *Voucher) error

	// ListVouchers returns vouchers for dates in [fromDate, toDate],
	// oldest first.
	ListVouchers(ctx context.Context, fromDate, toDate string) ([]Voucher, error)

	// GetDayClose returns the close record for a date, nil when open.
	GetDayClose(ctx context.Context, dayDate string) (*DayClose, error)

	// ListDayCloses returns close records for dates in [fromDate, toDate].
	ListDayCloses(ctx context.Context, fromDate, toDate string) ([]DayClose, error)

	// CreateDayClose records that a day was closed.
	CreateDayClose(ctx context.Context, close *DayClose) error
}
