// Package accounts provides cash-day reconciliation for the purchase float:
// cash issued to the buyer, purchase spend posted against it, cash returned,
// and the day-close workflow.
package accounts

import (
	"time"

	"mandiflow/internal/core/id"
)

// VoucherType is the kind of cash movement a voucher records.
type VoucherType string

const (
	VoucherCashIssue  VoucherType = "cash_issue"
	VoucherSpend      VoucherType = "purchase_spend"
	VoucherCashReturn VoucherType = "cash_return"
)

// IsValidVoucherType reports whether t is a known voucher type.
func IsValidVoucherType(t VoucherType) bool {
	switch t {
	case VoucherCashIssue, VoucherSpend, VoucherCashReturn:
		return true
	}
	return false
}

// Voucher is one posted cash movement for a user on a date.
type Voucher struct {
	ID           id.ID       `db:"id" json:"id"`
	VoucherDate  string      `db:"voucher_date" json:"voucherDate"`
	TargetUserID string      `db:"target_user_id" json:"targetUserId"`
	Type         VoucherType `db:"voucher_type" json:"type"`
	Amount       float64     `db:"amount" json:"amount"`
	Notes        *string     `db:"notes" json:"notes"`
	PostedBy     string      `db:"posted_by" json:"postedBy"`
	CreatedAt    time.Time   `db:"created_at" json:"createdAt"`
}

// DayClose records that a cash day was closed, with an optional note when
// the numbers did not reconcile.
type DayClose struct {
	ID        id.ID     `db:"id" json:"id"`
	DayDate   string    `db:"day_date" json:"dayDate"`
	CloseNote string    `db:"close_note" json:"closeNote"`
	ClosedBy  string    `db:"closed_by" json:"closedBy"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// VoucherSummary is one cash day's posted figures, before derivation.
type VoucherSummary struct {
	Date          string  `json:"date"`
	ExpectedSpend float64 `json:"expectedSpend"`
	Spend         float64 `json:"spend"`
	CashIssued    float64 `json:"cashIssued"`
	CashReturned  float64 `json:"cashReturned"`
	IsClosed      bool    `json:"isClosed"`
	CloseNote     string  `json:"closeNote"`
}

// DayStatus classifies a day by closed flag and whether the cash movement
// reconciles to zero.
type DayStatus string

const (
	StatusClosedMatched  DayStatus = "closed_matched"
	StatusClosedMismatch DayStatus = "closed_mismatch"
	StatusOpenMatched    DayStatus = "open_matched"
	StatusOpenMismatch   DayStatus = "open_mismatch"
)

// DayComputed is a VoucherSummary with every derived field filled in.
type DayComputed struct {
	VoucherSummary
	ExpectedCashLeft  float64   `json:"expectedCashLeft"`
	Difference        float64   `json:"difference"`
	PurchaseNotPosted bool      `json:"purchaseNotPosted"`
	Status            DayStatus `json:"status"`
	DayState          DayState  `json:"dayState"`
}
