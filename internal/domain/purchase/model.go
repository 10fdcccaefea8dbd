// Package purchase provides the purchase-plan calculation core: demand
// aggregation over restaurant orders, the three-way merge of live demand,
// persisted plan rows and unsaved user edits, and the derived totals and
// stock deltas.
//
// All functions here are pure: same inputs, same outputs, no I/O. The
// service layer wires them to persistence.
package purchase

import (
	"time"
)

// RowStatus marks a plan row as editable or finalized.
type RowStatus string

const (
	StatusDraft     RowStatus = "draft"
	StatusFinalized RowStatus = "finalized"
)

// SourceOrderRef records which order contributed demand to a plan row.
type SourceOrderRef struct {
	OrderRef       string  `json:"order_ref"`
	RestaurantName string  `json:"restaurant_name"`
	Qty            float64 `json:"qty"`
}

// PlanRow is a computed purchase-plan row for one item on one purchase day.
//
// Invariants (all values 2-decimal rounded):
//
//	FinalQty    = OrderedQty + AdjustmentQty   (may be negative)
//	LineTotal   = PurchasedQty * UnitPrice
//	VarianceQty = PurchasedQty - FinalQty
type PlanRow struct {
	ItemCode      string           `json:"item_code"`
	ItemEN        string           `json:"item_en"`
	ItemHI        *string          `json:"item_hi"`
	Category      *string          `json:"category"`
	OrderedQty    float64          `json:"ordered_qty"`
	AdjustmentQty float64          `json:"adjustment_qty"`
	FinalQty      float64          `json:"final_qty"`
	PurchasedQty  float64          `json:"purchased_qty"`
	PackSize      float64          `json:"pack_size"`
	PackCount     float64          `json:"pack_count"`
	UnitPrice     float64          `json:"unit_price"`
	LineTotal     float64          `json:"line_total"`
	VarianceQty   float64          `json:"variance_qty"`
	VendorName    *string          `json:"vendor_name"`
	Status        RowStatus        `json:"purchase_status"`
	FinalizedAt   *time.Time       `json:"finalized_at"`
	FinalizedBy   *string          `json:"finalized_by"`
	Notes         *string          `json:"notes"`
	SourceOrders  []SourceOrderRef `json:"source_orders"`
}

// HasNegativeFinalQty flags rows where an adjustment over-reduced the
// ordered demand. The negative value is preserved, not clamped, so the
// screen can surface it.
func (r PlanRow) HasNegativeFinalQty() bool {
	return r.FinalQty < 0
}

// DBRow is a persisted purchase-plan snapshot as the data layer returns it.
// Numeric fields are `any` because stale or hand-migrated rows may carry
// strings or nulls; the merge coerces every one through SafeNumber.
type DBRow struct {
	ItemCode      string           `json:"item_code"`
	ItemEN        string           `json:"item_en"`
	ItemHI        *string          `json:"item_hi"`
	Category      *string          `json:"category"`
	OrderedQty    any              `json:"ordered_qty"`
	AdjustmentQty any              `json:"adjustment_qty"`
	FinalQty      any              `json:"final_qty"`
	PurchasedQty  any              `json:"purchased_qty"`
	PackSize      any              `json:"pack_size"`
	PackCount     any              `json:"pack_count"`
	UnitPrice     any              `json:"unit_price"`
	LineTotal     any              `json:"line_total"`
	VarianceQty   any              `json:"variance_qty"`
	VendorName    *string          `json:"vendor_name"`
	Status        string           `json:"purchase_status"`
	FinalizedAt   *time.Time       `json:"finalized_at"`
	FinalizedBy   *string          `json:"finalized_by"`
	Notes         *string          `json:"notes"`
	SourceOrders  []SourceOrderRef `json:"source_orders"`
}

// Edit is a transient, unsaved user edit for one plan row. Nil fields mean
// "not touched"; a fully nil Edit counts as no edit at all, which matters
// for the default-purchased heuristic in the merge.
type Edit struct {
	AdjustmentQty *float64 `json:"adjustment_qty,omitempty"`
	PurchasedQty  *float64 `json:"purchased_qty,omitempty"`
	PackSize      *float64 `json:"pack_size,omitempty"`
	PackCount     *float64 `json:"pack_count,omitempty"`
	UnitPrice     *float64 `json:"unit_price,omitempty"`
	VendorName    *string  `json:"vendor_name,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
}

// IsZero reports whether no field of the edit is set.
func (e Edit) IsZero() bool {
	return e.AdjustmentQty == nil &&
		e.PurchasedQty == nil &&
		e.PackSize == nil &&
		e.PackCount == nil &&
		e.UnitPrice == nil &&
		e.VendorName == nil &&
		e.Notes == nil
}

// Totals summarizes a day's plan rows.
type Totals struct {
	RequiredQty   float64 `json:"requiredQty"`
	PurchasedQty  float64 `json:"purchasedQty"`
	Spend         float64 `json:"spend"`
	ShortageCount int     `json:"shortageCount"`
	ExtraCount    int     `json:"extraCount"`
}

// StockDelta is a positive surplus increase for one item code, to be pushed
// into the stock register on save.
type StockDelta struct {
	ItemEN string  `json:"item_en"`
	Delta  float64 `json:"delta"`
}

// DayLock records whether a purchase date is locked for editing.
type DayLock struct {
	ID           string     `db:"id" json:"id"`
	PurchaseDate string     `db:"purchase_date" json:"purchaseDate"`
	IsLocked     bool       `db:"is_locked" json:"isLocked"`
	LockedAt     *time.Time `db:"locked_at" json:"lockedAt"`
	ReopenedAt   *time.Time `db:"reopened_at" json:"reopenedAt"`
}
