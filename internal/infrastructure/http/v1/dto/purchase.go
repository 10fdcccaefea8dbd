package dto

// RowEditRequest is one unsaved plan-row edit keyed by item key. Nil fields
// mean "not touched".
type RowEditRequest struct {
	AdjustmentQty *float64 `json:"adjustmentQty"`
	PurchasedQty  *float64 `json:"purchasedQty"`
	PackSize      *float64 `json:"packSize"`
	PackCount     *float64 `json:"packCount"`
	UnitPrice     *float64 `json:"unitPrice"`
	VendorName    *string  `json:"vendorName"`
	Notes         *string  `json:"notes"`
}

// DayViewRequest recomputes the merged plan with pending edits applied.
type DayViewRequest struct {
	Edits map[string]RowEditRequest `json:"edits"`
}

// SavePlanRequest persists the merged plan for a date.
type SavePlanRequest struct {
	Edits map[string]RowEditRequest `json:"edits"`
}
