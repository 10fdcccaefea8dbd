package dto

// PostVoucherRequest posts one cash movement.
type PostVoucherRequest struct {
	VoucherDate  string  `json:"voucherDate" binding:"required"`
	TargetUserID string  `json:"targetUserId" binding:"required"`
	Type         string  `json:"type" binding:"required"`
	Amount       float64 `json:"amount" binding:"required"`
	Notes        *string `json:"notes"`
}

// CloseDayRequest closes a cash day.
type CloseDayRequest struct {
	CloseNote string `json:"closeNote"`
}

// SetStockRequest overwrites an item's available quantity.
type SetStockRequest struct {
	ItemCode string  `json:"itemCode" binding:"required"`
	ItemEN   string  `json:"itemEn"`
	Qty      float64 `json:"qty"`
}
