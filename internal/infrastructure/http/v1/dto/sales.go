package dto

// CreateInvoiceRequest builds a draft invoice from delivered orders.
type CreateInvoiceRequest struct {
	OrderIDs    []string `json:"orderIds" binding:"required"`
	InvoiceDate string   `json:"invoiceDate" binding:"required"`
}

// InvoiceLineRequest is one edited invoice line.
type InvoiceLineRequest struct {
	ID        string  `json:"id" binding:"required"`
	Qty       float64 `json:"qty"`
	UnitPrice float64 `json:"unitPrice"`
	LineNote  *string `json:"lineNote"`
}

// UpdateDraftRequest edits a draft invoice.
type UpdateDraftRequest struct {
	Lines          []InvoiceLineRequest `json:"lines"`
	DiscountAmount float64              `json:"discountAmount"`
	OtherCharges   float64              `json:"otherCharges"`
	Notes          string               `json:"notes"`
}

// AddPaymentRequest records a payment against an invoice.
type AddPaymentRequest struct {
	Amount float64 `json:"amount" binding:"required"`
	Method string  `json:"method"`
	Notes  string  `json:"notes"`
}
