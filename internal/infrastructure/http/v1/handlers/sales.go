package handlers

import (
	"github.com/gin-gonic/gin"

	"mandiflow/internal/core/apperror"
	"mandiflow/internal/core/id"
	"mandiflow/internal/domain/sales"
	"mandiflow/internal/infrastructure/http/v1/dto"
)

// SalesHandler handles sales invoice endpoints.
type SalesHandler struct {
	*BaseHandler
	service *sales.Service
}

// NewSalesHandler creates a new sales handler.
func NewSalesHandler(service *sales.Service) *SalesHandler {
	return &SalesHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
	}
}

// UninvoicedOrders returns delivered orders not yet linked to an invoice.
// GET /api/v1/sales/uninvoiced?from=...&to=...
func (h *SalesHandler) UninvoicedOrders(c *gin.Context) {
	var q dto.DateRangeQuery
	if !h.BindQuery(c, &q) {
		return
	}

	rows, err := h.service.UninvoicedOrders(c.Request.Context(), q.From, q.To)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, rows)
}

// Create builds a draft invoice from delivered orders.
// POST /api/v1/sales/invoices
func (h *SalesHandler) Create(c *gin.Context) {
	var req dto.CreateInvoiceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	orderIDs := make([]id.ID, 0, len(req.OrderIDs))
	for _, raw := range req.OrderIDs {
		orderID, err := id.Parse(raw)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid order id").WithDetail("id", raw))
			return
		}
		orderIDs = append(orderIDs, orderID)
	}

	invoice, err := h.service.CreateFromOrders(c.Request.Context(), orderIDs, req.InvoiceDate)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, invoice)
}

// Get returns an invoice with its lines and payments.
// GET /api/v1/sales/invoices/:id
func (h *SalesHandler) Get(c *gin.Context) {
	invoiceID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid invoice id"))
		return
	}

	invoice, lines, payments, err := h.service.GetInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{
		"invoice":  invoice,
		"lines":    lines,
		"payments": payments,
	})
}

// List returns invoices for a date range.
// GET /api/v1/sales/invoices?from=...&to=...
func (h *SalesHandler) List(c *gin.Context) {
	var q dto.DateRangeQuery
	if !h.BindQuery(c, &q) {
		return
	}

	rows, err := h.service.ListInvoices(c.Request.Context(), q.From, q.To)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, rows)
}

// UpdateDraft edits lines and header charges on a draft invoice.
// PUT /api/v1/sales/invoices/:id
func (h *SalesHandler) UpdateDraft(c *gin.Context) {
	invoiceID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid invoice id"))
		return
	}

	var req dto.UpdateDraftRequest
	if !h.BindJSON(c, &req) {
		return
	}

	lines := make([]sales.Line, 0, len(req.Lines))
	for _, lr := range req.Lines {
		lineID, err := id.Parse(lr.ID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid line id").WithDetail("id", lr.ID))
			return
		}
		lines = append(lines, sales.Line{
			ID:        lineID,
			Qty:       lr.Qty,
			UnitPrice: lr.UnitPrice,
			LineNote:  lr.LineNote,
		})
	}

	invoice, err := h.service.UpdateDraft(c.Request.Context(), invoiceID, sales.DraftUpdate{
		Lines:          lines,
		DiscountAmount: req.DiscountAmount,
		OtherCharges:   req.OtherCharges,
		Notes:          req.Notes,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, invoice)
}

// AddPayment records a payment against an invoice.
// POST /api/v1/sales/invoices/:id/payments
func (h *SalesHandler) AddPayment(c *gin.Context) {
	invoiceID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid invoice id"))
		return
	}

	var req dto.AddPaymentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	invoice, err := h.service.AddPayment(c.Request.Context(), invoiceID,
		req.Amount, sales.PaymentMethod(req.Method), req.Notes)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, invoice)
}

// Finalize locks a draft invoice.
// POST /api/v1/sales/invoices/:id/finalize
func (h *SalesHandler) Finalize(c *gin.Context) {
	invoiceID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid invoice id"))
		return
	}

	if err := h.service.Finalize(c.Request.Context(), invoiceID); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "invoice finalized")
}
