package sales

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"mandiflow/internal/core/apperror"
	appctx "mandiflow/internal/core/context"
	"mandiflow/internal/core/id"
	"mandiflow/internal/core/types"
	"mandiflow/internal/domain/orders"
	"mandiflow/pkg/logger"
)

// OrderSource supplies delivered orders for invoicing.
type OrderSource interface {
	GetByID(ctx context.Context, orderID id.ID) (*orders.Order, error)
	ListDelivered(ctx context.Context, fromDate, toDate string) ([]orders.Order, error)
}

// Service builds invoices from delivered orders, keeps their totals derived
// and records payments.
type Service struct {
	repo   Repository
	orders OrderSource
}

// NewService creates a new sales service.
func NewService(repo Repository, orderSource OrderSource) *Service {
	return &Service{repo: repo, orders: orderSource}
}

// UninvoicedOrders returns delivered orders in the range that are not yet
// linked to any invoice.
func (s *Service) UninvoicedOrders(ctx context.Context, fromDate, toDate string) ([]orders.Order, error) {
	delivered, err := s.orders.ListDelivered(ctx, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("list delivered orders: %w", err)
	}
	invoicedIDs, err := s.repo.ListInvoicedOrderIDs(ctx, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("list invoiced order ids: %w", err)
	}
	invoiced := make(map[id.ID]struct{}, len(invoicedIDs))
	for _, orderID := range invoicedIDs {
		invoiced[orderID] = struct{}{}
	}

	open := make([]orders.Order, 0, len(delivered))
	for _, o := range delivered {
		if _, done := invoiced[o.ID]; !done {
			open = append(open, o)
		}
	}
	return open, nil
}

// CreateFromOrders builds a draft invoice from one or more delivered orders
// of the same restaurant. Line quantities for the same item accumulate
// across orders; unit prices start at zero and are filled in on the draft.
func (s *Service) CreateFromOrders(ctx context.Context, orderIDs []id.ID, invoiceDate string) (*Invoice, error) {
	if len(orderIDs) == 0 {
		return nil, apperror.NewValidation("at least one order is required")
	}

	sourceOrders := make([]orders.Order, 0, len(orderIDs))
	for _, orderID := range orderIDs {
		order, err := s.orders.GetByID(ctx, orderID)
		if err != nil {
			return nil, fmt.Errorf("load order %s: %w", orderID, err)
		}
		if order == nil {
			return nil, apperror.NewNotFound("order", orderID)
		}
		if order.Status != orders.StatusDelivered {
			return nil, apperror.NewValidation("only delivered orders can be invoiced").
				WithDetail("order_ref", order.OrderRef).
				WithDetail("status", string(order.Status))
		}
		sourceOrders = append(sourceOrders, *order)
	}

	restaurantID := sourceOrders[0].RestaurantID
	for _, o := range sourceOrders[1:] {
		if o.RestaurantID != restaurantID {
			return nil, apperror.NewValidation("all orders must belong to one restaurant")
		}
	}

	invoiceID := id.New()
	lines := buildLines(invoiceID, sourceOrders)
	totals := ComputeTotals(lines, 0, 0)
	due, payStatus := DueAndStatus(totals.Grand, 0)
	now := time.Now().UTC()

	invoice := &Invoice{
		ID:             invoiceID,
		InvoiceNo:      MakeInvoiceNo(invoiceDate),
		RestaurantID:   restaurantID,
		RestaurantName: sourceOrders[0].RestaurantName,
		InvoiceDate:    invoiceDate,
		DeliveryDate:   sourceOrders[0].DeliveryDate,
		Status:         InvoiceDraft,
		Subtotal:       totals.Subtotal,
		DiscountAmount: totals.Discount,
		OtherCharges:   totals.Other,
		GrandTotal:     totals.Grand,
		PaidAmount:     0,
		DueAmount:      due,
		PaymentStatus:  payStatus,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.CreateInvoice(ctx, invoice, lines, orderIDs); err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}

	logger.Info(ctx, "invoice created",
		"invoice_no", invoice.InvoiceNo,
		"restaurant", invoice.RestaurantName,
		"orders", len(orderIDs),
		"lines", len(lines),
	)
	return invoice, nil
}

// buildLines collapses the orders' line items into one invoice line per item
// key, sorted by item name.
func buildLines(invoiceID id.ID, sourceOrders []orders.Order) []Line {
	byKey := make(map[string]*Line)
	now := time.Now().UTC()

	for _, order := range sourceOrders {
		for _, item := range order.Items {
			itemEN := strings.TrimSpace(item.EN)
			qty := types.Clamp0(types.Round2(types.SafeNumber(item.Qty, 0)))
			key := strings.TrimSpace(item.Code)
			if key == "" {
				key = itemEN
			}

			line, exists := byKey[key]
			if !exists {
				l := Line{
					ID:        id.New(),
					InvoiceID: invoiceID,
					ItemEN:    itemEN,
					Qty:       qty,
					Unit:      "kg",
					CreatedAt: now,
					UpdatedAt: now,
				}
				if code := strings.TrimSpace(item.Code); code != "" {
					l.ItemCode = &code
				}
				if item.HI != "" {
					hi := item.HI
					l.ItemHI = &hi
				}
				byKey[key] = &l
				continue
			}
			line.Qty = types.Round2(line.Qty + qty)
		}
	}

	lines := make([]Line, 0, len(byKey))
	for _, line := range byKey {
		line.LineTotal = LineTotal(line.Qty, line.UnitPrice)
		lines = append(lines, *line)
	}
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].ItemEN < lines[j].ItemEN
	})
	return lines
}

// GetInvoice returns one invoice with its lines and payments.
func (s *Service) GetInvoice(ctx context.Context, invoiceID id.ID) (*Invoice, []Line, []Payment, error) {
	invoice, err := s.repo.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load invoice: %w", err)
	}
	if invoice == nil {
		return nil, nil, nil, apperror.NewNotFound("invoice", invoiceID)
	}
	lines, err := s.repo.ListLines(ctx, invoiceID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load invoice lines: %w", err)
	}
	payments, err := s.repo.ListPayments(ctx, invoiceID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load payments: %w", err)
	}
	return invoice, lines, payments, nil
}

// ListInvoices returns invoices dated within the range.
func (s *Service) ListInvoices(ctx context.Context, fromDate, toDate string) ([]Invoice, error) {
	invoices, err := s.repo.ListInvoices(ctx, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return invoices, nil
}

// DraftUpdate carries the edits allowed while an invoice is still a draft.
type DraftUpdate struct {
	Lines          []Line
	DiscountAmount float64
	OtherCharges   float64
	Notes          string
}

// UpdateDraft writes line and header edits onto a draft invoice and
// rederives every money field. Non-draft invoices are refused.
func (s *Service) UpdateDraft(ctx context.Context, invoiceID id.ID, update DraftUpdate) (*Invoice, error) {
	invoice, err := s.repo.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("load invoice: %w", err)
	}
	if invoice == nil {
		return nil, apperror.NewNotFound("invoice", invoiceID)
	}
	if !invoice.IsDraft() {
		return nil, apperror.NewBusinessRule(apperror.CodeInvoiceNotDraft,
			"only draft invoices can be edited").
			WithDetail("invoice_no", invoice.InvoiceNo).
			WithDetail("status", string(invoice.Status))
	}

	for i := range update.Lines {
		update.Lines[i].InvoiceID = invoiceID
		update.Lines[i].Qty = types.Clamp0(types.Round2(types.SafeNumber(update.Lines[i].Qty, 0)))
		update.Lines[i].UnitPrice = types.Clamp0(types.Round2(types.SafeNumber(update.Lines[i].UnitPrice, 0)))
		update.Lines[i].LineTotal = LineTotal(update.Lines[i].Qty, update.Lines[i].UnitPrice)
		update.Lines[i].UpdatedAt = time.Now().UTC()
	}
	if len(update.Lines) > 0 {
		if err := s.repo.UpsertLines(ctx, update.Lines); err != nil {
			return nil, fmt.Errorf("upsert invoice lines: %w", err)
		}
	}

	notes := orders.TrimmedNotes(update.Notes)
	if err := s.repo.UpdateDraft(ctx, invoiceID,
		types.Clamp0(types.SafeNumber(update.DiscountAmount, 0)),
		types.Clamp0(types.SafeNumber(update.OtherCharges, 0)),
		notes,
	); err != nil {
		return nil, fmt.Errorf("update invoice draft: %w", err)
	}

	return s.recomputeTotals(ctx, invoiceID)
}

// recomputeTotals rereads the stored lines and header, rederives the money
// summary and payment state and stores them.
func (s *Service) recomputeTotals(ctx context.Context, invoiceID id.ID) (*Invoice, error) {
	invoice, err := s.repo.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("reload invoice: %w", err)
	}
	lines, err := s.repo.ListLines(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("reload invoice lines: %w", err)
	}

	totals := ComputeTotals(lines, invoice.DiscountAmount, invoice.OtherCharges)
	due, payStatus := DueAndStatus(totals.Grand, invoice.PaidAmount)
	if err := s.repo.UpdateTotals(ctx, invoiceID, totals, due, payStatus); err != nil {
		return nil, fmt.Errorf("update invoice totals: %w", err)
	}

	invoice.Subtotal = totals.Subtotal
	invoice.DiscountAmount = totals.Discount
	invoice.OtherCharges = totals.Other
	invoice.GrandTotal = totals.Grand
	invoice.DueAmount = due
	invoice.PaymentStatus = payStatus
	return invoice, nil
}

// AddPayment records a payment and rolls the invoice's paid, due and payment
// status forward. Zero and negative amounts are refused.
func (s *Service) AddPayment(ctx context.Context, invoiceID id.ID, amount float64, method PaymentMethod, notes string) (*Invoice, error) {
	amount = types.Round2(types.SafeNumber(amount, 0))
	if amount <= 0 {
		return nil, apperror.NewValidation("payment amount must be positive").
			WithDetail("amount", amount)
	}
	if method != "" && !IsValidMethod(method) {
		return nil, apperror.NewValidation("unknown payment method").
			WithDetail("method", string(method))
	}

	invoice, err := s.repo.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("load invoice: %w", err)
	}
	if invoice == nil {
		return nil, apperror.NewNotFound("invoice", invoiceID)
	}

	nextPaid, nextDue, nextStatus := ApplyPayment(invoice.PaidAmount, invoice.GrandTotal, amount)

	payment := &Payment{
		ID:          id.New(),
		InvoiceID:   invoiceID,
		Amount:      amount,
		PaymentDate: time.Now().UTC().Format("2006-01-02"),
		Notes:       orders.TrimmedNotes(notes),
		CreatedAt:   time.Now().UTC(),
	}
	if method != "" {
		payment.Method = &method
	}

	if err := s.repo.AddPayment(ctx, payment, nextPaid, nextDue, nextStatus); err != nil {
		return nil, fmt.Errorf("add payment: %w", err)
	}

	logger.Info(ctx, "payment recorded",
		"invoice_no", invoice.InvoiceNo,
		"amount", amount,
		"paid", nextPaid,
		"due", nextDue,
		"payment_status", string(nextStatus),
	)

	invoice.PaidAmount = nextPaid
	invoice.DueAmount = nextDue
	invoice.PaymentStatus = nextStatus
	return invoice, nil
}

// Finalize stamps a draft invoice as finalized. Any other status is
// refused.
func (s *Service) Finalize(ctx context.Context, invoiceID id.ID) error {
	invoice, err := s.repo.GetInvoice(ctx, invoiceID)
	if err != nil {
		return fmt.Errorf("load invoice: %w", err)
	}
	if invoice == nil {
		return apperror.NewNotFound("invoice", invoiceID)
	}
	if !invoice.IsDraft() {
		return apperror.NewBusinessRule(apperror.CodeInvoiceNotDraft,
			"only draft invoices can be finalized").
			WithDetail("invoice_no", invoice.InvoiceNo).
			WithDetail("status", string(invoice.Status))
	}

	actor := appctx.GetActorID(ctx)
	if err := s.repo.MarkFinalized(ctx, invoiceID, actor); err != nil {
		return fmt.Errorf("finalize invoice: %w", err)
	}

	logger.Info(ctx, "invoice finalized",
		"invoice_no", invoice.InvoiceNo,
		"finalized_by", actor,
	)
	return nil
}
