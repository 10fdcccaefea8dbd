package sales

import (
	"context"

	"mandiflow/internal/core/id"
)

// Repository defines persistence for invoices, lines, order links and
// payments.
type Repository interface {
	// CreateInvoice inserts the invoice, its lines and its order links in
	// one transaction.
	CreateInvoice(ctx context.Context, invoice *Invoice, lines []Line, orderIDs []id.ID) error

	// GetInvoice retrieves one invoice.
	GetInvoice(ctx context.Context, invoiceID id.ID) (*Invoice, error)

	// ListInvoices returns invoices dated within [fromDate, toDate],
	// newest first.
	ListInvoices(ctx context.Context, fromDate, toDate string) ([]Invoice, error)

	// ListInvoicedOrderIDs returns the distinct order IDs already linked to
	// an invoice dated within the range.
	ListInvoicedOrderIDs(ctx context.Context, fromDate, toDate string) ([]id.ID, error)

	// ListLines returns the invoice lines sorted by item name.
	ListLines(ctx context.Context, invoiceID id.ID) ([]Line, error)

	// UpsertLines writes edited lines back.
	UpsertLines(ctx context.Context, lines []Line) error

	// UpdateDraft stores draft-editable fields without touching totals.
	UpdateDraft(ctx context.Context, invoiceID id.ID, discount, otherCharges float64, notes *string) error

	// UpdateTotals stores the recomputed money summary and payment state.
	UpdateTotals(ctx context.Context, invoiceID id.ID, totals Totals, due float64, status PaymentStatus) error

	// AddPayment inserts the payment and stores the new paid and due
	// amounts atomically.
	AddPayment(ctx context.Context, payment *Payment, nextPaid, nextDue float64, nextStatus PaymentStatus) error

	// ListPayments returns payments newest first.
	ListPayments(ctx context.Context, invoiceID id.ID) ([]Payment, error)

	// MarkFinalized flips the invoice out of draft.
	MarkFinalized(ctx context.Context, invoiceID id.ID, actor string) error
}
