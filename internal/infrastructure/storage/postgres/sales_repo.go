package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"mandiflow/internal/core/id"
	"mandiflow/internal/domain/sales"
)

const (
	invoiceTable      = "doc_sales_invoices"
	invoiceLineTable  = "doc_sales_invoice_lines"
	invoiceOrderTable = "doc_sales_invoice_orders"
	paymentTable      = "doc_sales_payments"
)

// SalesRepo implements sales.Repository.
type SalesRepo struct {
	txManager *TxManager
	audit     *AuditService
}

// NewSalesRepo creates a new sales repository.
func NewSalesRepo(txManager *TxManager, audit *AuditService) *SalesRepo {
	return &SalesRepo{txManager: txManager, audit: audit}
}

var _ sales.Repository = (*SalesRepo)(nil)

var invoiceColumns = []string{
	"id", "invoice_no", "restaurant_id", "restaurant_name",
	"invoice_date", "delivery_date", "status",
	"subtotal", "discount_amount", "other_charges", "grand_total",
	"paid_amount", "due_amount", "payment_status",
	"notes", "created_at", "updated_at", "finalized_at", "finalized_by",
}

var lineColumns = []string{
	"id", "invoice_id", "item_code", "item_en", "item_hi",
	"qty", "unit", "unit_price", "line_total", "line_note",
	"created_at", "updated_at",
}

// CreateInvoice inserts the invoice, its lines and its order links in one
// transaction.
func (r *SalesRepo) CreateInvoice(ctx context.Context, invoice *sales.Invoice, lines []sales.Line, orderIDs []id.ID) error {
	return r.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		querier := r.txManager.GetQuerier(ctx)

		sql, args, err := psql.
			Insert(invoiceTable).
			Columns(invoiceColumns...).
			Values(
				invoice.ID, invoice.InvoiceNo, invoice.RestaurantID, invoice.RestaurantName,
				invoice.InvoiceDate, invoice.DeliveryDate, invoice.Status,
				invoice.Subtotal, invoice.DiscountAmount, invoice.OtherCharges, invoice.GrandTotal,
				invoice.PaidAmount, invoice.DueAmount, invoice.PaymentStatus,
				invoice.Notes, invoice.CreatedAt, invoice.UpdatedAt, invoice.FinalizedAt, invoice.FinalizedBy,
			).
			ToSql()
		if err != nil {
			return fmt.Errorf("build query: %w", err)
		}
		if _, err := querier.Exec(ctx, sql, args...); err != nil {
			return translateError(fmt.Errorf("insert invoice: %w", err), "invoice")
		}

		for _, line := range lines {
			if err := r.upsertLine(ctx, line); err != nil {
				return err
			}
		}

		for _, orderID := range orderIDs {
			sql, args, err := psql.
				Insert(invoiceOrderTable).
				Columns("id", "invoice_id", "order_id", "created_at").
				Values(id.New(), invoice.ID, orderID, time.Now().UTC()).
				ToSql()
			if err != nil {
				return fmt.Errorf("build query: %w", err)
			}
			if _, err := querier.Exec(ctx, sql, args...); err != nil {
				return translateError(fmt.Errorf("link order: %w", err), "invoice order link")
			}
		}

		return r.audit.LogChange(ctx, "sales_invoice", invoice.ID.String(), AuditActionCreate, invoice)
	})
}

// GetInvoice retrieves one invoice, nil when absent.
func (r *SalesRepo) GetInvoice(ctx context.Context, invoiceID id.ID) (*sales.Invoice, error) {
	sql, args, err := psql.
		Select(invoiceColumns...).
		From(invoiceTable).
		Where(squirrel.Eq{"id": invoiceID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var invoice sales.Invoice
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &invoice, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &invoice, nil
}

// ListInvoices returns invoices dated within [fromDate, toDate], newest
// first.
func (r *SalesRepo) ListInvoices(ctx context.Context, fromDate, toDate string) ([]sales.Invoice, error) {
	sql, args, err := psql.
		Select(invoiceColumns...).
		From(invoiceTable).
		Where(squirrel.GtOrEq{"invoice_date": fromDate}).
		Where(squirrel.LtOrEq{"invoice_date": toDate}).
		OrderBy("created_at DESC").
		Limit(1000).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var invoices []sales.Invoice
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &invoices, sql, args...); err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return invoices, nil
}

// ListInvoicedOrderIDs returns the distinct order IDs already linked to an
// invoice dated within the range.
func (r *SalesRepo) ListInvoicedOrderIDs(ctx context.Context, fromDate, toDate string) ([]id.ID, error) {
	sql, args, err := psql.
		Select("DISTINCT io.order_id").
		From(invoiceOrderTable + " io").
		Join(invoiceTable + " i ON i.id = io.invoice_id").
		Where(squirrel.GtOrEq{"i.invoice_date": fromDate}).
		Where(squirrel.LtOrEq{"i.invoice_date": toDate}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var ids []id.ID
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &ids, sql, args...); err != nil {
		return nil, fmt.Errorf("list invoiced order ids: %w", err)
	}
	return ids, nil
}

// ListLines returns the invoice lines sorted by item name.
func (r *SalesRepo) ListLines(ctx context.Context, invoiceID id.ID) ([]sales.Line, error) {
	sql, args, err := psql.
		Select(lineColumns...).
		From(invoiceLineTable).
		Where(squirrel.Eq{"invoice_id": invoiceID}).
		OrderBy("item_en ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []sales.Line
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("list invoice lines: %w", err)
	}
	return lines, nil
}

// UpsertLines writes edited lines back.
func (r *SalesRepo) UpsertLines(ctx context.Context, lines []sales.Line) error {
	return r.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		for _, line := range lines {
			if err := r.upsertLine(ctx, line); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *SalesRepo) upsertLine(ctx context.Context, line sales.Line) error {
	sql, args, err := psql.
		Insert(invoiceLineTable).
		Columns(lineColumns...).
		Values(
			line.ID, line.InvoiceID, line.ItemCode, line.ItemEN, line.ItemHI,
			line.Qty, line.Unit, line.UnitPrice, line.LineTotal, line.LineNote,
			line.CreatedAt, line.UpdatedAt,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			qty = EXCLUDED.qty,
			unit = EXCLUDED.unit,
			unit_price = EXCLUDED.unit_price,
			line_total = EXCLUDED.line_total,
			line_note = EXCLUDED.line_note,
			updated_at = EXCLUDED.updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return translateError(fmt.Errorf("upsert invoice line: %w", err), "invoice line")
	}
	return nil
}

// UpdateDraft stores draft-editable fields without touching totals.
func (r *SalesRepo) UpdateDraft(ctx context.Context, invoiceID id.ID, discount, otherCharges float64, notes *string) error {
	sql, args, err := psql.
		Update(invoiceTable).
		Set("discount_amount", discount).
		Set("other_charges", otherCharges).
		Set("notes", notes).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": invoiceID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("update invoice draft: %w", err)
	}
	return nil
}

// UpdateTotals stores the recomputed money summary and payment state.
func (r *SalesRepo) UpdateTotals(ctx context.Context, invoiceID id.ID, totals sales.Totals, due float64, status sales.PaymentStatus) error {
	sql, args, err := psql.
		Update(invoiceTable).
		Set("subtotal", totals.Subtotal).
		Set("discount_amount", totals.Discount).
		Set("other_charges", totals.Other).
		Set("grand_total", totals.Grand).
		Set("due_amount", due).
		Set("payment_status", status).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": invoiceID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("update invoice totals: %w", err)
	}
	return nil
}

// AddPayment inserts the payment and stores the new paid and due amounts in
// one transaction.
func (r *SalesRepo) AddPayment(ctx context.Context, payment *sales.Payment, nextPaid, nextDue float64, nextStatus sales.PaymentStatus) error {
	return r.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		querier := r.txManager.GetQuerier(ctx)

		sql, args, err := psql.
			Insert(paymentTable).
			Columns("id", "invoice_id", "amount", "payment_date", "method", "notes", "created_at").
			Values(
				payment.ID, payment.InvoiceID, payment.Amount, payment.PaymentDate,
				payment.Method, payment.Notes, payment.CreatedAt,
			).
			ToSql()
		if err != nil {
			return fmt.Errorf("build query: %w", err)
		}
		if _, err := querier.Exec(ctx, sql, args...); err != nil {
			return translateError(fmt.Errorf("insert payment: %w", err), "payment")
		}

		sql, args, err = psql.
			Update(invoiceTable).
			Set("paid_amount", nextPaid).
			Set("due_amount", nextDue).
			Set("payment_status", nextStatus).
			Set("updated_at", time.Now().UTC()).
			Where(squirrel.Eq{"id": payment.InvoiceID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build query: %w", err)
		}
		if _, err := querier.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("update payment state: %w", err)
		}

		return r.audit.LogChange(ctx, "sales_invoice", payment.InvoiceID.String(), AuditActionUpdate,
			map[string]any{
				"payment_id":     payment.ID,
				"amount":         payment.Amount,
				"paid_amount":    nextPaid,
				"due_amount":     nextDue,
				"payment_status": nextStatus,
			})
	})
}

// ListPayments returns payments newest first.
func (r *SalesRepo) ListPayments(ctx context.Context, invoiceID id.ID) ([]sales.Payment, error) {
	sql, args, err := psql.
		Select("id", "invoice_id", "amount", "payment_date", "method", "notes", "created_at").
		From(paymentTable).
		Where(squirrel.Eq{"invoice_id": invoiceID}).
		OrderBy("payment_date DESC", "created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var payments []sales.Payment
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &payments, sql, args...); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}

// MarkFinalized flips the invoice out of draft.
func (r *SalesRepo) MarkFinalized(ctx context.Context, invoiceID id.ID, actor string) error {
	return r.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		querier := r.txManager.GetQuerier(ctx)

		sql, args, err := psql.
			Update(invoiceTable).
			Set("status", sales.InvoiceFinalized).
			Set("finalized_at", time.Now().UTC()).
			Set("finalized_by", actor).
			Set("updated_at", time.Now().UTC()).
			Where(squirrel.Eq{"id": invoiceID}).
			Where(squirrel.Eq{"status": sales.InvoiceDraft}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build query: %w", err)
		}
		tag, err := querier.Exec(ctx, sql, args...)
		if err != nil {
			return fmt.Errorf("mark invoice finalized: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("invoice %s is not a draft", invoiceID)
		}

		return r.audit.LogChange(ctx, "sales_invoice", invoiceID.String(), AuditActionFinalize,
			map[string]any{"finalized_by": actor})
	})
}
