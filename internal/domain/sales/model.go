// Package sales provides sales invoices built from delivered orders, the
// invoice totals math and the payment engine.
package sales

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"mandiflow/internal/core/id"
)

// InvoiceStatus is the invoice lifecycle state. Only draft invoices accept
// edits and finalization.
type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "draft"
	InvoiceFinalized InvoiceStatus = "finalized"
	InvoiceCancelled InvoiceStatus = "cancelled"
)

// PaymentStatus is derived from grand total and paid amount, never stored
// independently of them.
type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "unpaid"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

// PaymentMethod is how a payment was received.
type PaymentMethod string

const (
	MethodCash  PaymentMethod = "cash"
	MethodUPI   PaymentMethod = "upi"
	MethodBank  PaymentMethod = "bank"
	MethodCard  PaymentMethod = "card"
	MethodOther PaymentMethod = "other"
)

// IsValidMethod reports whether m is a known payment method.
func IsValidMethod(m PaymentMethod) bool {
	switch m {
	case MethodCash, MethodUPI, MethodBank, MethodCard, MethodOther:
		return true
	}
	return false
}

// Invoice is a sales invoice for one restaurant, built from one or more
// delivered orders.
type Invoice struct {
	ID             id.ID         `db:"id" json:"id"`
	InvoiceNo      string        `db:"invoice_no" json:"invoiceNo"`
	RestaurantID   id.ID         `db:"restaurant_id" json:"restaurantId"`
	RestaurantName string        `db:"restaurant_name" json:"restaurantName"`
	InvoiceDate    string        `db:"invoice_date" json:"invoiceDate"`
	DeliveryDate   string        `db:"delivery_date" json:"deliveryDate"`
	Status         InvoiceStatus `db:"status" json:"status"`
	Subtotal       float64       `db:"subtotal" json:"subtotal"`
	DiscountAmount float64       `db:"discount_amount" json:"discountAmount"`
	OtherCharges   float64       `db:"other_charges" json:"otherCharges"`
	GrandTotal     float64       `db:"grand_total" json:"grandTotal"`
	PaidAmount     float64       `db:"paid_amount" json:"paidAmount"`
	DueAmount      float64       `db:"due_amount" json:"dueAmount"`
	PaymentStatus  PaymentStatus `db:"payment_status" json:"paymentStatus"`
	Notes          *string       `db:"notes" json:"notes"`
	CreatedAt      time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time     `db:"updated_at" json:"updatedAt"`
	FinalizedAt    *time.Time    `db:"finalized_at" json:"finalizedAt"`
	FinalizedBy    *string       `db:"finalized_by" json:"finalizedBy"`
}

// IsDraft reports whether the invoice still accepts edits.
func (i *Invoice) IsDraft() bool { return i.Status == InvoiceDraft }

// Line is one invoice line. LineTotal is always derived from Qty and
// UnitPrice, both clamped at zero.
type Line struct {
	ID        id.ID     `db:"id" json:"id"`
	InvoiceID id.ID     `db:"invoice_id" json:"invoiceId"`
	ItemCode  *string   `db:"item_code" json:"itemCode"`
	ItemEN    string    `db:"item_en" json:"itemEn"`
	ItemHI    *string   `db:"item_hi" json:"itemHi"`
	Qty       float64   `db:"qty" json:"qty"`
	Unit      string    `db:"unit" json:"unit"`
	UnitPrice float64   `db:"unit_price" json:"unitPrice"`
	LineTotal float64   `db:"line_total" json:"lineTotal"`
	LineNote  *string   `db:"line_note" json:"lineNote"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Payment is one recorded payment against an invoice.
type Payment struct {
	ID          id.ID          `db:"id" json:"id"`
	InvoiceID   id.ID          `db:"invoice_id" json:"invoiceId"`
	Amount      float64        `db:"amount" json:"amount"`
	PaymentDate string         `db:"payment_date" json:"paymentDate"`
	Method      *PaymentMethod `db:"method" json:"method"`
	Notes       *string        `db:"notes" json:"notes"`
	CreatedAt   time.Time      `db:"created_at" json:"createdAt"`
}

// InvoiceOrder links an invoice to one of the delivered orders it covers.
type InvoiceOrder struct {
	ID        id.ID     `db:"id" json:"id"`
	InvoiceID id.ID     `db:"invoice_id" json:"invoiceId"`
	OrderID   id.ID     `db:"order_id" json:"orderId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Totals is the derived money summary for an invoice.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Other    float64 `json:"other"`
	Grand    float64 `json:"grand"`
}

// MakeInvoiceNo builds a human-readable invoice number:
// SI-YYYYMMDD-##### with a random 5-digit suffix.
func MakeInvoiceNo(dateISO string) string {
	return fmt.Sprintf("SI-%s-%05d", strings.ReplaceAll(dateISO, "-", ""), 10000+rand.Intn(90000))
}
