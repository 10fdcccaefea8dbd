package sales

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name      string
		qty       float64
		unitPrice float64
		want      float64
	}{
		{"plain", 2.5, 30, 75},
		{"negative qty clamps to zero", -2, 30, 0},
		{"negative price clamps to zero", 2, -30, 0},
		{"rounds to paise", 0.3, 33.33, 10},
		{"zero qty", 0, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LineTotal(tt.qty, tt.unitPrice))
		})
	}
}

func TestComputeTotals(t *testing.T) {
	lines := []Line{
		{Qty: 2, UnitPrice: 30},
		{Qty: 1.5, UnitPrice: 40},
	}

	got := ComputeTotals(lines, 10, 5)
	assert.Equal(t, Totals{Subtotal: 120, Discount: 10, Other: 5, Grand: 115}, got)
}

func TestComputeTotals_DiscountCannotGoNegative(t *testing.T) {
	lines := []Line{{Qty: 1, UnitPrice: 50}}

	got := ComputeTotals(lines, 200, 0)
	assert.Equal(t, 50.0, got.Subtotal)
	assert.Equal(t, 0.0, got.Grand)
}

func TestComputeTotals_NegativeInputsClamped(t *testing.T) {
	got := ComputeTotals(nil, -10, -5)
	assert.Equal(t, Totals{}, got)
}

func TestDueAndStatus(t *testing.T) {
	tests := []struct {
		name       string
		grand      float64
		paid       float64
		wantDue    float64
		wantStatus PaymentStatus
	}{
		{"unpaid", 100, 0, 100, PaymentUnpaid},
		{"partial", 100, 40, 60, PaymentPartial},
		{"paid exactly", 100, 100, 0, PaymentPaid},
		{"overpaid stays paid", 100, 150, 0, PaymentPaid},
		{"zero grand is paid", 0, 0, 0, PaymentPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			due, status := DueAndStatus(tt.grand, tt.paid)
			assert.Equal(t, tt.wantDue, due)
			assert.Equal(t, tt.wantStatus, status)
		})
	}
}

func TestApplyPayment(t *testing.T) {
	paid, due, status := ApplyPayment(20, 100, 30)
	assert.Equal(t, 50.0, paid)
	assert.Equal(t, 50.0, due)
	assert.Equal(t, PaymentPartial, status)
}

func TestApplyPayment_SettlesInvoice(t *testing.T) {
	paid, due, status := ApplyPayment(60, 100, 40)
	assert.Equal(t, 100.0, paid)
	assert.Equal(t, 0.0, due)
	assert.Equal(t, PaymentPaid, status)
}

func TestApplyPayment_NegativeCorrectionClampsAtZero(t *testing.T) {
	paid, due, status := ApplyPayment(10, 100, -50)
	assert.Equal(t, 0.0, paid)
	assert.Equal(t, 100.0, due)
	assert.Equal(t, PaymentUnpaid, status)
}

func TestMakeInvoiceNo(t *testing.T) {
	no := MakeInvoiceNo("2026-01-15")
	assert.True(t, strings.HasPrefix(no, "SI-20260115-"), no)
	assert.Len(t, no, len("SI-20260115-")+5)
}
