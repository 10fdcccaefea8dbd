package sales

import (
	"mandiflow/internal/core/types"
)

// LineTotal computes qty * unit price with both factors clamped at zero, so
// a bad negative entry never produces a negative charge.
func LineTotal(qty, unitPrice float64) float64 {
	q := types.Clamp0(types.SafeNumber(qty, 0))
	p := types.Clamp0(types.SafeNumber(unitPrice, 0))
	return types.Round2(q * p)
}

// ComputeTotals derives the invoice money summary from its working lines.
// Discount and other charges are clamped at zero; the grand total never goes
// below zero even when the discount exceeds the subtotal.
func ComputeTotals(lines []Line, discountAmount, otherCharges float64) Totals {
	var subtotal float64
	for _, line := range lines {
		subtotal += LineTotal(line.Qty, line.UnitPrice)
	}
	subtotal = types.Round2(subtotal)
	discount := types.Clamp0(types.SafeNumber(discountAmount, 0))
	other := types.Clamp0(types.SafeNumber(otherCharges, 0))
	grand := types.Round2(types.Clamp0(subtotal - discount + other))
	return Totals{Subtotal: subtotal, Discount: discount, Other: other, Grand: grand}
}

// DueAndStatus derives the remaining due amount and the payment status.
// Due is clamped at zero. An overpaid invoice is simply "paid"; a zero-grand
// invoice with no payments is also "paid" because nothing is due.
func DueAndStatus(grand, paid float64) (float64, PaymentStatus) {
	due := types.Round2(types.Clamp0(types.SafeNumber(grand, 0) - types.SafeNumber(paid, 0)))
	switch {
	case due <= 0:
		return due, PaymentPaid
	case paid > 0:
		return due, PaymentPartial
	default:
		return due, PaymentUnpaid
	}
}

// ApplyPayment adds an amount onto the current paid total and rederives the
// due amount and payment status. The paid total is clamped at zero, so a
// negative correction can never push it below nothing.
func ApplyPayment(currentPaid, grand, addAmount float64) (nextPaid, nextDue float64, nextStatus PaymentStatus) {
	nextPaid = types.Round2(types.Clamp0(types.SafeNumber(currentPaid, 0) + types.SafeNumber(addAmount, 0)))
	nextDue, nextStatus = DueAndStatus(grand, nextPaid)
	return nextPaid, nextDue, nextStatus
}
