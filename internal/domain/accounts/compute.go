package accounts

import (
	"mandiflow/internal/core/types"
)

// ComputeDay derives every reconciliation field for one cash day.
//
// All four money inputs are rounded first, then:
//
//	expectedCashLeft = cashIssued - spend
//	difference       = cashIssued - spend - cashReturned
//
// A zero difference means the day reconciles. purchaseNotPosted flags days
// where a spend was expected but nothing has been posted yet.
func ComputeDay(in VoucherSummary) DayComputed {
	spend := types.Round2(in.Spend)
	cashIssued := types.Round2(in.CashIssued)
	cashReturned := types.Round2(in.CashReturned)
	expectedSpend := types.Round2(in.ExpectedSpend)

	expectedCashLeft := types.Round2(cashIssued - spend)
	difference := types.Round2(cashIssued - spend - cashReturned)
	purchaseNotPosted := expectedSpend > 0 && spend <= 0

	var status DayStatus
	switch {
	case in.IsClosed && difference == 0:
		status = StatusClosedMatched
	case in.IsClosed:
		status = StatusClosedMismatch
	case difference == 0:
		status = StatusOpenMatched
	default:
		status = StatusOpenMismatch
	}

	out := in
	out.Spend = spend
	out.CashIssued = cashIssued
	out.CashReturned = cashReturned
	out.ExpectedSpend = expectedSpend

	return DayComputed{
		VoucherSummary:    out,
		ExpectedCashLeft:  expectedCashLeft,
		Difference:        difference,
		PurchaseNotPosted: purchaseNotPosted,
		Status:            status,
		DayState: GetDayState(DayStateInput{
			IsClosed:       in.IsClosed,
			CashIssued:     cashIssued,
			PurchasePosted: spend,
			CashReturned:   cashReturned,
		}),
	}
}
