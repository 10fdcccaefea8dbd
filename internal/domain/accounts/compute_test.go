package accounts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeDay_MatchingOpenDay(t *testing.T) {
	got := ComputeDay(VoucherSummary{
		Date:          "2026-02-17",
		ExpectedSpend: 100,
		Spend:         100,
		CashIssued:    120,
		CashReturned:  20,
	})

	assert.Equal(t, 20.0, got.ExpectedCashLeft)
	assert.Equal(t, 0.0, got.Difference)
	assert.Equal(t, StatusOpenMatched, got.Status)
	assert.False(t, got.PurchaseNotPosted)
	assert.Equal(t, StateReturnDone, got.DayState)
}

func TestComputeDay_PurchaseNotPosted(t *testing.T) {
	got := ComputeDay(VoucherSummary{
		Date:          "2026-02-17",
		ExpectedSpend: 75,
		Spend:         0,
		CashIssued:    75,
		CashReturned:  0,
	})

	assert.True(t, got.PurchaseNotPosted)
	assert.Equal(t, 75.0, got.Difference)
	assert.Equal(t, StatusOpenMismatch, got.Status)
	assert.Equal(t, StateIssueDone, got.DayState)
}

func TestComputeDay_ClosedMismatch(t *testing.T) {
	got := ComputeDay(VoucherSummary{
		Date:          "2026-02-17",
		ExpectedSpend: 100,
		Spend:         100,
		CashIssued:    100,
		CashReturned:  10,
		IsClosed:      true,
		CloseNote:     "short return",
	})

	assert.Equal(t, -10.0, got.Difference)
	assert.Equal(t, StatusClosedMismatch, got.Status)
	assert.Equal(t, StateClosed, got.DayState)
}

func TestComputeDay_RoundsInputsFirst(t *testing.T) {
	got := ComputeDay(VoucherSummary{
		Spend:        33.333,
		CashIssued:   50.005,
		CashReturned: 16.671,
	})

	assert.Equal(t, 33.33, got.Spend)
	assert.Equal(t, 50.01, got.CashIssued)
	assert.Equal(t, 16.67, got.CashReturned)
	assert.Equal(t, 16.68, got.ExpectedCashLeft)
	assert.Equal(t, 0.01, got.Difference)
	assert.Equal(t, StatusOpenMismatch, got.Status)
}

func TestComputeDay_MatchedIffDifferenceZero(t *testing.T) {
	tests := []struct {
		name       string
		in         VoucherSummary
		wantStatus DayStatus
	}{
		{"open matched", VoucherSummary{CashIssued: 50, Spend: 30, CashReturned: 20}, StatusOpenMatched},
		{"open mismatch", VoucherSummary{CashIssued: 50, Spend: 30, CashReturned: 15}, StatusOpenMismatch},
		{"closed matched", VoucherSummary{CashIssued: 50, Spend: 30, CashReturned: 20, IsClosed: true}, StatusClosedMatched},
		{"closed mismatch", VoucherSummary{CashIssued: 50, Spend: 30, CashReturned: 15, IsClosed: true}, StatusClosedMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeDay(tt.in)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, got.Difference == 0,
				got.Status == StatusOpenMatched || got.Status == StatusClosedMatched)
		})
	}
}
