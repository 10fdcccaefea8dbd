package accounts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetDayState(t *testing.T) {
	tests := []struct {
		name string
		in   DayStateInput
		want DayState
	}{
		{"closed wins over everything", DayStateInput{IsClosed: true, CashIssued: 10, PurchasePosted: 5, CashReturned: 1}, StateClosed},
		{"return done", DayStateInput{CashIssued: 10, PurchasePosted: 5, CashReturned: 2}, StateReturnDone},
		{"purchase posted", DayStateInput{CashIssued: 10, PurchasePosted: 4}, StatePurchasePosted},
		{"issue done", DayStateInput{CashIssued: 10}, StateIssueDone},
		{"blank day is open", DayStateInput{}, StateOpen},
		{"closed with only a return", DayStateInput{IsClosed: true, CashReturned: 5}, StateClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetDayState(tt.in))
		})
	}
}
