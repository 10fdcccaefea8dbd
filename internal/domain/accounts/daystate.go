package accounts

// DayState is the workflow stage of a cash day:
// open -> issue_done -> purchase_posted -> return_done -> closed.
type DayState string

const (
	StateOpen           DayState = "open"
	StateIssueDone      DayState = "issue_done"
	StatePurchasePosted DayState = "purchase_posted"
	StateReturnDone     DayState = "return_done"
	StateClosed         DayState = "closed"
)

// DayStateInput carries the signals GetDayState derives the stage from.
type DayStateInput struct {
	IsClosed       bool
	CashIssued     float64
	PurchasePosted float64
	CashReturned   float64
}

// GetDayState picks the furthest stage the day has reached. Closed always
// wins; otherwise the latest positive signal decides, so a day with a cash
// return reads return_done even when earlier amounts are still visible.
func GetDayState(in DayStateInput) DayState {
	switch {
	case in.IsClosed:
		return StateClosed
	case in.CashReturned > 0:
		return StateReturnDone
	case in.PurchasePosted > 0:
		return StatePurchasePosted
	case in.CashIssued > 0:
		return StateIssueDone
	default:
		return StateOpen
	}
}
