// Package orders provides restaurant order records and quantity helpers.
package orders

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"mandiflow/internal/core/id"
)

// Status is the order workflow state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusReady     Status = "ready"
	StatusOut       Status = "out"
	StatusDelivered Status = "delivered"
	StatusFailed    Status = "failed"
)

// IsValidStatus reports whether s is a known order status.
func IsValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusReady, StatusOut, StatusDelivered, StatusFailed:
		return true
	}
	return false
}

// LineItem is one ordered produce line. Qty is in kg.
// Code may be empty for legacy rows; the purchase aggregator falls back to
// the catalog name lookup for identity.
type LineItem struct {
	Code     string  `json:"code,omitempty"`
	EN       string  `json:"en"`
	HI       string  `json:"hi"`
	Qty      float64 `json:"qty"`
	Category string  `json:"category"`
}

// Order is a restaurant's daily produce order.
type Order struct {
	ID             id.ID      `db:"id" json:"id"`
	OrderRef       string     `db:"order_ref" json:"orderRef"`
	RestaurantID   id.ID      `db:"restaurant_id" json:"restaurantId"`
	RestaurantName string     `db:"restaurant_name" json:"restaurantName"`
	ContactName    string     `db:"contact_name" json:"contactName"`
	ContactPhone   string     `db:"contact_phone" json:"contactPhone"`
	OrderDate      string     `db:"order_date" json:"orderDate"`
	DeliveryDate   string     `db:"delivery_date" json:"deliveryDate"`
	Items          []LineItem `db:"-" json:"items"`
	Notes          *string    `db:"notes" json:"notes"`
	Status         Status     `db:"status" json:"status"`
	CreatedAt      time.Time  `db:"created_at" json:"createdAt"`
}

// MakeOrderRef builds a human-readable order reference:
// ORD-YYMMDD-##### with a random 5-digit suffix.
func MakeOrderRef(date time.Time) string {
	return fmt.Sprintf("ORD-%s-%05d", date.Format("060102"), 10000+rand.Intn(90000))
}

// TrimmedNotes normalizes user notes, returning nil for blank input.
func TrimmedNotes(notes string) *string {
	s := strings.TrimSpace(notes)
	if s == "" {
		return nil
	}
	return &s
}
