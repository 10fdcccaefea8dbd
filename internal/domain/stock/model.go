// Package stock provides the available-quantity register keyed by item code.
package stock

import "time"

// QtyRow is the available stock for one item.
type QtyRow struct {
	ItemCode     string    `db:"item_code" json:"itemCode"`
	ItemEN       string    `db:"item_en" json:"itemEn"`
	AvailableQty float64   `db:"available_qty" json:"availableQty"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}
