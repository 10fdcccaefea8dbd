package purchase

import (
	"sort"
	"strings"

	"mandiflow/internal/core/types"
	"mandiflow/internal/domain/orders"
)

// AggregateOrders collapses many orders' line items into one demand row per
// item key. Negative quantities are silently zeroed, not rejected; see the
// notes in DESIGN.md on why that ambiguity is preserved.
//
// Rows come back sorted ascending by English name. Each row records which
// orders contributed demand in SourceOrders.
func AggregateOrders(orderList []orders.Order, codeByName map[string]string) []PlanRow {
	byKey := make(map[string]*PlanRow)

	for _, order := range orderList {
		for _, item := range order.Items {
			itemEN := strings.TrimSpace(item.EN)
			qty := types.Clamp0(types.Round2(types.SafeNumber(item.Qty, 0)))
			itemCode := ResolveItemKey(item.Code, itemEN, codeByName)
			key := rowKey(itemCode, itemEN)

			source := SourceOrderRef{
				OrderRef:       order.OrderRef,
				RestaurantName: order.RestaurantName,
				Qty:            qty,
			}

			row, exists := byKey[key]
			if !exists {
				variance := -qty
				if qty == 0 {
					variance = 0
				}
				byKey[key] = &PlanRow{
					ItemCode:     itemCode,
					ItemEN:       itemEN,
					ItemHI:       optString(item.HI),
					Category:     optString(item.Category),
					OrderedQty:   qty,
					FinalQty:     qty,
					VarianceQty:  variance,
					Status:       StatusDraft,
					SourceOrders: []SourceOrderRef{source},
				}
				continue
			}

			row.OrderedQty = types.Round2(row.OrderedQty + qty)
			row.FinalQty = types.Round2(row.OrderedQty + row.AdjustmentQty)
			row.VarianceQty = types.Round2(row.PurchasedQty - row.FinalQty)
			row.SourceOrders = append(row.SourceOrders, source)
		}
	}

	rows := make([]PlanRow, 0, len(byKey))
	for _, row := range byKey {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].ItemEN < rows[j].ItemEN
	})
	return rows
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
