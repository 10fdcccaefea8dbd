package purchase

import (
	"mandiflow/internal/core/types"
)

// ComputeTotals sums a day's plan rows. Each sum is rounded once at the end;
// shortage and extra counts come from the variance sign per row.
func ComputeTotals(rows []PlanRow) Totals {
	var t Totals
	var required, purchased, spend float64
	for _, row := range rows {
		required += row.FinalQty
		purchased += row.PurchasedQty
		spend += row.LineTotal
		if row.VarianceQty < 0 {
			t.ShortageCount++
		}
		if row.VarianceQty > 0 {
			t.ExtraCount++
		}
	}
	t.RequiredQty = types.Round2(required)
	t.PurchasedQty = types.Round2(purchased)
	t.Spend = types.Round2(spend)
	return t
}

// StockDeltaFromVariance compares the positive part of each row's variance
// before and after the merge and emits only increases: newly purchased
// surplus that should be pushed into the stock register. It never reports
// reductions; stock decreases flow through other postings.
//
// Rows whose item codes collide accumulate additively.
func StockDeltaFromVariance(rows []PlanRow, persistedByKey map[string]DBRow) map[string]StockDelta {
	deltas := make(map[string]StockDelta)
	for _, row := range rows {
		key := rowKey(row.ItemCode, row.ItemEN)
		previous := 0.0
		if saved, ok := persistedByKey[key]; ok {
			previous = types.SafeNumber(saved.VarianceQty, 0)
		}
		previousPositive := types.Clamp0(previous)
		nextPositive := types.Clamp0(row.VarianceQty)
		delta := types.Round2(nextPositive - previousPositive)
		if delta <= 0 {
			continue
		}
		if existing, ok := deltas[row.ItemCode]; ok {
			existing.Delta = types.Round2(existing.Delta + delta)
			deltas[row.ItemCode] = existing
		} else {
			deltas[row.ItemCode] = StockDelta{ItemEN: row.ItemEN, Delta: delta}
		}
	}
	return deltas
}
