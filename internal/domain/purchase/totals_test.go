package purchase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotals(t *testing.T) {
	rows := []PlanRow{
		{FinalQty: 3.5, PurchasedQty: 3, LineTotal: 90, VarianceQty: -0.5},
		{FinalQty: 2, PurchasedQty: 4, LineTotal: 80, VarianceQty: 2},
		{FinalQty: 1, PurchasedQty: 1, LineTotal: 55, VarianceQty: 0},
	}

	got := ComputeTotals(rows)
	assert.Equal(t, 6.5, got.RequiredQty)
	assert.Equal(t, 8.0, got.PurchasedQty)
	assert.Equal(t, 225.0, got.Spend)
	assert.Equal(t, 1, got.ShortageCount)
	assert.Equal(t, 1, got.ExtraCount)
}

func TestComputeTotals_Empty(t *testing.T) {
	got := ComputeTotals(nil)
	assert.Equal(t, Totals{}, got)
}

func TestStockDeltaFromVariance_EmitsOnlyIncreases(t *testing.T) {
	rows := []PlanRow{
		{ItemCode: "VEG_TOMATO", ItemEN: "Tomato", VarianceQty: 3},
		{ItemCode: "VEG_OKRA", ItemEN: "Okra", VarianceQty: -2},
		{ItemCode: "VEG_POTATO", ItemEN: "Potato", VarianceQty: 1},
	}
	persisted := map[string]DBRow{
		"VEG_TOMATO": {ItemCode: "VEG_TOMATO", ItemEN: "Tomato", VarianceQty: 1.0},
		"VEG_POTATO": {ItemCode: "VEG_POTATO", ItemEN: "Potato", VarianceQty: 4.0},
	}

	got := StockDeltaFromVariance(rows, persisted)

	// Tomato: positive part moved 1 -> 3.
	assert.Equal(t, StockDelta{ItemEN: "Tomato", Delta: 2}, got["VEG_TOMATO"])
	// Okra never had surplus; Potato's surplus shrank. Neither is reported.
	assert.NotContains(t, got, "VEG_OKRA")
	assert.NotContains(t, got, "VEG_POTATO")
}

func TestStockDeltaFromVariance_NegativePreviousCountsAsZero(t *testing.T) {
	rows := []PlanRow{
		{ItemCode: "VEG_OKRA", ItemEN: "Okra", VarianceQty: 2},
	}
	persisted := map[string]DBRow{
		"VEG_OKRA": {ItemCode: "VEG_OKRA", ItemEN: "Okra", VarianceQty: -3.0},
	}

	got := StockDeltaFromVariance(rows, persisted)
	assert.Equal(t, 2.0, got["VEG_OKRA"].Delta)
}

func TestStockDeltaFromVariance_AccumulatesByCode(t *testing.T) {
	// Two rows resolving to the same code add up.
	rows := []PlanRow{
		{ItemCode: "VEG_CHILI", ItemEN: "Green Chili", VarianceQty: 1},
		{ItemCode: "VEG_CHILI", ItemEN: "Chili", VarianceQty: 0.5},
	}

	got := StockDeltaFromVariance(rows, nil)
	assert.Equal(t, 1.5, got["VEG_CHILI"].Delta)
}
