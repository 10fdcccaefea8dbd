package purchase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mandiflow/internal/domain/catalog"
)

func f(v float64) *float64 { return &v }
func s(v string) *string   { return &v }

func liveRow(code, name string, ordered float64) PlanRow {
	return PlanRow{
		ItemCode:    code,
		ItemEN:      name,
		OrderedQty:  ordered,
		FinalQty:    ordered,
		VarianceQty: -ordered,
		Status:      StatusDraft,
		SourceOrders: []SourceOrderRef{
			{OrderRef: "ORD-1", RestaurantName: "Spice Villa", Qty: ordered},
		},
	}
}

func TestMergeRows_LiveOnly(t *testing.T) {
	got := MergeRows(MergeInput{
		AggregatedRows: []PlanRow{liveRow("VEG_TOMATO", "Tomato", 3.5)},
	})

	assert.Len(t, got.Rows, 1)
	row := got.Rows[0]
	assert.Equal(t, 3.5, row.OrderedQty)
	assert.Equal(t, 0.0, row.AdjustmentQty)
	assert.Equal(t, 3.5, row.FinalQty)
	assert.Equal(t, 0.0, row.PurchasedQty)
	assert.Equal(t, -3.5, row.VarianceQty)
	assert.Equal(t, StatusDraft, row.Status)
}

func TestMergeRows_EditBeatsPersisted(t *testing.T) {
	got := MergeRows(MergeInput{
		AggregatedRows: []PlanRow{liveRow("VEG_TOMATO", "Tomato", 5)},
		PersistedRows: []DBRow{{
			ItemCode:      "VEG_TOMATO",
			ItemEN:        "Tomato",
			AdjustmentQty: 1.0,
			PurchasedQty:  4.0,
			UnitPrice:     30.0,
		}},
		Edits: map[string]Edit{
			"VEG_TOMATO": {AdjustmentQty: f(2), UnitPrice: f(35)},
		},
	})

	row := got.Rows[0]
	assert.Equal(t, 2.0, row.AdjustmentQty)
	assert.Equal(t, 7.0, row.FinalQty)
	assert.Equal(t, 4.0, row.PurchasedQty)
	assert.Equal(t, 35.0, row.UnitPrice)
	assert.Equal(t, 140.0, row.LineTotal)
	assert.Equal(t, -3.0, row.VarianceQty)
}

func TestMergeRows_OrderedQtyOnlyFromLiveDemand(t *testing.T) {
	// A persisted row with no matching live demand contributes zero ordered
	// qty even when its snapshot recorded one.
	got := MergeRows(MergeInput{
		PersistedRows: []DBRow{{
			ItemCode:     "VEG_OKRA",
			ItemEN:       "Okra",
			OrderedQty:   6.0,
			PurchasedQty: 6.0,
			UnitPrice:    40.0,
		}},
	})

	row := got.Rows[0]
	assert.Equal(t, 0.0, row.OrderedQty)
	assert.Equal(t, 0.0, row.FinalQty)
	assert.Equal(t, 6.0, row.PurchasedQty)
	assert.Equal(t, 6.0, row.VarianceQty)
}

func TestMergeRows_PackOverride(t *testing.T) {
	t.Run("both positive overrides purchased qty", func(t *testing.T) {
		got := MergeRows(MergeInput{
			AggregatedRows: []PlanRow{liveRow("VEG_POTATO", "Potato", 15)},
			PersistedRows: []DBRow{{
				ItemCode:     "VEG_POTATO",
				ItemEN:       "Potato",
				PurchasedQty: 7.0,
				PackSize:     10.0,
				PackCount:    2.0,
			}},
		})
		assert.Equal(t, 20.0, got.Rows[0].PurchasedQty)
	})

	t.Run("zero pack count falls back to direct entry", func(t *testing.T) {
		got := MergeRows(MergeInput{
			AggregatedRows: []PlanRow{liveRow("VEG_POTATO", "Potato", 15)},
			PersistedRows: []DBRow{{
				ItemCode:     "VEG_POTATO",
				ItemEN:       "Potato",
				PurchasedQty: 7.0,
				UnitPrice:    20.0,
				PackSize:     10.0,
				PackCount:    0.0,
			}},
		})
		assert.Equal(t, 7.0, got.Rows[0].PurchasedQty)
	})

	t.Run("edit can enable the override", func(t *testing.T) {
		got := MergeRows(MergeInput{
			AggregatedRows: []PlanRow{liveRow("VEG_POTATO", "Potato", 15)},
			Edits: map[string]Edit{
				"VEG_POTATO": {PackSize: f(5), PackCount: f(3)},
			},
		})
		assert.Equal(t, 15.0, got.Rows[0].PurchasedQty)
	})
}

func TestMergeRows_NegativeFinalQtyPreserved(t *testing.T) {
	got := MergeRows(MergeInput{
		AggregatedRows: []PlanRow{liveRow("VEG_TOMATO", "Tomato", 2)},
		Edits: map[string]Edit{
			"VEG_TOMATO": {AdjustmentQty: f(-5)},
		},
	})

	row := got.Rows[0]
	assert.Equal(t, -3.0, row.FinalQty)
	assert.True(t, row.HasNegativeFinalQty())
	// Purchased qty still clamps at zero.
	assert.Equal(t, 0.0, row.PurchasedQty)
	assert.Equal(t, 3.0, row.VarianceQty)
}

func TestMergeRows_DefaultPurchasedFromFinal(t *testing.T) {
	untouched := func() MergeInput {
		return MergeInput{
			AggregatedRows: []PlanRow{liveRow("VEG_TOMATO", "Tomato", 3)},
			PersistedRows: []DBRow{{
				ItemCode:     "VEG_TOMATO",
				ItemEN:       "Tomato",
				PurchasedQty: 0.0,
				UnitPrice:    0.0,
			}},
		}
	}

	t.Run("untouched zero row defaults to final qty", func(t *testing.T) {
		got := MergeRows(untouched())
		assert.Equal(t, 3.0, got.Rows[0].PurchasedQty)
	})

	t.Run("any edit disables the default", func(t *testing.T) {
		in := untouched()
		in.Edits = map[string]Edit{"VEG_TOMATO": {Notes: s("hold")}}
		got := MergeRows(in)
		assert.Equal(t, 0.0, got.Rows[0].PurchasedQty)
	})

	t.Run("saved price disables the default", func(t *testing.T) {
		in := untouched()
		in.PersistedRows[0].UnitPrice = 25.0
		got := MergeRows(in)
		assert.Equal(t, 0.0, got.Rows[0].PurchasedQty)
	})

	t.Run("non-positive final qty disables the default", func(t *testing.T) {
		in := untouched()
		in.AggregatedRows = nil
		got := MergeRows(in)
		assert.Equal(t, 0.0, got.Rows[0].PurchasedQty)
	})
}

func TestMergeRows_CoercesLegacySnapshotValues(t *testing.T) {
	got := MergeRows(MergeInput{
		AggregatedRows: []PlanRow{liveRow("VEG_TOMATO", "Tomato", 4)},
		PersistedRows: []DBRow{{
			ItemCode:      "VEG_TOMATO",
			ItemEN:        "Tomato",
			AdjustmentQty: "1.5",
			PurchasedQty:  nil,
			UnitPrice:     "30",
		}},
	})

	row := got.Rows[0]
	assert.Equal(t, 1.5, row.AdjustmentQty)
	assert.Equal(t, 5.5, row.FinalQty)
	// nil purchased + zero-looking price would normally trigger the default,
	// but unit price "30" coerces to 30 and blocks it.
	assert.Equal(t, 0.0, row.PurchasedQty)
	assert.Equal(t, 30.0, row.UnitPrice)
}

func TestMergeRows_FinalizedStatusOnlyFromPersisted(t *testing.T) {
	got := MergeRows(MergeInput{
		AggregatedRows: []PlanRow{
			liveRow("VEG_TOMATO", "Tomato", 2),
			liveRow("VEG_OKRA", "Okra", 1),
		},
		PersistedRows: []DBRow{{
			ItemCode: "VEG_TOMATO",
			ItemEN:   "Tomato",
			Status:   string(StatusFinalized),
		}},
	})

	byCode := map[string]PlanRow{}
	for _, row := range got.Rows {
		byCode[row.ItemCode] = row
	}
	assert.Equal(t, StatusFinalized, byCode["VEG_TOMATO"].Status)
	assert.Equal(t, StatusDraft, byCode["VEG_OKRA"].Status)
}

func TestMergeRows_DescriptiveFallbackChain(t *testing.T) {
	meta := map[string]catalog.Meta{
		"VEG_OKRA": {NameHI: "भिंडी", Category: "vegetables"},
	}

	t.Run("live wins", func(t *testing.T) {
		live := liveRow("VEG_OKRA", "Okra", 1)
		live.ItemHI = s("ओकरा")
		got := MergeRows(MergeInput{AggregatedRows: []PlanRow{live}, CatalogMeta: meta})
		assert.Equal(t, "ओकरा", *got.Rows[0].ItemHI)
	})

	t.Run("catalog fills gaps", func(t *testing.T) {
		got := MergeRows(MergeInput{
			AggregatedRows: []PlanRow{liveRow("VEG_OKRA", "Okra", 1)},
			CatalogMeta:    meta,
		})
		assert.Equal(t, "भिंडी", *got.Rows[0].ItemHI)
		assert.Equal(t, "vegetables", *got.Rows[0].Category)
	})
}

func TestMergeRows_Deterministic(t *testing.T) {
	in := MergeInput{
		AggregatedRows: []PlanRow{
			liveRow("VEG_TOMATO", "Tomato", 2),
			liveRow("VEG_OKRA", "Okra", 1),
			liveRow("VEG_POTATO", "Potato", 8),
		},
		PersistedRows: []DBRow{
			{ItemCode: "VEG_POTATO", ItemEN: "Potato", PurchasedQty: 8.0, UnitPrice: 20.0},
			{ItemCode: "VEG_LEMON", ItemEN: "Lemon", PurchasedQty: 2.0, UnitPrice: 80.0},
		},
		Edits: map[string]Edit{
			"VEG_TOMATO": {AdjustmentQty: f(1)},
		},
	}

	first := MergeRows(in)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first.Rows, MergeRows(in).Rows)
	}
	// Sorted by English name regardless of source.
	names := make([]string, 0, len(first.Rows))
	for _, row := range first.Rows {
		names = append(names, row.ItemEN)
	}
	assert.Equal(t, []string{"Lemon", "Okra", "Potato", "Tomato"}, names)
}
