package purchase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mandiflow/internal/domain/orders"
)

func makeOrder(ref, restaurant string, items ...orders.LineItem) orders.Order {
	return orders.Order{
		OrderRef:       ref,
		RestaurantName: restaurant,
		Items:          items,
	}
}

func TestAggregateOrders_SumsQuantitiesPerItem(t *testing.T) {
	lookup := map[string]string{"Tomato": "VEG_TOMATO"}
	got := AggregateOrders([]orders.Order{
		makeOrder("ORD-1", "Spice Villa", orders.LineItem{Code: "VEG_TOMATO", EN: "Tomato", Qty: 2}),
		makeOrder("ORD-2", "Curry House", orders.LineItem{EN: "Tomato", Qty: 1.5}),
	}, lookup)

	assert.Len(t, got, 1)
	row := got[0]
	assert.Equal(t, "VEG_TOMATO", row.ItemCode)
	assert.Equal(t, 3.5, row.OrderedQty)
	assert.Equal(t, 3.5, row.FinalQty)
	assert.Equal(t, -3.5, row.VarianceQty)
	assert.Len(t, row.SourceOrders, 2)
	assert.Equal(t, "ORD-1", row.SourceOrders[0].OrderRef)
	assert.Equal(t, 1.5, row.SourceOrders[1].Qty)
}

func TestAggregateOrders_NegativeQtyZeroed(t *testing.T) {
	got := AggregateOrders([]orders.Order{
		makeOrder("ORD-1", "Spice Villa", orders.LineItem{Code: "VEG_OKRA", EN: "Okra", Qty: -4}),
	}, nil)

	assert.Len(t, got, 1)
	assert.Equal(t, 0.0, got[0].OrderedQty)
	assert.Equal(t, 0.0, got[0].FinalQty)
	assert.Equal(t, 0.0, got[0].VarianceQty)
}

func TestAggregateOrders_DistinctCodesStayDistinct(t *testing.T) {
	// Same display name, different codes: both rows survive.
	got := AggregateOrders([]orders.Order{
		makeOrder("ORD-1", "Spice Villa",
			orders.LineItem{Code: "VEG_CHILI_G", EN: "Chili", Qty: 1},
			orders.LineItem{Code: "VEG_CHILI_R", EN: "Chili", Qty: 2},
		),
	}, nil)

	assert.Len(t, got, 2)
	assert.Equal(t, 1.0, got[0].OrderedQty)
	assert.Equal(t, 2.0, got[1].OrderedQty)
}

func TestAggregateOrders_TrimsNamesAndSorts(t *testing.T) {
	got := AggregateOrders([]orders.Order{
		makeOrder("ORD-1", "Spice Villa",
			orders.LineItem{EN: "  Tomato  ", Qty: 1},
			orders.LineItem{EN: "Okra", Qty: 1},
		),
	}, nil)

	assert.Len(t, got, 2)
	assert.Equal(t, "Okra", got[0].ItemEN)
	assert.Equal(t, "Tomato", got[1].ItemEN)
}

func TestAggregateOrders_CarriesDescriptiveFields(t *testing.T) {
	got := AggregateOrders([]orders.Order{
		makeOrder("ORD-1", "Spice Villa",
			orders.LineItem{Code: "VEG_TOMATO", EN: "Tomato", HI: "टमाटर", Category: "vegetables", Qty: 2},
		),
	}, nil)

	assert.Len(t, got, 1)
	if assert.NotNil(t, got[0].ItemHI) {
		assert.Equal(t, "टमाटर", *got[0].ItemHI)
	}
	if assert.NotNil(t, got[0].Category) {
		assert.Equal(t, "vegetables", *got[0].Category)
	}
}
