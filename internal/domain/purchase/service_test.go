package purchase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"mandiflow/internal/domain/catalog"
	"mandiflow/internal/domain/orders"
	"mandiflow/internal/domain/stock"
)

type fakePlanRepo struct {
	persisted []DBRow
	upserted  []PlanRow
	lock      *DayLock
}

func (r *fakePlanRepo) ListPlanRows(ctx context.Context, purchaseDate string) ([]DBRow, error) {
	return r.persisted, nil
}

func (r *fakePlanRepo) UpsertPlanRow(ctx context.Context, purchaseDate string, row PlanRow) error {
	r.upserted = append(r.upserted, row)
	return nil
}

func (r *fakePlanRepo) MarkFinalized(ctx context.Context, purchaseDate, finalizedBy string) (int, error) {
	return 0, nil
}

func (r *fakePlanRepo) GetDayLock(ctx context.Context, purchaseDate string) (*DayLock, error) {
	return r.lock, nil
}

func (r *fakePlanRepo) SetDayLock(ctx context.Context, purchaseDate string, locked bool) error {
	return nil
}

func (r *fakePlanRepo) ListHistory(ctx context.Context, fromDate, toDate string) ([]DBRow, error) {
	return nil, nil
}

type fakeLookups struct{}

func (fakeLookups) Lookups(ctx context.Context) (map[string]string, map[string]catalog.Meta, error) {
	return map[string]string{}, map[string]catalog.Meta{}, nil
}

type fakeOrderSource struct {
	orders []orders.Order
}

func (s *fakeOrderSource) ListByOrderDate(ctx context.Context, fromDate, toDate string) ([]orders.Order, error) {
	return s.orders, nil
}

type fakeStockRepo struct {
	rows []stock.QtyRow
}

func (r *fakeStockRepo) List(ctx context.Context) ([]stock.QtyRow, error) { return r.rows, nil }
func (r *fakeStockRepo) Get(ctx context.Context, itemCode string) (*stock.QtyRow, error) {
	return nil, nil
}
func (r *fakeStockRepo) Upsert(ctx context.Context, row stock.QtyRow) error {
	r.rows = append(r.rows, row)
	return nil
}

func orderWithStatus(ref string, status orders.Status, items ...orders.LineItem) orders.Order {
	o := makeOrder(ref, "Spice Villa", items...)
	o.Status = status
	return o
}

func newTestService(repo *fakePlanRepo, source *fakeOrderSource) *Service {
	return NewService(repo, fakeLookups{}, source, stock.NewService(&fakeStockRepo{}))
}

func TestService_PendingOrdersAreNotDemand(t *testing.T) {
	repo := &fakePlanRepo{}
	source := &fakeOrderSource{orders: []orders.Order{
		orderWithStatus("ORD-1", orders.StatusPending, orders.LineItem{Code: "VEG_TOMATO", EN: "Tomato", Qty: 5}),
	}}
	svc := newTestService(repo, source)
	ctx := context.Background()

	view, err := svc.GetDayView(ctx, "2026-01-15", nil)
	assert.NoError(t, err)
	assert.Empty(t, view.Rows)

	saved, err := svc.SavePlan(ctx, "2026-01-15", nil)
	assert.NoError(t, err)
	assert.Empty(t, saved.Rows)
	assert.Empty(t, repo.upserted)
}

func TestService_SaveAndViewAgreeOnDemand(t *testing.T) {
	dayOrders := []orders.Order{
		orderWithStatus("ORD-1", orders.StatusPending, orders.LineItem{Code: "VEG_TOMATO", EN: "Tomato", Qty: 5}),
		orderWithStatus("ORD-2", orders.StatusConfirmed, orders.LineItem{Code: "VEG_OKRA", EN: "Okra", Qty: 2}),
		orderWithStatus("ORD-3", orders.StatusFailed, orders.LineItem{Code: "VEG_OKRA", EN: "Okra", Qty: 3}),
		orderWithStatus("ORD-4", orders.StatusDelivered, orders.LineItem{Code: "VEG_POTATO", EN: "Potato", Qty: 1.5}),
	}

	repo := &fakePlanRepo{}
	svc := newTestService(repo, &fakeOrderSource{orders: dayOrders})
	ctx := context.Background()

	view, err := svc.GetDayView(ctx, "2026-01-15", nil)
	assert.NoError(t, err)

	saved, err := svc.SavePlan(ctx, "2026-01-15", nil)
	assert.NoError(t, err)
	assert.Equal(t, view.Rows, saved.Rows)
	assert.Len(t, repo.upserted, 2)

	byCode := make(map[string]PlanRow)
	for _, row := range repo.upserted {
		byCode[row.ItemCode] = row
	}
	assert.NotContains(t, byCode, "VEG_TOMATO")
	assert.Equal(t, 2.0, byCode["VEG_OKRA"].OrderedQty)
	assert.Equal(t, 1.5, byCode["VEG_POTATO"].OrderedQty)
}

func TestService_SavePlanRefusedWhenLocked(t *testing.T) {
	repo := &fakePlanRepo{lock: &DayLock{PurchaseDate: "2026-01-15", IsLocked: true}}
	svc := newTestService(repo, &fakeOrderSource{})

	_, err := svc.SavePlan(context.Background(), "2026-01-15", nil)
	assert.Error(t, err)
	assert.Empty(t, repo.upserted)
}
