package purchase

import (
	"context"
	"fmt"

	"mandiflow/internal/core/apperror"
	appctx "mandiflow/internal/core/context"
	"mandiflow/internal/core/types"
	"mandiflow/internal/domain/catalog"
	"mandiflow/internal/domain/orders"
	"mandiflow/internal/domain/stock"
	"mandiflow/pkg/logger"
)

// CatalogLookups loads the code and meta indexes needed by the calculators.
type CatalogLookups interface {
	Lookups(ctx context.Context) (map[string]string, map[string]catalog.Meta, error)
}

// OrderSource supplies the day's confirmed orders.
type OrderSource interface {
	ListByOrderDate(ctx context.Context, fromDate, toDate string) ([]orders.Order, error)
}

// Service wires the pure calculators to persistence: it builds the merged
// day view, saves it row by row, pushes surplus into the stock register and
// manages day locks and finalization.
type Service struct {
	repo     Repository
	catalogs CatalogLookups
	orders   OrderSource
	stock    *stock.Service
}

// NewService creates a new purchase service.
func NewService(repo Repository, catalogs CatalogLookups, orderSource OrderSource, stockSvc *stock.Service) *Service {
	return &Service{
		repo:     repo,
		catalogs: catalogs,
		orders:   orderSource,
		stock:    stockSvc,
	}
}

// demandOrders filters a day's orders to those that count as purchase
// demand. Pending orders are not confirmed yet and failed ones never ship,
// so neither may contribute quantities to the plan.
func demandOrders(dayOrders []orders.Order) []orders.Order {
	confirmed := make([]orders.Order, 0, len(dayOrders))
	for _, o := range dayOrders {
		switch o.Status {
		case orders.StatusConfirmed, orders.StatusReady, orders.StatusOut, orders.StatusDelivered:
			confirmed = append(confirmed, o)
		}
	}
	return confirmed
}

// DayView is the merged plan for one purchase date.
type DayView struct {
	PurchaseDate string    `json:"purchaseDate"`
	Rows         []PlanRow `json:"rows"`
	Totals       Totals    `json:"totals"`
	IsLocked     bool      `json:"isLocked"`
	IsFinalized  bool      `json:"isFinalized"`
}

// GetDayView recomputes the merged plan for a purchase date: live demand
// from that day's orders, the persisted snapshot, and any unsaved edits the
// caller is holding.
func (s *Service) GetDayView(ctx context.Context, purchaseDate string, edits map[string]Edit) (*DayView, error) {
	codeByName, metaMap, err := s.catalogs.Lookups(ctx)
	if err != nil {
		return nil, err
	}

	dayOrders, err := s.orders.ListByOrderDate(ctx, purchaseDate, purchaseDate)
	if err != nil {
		return nil, fmt.Errorf("load day orders: %w", err)
	}

	persisted, err := s.repo.ListPlanRows(ctx, purchaseDate)
	if err != nil {
		return nil, fmt.Errorf("load persisted plan: %w", err)
	}

	merged := MergeRows(MergeInput{
		AggregatedRows: AggregateOrders(demandOrders(dayOrders), codeByName),
		PersistedRows:  persisted,
		Edits:          edits,
		CatalogMeta:    metaMap,
	})

	lock, err := s.repo.GetDayLock(ctx, purchaseDate)
	if err != nil {
		return nil, fmt.Errorf("load day lock: %w", err)
	}

	finalized := len(merged.Rows) > 0
	for _, row := range merged.Rows {
		if row.Status != StatusFinalized {
			finalized = false
			break
		}
	}

	return &DayView{
		PurchaseDate: purchaseDate,
		Rows:         merged.Rows,
		Totals:       ComputeTotals(merged.Rows),
		IsLocked:     lock != nil && lock.IsLocked,
		IsFinalized:  finalized,
	}, nil
}

// SavePlan merges the caller's edits against live demand and the persisted
// snapshot, upserts every resulting row and pushes variance surplus into the
// stock register. Returns the saved view.
func (s *Service) SavePlan(ctx context.Context, purchaseDate string, edits map[string]Edit) (*DayView, error) {
	lock, err := s.repo.GetDayLock(ctx, purchaseDate)
	if err != nil {
		return nil, fmt.Errorf("load day lock: %w", err)
	}
	if lock != nil && lock.IsLocked {
		return nil, apperror.NewDayLocked(purchaseDate)
	}

	codeByName, metaMap, err := s.catalogs.Lookups(ctx)
	if err != nil {
		return nil, err
	}
	dayOrders, err := s.orders.ListByOrderDate(ctx, purchaseDate, purchaseDate)
	if err != nil {
		return nil, fmt.Errorf("load day orders: %w", err)
	}
	persisted, err := s.repo.ListPlanRows(ctx, purchaseDate)
	if err != nil {
		return nil, fmt.Errorf("load persisted plan: %w", err)
	}

	merged := MergeRows(MergeInput{
		AggregatedRows: AggregateOrders(demandOrders(dayOrders), codeByName),
		PersistedRows:  persisted,
		Edits:          edits,
		CatalogMeta:    metaMap,
	})

	for _, row := range merged.Rows {
		if err := s.repo.UpsertPlanRow(ctx, purchaseDate, row); err != nil {
			return nil, fmt.Errorf("upsert plan row %s: %w", row.ItemCode, err)
		}
	}

	deltas := StockDeltaFromVariance(merged.Rows, merged.PersistedByKey)
	if len(deltas) > 0 {
		stockDeltas := make(map[string]stock.Delta, len(deltas))
		for code, d := range deltas {
			stockDeltas[code] = stock.Delta{ItemEN: d.ItemEN, Qty: d.Delta}
		}
		if err := s.stock.ApplyDeltas(ctx, stockDeltas); err != nil {
			return nil, fmt.Errorf("apply stock deltas: %w", err)
		}
	}

	logger.Info(ctx, "purchase plan saved",
		"purchase_date", purchaseDate,
		"rows", len(merged.Rows),
		"stock_deltas", len(deltas),
	)

	return &DayView{
		PurchaseDate: purchaseDate,
		Rows:         merged.Rows,
		Totals:       ComputeTotals(merged.Rows),
		IsLocked:     false,
	}, nil
}

// LockDay locks a purchase date against further edits.
func (s *Service) LockDay(ctx context.Context, purchaseDate string) error {
	if err := s.repo.SetDayLock(ctx, purchaseDate, true); err != nil {
		return fmt.Errorf("lock purchase day: %w", err)
	}
	logger.Info(ctx, "purchase day locked", "purchase_date", purchaseDate)
	return nil
}

// ReopenDay reopens a locked purchase date.
func (s *Service) ReopenDay(ctx context.Context, purchaseDate string) error {
	if err := s.repo.SetDayLock(ctx, purchaseDate, false); err != nil {
		return fmt.Errorf("reopen purchase day: %w", err)
	}
	logger.Info(ctx, "purchase day reopened", "purchase_date", purchaseDate)
	return nil
}

// FinalizeDay stamps every saved row of the date as finalized. Refused when
// the day is already finalized.
func (s *Service) FinalizeDay(ctx context.Context, purchaseDate string) error {
	persisted, err := s.repo.ListPlanRows(ctx, purchaseDate)
	if err != nil {
		return fmt.Errorf("load persisted plan: %w", err)
	}
	if len(persisted) == 0 {
		return apperror.NewValidation("nothing to finalize for this date").
			WithDetail("purchase_date", purchaseDate)
	}
	for _, row := range persisted {
		if row.Status == string(StatusFinalized) {
			return apperror.NewBusinessRule(apperror.CodeAlreadyFinalized,
				"purchase day is already finalized").
				WithDetail("purchase_date", purchaseDate)
		}
	}

	actor := appctx.GetActorID(ctx)
	count, err := s.repo.MarkFinalized(ctx, purchaseDate, actor)
	if err != nil {
		return fmt.Errorf("finalize purchase day: %w", err)
	}
	if err := s.repo.SetDayLock(ctx, purchaseDate, true); err != nil {
		return fmt.Errorf("lock finalized day: %w", err)
	}

	logger.Info(ctx, "purchase day finalized",
		"purchase_date", purchaseDate,
		"rows", count,
		"finalized_by", actor,
	)
	return nil
}

// SpendForDate sums the saved plan's line totals for one purchase date.
// Accounting reconciliation uses it as the expected spend.
func (s *Service) SpendForDate(ctx context.Context, date string) (float64, error) {
	persisted, err := s.repo.ListPlanRows(ctx, date)
	if err != nil {
		return 0, fmt.Errorf("load persisted plan: %w", err)
	}
	var spend float64
	for _, row := range persisted {
		spend += types.SafeNumber(row.LineTotal, 0)
	}
	return types.Round2(spend), nil
}

// History returns finalized plan rows in a date range.
func (s *Service) History(ctx context.Context, fromDate, toDate string) ([]DBRow, error) {
	rows, err := s.repo.ListHistory(ctx, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("load purchase history: %w", err)
	}
	return rows, nil
}
