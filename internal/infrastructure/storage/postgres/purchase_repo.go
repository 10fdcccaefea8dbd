package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"mandiflow/internal/core/id"
	"mandiflow/internal/domain/purchase"
)

const (
	planTable    = "doc_purchase_plan"
	dayLockTable = "doc_purchase_day_locks"
)

// PurchaseRepo implements purchase.Repository. Plan rows are keyed by
// (purchase_date, item_code); numeric columns scan into `any` so the merge
// can coerce stale values itself.
type PurchaseRepo struct {
	txManager *TxManager
	audit     *AuditService
}

// NewPurchaseRepo creates a new purchase repository.
func NewPurchaseRepo(txManager *TxManager, audit *AuditService) *PurchaseRepo {
	return &PurchaseRepo{txManager: txManager, audit: audit}
}

var _ purchase.Repository = (*PurchaseRepo)(nil)

var planColumns = []string{
	"item_code", "item_en", "item_hi", "category",
	"ordered_qty", "adjustment_qty", "final_qty", "purchased_qty",
	"pack_size", "pack_count", "unit_price", "line_total", "variance_qty",
	"vendor_name", "status", "finalized_at", "finalized_by", "notes",
	"source_orders",
}

// ListPlanRows returns the saved plan snapshot for a purchase date.
func (r *PurchaseRepo) ListPlanRows(ctx context.Context, purchaseDate string) ([]purchase.DBRow, error) {
	q := psql.
		Select(planColumns...).
		From(planTable).
		Where(squirrel.Eq{"purchase_date": purchaseDate}).
		OrderBy("item_en ASC")
	return r.listRows(ctx, q)
}

// UpsertPlanRow writes one computed row for a purchase date.
func (r *PurchaseRepo) UpsertPlanRow(ctx context.Context, purchaseDate string, row purchase.PlanRow) error {
	sourceOrders, err := json.Marshal(row.SourceOrders)
	if err != nil {
		return fmt.Errorf("marshal source orders: %w", err)
	}

	sql, args, err := psql.
		Insert(planTable).
		Columns(append([]string{"purchase_date"}, planColumns...)...).
		Values(
			purchaseDate,
			row.ItemCode, row.ItemEN, row.ItemHI, row.Category,
			row.OrderedQty, row.AdjustmentQty, row.FinalQty, row.PurchasedQty,
			row.PackSize, row.PackCount, row.UnitPrice, row.LineTotal, row.VarianceQty,
			row.VendorName, row.Status, row.FinalizedAt, row.FinalizedBy, row.Notes,
			sourceOrders,
		).
		Suffix(`ON CONFLICT (purchase_date, item_code) DO UPDATE SET
			item_en = EXCLUDED.item_en,
			item_hi = EXCLUDED.item_hi,
			category = EXCLUDED.category,
			ordered_qty = EXCLUDED.ordered_qty,
			adjustment_qty = EXCLUDED.adjustment_qty,
			final_qty = EXCLUDED.final_qty,
			purchased_qty = EXCLUDED.purchased_qty,
			pack_size = EXCLUDED.pack_size,
			pack_count = EXCLUDED.pack_count,
			unit_price = EXCLUDED.unit_price,
			line_total = EXCLUDED.line_total,
			variance_qty = EXCLUDED.variance_qty,
			vendor_name = EXCLUDED.vendor_name,
			notes = EXCLUDED.notes,
			source_orders = EXCLUDED.source_orders`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return translateError(fmt.Errorf("upsert plan row: %w", err), "purchase plan row")
	}
	return nil
}

// MarkFinalized stamps all rows of the date as finalized and writes an audit
// entry with the finalized snapshot.
func (r *PurchaseRepo) MarkFinalized(ctx context.Context, purchaseDate string, finalizedBy string) (int, error) {
	sql, args, err := psql.
		Update(planTable).
		Set("status", purchase.StatusFinalized).
		Set("finalized_at", time.Now().UTC()).
		Set("finalized_by", finalizedBy).
		Where(squirrel.Eq{"purchase_date": purchaseDate}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	tag, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("mark finalized: %w", err)
	}
	count := int(tag.RowsAffected())

	rows, err := r.ListPlanRows(ctx, purchaseDate)
	if err != nil {
		return count, fmt.Errorf("reload finalized rows: %w", err)
	}
	if err := r.audit.LogChange(ctx, "purchase_plan", purchaseDate, AuditActionFinalize, rows); err != nil {
		return count, fmt.Errorf("audit finalize: %w", err)
	}
	return count, nil
}

// GetDayLock returns the lock row for a date, or nil when absent.
func (r *PurchaseRepo) GetDayLock(ctx context.Context, purchaseDate string) (*purchase.DayLock, error) {
	sql, args, err := psql.
		Select("id", "purchase_date", "is_locked", "locked_at", "reopened_at").
		From(dayLockTable).
		Where(squirrel.Eq{"purchase_date": purchaseDate}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lock purchase.DayLock
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &lock, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get day lock: %w", err)
	}
	return &lock, nil
}

// SetDayLock locks or reopens a purchase date.
func (r *PurchaseRepo) SetDayLock(ctx context.Context, purchaseDate string, locked bool) error {
	now := time.Now().UTC()
	lockedAt := squirrel.Expr("NULL")
	reopenedAt := squirrel.Expr("NULL")
	action := AuditActionLock
	if locked {
		lockedAt = squirrel.Expr("?", now)
	} else {
		reopenedAt = squirrel.Expr("?", now)
		action = AuditActionUpdate
	}

	sql, args, err := psql.
		Insert(dayLockTable).
		Columns("id", "purchase_date", "is_locked", "locked_at", "reopened_at").
		Values(id.New(), purchaseDate, locked, lockedAt, reopenedAt).
		Suffix(`ON CONFLICT (purchase_date) DO UPDATE SET
			is_locked = EXCLUDED.is_locked,
			locked_at = COALESCE(EXCLUDED.locked_at, ` + dayLockTable + `.locked_at),
			reopened_at = EXCLUDED.reopened_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("set day lock: %w", err)
	}

	if err := r.audit.LogChange(ctx, "purchase_day_lock", purchaseDate, action,
		map[string]any{"is_locked": locked}); err != nil {
		return fmt.Errorf("audit day lock: %w", err)
	}
	return nil
}

// ListHistory returns finalized rows in a date range, newest date first.
func (r *PurchaseRepo) ListHistory(ctx context.Context, fromDate, toDate string) ([]purchase.DBRow, error) {
	q := psql.
		Select(planColumns...).
		From(planTable).
		Where(squirrel.Eq{"status": purchase.StatusFinalized}).
		Where(squirrel.GtOrEq{"purchase_date": fromDate}).
		Where(squirrel.LtOrEq{"purchase_date": toDate}).
		OrderBy("purchase_date DESC", "item_en ASC")
	return r.listRows(ctx, q)
}

func (r *PurchaseRepo) listRows(ctx context.Context, q squirrel.SelectBuilder) ([]purchase.DBRow, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query plan rows: %w", err)
	}
	defer rows.Close()

	var result []purchase.DBRow
	for rows.Next() {
		var row purchase.DBRow
		var sourceOrders []byte
		if err := rows.Scan(
			&row.ItemCode, &row.ItemEN, &row.ItemHI, &row.Category,
			&row.OrderedQty, &row.AdjustmentQty, &row.FinalQty, &row.PurchasedQty,
			&row.PackSize, &row.PackCount, &row.UnitPrice, &row.LineTotal, &row.VarianceQty,
			&row.VendorName, &row.Status, &row.FinalizedAt, &row.FinalizedBy, &row.Notes,
			&sourceOrders,
		); err != nil {
			return nil, fmt.Errorf("scan plan row: %w", err)
		}
		if len(sourceOrders) > 0 {
			if err := json.Unmarshal(sourceOrders, &row.SourceOrders); err != nil {
				return nil, fmt.Errorf("unmarshal source orders: %w", err)
			}
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
