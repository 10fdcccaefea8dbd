package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"mandiflow/internal/domain/stock"
)

const stockTable = "reg_stock_qty"

// StockRepo implements stock.Repository.
type StockRepo struct {
	txManager *TxManager
}

// NewStockRepo creates a new stock repository.
func NewStockRepo(txManager *TxManager) *StockRepo {
	return &StockRepo{txManager: txManager}
}

var _ stock.Repository = (*StockRepo)(nil)

// List returns all stock rows ordered by item name.
func (r *StockRepo) List(ctx context.Context) ([]stock.QtyRow, error) {
	sql, args, err := psql.
		Select("item_code", "item_en", "available_qty", "updated_at").
		From(stockTable).
		OrderBy("item_en ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []stock.QtyRow
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	return rows, nil
}

// Get returns the row for one item code, or nil when absent.
func (r *StockRepo) Get(ctx context.Context, itemCode string) (*stock.QtyRow, error) {
	sql, args, err := psql.
		Select("item_code", "item_en", "available_qty", "updated_at").
		From(stockTable).
		Where(squirrel.Eq{"item_code": itemCode}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var row stock.QtyRow
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock row: %w", err)
	}
	return &row, nil
}

// Upsert writes a stock row keyed by item code.
func (r *StockRepo) Upsert(ctx context.Context, row stock.QtyRow) error {
	sql, args, err := psql.
		Insert(stockTable).
		Columns("item_code", "item_en", "available_qty", "updated_at").
		Values(row.ItemCode, row.ItemEN, row.AvailableQty, row.UpdatedAt).
		Suffix(`ON CONFLICT (item_code) DO UPDATE SET
			item_en = EXCLUDED.item_en,
			available_qty = EXCLUDED.available_qty,
			updated_at = EXCLUDED.updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("upsert stock row: %w", err)
	}
	return nil
}
