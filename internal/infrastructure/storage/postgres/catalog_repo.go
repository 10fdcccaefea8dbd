package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"mandiflow/internal/domain/catalog"
)

// psql is the shared statement builder with PostgreSQL placeholders.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const (
	itemTable         = "cat_items"
	availabilityTable = "cat_item_availability"
)

// CatalogRepo implements catalog.Repository.
type CatalogRepo struct {
	txManager *TxManager
}

// NewCatalogRepo creates a new catalog repository.
func NewCatalogRepo(txManager *TxManager) *CatalogRepo {
	return &CatalogRepo{txManager: txManager}
}

var _ catalog.Repository = (*CatalogRepo)(nil)

// ListItems returns all catalog items ordered by English name.
func (r *CatalogRepo) ListItems(ctx context.Context) ([]catalog.Item, error) {
	sql, args, err := psql.
		Select("code", "name_en", "name_hi", "category", "is_active").
		From(itemTable).
		OrderBy("name_en ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []catalog.Item
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// GetItemByCode retrieves a single item, nil when absent.
func (r *CatalogRepo) GetItemByCode(ctx context.Context, code string) (*catalog.Item, error) {
	sql, args, err := psql.
		Select("code", "name_en", "name_hi", "category", "is_active").
		From(itemTable).
		Where(squirrel.Eq{"code": code}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var item catalog.Item
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &item, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item by code: %w", err)
	}
	return &item, nil
}

// UpsertItem inserts or updates an item keyed by code.
func (r *CatalogRepo) UpsertItem(ctx context.Context, item catalog.Item) error {
	sql, args, err := psql.
		Insert(itemTable).
		Columns("code", "name_en", "name_hi", "category", "is_active").
		Values(item.Code, item.NameEN, item.NameHI, item.Category, item.IsActive).
		Suffix(`ON CONFLICT (code) DO UPDATE SET
			name_en = EXCLUDED.name_en,
			name_hi = EXCLUDED.name_hi,
			category = EXCLUDED.category,
			is_active = EXCLUDED.is_active`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("upsert item: %w", err)
	}
	return nil
}

// ListAvailability returns availability flags for all items.
func (r *CatalogRepo) ListAvailability(ctx context.Context) ([]catalog.Availability, error) {
	sql, args, err := psql.
		Select("item_code", "item_en", "is_in_stock", "updated_at").
		From(availabilityTable).
		OrderBy("item_en ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []catalog.Availability
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list availability: %w", err)
	}
	return rows, nil
}

// UpsertAvailability inserts or updates availability keyed by item name.
func (r *CatalogRepo) UpsertAvailability(ctx context.Context, row catalog.Availability) error {
	sql, args, err := psql.
		Insert(availabilityTable).
		Columns("item_code", "item_en", "is_in_stock", "updated_at").
		Values(row.ItemCode, row.ItemEN, row.IsInStock, row.UpdatedAt).
		Suffix(`ON CONFLICT (item_en) DO UPDATE SET
			item_code = EXCLUDED.item_code,
			is_in_stock = EXCLUDED.is_in_stock,
			updated_at = EXCLUDED.updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("upsert availability: %w", err)
	}
	return nil
}
