package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"mandiflow/internal/core/id"
	"mandiflow/internal/domain/orders"
)

const orderTable = "doc_orders"

// OrderRepo implements orders.Repository. Line items live in a jsonb column
// on the order row, matching how the ordering screens read them back whole.
type OrderRepo struct {
	txManager *TxManager
}

// NewOrderRepo creates a new order repository.
func NewOrderRepo(txManager *TxManager) *OrderRepo {
	return &OrderRepo{txManager: txManager}
}

var _ orders.Repository = (*OrderRepo)(nil)

var orderColumns = []string{
	"id", "order_ref", "restaurant_id", "restaurant_name",
	"contact_name", "contact_phone", "order_date", "delivery_date",
	"items", "notes", "status", "created_at",
}

// Create inserts an order with its line items.
func (r *OrderRepo) Create(ctx context.Context, order *orders.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("marshal order items: %w", err)
	}

	sql, args, err := psql.
		Insert(orderTable).
		Columns(orderColumns...).
		Values(
			order.ID, order.OrderRef, order.RestaurantID, order.RestaurantName,
			order.ContactName, order.ContactPhone, order.OrderDate, order.DeliveryDate,
			items, order.Notes, order.Status, order.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID retrieves one order, nil when absent.
func (r *OrderRepo) GetByID(ctx context.Context, orderID id.ID) (*orders.Order, error) {
	sql, args, err := psql.
		Select(orderColumns...).
		From(orderTable).
		Where(squirrel.Eq{"id": orderID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	row := querier.QueryRow(ctx, sql, args...)
	order, err := scanOrder(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

// ListByOrderDate returns orders placed within [fromDate, toDate], newest
// first.
func (r *OrderRepo) ListByOrderDate(ctx context.Context, fromDate, toDate string) ([]orders.Order, error) {
	q := psql.
		Select(orderColumns...).
		From(orderTable).
		Where(squirrel.GtOrEq{"order_date": fromDate}).
		Where(squirrel.LtOrEq{"order_date": toDate}).
		OrderBy("created_at DESC").
		Limit(1000)
	return r.list(ctx, q)
}

// ListDelivered returns delivered orders by delivery date range.
func (r *OrderRepo) ListDelivered(ctx context.Context, fromDate, toDate string) ([]orders.Order, error) {
	q := psql.
		Select(orderColumns...).
		From(orderTable).
		Where(squirrel.Eq{"status": orders.StatusDelivered}).
		Where(squirrel.GtOrEq{"delivery_date": fromDate}).
		Where(squirrel.LtOrEq{"delivery_date": toDate}).
		OrderBy("delivery_date DESC").
		Limit(1000)
	return r.list(ctx, q)
}

// UpdateStatus changes the workflow status.
func (r *OrderRepo) UpdateStatus(ctx context.Context, orderID id.ID, status orders.Status) error {
	sql, args, err := psql.
		Update(orderTable).
		Set("status", status).
		Where(squirrel.Eq{"id": orderID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	tag, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %s not found", orderID)
	}
	return nil
}

func (r *OrderRepo) list(ctx context.Context, q squirrel.SelectBuilder) ([]orders.Order, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var result []orders.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		result = append(result, *order)
	}
	return result, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*orders.Order, error) {
	var order orders.Order
	var items []byte
	if err := row.Scan(
		&order.ID, &order.OrderRef, &order.RestaurantID, &order.RestaurantName,
		&order.ContactName, &order.ContactPhone, &order.OrderDate, &order.DeliveryDate,
		&items, &order.Notes, &order.Status, &order.CreatedAt,
	); err != nil {
		return nil, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &order.Items); err != nil {
			return nil, fmt.Errorf("unmarshal order items: %w", err)
		}
	}
	return &order, nil
}
