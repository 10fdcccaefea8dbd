package orders

import (
	"context"
	"fmt"
	"time"

	"mandiflow/internal/core/apperror"
	"mandiflow/internal/core/id"
	"mandiflow/internal/core/types"
	"mandiflow/pkg/logger"
)

const maxNotesLength = 300

// Service provides business logic for restaurant orders.
type Service struct {
	repo Repository
}

// NewService creates a new orders service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput carries a new order request.
type CreateInput struct {
	RestaurantID   id.ID
	RestaurantName string
	ContactName    string
	ContactPhone   string
	DeliveryDate   string
	Items          []LineItem
	Notes          string
}

// Create validates and stores a new order. Line quantities are coerced and
// snapped to two decimals; items with zero quantity are dropped.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Order, error) {
	if in.RestaurantName == "" {
		return nil, apperror.NewValidation("restaurant name is required")
	}
	if in.DeliveryDate == "" {
		return nil, apperror.NewValidation("delivery date is required")
	}
	if len(in.Notes) > maxNotesLength {
		return nil, apperror.NewValidation("notes too long").
			WithDetail("max_length", maxNotesLength)
	}

	lines := make([]LineItem, 0, len(in.Items))
	for _, item := range in.Items {
		item.Qty = types.Round2(types.SafeNumber(item.Qty, 0))
		if item.Qty <= 0 || item.EN == "" {
			continue
		}
		lines = append(lines, item)
	}
	if len(lines) == 0 {
		return nil, apperror.NewValidation("at least one item with positive quantity is required")
	}

	now := time.Now()
	order := &Order{
		ID:             id.New(),
		OrderRef:       MakeOrderRef(now),
		RestaurantID:   in.RestaurantID,
		RestaurantName: in.RestaurantName,
		ContactName:    in.ContactName,
		ContactPhone:   in.ContactPhone,
		OrderDate:      now.Format("2006-01-02"),
		DeliveryDate:   in.DeliveryDate,
		Items:          lines,
		Notes:          TrimmedNotes(in.Notes),
		Status:         StatusPending,
		CreatedAt:      now.UTC(),
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	logger.Info(ctx, "order created",
		"order_ref", order.OrderRef,
		"restaurant", order.RestaurantName,
		"items", len(order.Items),
	)
	return order, nil
}

// GetByID returns one order, or nil when it does not exist.
func (s *Service) GetByID(ctx context.Context, orderID id.ID) (*Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

// ListByOrderDate returns orders placed in the date range.
func (s *Service) ListByOrderDate(ctx context.Context, fromDate, toDate string) ([]Order, error) {
	rows, err := s.repo.ListByOrderDate(ctx, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return rows, nil
}

// ListDelivered returns delivered orders by delivery date range.
func (s *Service) ListDelivered(ctx context.Context, fromDate, toDate string) ([]Order, error) {
	rows, err := s.repo.ListDelivered(ctx, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("list delivered orders: %w", err)
	}
	return rows, nil
}

// UpdateStatus moves an order through the delivery workflow.
func (s *Service) UpdateStatus(ctx context.Context, orderID id.ID, status Status) error {
	if !IsValidStatus(status) {
		return apperror.NewValidation("invalid order status").
			WithDetail("status", string(status))
	}
	if err := s.repo.UpdateStatus(ctx, orderID, status); err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	logger.Info(ctx, "order status updated", "order_id", orderID, "status", string(status))
	return nil
}
