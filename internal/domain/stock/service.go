package stock

import (
	"context"
	"fmt"
	"time"

	"mandiflow/internal/core/apperror"
	"mandiflow/internal/core/types"
	"mandiflow/pkg/logger"
)

// Delta is an additive quantity change for one item code. Purchase surplus
// pushes are always positive; this register never receives reductions from
// the purchase flow.
type Delta struct {
	ItemEN string
	Qty    float64
}

// Service provides business operations for the stock register.
type Service struct {
	repo Repository
}

// NewService creates a new stock service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns all stock rows.
func (s *Service) List(ctx context.Context) ([]QtyRow, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	return rows, nil
}

// ApplyDeltas adds each delta onto the current available quantity,
// upserting by item code. Non-positive deltas are skipped.
func (s *Service) ApplyDeltas(ctx context.Context, deltas map[string]Delta) error {
	for code, delta := range deltas {
		if code == "" || delta.Qty <= 0 {
			continue
		}
		current := 0.0
		existing, err := s.repo.Get(ctx, code)
		if err != nil {
			return fmt.Errorf("get stock %s: %w", code, err)
		}
		if existing != nil {
			current = existing.AvailableQty
		}
		row := QtyRow{
			ItemCode:     code,
			ItemEN:       delta.ItemEN,
			AvailableQty: types.Round2(current + delta.Qty),
			UpdatedAt:    time.Now().UTC(),
		}
		if err := s.repo.Upsert(ctx, row); err != nil {
			return fmt.Errorf("upsert stock %s: %w", code, err)
		}
	}

	logger.Info(ctx, "stock deltas applied", "count", len(deltas))
	return nil
}

// Set overwrites the available quantity for an item (admin correction).
func (s *Service) Set(ctx context.Context, itemCode, itemEN string, qty float64) error {
	if itemCode == "" {
		return apperror.NewValidation("item code is required").
			WithDetail("field", "itemCode")
	}
	row := QtyRow{
		ItemCode:     itemCode,
		ItemEN:       itemEN,
		AvailableQty: types.Round2(types.Clamp0(types.SafeNumber(qty, 0))),
		UpdatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Upsert(ctx, row); err != nil {
		return fmt.Errorf("set stock %s: %w", itemCode, err)
	}
	return nil
}
