package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mandiflow/internal/core/apperror"
	"mandiflow/pkg/logger"
)

// Service provides business logic for the item catalog.
type Service struct {
	repo Repository
}

// NewService creates a new catalog service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListItems returns all catalog items.
func (s *Service) ListItems(ctx context.Context) ([]Item, error) {
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list catalog items: %w", err)
	}
	return items, nil
}

// Lookups loads the code-by-name and meta indexes consumed by purchase
// aggregation and merge.
func (s *Service) Lookups(ctx context.Context) (map[string]string, map[string]Meta, error) {
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load catalog lookups: %w", err)
	}
	return CodeByName(items), MetaIndex(items), nil
}

// SaveItem validates and upserts a catalog item.
func (s *Service) SaveItem(ctx context.Context, item Item) error {
	item.Code = strings.TrimSpace(item.Code)
	item.NameEN = strings.TrimSpace(item.NameEN)
	if err := item.Validate(ctx); err != nil {
		return err
	}
	if err := s.repo.UpsertItem(ctx, item); err != nil {
		return fmt.Errorf("upsert catalog item: %w", err)
	}
	logger.Info(ctx, "catalog item saved", "code", item.Code)
	return nil
}

// ListAvailability returns availability flags for all items.
func (s *Service) ListAvailability(ctx context.Context) ([]Availability, error) {
	rows, err := s.repo.ListAvailability(ctx)
	if err != nil {
		return nil, fmt.Errorf("list availability: %w", err)
	}
	return rows, nil
}

// SetAvailability flips the in-stock flag for an item.
func (s *Service) SetAvailability(ctx context.Context, itemCode, itemEN string, inStock bool) error {
	row := Availability{
		ItemCode:  strings.TrimSpace(itemCode),
		ItemEN:    strings.TrimSpace(itemEN),
		IsInStock: inStock,
		UpdatedAt: time.Now().UTC(),
	}
	if row.ItemEN == "" {
		return apperror.NewValidation("item name is required").
			WithDetail("field", "itemEn")
	}
	if err := s.repo.UpsertAvailability(ctx, row); err != nil {
		return fmt.Errorf("upsert availability: %w", err)
	}
	return nil
}
