// Package catalog provides the produce item catalog (Справочник items is the
// closest analogue: code, bilingual names, category, availability flag).
package catalog

import (
	"context"
	"strings"
	"time"

	"mandiflow/internal/core/apperror"
)

// Category groups catalog items for ordering screens.
type Category string

const (
	CategoryVegetables Category = "vegetables"
	CategoryHerbs      Category = "herbs"
	CategoryFruits     Category = "fruits"
)

// IsValidCategory reports whether the category is one of the closed set.
func IsValidCategory(c Category) bool {
	switch c {
	case CategoryVegetables, CategoryHerbs, CategoryFruits:
		return true
	}
	return false
}

// Item is a purchasable produce item.
type Item struct {
	Code     string   `db:"code" json:"code"`
	NameEN   string   `db:"name_en" json:"nameEn"`
	NameHI   string   `db:"name_hi" json:"nameHi"`
	Category Category `db:"category" json:"category"`
	IsActive bool     `db:"is_active" json:"isActive"`
}

// Validate implements basic catalog validation.
func (i *Item) Validate(ctx context.Context) error {
	if strings.TrimSpace(i.Code) == "" {
		return apperror.NewValidation("item code is required").
			WithDetail("field", "code")
	}
	if strings.TrimSpace(i.NameEN) == "" {
		return apperror.NewValidation("item name is required").
			WithDetail("field", "nameEn")
	}
	if !IsValidCategory(i.Category) {
		return apperror.NewValidation("invalid item category").
			WithDetail("field", "category").
			WithDetail("value", string(i.Category))
	}
	return nil
}

// Availability records whether an item is currently in stock for ordering.
// Upserted by item name, mirroring how the ordering screens key it.
type Availability struct {
	ItemCode  string    `db:"item_code" json:"itemCode"`
	ItemEN    string    `db:"item_en" json:"itemEn"`
	IsInStock bool      `db:"is_in_stock" json:"isInStock"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Meta is the descriptive fallback (Hindi name, category) the purchase merge
// consults when neither live nor persisted rows carry it.
type Meta struct {
	NameHI   string
	Category string
}

// CodeByName builds the trimmed-name → code lookup used for item key
// resolution.
func CodeByName(items []Item) map[string]string {
	m := make(map[string]string, len(items))
	for _, it := range items {
		name := strings.TrimSpace(it.NameEN)
		if name == "" || it.Code == "" {
			continue
		}
		m[name] = it.Code
	}
	return m
}

// MetaIndex indexes item meta by code and by trimmed English name, so lookups
// work for rows identified either way.
func MetaIndex(items []Item) map[string]Meta {
	m := make(map[string]Meta, len(items)*2)
	for _, it := range items {
		meta := Meta{NameHI: it.NameHI, Category: string(it.Category)}
		if it.Code != "" {
			m[it.Code] = meta
		}
		if name := strings.TrimSpace(it.NameEN); name != "" {
			if _, exists := m[name]; !exists {
				m[name] = meta
			}
		}
	}
	return m
}
