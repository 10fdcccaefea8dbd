package purchase

import (
	"sort"

	"mandiflow/internal/core/types"
	"mandiflow/internal/domain/catalog"
)

// MergeInput carries the three row sources reconciled by MergeRows plus the
// catalog fallback for descriptive fields.
type MergeInput struct {
	// AggregatedRows is live demand recomputed from today's orders.
	AggregatedRows []PlanRow

	// PersistedRows is the saved plan snapshot for the same day.
	PersistedRows []DBRow

	// Edits holds unsaved user input keyed by item key.
	Edits map[string]Edit

	// CatalogMeta is indexed by item code and by item name.
	CatalogMeta map[string]catalog.Meta
}

// MergeResult is the merged view plus the persisted index needed by
// StockDeltaFromVariance.
type MergeResult struct {
	Rows           []PlanRow
	PersistedByKey map[string]DBRow
}

// MergeRows reconciles aggregated demand, persisted rows and pending edits
// into the final plan rows for a purchase day.
//
// Value precedence per field is edit > persisted > live > zero, with two
// exceptions: ordered quantity only ever comes from live demand, and the
// finalized status only from the persisted row. Final quantity may go
// negative when an adjustment over-reduces; it is preserved as a signal,
// not clamped.
//
// The function is pure: identical inputs always produce identical output.
func MergeRows(in MergeInput) MergeResult {
	persistedByKey := make(map[string]DBRow, len(in.PersistedRows))
	for _, row := range in.PersistedRows {
		persistedByKey[rowKey(row.ItemCode, row.ItemEN)] = row
	}
	aggregatedByKey := make(map[string]PlanRow, len(in.AggregatedRows))
	for _, row := range in.AggregatedRows {
		aggregatedByKey[rowKey(row.ItemCode, row.ItemEN)] = row
	}

	allKeys := make(map[string]struct{}, len(aggregatedByKey)+len(persistedByKey))
	for k := range aggregatedByKey {
		allKeys[k] = struct{}{}
	}
	for k := range persistedByKey {
		allKeys[k] = struct{}{}
	}

	rows := make([]PlanRow, 0, len(allKeys))
	for key := range allKeys {
		live, hasLive := aggregatedByKey[key]
		saved, hasSaved := persistedByKey[key]
		edit := in.Edits[key]

		orderedQty := 0.0
		if hasLive {
			orderedQty = types.SafeNumber(live.OrderedQty, 0)
		}

		adjustmentQty := 0.0
		switch {
		case edit.AdjustmentQty != nil:
			adjustmentQty = *edit.AdjustmentQty
		case hasSaved:
			adjustmentQty = types.SafeNumber(saved.AdjustmentQty, live.AdjustmentQty)
		}
		finalQty := types.Round2(orderedQty + adjustmentQty)

		packSize := types.Clamp0(coalesce(edit.PackSize, types.SafeNumber(saved.PackSize, 0)))
		packCount := types.Clamp0(coalesce(edit.PackCount, types.SafeNumber(saved.PackCount, 0)))

		// Pack override: both parts must be positive, otherwise direct
		// purchased-qty entry wins.
		packOverride := packSize > 0 && packCount > 0
		purchasedFromPack := 0.0
		if packOverride {
			purchasedFromPack = types.Round2(packSize * packCount)
		}

		// An untouched saved row with zero purchased qty and zero price is
		// treated as "not started yet", so purchasing defaults to the
		// target. Keep this exact condition: no pending edits, saved
		// purchased == 0, saved price == 0, positive final qty.
		useFinalAsDefault := edit.IsZero() &&
			hasSaved &&
			types.SafeNumber(saved.PurchasedQty, 0) == 0 &&
			types.SafeNumber(saved.UnitPrice, 0) == 0 &&
			finalQty > 0

		purchasedBase := types.SafeNumber(saved.PurchasedQty, 0)
		if useFinalAsDefault {
			purchasedBase = finalQty
		}
		if edit.PurchasedQty != nil {
			purchasedBase = *edit.PurchasedQty
		}
		purchasedBase = types.Clamp0(types.Round2(purchasedBase))

		purchasedQty := purchasedBase
		if packOverride {
			purchasedQty = purchasedFromPack
		}
		purchasedQty = types.Round2(purchasedQty)

		unitPrice := types.Round2(types.Clamp0(coalesce(edit.UnitPrice, types.SafeNumber(saved.UnitPrice, 0))))
		lineTotal := types.Round2(purchasedQty * unitPrice)
		varianceQty := types.Round2(purchasedQty - finalQty)

		itemCode := firstNonEmpty(live.ItemCode, saved.ItemCode, key)
		itemEN := firstNonEmpty(live.ItemEN, saved.ItemEN, key)

		status := StatusDraft
		if hasSaved && saved.Status == string(StatusFinalized) {
			status = StatusFinalized
		}

		sourceOrders := live.SourceOrders
		if sourceOrders == nil {
			sourceOrders = saved.SourceOrders
		}

		rows = append(rows, PlanRow{
			ItemCode:      itemCode,
			ItemEN:        itemEN,
			ItemHI:        descriptive(live.ItemHI, saved.ItemHI, in.CatalogMeta, itemCode, itemEN, func(m catalog.Meta) string { return m.NameHI }),
			Category:      descriptive(live.Category, saved.Category, in.CatalogMeta, itemCode, itemEN, func(m catalog.Meta) string { return m.Category }),
			OrderedQty:    types.Round2(orderedQty),
			AdjustmentQty: types.Round2(adjustmentQty),
			FinalQty:      finalQty,
			PurchasedQty:  purchasedQty,
			PackSize:      types.Round2(packSize),
			PackCount:     types.Round2(packCount),
			UnitPrice:     unitPrice,
			LineTotal:     lineTotal,
			VarianceQty:   varianceQty,
			VendorName:    coalesceStr(edit.VendorName, saved.VendorName),
			Status:        status,
			FinalizedAt:   saved.FinalizedAt,
			FinalizedBy:   saved.FinalizedBy,
			Notes:         coalesceStr(edit.Notes, saved.Notes),
			SourceOrders:  sourceOrders,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].ItemEN < rows[j].ItemEN
	})
	return MergeResult{Rows: rows, PersistedByKey: persistedByKey}
}

// coalesce prefers an explicitly set edit value over the fallback.
func coalesce(edit *float64, fallback float64) float64 {
	if edit != nil {
		return *edit
	}
	return fallback
}

func coalesceStr(edit, saved *string) *string {
	if edit != nil {
		return edit
	}
	return saved
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// descriptive resolves Hindi name / category through live row, persisted
// row, then catalog meta by code and by name.
func descriptive(live, saved *string, meta map[string]catalog.Meta, code, name string, pick func(catalog.Meta) string) *string {
	if live != nil && *live != "" {
		return live
	}
	if saved != nil && *saved != "" {
		return saved
	}
	if m, ok := meta[code]; ok {
		if v := pick(m); v != "" {
			return &v
		}
	}
	if m, ok := meta[name]; ok {
		if v := pick(m); v != "" {
			return &v
		}
	}
	return nil
}
