package handlers

import (
	"github.com/gin-gonic/gin"

	"mandiflow/internal/core/apperror"
	"mandiflow/internal/domain/purchase"
	"mandiflow/internal/infrastructure/http/v1/dto"
)

// PurchaseHandler handles purchase planning endpoints.
type PurchaseHandler struct {
	*BaseHandler
	service *purchase.Service
}

// NewPurchaseHandler creates a new purchase handler.
func NewPurchaseHandler(service *purchase.Service) *PurchaseHandler {
	return &PurchaseHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
	}
}

// DayView returns the merged plan for a date with pending edits applied.
// POST /api/v1/purchase/:date/view
func (h *PurchaseHandler) DayView(c *gin.Context) {
	date := c.Param("date")
	if date == "" {
		h.Error(c, apperror.NewValidation("purchase date is required"))
		return
	}

	var req dto.DayViewRequest
	if !h.BindJSON(c, &req) {
		return
	}

	view, err := h.service.GetDayView(c.Request.Context(), date, toEdits(req.Edits))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, view)
}

// SavePlan persists the merged plan for a date.
// POST /api/v1/purchase/:date/save
func (h *PurchaseHandler) SavePlan(c *gin.Context) {
	date := c.Param("date")
	if date == "" {
		h.Error(c, apperror.NewValidation("purchase date is required"))
		return
	}

	var req dto.SavePlanRequest
	if !h.BindJSON(c, &req) {
		return
	}

	view, err := h.service.SavePlan(c.Request.Context(), date, toEdits(req.Edits))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, view)
}

// LockDay locks a purchase day against further saves.
// POST /api/v1/purchase/:date/lock
func (h *PurchaseHandler) LockDay(c *gin.Context) {
	if err := h.service.LockDay(c.Request.Context(), c.Param("date")); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "day locked")
}

// ReopenDay removes a day lock.
// POST /api/v1/purchase/:date/reopen
func (h *PurchaseHandler) ReopenDay(c *gin.Context) {
	if err := h.service.ReopenDay(c.Request.Context(), c.Param("date")); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "day reopened")
}

// FinalizeDay marks the saved plan final and applies stock increases.
// POST /api/v1/purchase/:date/finalize
func (h *PurchaseHandler) FinalizeDay(c *gin.Context) {
	if err := h.service.FinalizeDay(c.Request.Context(), c.Param("date")); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "day finalized")
}

// History returns persisted plan rows for a date range.
// GET /api/v1/purchase/history?from=...&to=...
func (h *PurchaseHandler) History(c *gin.Context) {
	var q dto.DateRangeQuery
	if !h.BindQuery(c, &q) {
		return
	}

	rows, err := h.service.History(c.Request.Context(), q.From, q.To)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, rows)
}

func toEdits(in map[string]dto.RowEditRequest) map[string]purchase.Edit {
	edits := make(map[string]purchase.Edit, len(in))
	for key, e := range in {
		edits[key] = purchase.Edit{
			AdjustmentQty: e.AdjustmentQty,
			PurchasedQty:  e.PurchasedQty,
			PackSize:      e.PackSize,
			PackCount:     e.PackCount,
			UnitPrice:     e.UnitPrice,
			VendorName:    e.VendorName,
			Notes:         e.Notes,
		}
	}
	return edits
}
