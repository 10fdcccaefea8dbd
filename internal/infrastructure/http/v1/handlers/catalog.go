package handlers

import (
	"github.com/gin-gonic/gin"

	"mandiflow/internal/domain/catalog"
	"mandiflow/internal/infrastructure/http/v1/dto"
)

// CatalogHandler handles catalog item endpoints.
type CatalogHandler struct {
	*BaseHandler
	service *catalog.Service
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(service *catalog.Service) *CatalogHandler {
	return &CatalogHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
	}
}

// ListItems returns all catalog items.
// GET /api/v1/catalog/items
func (h *CatalogHandler) ListItems(c *gin.Context) {
	items, err := h.service.ListItems(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, items)
}

// SaveItem upserts a catalog item. Admin only.
// PUT /api/v1/catalog/items
func (h *CatalogHandler) SaveItem(c *gin.Context) {
	var req dto.SaveItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	err := h.service.SaveItem(c.Request.Context(), catalog.Item{
		Code:     req.Code,
		NameEN:   req.NameEN,
		NameHI:   req.NameHI,
		Category: catalog.Category(req.Category),
		IsActive: isActive,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "item saved")
}

// ListAvailability returns in-stock flags for all items.
// GET /api/v1/catalog/availability
func (h *CatalogHandler) ListAvailability(c *gin.Context) {
	rows, err := h.service.ListAvailability(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, rows)
}

// SetAvailability flips an item's in-stock flag.
// PUT /api/v1/catalog/availability
func (h *CatalogHandler) SetAvailability(c *gin.Context) {
	var req dto.SetAvailabilityRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.SetAvailability(c.Request.Context(), req.ItemCode, req.ItemEN, req.IsInStock); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "availability updated")
}
