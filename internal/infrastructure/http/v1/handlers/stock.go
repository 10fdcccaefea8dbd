package handlers

import (
	"github.com/gin-gonic/gin"

	"mandiflow/internal/domain/stock"
	"mandiflow/internal/infrastructure/http/v1/dto"
)

// StockHandler handles stock register endpoints.
type StockHandler struct {
	*BaseHandler
	service *stock.Service
}

// NewStockHandler creates a new stock handler.
func NewStockHandler(service *stock.Service) *StockHandler {
	return &StockHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
	}
}

// List returns current stock quantities.
// GET /api/v1/stock
func (h *StockHandler) List(c *gin.Context) {
	rows, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, rows)
}

// Set overwrites an item's available quantity. Admin correction only.
// PUT /api/v1/stock
func (h *StockHandler) Set(c *gin.Context) {
	var req dto.SetStockRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.Set(c.Request.Context(), req.ItemCode, req.ItemEN, req.Qty); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "stock updated")
}
