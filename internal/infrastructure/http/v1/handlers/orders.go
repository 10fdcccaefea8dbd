package handlers

import (
	"github.com/gin-gonic/gin"

	"mandiflow/internal/core/apperror"
	"mandiflow/internal/core/id"
	"mandiflow/internal/domain/orders"
	"mandiflow/internal/infrastructure/http/v1/dto"
)

// OrderHandler handles restaurant order endpoints.
type OrderHandler struct {
	*BaseHandler
	service *orders.Service
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service *orders.Service) *OrderHandler {
	return &OrderHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
	}
}

// Create places a new order.
// POST /api/v1/orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	restaurantID, err := id.Parse(req.RestaurantID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid restaurant id"))
		return
	}

	items := make([]orders.LineItem, 0, len(req.Items))
	for _, line := range req.Items {
		items = append(items, orders.LineItem{
			Code:     line.Code,
			EN:       line.EN,
			HI:       line.HI,
			Qty:      line.Qty,
			Category: line.Category,
		})
	}

	order, err := h.service.Create(c.Request.Context(), orders.CreateInput{
		RestaurantID:   restaurantID,
		RestaurantName: req.RestaurantName,
		ContactName:    req.ContactName,
		ContactPhone:   req.ContactPhone,
		DeliveryDate:   req.DeliveryDate,
		Items:          items,
		Notes:          req.Notes,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, order)
}

// List returns orders placed in a date range.
// GET /api/v1/orders?from=...&to=...
func (h *OrderHandler) List(c *gin.Context) {
	var q dto.DateRangeQuery
	if !h.BindQuery(c, &q) {
		return
	}

	rows, err := h.service.ListByOrderDate(c.Request.Context(), q.From, q.To)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, rows)
}

// UpdateStatus moves an order through the delivery workflow.
// PUT /api/v1/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid order id"))
		return
	}

	var req dto.UpdateOrderStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.UpdateStatus(c.Request.Context(), orderID, orders.Status(req.Status)); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "status updated")
}
