package handlers

import (
	"github.com/gin-gonic/gin"

	"mandiflow/internal/core/apperror"
	"mandiflow/internal/domain/accounts"
	"mandiflow/internal/infrastructure/http/v1/dto"
)

// AccountsHandler handles cash voucher and day close endpoints.
type AccountsHandler struct {
	*BaseHandler
	service *accounts.Service
}

// NewAccountsHandler creates a new accounts handler.
func NewAccountsHandler(service *accounts.Service) *AccountsHandler {
	return &AccountsHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
	}
}

// PostVoucher records a cash movement.
// POST /api/v1/accounts/vouchers
func (h *AccountsHandler) PostVoucher(c *gin.Context) {
	var req dto.PostVoucherRequest
	if !h.BindJSON(c, &req) {
		return
	}

	voucher, err := h.service.PostVoucher(c.Request.Context(), accounts.PostVoucherInput{
		VoucherDate:  req.VoucherDate,
		TargetUserID: req.TargetUserID,
		Type:         accounts.VoucherType(req.Type),
		Amount:       req.Amount,
		Notes:        req.Notes,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, voucher)
}

// ListDays returns computed cash days for a date range.
// GET /api/v1/accounts/days?from=...&to=...
func (h *AccountsHandler) ListDays(c *gin.Context) {
	var q dto.DateRangeQuery
	if !h.BindQuery(c, &q) {
		return
	}

	days, err := h.service.ListDays(c.Request.Context(), q.From, q.To)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, days)
}

// GetDay returns one computed cash day.
// GET /api/v1/accounts/days/:date
func (h *AccountsHandler) GetDay(c *gin.Context) {
	date := c.Param("date")
	if date == "" {
		h.Error(c, apperror.NewValidation("day date is required"))
		return
	}

	day, err := h.service.GetDay(c.Request.Context(), date)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, day)
}

// CloseDay closes a cash day.
// POST /api/v1/accounts/days/:date/close
func (h *AccountsHandler) CloseDay(c *gin.Context) {
	var req dto.CloseDayRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.CloseDay(c.Request.Context(), c.Param("date"), req.CloseNote); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "day closed")
}
