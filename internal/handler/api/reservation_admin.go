package api

import (
	"net/http"

	reqdto "tour-booking/internal/handler/dto/request"
	"tour-booking/internal/handler/httperr"
	"tour-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

// AdminReservationHandler exposes the settlement operations reserved
// for back-office staff.
type AdminReservationHandler struct {
	commands commands.AdminReservationCommands
}

func NewAdminReservationHandler(cmds commands.AdminReservationCommands) *AdminReservationHandler {
	return &AdminReservationHandler{commands: cmds}
}

// @Summary Cancel a reservation keeping all money paid
// @Tags reservations-admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.CancelWithoutDevolutionsRequest true "Cancellation options"
// @Success 204
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/reservations/{id}/cancellation [post]
func (h *AdminReservationHandler) CancelWithoutDevolutions(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req reqdto.CancelWithoutDevolutionsRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
			return
		}
	}
	actor, ok := actorFrom(c, req.Comment)
	if !ok {
		return
	}

	changeReputation := true
	if req.ChangeReputation != nil {
		changeReputation = *req.ChangeReputation
	}

	if err := h.commands.CancelWithoutDevolutions(c.Request.Context(), id, changeReputation, actor); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Cancel a reservation owing the client a devolution
// @Description Full mode refunds everything paid; partial mode refunds only what exceeds the reserve price.
// @Tags reservations-admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.CancelWithDevolutionsRequest true "Cancellation options"
// @Success 204
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/reservations/{id}/devolution-cancellation [post]
func (h *AdminReservationHandler) CancelWithDevolutions(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req reqdto.CancelWithDevolutionsRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
			return
		}
	}
	actor, ok := actorFrom(c, req.Comment)
	if !ok {
		return
	}

	full := true
	if req.Full != nil {
		full = *req.Full
	}

	if err := h.commands.CancelWithDevolutions(c.Request.Context(), id, full, actor); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Grant an extra discount
// @Tags reservations-admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.AmountRequest true "Discount amount"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/reservations/{id}/discounts [post]
func (h *AdminReservationHandler) AddDiscount(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req reqdto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	actor, ok := actorFrom(c, req.Comment)
	if !ok {
		return
	}

	if err := h.commands.AddDiscount(c.Request.Context(), id, req.Amount, actor); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Correct a mistaken payment record
// @Tags reservations-admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.AmountRequest true "Amount to subtract from payments"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/reservations/{id}/payment-reductions [post]
func (h *AdminReservationHandler) ReduceAmountPaid(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req reqdto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	actor, ok := actorFrom(c, req.Comment)
	if !ok {
		return
	}

	if err := h.commands.ReduceAmountPaid(c.Request.Context(), id, req.Amount, actor); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Write down a pending devolution without paying it
// @Description Advances the reservation only when the remainder reaches exactly zero.
// @Tags reservations-admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.AmountRequest true "Amount to forgive"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/reservations/{id}/devolution-reductions [post]
func (h *AdminReservationHandler) ReducePendingDevolution(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req reqdto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	actor, ok := actorFrom(c, req.Comment)
	if !ok {
		return
	}

	if err := h.commands.ReducePendingDevolution(c.Request.Context(), id, req.Amount, actor); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
