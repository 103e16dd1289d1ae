package api

import (
	"net/http"

	reqdto "tour-booking/internal/handler/dto/request"
	resdto "tour-booking/internal/handler/dto/response"
	"tour-booking/internal/handler/httperr"
	"tour-booking/internal/usecase/commands"
	"tour-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type TourHandler struct {
	commands     commands.TourCommands
	queries      queries.TourQueries
	reservations queries.ReservationQueries
}

func NewTourHandler(cmds commands.TourCommands, qs queries.TourQueries, rqs queries.ReservationQueries) *TourHandler {
	return &TourHandler{
		commands:     cmds,
		queries:      qs,
		reservations: rqs,
	}
}

// @Summary Create tour
// @Tags tours
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateTourRequest true "Tour definition"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} httperr.Response
// @Router /tours [post]
func (h *TourHandler) Create(c *gin.Context) {
	var req reqdto.CreateTourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	actor, ok := actorFrom(c, req.Comment)
	if !ok {
		return
	}

	id, err := h.commands.Create(c.Request.Context(), commands.CreateTourRequest{
		TemplateID:        req.TemplateID,
		Name:              req.Name,
		StartingDate:      req.StartingDate,
		TotalSeats:        req.TotalSeats,
		TotalSeatsNumbers: req.TotalSeatsNumbers,
		Price:             req.Price,
		MinPayment:        req.MinPayment,
	}, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary Add a promo to a tour
// @Tags tours
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tour ID"
// @Param request body reqdto.AddPromoRequest true "Promo definition"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /tours/{id}/promos [post]
func (h *TourHandler) AddPromo(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req reqdto.AddPromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	actor, ok := actorFrom(c, req.Comment)
	if !ok {
		return
	}

	if err := h.commands.AddPromo(c.Request.Context(), id, commands.AddPromoRequest{
		Type:                  req.Type,
		Value:                 req.Value,
		Amount:                req.Amount,
		MaxUsesPerReservation: req.MaxUsesPerReservation,
		Code:                  req.Code,
		Show:                  req.Show,
	}, actor); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Cancel a tour and every live reservation on it
// @Tags tours
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tour ID"
// @Success 200 {object} resdto.BulkOperationResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /tours/{id}/cancellation [post]
func (h *TourHandler) Cancel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req reqdto.TourLifecycleRequest
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

	result, err := h.commands.CancelTour(c.Request.Context(), id, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBulkResult(result))
}

// @Summary Complete a tour and settle its reservations
// @Tags tours
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tour ID"
// @Success 200 {object} resdto.BulkOperationResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /tours/{id}/completion [post]
func (h *TourHandler) Complete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req reqdto.TourLifecycleRequest
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

	result, err := h.commands.CompleteTour(c.Request.Context(), id, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBulkResult(result))
}

// @Summary Get tour detail
// @Tags tours
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tour ID"
// @Success 200 {object} queries.TourView
// @Failure 404 {object} httperr.Response
// @Router /tours/{id} [get]
func (h *TourHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	view, err := h.queries.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary List active tours
// @Tags tours
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.TourView
// @Router /tours [get]
func (h *TourHandler) ListActive(c *gin.Context) {
	views, err := h.queries.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// @Summary List reservations of a tour
// @Tags tours
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tour ID"
// @Success 200 {array} queries.ReservationListItem
// @Failure 404 {object} httperr.Response
// @Router /tours/{id}/reservations [get]
func (h *TourHandler) Reservations(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	items, err := h.reservations.ListByTour(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary Get tour history
// @Tags tours
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tour ID"
// @Success 200 {array} queries.HistoryEntryView
// @Failure 404 {object} httperr.Response
// @Router /tours/{id}/history [get]
func (h *TourHandler) History(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	entries, err := h.queries.History(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
