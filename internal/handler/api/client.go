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

type ClientHandler struct {
	commands commands.ClientCommands
	queries  queries.ClientQueries
}

func NewClientHandler(cmds commands.ClientCommands, qs queries.ClientQueries) *ClientHandler {
	return &ClientHandler{
		commands: cmds,
		queries:  qs,
	}
}

// @Summary Register client
// @Tags clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateClientRequest true "Client data"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /clients [post]
func (h *ClientHandler) Create(c *gin.Context) {
	var req reqdto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	actor, ok := actorFrom(c, req.Comment)
	if !ok {
		return
	}

	id, err := h.commands.Create(c.Request.Context(), commands.CreateClientRequest{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
	}, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary Delete client
// @Description Soft delete. Clients with open reservations cannot be removed.
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 204
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /clients/{id} [delete]
func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	actor, ok := actorFrom(c, nil)
	if !ok {
		return
	}

	if err := h.commands.Delete(c.Request.Context(), id, actor); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Get client detail
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 200 {object} queries.ClientView
// @Failure 404 {object} httperr.Response
// @Router /clients/{id} [get]
func (h *ClientHandler) Get(c *gin.Context) {
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

// @Summary Find client by phone number
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Param phone query string true "Phone number"
// @Success 200 {object} queries.ClientView
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /clients [get]
func (h *ClientHandler) GetByPhone(c *gin.Context) {
	phone := c.Query("phone")
	if phone == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, errMissingPhone, "Phone query parameter required", nil)
		return
	}
	view, err := h.queries.GetByPhone(c.Request.Context(), phone)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary List reservations of a client
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 200 {array} queries.ReservationListItem
// @Failure 404 {object} httperr.Response
// @Router /clients/{id}/reservations [get]
func (h *ClientHandler) Reservations(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	items, err := h.queries.ListReservations(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary Get client history
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 200 {array} queries.HistoryEntryView
// @Failure 404 {object} httperr.Response
// @Router /clients/{id}/history [get]
func (h *ClientHandler) History(c *gin.Context) {
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
