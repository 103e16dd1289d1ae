package api

import (
	"errors"
	"net/http"

	"tour-booking/internal/domain/history"
	"tour-booking/internal/handler/httperr"
	"tour-booking/internal/handler/middleware"
	"tour-booking/internal/infra"
	"tour-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errMissingPhone = errors.New("phone query parameter required")

// respondError translates usecase sentinel errors into the HTTP
// contract. Anything unrecognized is reported as an internal error
// without leaking the cause to the caller.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrValidation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Validation failed", errs.UserMessage(err))
	case errors.Is(err, errs.ErrMalformedID):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Malformed identifier", nil)
	case errors.Is(err, errs.ErrTourNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Tour not found", nil)
	case errors.Is(err, errs.ErrClientNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Client not found", nil)
	case errors.Is(err, errs.ErrReservationNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
	case errors.Is(err, errs.ErrCapacity):
		httperr.AbortWithError(c, http.StatusConflict, err, "Insufficient capacity", errs.UserMessage(err))
	case errors.Is(err, errs.ErrStateConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "Operation not allowed in current status", errs.UserMessage(err))
	case infra.IsKind(err, infra.KindNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
	case errors.Is(err, errs.ErrTransactionFailed):
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

// parseID rejects malformed path identifiers before any lookup runs.
func parseID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.AbortWithError(c, http.StatusNotFound, errs.ErrMalformedID, "Malformed identifier", nil)
		return uuid.Nil, false
	}
	return id, true
}

// actorFrom attributes the operation to the authenticated user.
func actorFrom(c *gin.Context, comment *string) (history.Actor, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.ErrTransactionFailed, "Internal server error", nil)
		return history.Actor{}, false
	}
	actor := history.Actor{UserID: userID}
	if comment != nil {
		actor.Comment = *comment
	}
	return actor, true
}
