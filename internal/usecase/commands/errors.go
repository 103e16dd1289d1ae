package commands

import (
	"errors"

	"tour-booking/internal/domain/client"
	"tour-booking/internal/domain/reservation"
	"tour-booking/internal/domain/tour"
	"tour-booking/internal/infra"
	"tour-booking/internal/pkg/errs"
)

// wrapDomainErr classifies a domain rule violation into the usecase
// error taxonomy the handlers translate to HTTP statuses.
func wrapDomainErr(err error) error {
	if err == nil {
		return nil
	}

	var capacityErr *tour.CapacityError
	var devolutionErr *reservation.DevolutionExceedsError
	switch {
	case errors.As(err, &capacityErr), errors.As(err, &devolutionErr):
		return errs.Mark(err, errs.ErrCapacity)
	case errors.Is(err, reservation.ErrInvalidAmount),
		errors.Is(err, reservation.ErrInvalidSeatAmount),
		errors.Is(err, reservation.ErrEmptySeatList),
		errors.Is(err, reservation.ErrDuplicateSeats),
		errors.Is(err, reservation.ErrSeatCountMismatch),
		errors.Is(err, tour.ErrInvalidDefinition),
		errors.Is(err, tour.ErrStartingDatePast),
		errors.Is(err, client.ErrEmptyName),
		errors.Is(err, client.ErrEmptyPhone):
		return errs.Mark(err, errs.ErrValidation)
	default:
		return errs.Mark(err, errs.ErrStateConflict)
	}
}

func wrapTourErr(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, errs.ErrTourNotFound)
	}
	return err
}

func wrapClientErr(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, errs.ErrClientNotFound)
	}
	return err
}

func wrapReservationErr(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, errs.ErrReservationNotFound)
	}
	return err
}
