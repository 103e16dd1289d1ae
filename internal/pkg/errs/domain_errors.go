package errs

import "errors"

// Domain-specific sentinel errors shared across usecase layers
var (
	// Validation errors (rejected before any read)
	ErrValidation  = errors.New("validation error")
	ErrMalformedID = errors.New("malformed identifier")

	// Lookup errors (valid identifier, missing or soft-deleted entity)
	ErrTourNotFound        = errors.New("tour not found")
	ErrClientNotFound      = errors.New("client not found")
	ErrReservationNotFound = errors.New("reservation not found")

	// State conflicts (operation not valid for the current status)
	ErrStateConflict = errors.New("operation not allowed in current status")

	// Capacity errors (insufficient seats or devolution balance)
	ErrCapacity = errors.New("insufficient capacity")

	// Operation errors
	ErrTransactionFailed = errors.New("transactional update failed")
)
