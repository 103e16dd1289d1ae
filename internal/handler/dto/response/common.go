package response

import (
	"tour-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreatedResponse struct {
	ID uuid.UUID `json:"id"`
}

type BulkOperationResponse struct {
	UpdatedReservations         int `json:"updated_reservations"`
	ReservationsWithDevolutions int `json:"reservations_with_devolutions"`
}

func FromBulkResult(r *commands.BulkResult) BulkOperationResponse {
	return BulkOperationResponse{
		UpdatedReservations:         r.UpdatedReservations,
		ReservationsWithDevolutions: r.ReservationsWithDevolutions,
	}
}
