package request

import (
	"time"

	"github.com/google/uuid"
)

type CreateTourRequest struct {
	TemplateID        uuid.UUID `json:"template_id" binding:"required"`
	Name              string    `json:"name" binding:"required"`
	StartingDate      time.Time `json:"starting_date" binding:"required"`
	TotalSeats        int       `json:"total_seats" binding:"required,min=1"`
	TotalSeatsNumbers []int     `json:"total_seats_numbers" binding:"required,min=1"`
	Price             float64   `json:"price" binding:"required"`
	MinPayment        float64   `json:"min_payment" binding:"required"`
	Comment           *string   `json:"comment,omitempty"`
}

type AddPromoRequest struct {
	Type                  string  `json:"type" binding:"required"`
	Value                 float64 `json:"value"`
	Amount                int     `json:"amount"`
	MaxUsesPerReservation int     `json:"max_uses_per_reservation"`
	Code                  string  `json:"code" binding:"required"`
	Show                  bool    `json:"show"`
	Comment               *string `json:"comment,omitempty"`
}

type TourLifecycleRequest struct {
	Comment *string `json:"comment,omitempty"`
}
