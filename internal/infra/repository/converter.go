package repository

import (
	"time"

	"tour-booking/internal/domain/reservation"
	"tour-booking/internal/domain/tour"

	"github.com/google/uuid"
)

// reservationRow mirrors the reservations table. Seat numbers travel
// as int4[] and promo columns are nullable as a group.
type reservationRow struct {
	ID                    uuid.UUID
	TourID                uuid.UUID
	ClientID              uuid.UUID
	ReservedSeatsAmount   int32
	Seats                 []int32
	PromoType             *string
	PromoValue            *float64
	PromoCode             *string
	PromoAmount           *int32
	PriceWithoutDiscounts float64
	PriceToReserve        float64
	TotalPrice            float64
	PriceToPay            float64
	AmountPaid            float64
	PendingDevolution     float64
	StatusCode            string
	StatusDescription     string
	StatusNext            *string
	HasExtraDiscounts     bool
	IsActive              bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func (m reservationRow) toDomain() *reservation.Reservation {
	var promo *tour.AppliedPromo
	if m.PromoType != nil {
		promo = &tour.AppliedPromo{
			Type:   tour.PromoType(*m.PromoType),
			Value:  derefFloat(m.PromoValue),
			Code:   derefString(m.PromoCode),
			Amount: int(derefInt32(m.PromoAmount)),
		}
	}

	var next reservation.Code
	if m.StatusNext != nil {
		next = reservation.Code(*m.StatusNext)
	}
	status := reservation.ReconstructStatus(reservation.Code(m.StatusCode), m.StatusDescription, next)

	return reservation.Reconstruct(
		m.ID, m.TourID, m.ClientID,
		int(m.ReservedSeatsAmount),
		seatsFromDB(m.Seats),
		promo,
		m.PriceWithoutDiscounts, m.PriceToReserve, m.TotalPrice, m.PriceToPay,
		m.AmountPaid, m.PendingDevolution,
		status,
		m.HasExtraDiscounts, m.IsActive,
		m.CreatedAt, m.UpdatedAt,
	)
}

func seatsToDB(seats []int) []int32 {
	out := make([]int32, len(seats))
	for i, s := range seats {
		out[i] = int32(s)
	}
	return out
}

func seatsFromDB(seats []int32) []int {
	if seats == nil {
		return nil
	}
	out := make([]int, len(seats))
	for i, s := range seats {
		out[i] = int(s)
	}
	return out
}

func derefFloat(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func derefInt32(v *int32) int32 {
	if v == nil {
		return 0
	}
	return *v
}
