package request

import (
	"strings"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	TourID      uuid.UUID `json:"tour_id" binding:"required"`
	ClientID    uuid.UUID `json:"client_id" binding:"required"`
	SeatsAmount int       `json:"seats_amount" binding:"required,min=1"`
	PromoCode   *string   `json:"promo_code,omitempty"`
	PromoAmount *int      `json:"promo_amount,omitempty"`
	Comment     *string   `json:"comment,omitempty"`
}

func (r CreateReservationRequest) GetPromoCode() string {
	if r.PromoCode == nil {
		return ""
	}
	return strings.TrimSpace(*r.PromoCode)
}

func (r CreateReservationRequest) GetPromoAmount() int {
	if r.PromoAmount == nil {
		return 0
	}
	return *r.PromoAmount
}

type AmountRequest struct {
	Amount  float64 `json:"amount" binding:"required"`
	Comment *string `json:"comment,omitempty"`
}

type SeatsRequest struct {
	Seats   []int   `json:"seats" binding:"required,min=1"`
	Comment *string `json:"comment,omitempty"`
}

type ReduceSeatsRequest struct {
	Amount int `json:"amount" binding:"required,min=1"`
	// Admin-only override; non-admin callers always get the surcharge.
	Surcharge *bool   `json:"surcharge,omitempty"`
	Comment   *string `json:"comment,omitempty"`
}

type CancelReservationRequest struct {
	Comment *string `json:"comment,omitempty"`
}

type CancelWithoutDevolutionsRequest struct {
	ChangeReputation *bool   `json:"change_reputation,omitempty"`
	Comment          *string `json:"comment,omitempty"`
}

type CancelWithDevolutionsRequest struct {
	Full    *bool   `json:"full,omitempty"`
	Comment *string `json:"comment,omitempty"`
}
