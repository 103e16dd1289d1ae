package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type ReservationView struct {
	ID                    uuid.UUID `json:"id"`
	TourID                uuid.UUID `json:"tour_id"`
	TourName              string    `json:"tour_name"`
	ClientID              uuid.UUID `json:"client_id"`
	ClientName            string    `json:"client_name"`
	ReservedSeatsAmount   int32     `json:"reserved_seats_amount"`
	ConfirmedSeats        []int32   `json:"confirmed_seats"`
	PromoType             *string   `json:"promo_type,omitempty"`
	PromoCode             *string   `json:"promo_code,omitempty"`
	PromoAmount           *int32    `json:"promo_amount,omitempty"`
	PriceWithoutDiscounts float64   `json:"price_without_discounts"`
	PriceToReserve        float64   `json:"price_to_reserve"`
	TotalPrice            float64   `json:"total_price"`
	PriceToPay            float64   `json:"price_to_pay"`
	AmountPaid            float64   `json:"amount_paid"`
	PendingDevolution     float64   `json:"pending_devolution"`
	StatusCode            string    `json:"status_code"`
	StatusDescription     string    `json:"status_description"`
	NextStatus            *string   `json:"next_status,omitempty"`
	HasExtraDiscounts     bool      `json:"has_extra_discounts"`
	IsActive              bool      `json:"is_active"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

type ReservationListItem struct {
	ID                  uuid.UUID `json:"id"`
	TourID              uuid.UUID `json:"tour_id"`
	TourName            string    `json:"tour_name"`
	ClientName          string    `json:"client_name"`
	ReservedSeatsAmount int32     `json:"reserved_seats_amount"`
	StatusCode          string    `json:"status_code"`
	PriceToPay          float64   `json:"price_to_pay"`
	AmountPaid          float64   `json:"amount_paid"`
	CreatedAt           time.Time `json:"created_at"`
}

type TourView struct {
	ID                   uuid.UUID   `json:"id"`
	TemplateID           uuid.UUID   `json:"template_id"`
	Name                 string      `json:"name"`
	StartingDate         time.Time   `json:"starting_date"`
	TotalSeats           int32       `json:"total_seats"`
	ReservedSeatsAmount  int32       `json:"reserved_seats_amount"`
	AvailableCapacity    int32       `json:"available_capacity"`
	AvailableSeatNumbers []int32     `json:"available_seat_numbers"`
	ConfirmedSeats       []int32     `json:"confirmed_seats"`
	Price                float64     `json:"price"`
	MinPayment           float64     `json:"min_payment"`
	Status               string      `json:"status"`
	Promos               []PromoView `json:"promos"`
	IsActive             bool        `json:"is_active"`
	CreatedAt            time.Time   `json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`
}

type PromoView struct {
	Code                  string  `json:"code"`
	Type                  string  `json:"type"`
	Value                 float64 `json:"value"`
	Amount                int32   `json:"amount"`
	MaxUsesPerReservation int32   `json:"max_uses_per_reservation"`
	UsedCount             int32   `json:"used_count"`
	Show                  bool    `json:"show"`
	IsActive              bool    `json:"is_active"`
}

type ClientView struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email"`
	Reputation int32     `json:"reputation"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type HistoryEntryView struct {
	ID          uuid.UUID `json:"id"`
	EntityType  string    `json:"entity_type"`
	EntityID    uuid.UUID `json:"entity_id"`
	ActorID     uuid.UUID `json:"actor_id"`
	ActionType  string    `json:"action_type"`
	Description string    `json:"description"`
	Amount      *float64  `json:"amount,omitempty"`
	Comment     string    `json:"user_comments"`
	CreatedAt   time.Time `json:"created_at"`
}
