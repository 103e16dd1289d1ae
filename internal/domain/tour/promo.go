package tour

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
)

type PromoType string

const (
	PromoTwoForOne          PromoType = "2x1"
	PromoFlatDiscount       PromoType = "discount"
	PromoPercentageDiscount PromoType = "percentageDiscount"
)

func (t PromoType) IsValid() bool {
	switch t {
	case PromoTwoForOne, PromoFlatDiscount, PromoPercentageDiscount:
		return true
	default:
		return false
	}
}

var (
	ErrPromoNotFound  = errors.New("promo code not found for this tour")
	ErrPromoInactive  = errors.New("promo is no longer active")
	ErrPromoExhausted = errors.New("promo has no uses left")
)

// Promo is a tour-scoped discount rule with a global usage cap and a
// per-reservation cap.
type Promo struct {
	id                    uuid.UUID
	promoType             PromoType
	value                 float64
	amount                int
	maxUsesPerReservation int
	usedCount             int
	show                  bool
	code                  string
	isActive              bool
}

func NewPromo(promoType PromoType, value float64, amount, maxUsesPerReservation int, code string, show bool) (*Promo, error) {
	if !promoType.IsValid() {
		return nil, fmt.Errorf("unknown promo type %q", promoType)
	}
	if amount <= 0 || maxUsesPerReservation <= 0 {
		return nil, errors.New("promo amounts must be positive integers")
	}
	if code == "" {
		return nil, errors.New("promo code cannot be empty")
	}
	return &Promo{
		id:                    uuid.New(),
		promoType:             promoType,
		value:                 value,
		amount:                amount,
		maxUsesPerReservation: maxUsesPerReservation,
		code:                  code,
		show:                  show,
		isActive:              true,
	}, nil
}

func ReconstructPromo(
	id uuid.UUID,
	promoType PromoType,
	value float64,
	amount, maxUsesPerReservation, usedCount int,
	code string,
	show, isActive bool,
) *Promo {
	return &Promo{
		id:                    id,
		promoType:             promoType,
		value:                 value,
		amount:                amount,
		maxUsesPerReservation: maxUsesPerReservation,
		usedCount:             usedCount,
		code:                  code,
		show:                  show,
		isActive:              isActive,
	}
}

// Apply validates a requested number of uses against the promo's caps
// and the reservation's seat count, consumes the uses, and returns the
// snapshot the reservation will carry. Percentage promos are capped at
// a single use regardless of the request.
func (p *Promo) Apply(requestedUses, seats int) (AppliedPromo, error) {
	if !p.isActive {
		return AppliedPromo{}, ErrPromoInactive
	}
	if p.usedCount >= p.amount {
		return AppliedPromo{}, ErrPromoExhausted
	}

	uses := requestedUses
	if p.promoType == PromoPercentageDiscount && uses > 1 {
		uses = 1
	}
	if uses > p.maxUsesPerReservation {
		return AppliedPromo{}, fmt.Errorf("promo allows at most %d uses per reservation", p.maxUsesPerReservation)
	}
	if uses > p.amount-p.usedCount {
		return AppliedPromo{}, ErrPromoExhausted
	}
	if p.promoType == PromoTwoForOne && uses*2 > seats {
		return AppliedPromo{}, fmt.Errorf("2x1 promo needs at least %d seats for %d uses", uses*2, uses)
	}

	p.usedCount += uses
	return AppliedPromo{
		Type:   p.promoType,
		Value:  p.value,
		Code:   p.code,
		Amount: uses,
	}, nil
}

func (p *Promo) ID() uuid.UUID              { return p.id }
func (p *Promo) Type() PromoType            { return p.promoType }
func (p *Promo) Value() float64             { return p.value }
func (p *Promo) Amount() int                { return p.amount }
func (p *Promo) MaxUsesPerReservation() int { return p.maxUsesPerReservation }
func (p *Promo) UsedCount() int             { return p.usedCount }
func (p *Promo) Code() string               { return p.code }
func (p *Promo) Show() bool                 { return p.show }
func (p *Promo) IsActive() bool             { return p.isActive }

// AppliedPromo is the immutable snapshot a reservation keeps of the
// promo it booked with. Only Amount may shrink, when a 2x1 promo is
// re-capped after a seat reduction.
type AppliedPromo struct {
	Type   PromoType
	Value  float64
	Code   string
	Amount int
}

// RecapForSeats returns the snapshot adjusted for a new seat count.
// Only 2x1 promos shrink; the other types keep their applied amount.
func (a AppliedPromo) RecapForSeats(seats int) AppliedPromo {
	if a.Type == PromoTwoForOne {
		capped := int(math.Floor(float64(seats) / 2))
		if capped < a.Amount {
			a.Amount = capped
		}
	}
	return a
}
