package tour

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusActive    Status = "Active"
	StatusCanceled  Status = "Canceled"
	StatusCompleted Status = "Completed"
)

var (
	ErrInvalidDefinition = errors.New("invalid tour definition")
	ErrStartingDatePast  = errors.New("starting date is in the past")
	ErrTourInactive      = errors.New("tour is inactive")
	ErrAlreadyCanceled   = errors.New("tour is already canceled")
	ErrAlreadyCompleted  = errors.New("tour is already completed")
	ErrSeatsNotAvailable = errors.New("requested seats are not available")
	ErrSeatsNotHeld      = errors.New("tour holds fewer reserved seats than requested release")
)

// CapacityError reports how many seats were actually available when a
// hold request could not be satisfied.
type CapacityError struct {
	Requested int
	Available int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("not enough seats: requested %d, available %d", e.Requested, e.Available)
}

// Tour is one scheduled occurrence of a tour template with its own
// seat inventory, pricing and promos.
type Tour struct {
	id                  uuid.UUID
	templateID          uuid.UUID
	name                string
	startingDate        time.Time
	totalSeats          int
	totalSeatsNumbers   []int
	confirmedSeats      []int
	reservedSeatsAmount int
	price               float64
	minPayment          float64
	promos              []*Promo
	status              Status
	isActive            bool
	createdAt           time.Time
	updatedAt           time.Time
}

func NewTour(
	templateID uuid.UUID,
	name string,
	startingDate time.Time,
	totalSeats int,
	totalSeatsNumbers []int,
	price, minPayment float64,
) (*Tour, error) {
	if totalSeats <= 0 {
		return nil, fmt.Errorf("%w: total seats must be positive", ErrInvalidDefinition)
	}
	if len(totalSeatsNumbers) != totalSeats {
		return nil, fmt.Errorf("%w: seat number set size must match total seats", ErrInvalidDefinition)
	}
	if hasDuplicates(totalSeatsNumbers) {
		return nil, fmt.Errorf("%w: seat number set contains duplicates", ErrInvalidDefinition)
	}
	if price <= 0 {
		return nil, fmt.Errorf("%w: price must be positive", ErrInvalidDefinition)
	}
	if minPayment <= 0 || minPayment > price {
		return nil, fmt.Errorf("%w: minimum payment must be positive and not exceed the price", ErrInvalidDefinition)
	}

	return &Tour{
		id:                uuid.New(),
		templateID:        templateID,
		name:              name,
		startingDate:      startingDate,
		totalSeats:        totalSeats,
		totalSeatsNumbers: append([]int(nil), totalSeatsNumbers...),
		price:             price,
		minPayment:        minPayment,
		status:            StatusActive,
		isActive:          true,
	}, nil
}

func ReconstructTour(
	id, templateID uuid.UUID,
	name string,
	startingDate time.Time,
	totalSeats int,
	totalSeatsNumbers, confirmedSeats []int,
	reservedSeatsAmount int,
	price, minPayment float64,
	promos []*Promo,
	status Status,
	isActive bool,
	createdAt, updatedAt time.Time,
) *Tour {
	return &Tour{
		id:                  id,
		templateID:          templateID,
		name:                name,
		startingDate:        startingDate,
		totalSeats:          totalSeats,
		totalSeatsNumbers:   totalSeatsNumbers,
		confirmedSeats:      confirmedSeats,
		reservedSeatsAmount: reservedSeatsAmount,
		price:               price,
		minPayment:          minPayment,
		promos:              promos,
		status:              status,
		isActive:            isActive,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
	}
}

// AvailableCapacity is the number of seats not yet held by a live
// reservation. Capacity checks use the soft hold count, not the
// confirmed seat set.
func (t *Tour) AvailableCapacity() int {
	return t.totalSeats - t.reservedSeatsAmount
}

// HoldSeats reserves capacity for a new reservation.
func (t *Tour) HoldSeats(amount int) error {
	if !t.isActive {
		return ErrTourInactive
	}
	if available := t.AvailableCapacity(); amount > available {
		return &CapacityError{Requested: amount, Available: available}
	}
	t.reservedSeatsAmount += amount
	return nil
}

// ReleaseHold gives back soft-held capacity after a cancellation or a
// seat-count reduction.
func (t *Tour) ReleaseHold(amount int) error {
	if amount > t.reservedSeatsAmount {
		return ErrSeatsNotHeld
	}
	t.reservedSeatsAmount -= amount
	return nil
}

// AvailableSeatNumbers is the assignable set minus the seats already
// confirmed by some reservation.
func (t *Tour) AvailableSeatNumbers() []int {
	taken := make(map[int]struct{}, len(t.confirmedSeats))
	for _, s := range t.confirmedSeats {
		taken[s] = struct{}{}
	}
	available := make([]int, 0, len(t.totalSeatsNumbers)-len(t.confirmedSeats))
	for _, s := range t.totalSeatsNumbers {
		if _, ok := taken[s]; !ok {
			available = append(available, s)
		}
	}
	return available
}

// AssignSeats confirms concrete seat numbers. Every requested seat
// must be in the available set; a single unavailable seat rejects the
// whole request before any write.
func (t *Tour) AssignSeats(seats []int) error {
	if hasDuplicates(seats) {
		return ErrSeatsNotAvailable
	}
	available := toSet(t.AvailableSeatNumbers())
	for _, s := range seats {
		if _, ok := available[s]; !ok {
			return ErrSeatsNotAvailable
		}
	}
	t.confirmedSeats = append(t.confirmedSeats, seats...)
	return nil
}

// ReleaseSeats removes confirmed seat numbers from the tour's set.
// Seats not present are ignored so releases stay idempotent within a
// transaction retry.
func (t *Tour) ReleaseSeats(seats []int) {
	drop := toSet(seats)
	kept := t.confirmedSeats[:0]
	for _, s := range t.confirmedSeats {
		if _, ok := drop[s]; !ok {
			kept = append(kept, s)
		}
	}
	t.confirmedSeats = kept
}

// SwapSeats exchanges a reservation's confirmed seats for a new set of
// the same size. Each new seat must be either already owned by the
// reservation or currently available.
func (t *Tour) SwapSeats(oldSeats, newSeats []int) error {
	if hasDuplicates(newSeats) {
		return ErrSeatsNotAvailable
	}
	owned := toSet(oldSeats)
	available := toSet(t.AvailableSeatNumbers())
	for _, s := range newSeats {
		_, isOwned := owned[s]
		_, isFree := available[s]
		if !isOwned && !isFree {
			return ErrSeatsNotAvailable
		}
	}
	t.ReleaseSeats(oldSeats)
	t.confirmedSeats = append(t.confirmedSeats, newSeats...)
	return nil
}

func (t *Tour) FindPromo(code string) (*Promo, error) {
	for _, p := range t.promos {
		if p.code == code {
			return p, nil
		}
	}
	return nil, ErrPromoNotFound
}

func (t *Tour) AddPromo(p *Promo) error {
	for _, existing := range t.promos {
		if existing.code == p.code && existing.isActive {
			return fmt.Errorf("promo code %q already active on this tour", p.code)
		}
	}
	t.promos = append(t.promos, p)
	return nil
}

// Cancel flips the tour to its canceled terminal state. Releasing the
// per-reservation seats is the caller's job.
func (t *Tour) Cancel() error {
	if t.status == StatusCanceled {
		return ErrAlreadyCanceled
	}
	t.status = StatusCanceled
	t.isActive = false
	return nil
}

func (t *Tour) Complete() error {
	if t.status == StatusCompleted {
		return ErrAlreadyCompleted
	}
	t.status = StatusCompleted
	t.isActive = false
	return nil
}

func (t *Tour) ID() uuid.UUID            { return t.id }
func (t *Tour) TemplateID() uuid.UUID    { return t.templateID }
func (t *Tour) Name() string             { return t.name }
func (t *Tour) StartingDate() time.Time  { return t.startingDate }
func (t *Tour) TotalSeats() int          { return t.totalSeats }
func (t *Tour) TotalSeatsNumbers() []int { return t.totalSeatsNumbers }
func (t *Tour) ConfirmedSeats() []int    { return t.confirmedSeats }
func (t *Tour) ReservedSeatsAmount() int { return t.reservedSeatsAmount }
func (t *Tour) Price() float64           { return t.price }
func (t *Tour) MinPayment() float64      { return t.minPayment }
func (t *Tour) Promos() []*Promo         { return t.promos }
func (t *Tour) Status() Status           { return t.status }
func (t *Tour) IsActive() bool           { return t.isActive }
func (t *Tour) CreatedAt() time.Time     { return t.createdAt }
func (t *Tour) UpdatedAt() time.Time     { return t.updatedAt }

func hasDuplicates(seats []int) bool {
	seen := make(map[int]struct{}, len(seats))
	for _, s := range seats {
		if _, ok := seen[s]; ok {
			return true
		}
		seen[s] = struct{}{}
	}
	return false
}

func toSet(seats []int) map[int]struct{} {
	set := make(map[int]struct{}, len(seats))
	for _, s := range seats {
		set[s] = struct{}{}
	}
	return set
}
