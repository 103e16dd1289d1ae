package reservation

import (
	"errors"
	"fmt"
	"math"
	"time"

	"tour-booking/internal/domain/client"
	"tour-booking/internal/domain/tour"

	"github.com/google/uuid"
)

var (
	ErrDepositNotAllowed    = errors.New("reservation does not accept deposits in its current state")
	ErrNotChoosingSeats     = errors.New("reservation is not in the seat-selection state")
	ErrSeatCountMismatch    = errors.New("seat list size must match the reserved seat amount")
	ErrDuplicateSeats       = errors.New("seat list contains duplicates")
	ErrNoDevolutionDue      = errors.New("reservation has no devolution in progress")
	ErrSeatsNotOwned        = errors.New("reservation does not hold the listed seats")
	ErrMustKeepOneSeat      = errors.New("reservation must keep at least one seat")
	ErrHasExtraDiscounts    = errors.New("reservations with extra discounts cannot reduce seats")
	ErrAlreadyCanceled      = errors.New("reservation is already canceled")
	ErrDevolutionOwed       = errors.New("pending devolutions must be settled before canceling")
	ErrNotReducible         = errors.New("reservation does not admit this change in its current state")
	ErrDiscountTooLarge     = errors.New("discount would drop the price below the amount already paid")
	ErrPaymentBelowZero     = errors.New("amount paid cannot become negative")
	ErrInvalidAmount        = errors.New("amount must be a positive finite number")
	ErrInvalidSeatAmount    = errors.New("seat amount must be a positive integer")
	ErrEmptySeatList        = errors.New("seat list cannot be empty")
	ErrSeatsAlreadyAssigned = errors.New("reservation already has its seats assigned")
)

// DevolutionExceedsError reports the actual balance when a devolution
// reduction asks for more than is pending.
type DevolutionExceedsError struct {
	Requested float64
	Pending   float64
}

func (e *DevolutionExceedsError) Error() string {
	return fmt.Sprintf("devolution reduction of %.2f exceeds pending balance %.2f", e.Requested, e.Pending)
}

// PaymentOutcome reports the side effects a payment-shaped operation
// asks the caller to apply to the client.
type PaymentOutcome struct {
	ReputationDelta int
}

// SeatReleaseOutcome reports seats and holds a cancellation-shaped
// operation releases back to the tour, plus the reputation effect.
type SeatReleaseOutcome struct {
	ReleasedSeats   []int
	ReleasedHold    int
	ReputationDelta int
	Devolution      float64
}

// Reservation is a client's hold of N seats on a tour, driven through
// its payment and seat-selection lifecycle exclusively by the methods
// below. Reservations are never physically deleted.
type Reservation struct {
	id                    uuid.UUID
	tourID                uuid.UUID
	clientID              uuid.UUID
	reservedSeatsAmount   int
	confirmedSeats        []int
	promoApplied          *tour.AppliedPromo
	priceWithoutDiscounts float64
	priceToReserve        float64
	totalPrice            float64
	priceToPay            float64
	amountPaid            float64
	pendingDevolution     float64
	status                Status
	hasExtraDiscounts     bool
	isActive              bool
	createdAt             time.Time
	updatedAt             time.Time
}

// NewReservation books seats at the quoted prices. Payment starts at
// zero, so the initial state is always Pending. The creation reward
// for the client is returned alongside.
func NewReservation(
	tourID, clientID uuid.UUID,
	seats int,
	quote Quote,
	promo *tour.AppliedPromo,
) (*Reservation, PaymentOutcome, error) {
	if seats <= 0 {
		return nil, PaymentOutcome{}, ErrInvalidSeatAmount
	}

	r := &Reservation{
		id:                    uuid.New(),
		tourID:                tourID,
		clientID:              clientID,
		reservedSeatsAmount:   seats,
		promoApplied:          promo,
		priceWithoutDiscounts: quote.PriceWithoutDiscounts,
		priceToReserve:        quote.PriceToReserve,
		totalPrice:            quote.TotalPrice,
		priceToPay:            quote.PriceToPay,
		status:                mustStatus(CodePending),
		isActive:              true,
	}
	outcome := PaymentOutcome{ReputationDelta: client.ReputationGainOnCreate(quote.PriceToPay)}
	return r, outcome, nil
}

func Reconstruct(
	id, tourID, clientID uuid.UUID,
	reservedSeatsAmount int,
	confirmedSeats []int,
	promoApplied *tour.AppliedPromo,
	priceWithoutDiscounts, priceToReserve, totalPrice, priceToPay, amountPaid, pendingDevolution float64,
	status Status,
	hasExtraDiscounts, isActive bool,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:                    id,
		tourID:                tourID,
		clientID:              clientID,
		reservedSeatsAmount:   reservedSeatsAmount,
		confirmedSeats:        confirmedSeats,
		promoApplied:          promoApplied,
		priceWithoutDiscounts: priceWithoutDiscounts,
		priceToReserve:        priceToReserve,
		totalPrice:            totalPrice,
		priceToPay:            priceToPay,
		amountPaid:            amountPaid,
		pendingDevolution:     pendingDevolution,
		status:                status,
		hasExtraDiscounts:     hasExtraDiscounts,
		isActive:              isActive,
		createdAt:             createdAt,
		updatedAt:             updatedAt,
	}
}

// paymentThresholds re-derives the status from the paid amount.
// Amounts within 1 unit of price_to_pay count as paid in full, so
// rounding noise in money arithmetic never strands a reservation.
// Returns the full-payment flag for reputation attribution.
func (r *Reservation) paymentThresholds() (fullyPaid bool) {
	switch {
	case r.amountPaid > r.priceToPay+1:
		r.status = mustStatus(CodeChooseSeats)
		r.pendingDevolution = math.Max(r.amountPaid-r.priceToPay, 0)
		return true
	case r.amountPaid > r.priceToPay-1:
		r.status = mustStatus(CodeChooseSeats)
		r.pendingDevolution = 0
		return true
	case r.amountPaid >= r.priceToReserve:
		r.status = mustStatus(CodeAccepted)
		r.pendingDevolution = 0
		return false
	default:
		r.pendingDevolution = 0
		return false
	}
}

// Deposit records a payment. Crossing the full-payment threshold
// earns the client triple the creation reward, once.
func (r *Reservation) Deposit(amount float64) (PaymentOutcome, error) {
	if err := validAmount(amount); err != nil {
		return PaymentOutcome{}, err
	}
	if r.status.code != CodePending && r.status.code != CodeAccepted {
		return PaymentOutcome{}, ErrDepositNotAllowed
	}

	r.amountPaid += amount
	fullyPaid := r.paymentThresholds()

	var outcome PaymentOutcome
	if fullyPaid {
		outcome.ReputationDelta = client.ReputationGainOnFullPayment(r.priceToPay)
	}
	return outcome, nil
}

// ChooseSeats assigns concrete seat numbers once the reservation is
// fully paid. Availability against the tour is the caller's check;
// this validates shape and drives the status.
func (r *Reservation) ChooseSeats(seats []int) error {
	if r.status.code != CodeChooseSeats {
		return ErrNotChoosingSeats
	}
	if len(seats) == 0 {
		return ErrEmptySeatList
	}
	if len(seats) != r.reservedSeatsAmount {
		return ErrSeatCountMismatch
	}
	if hasDuplicateSeats(seats) {
		return ErrDuplicateSeats
	}

	r.confirmedSeats = append([]int(nil), seats...)
	if r.pendingDevolution > 0 {
		r.status = mustPendingDevolution(CodeCompleted)
	} else {
		r.status = mustStatus(CodeCompleted)
	}
	return nil
}

// MakeDevolution pays back part of the pending balance. Paying the
// full remainder (or more) advances to the recorded follow-up state;
// the balance never goes negative.
func (r *Reservation) MakeDevolution(amount float64) (advanced bool, err error) {
	if err := validAmount(amount); err != nil {
		return false, err
	}
	if r.status.code != CodePendingDevolution {
		return false, ErrNoDevolutionDue
	}

	if amount >= r.pendingDevolution {
		r.pendingDevolution = 0
		r.status = mustStatus(r.status.next)
		return true, nil
	}
	r.pendingDevolution -= amount
	return false, nil
}

// ChangeConfirmedSeats swaps the assigned seat numbers for an equally
// sized set. Returns the previous set so the caller can swap them on
// the tour inside the same transaction.
func (r *Reservation) ChangeConfirmedSeats(seats []int) (oldSeats []int, err error) {
	if r.status.code != CodeCompleted && r.status.code != CodePendingDevolution {
		return nil, ErrNotReducible
	}
	if len(seats) == 0 {
		return nil, ErrEmptySeatList
	}
	if len(seats) != len(r.confirmedSeats) {
		return nil, ErrSeatCountMismatch
	}
	if hasDuplicateSeats(seats) {
		return nil, ErrDuplicateSeats
	}

	oldSeats = r.confirmedSeats
	r.confirmedSeats = append([]int(nil), seats...)
	return oldSeats, nil
}

// ReduceReservedSeats shrinks the seat count before seats are chosen
// and reprices the reservation from scratch. A 2x1 promo is re-capped
// for the new count. Without a promo, an Accepted reservation pays a
// surcharge of min_payment per removed seat when the flag is set.
func (r *Reservation) ReduceReservedSeats(
	removed int,
	tourPrice, tourMinPayment float64,
	surcharge bool,
) (PaymentOutcome, error) {
	if removed <= 0 {
		return PaymentOutcome{}, ErrInvalidSeatAmount
	}
	if r.status.code != CodePending && r.status.code != CodeAccepted {
		return PaymentOutcome{}, ErrNotReducible
	}
	newSeats := r.reservedSeatsAmount - removed
	if newSeats <= 0 {
		return PaymentOutcome{}, ErrMustKeepOneSeat
	}
	if r.hasExtraDiscounts {
		return PaymentOutcome{}, ErrHasExtraDiscounts
	}

	wasAccepted := r.status.code == CodeAccepted
	oldPriceToPay := r.priceToPay

	var newPromo *tour.AppliedPromo
	if r.promoApplied != nil {
		recapped := r.promoApplied.RecapForSeats(newSeats)
		newPromo = &recapped
	}
	quote := ComputeQuote(newSeats, tourPrice, tourMinPayment, newPromo)
	if newPromo == nil && wasAccepted && surcharge {
		quote.PriceToReserve += tourMinPayment * float64(removed)
		quote.PriceToPay += tourMinPayment * float64(removed)
	}

	r.reservedSeatsAmount = newSeats
	r.promoApplied = newPromo
	r.priceToReserve = quote.PriceToReserve
	r.priceToPay = quote.PriceToPay

	reduction := client.ReputationLossOnSeatReduction(oldPriceToPay, r.priceToPay, wasAccepted)
	fullyPaid := r.paymentThresholds()

	outcome := PaymentOutcome{ReputationDelta: reduction}
	if fullyPaid {
		outcome.ReputationDelta += client.ReputationGainOnFullPayment(r.priceToPay)
	}
	return outcome, nil
}

// ReduceConfirmedSeats gives back specific assigned seats after the
// reservation completed. Prices stay as they are; the penalty is the
// steep confirmed-seat rate.
func (r *Reservation) ReduceConfirmedSeats(seats []int, tourPrice float64) (SeatReleaseOutcome, error) {
	if r.status.code != CodeCompleted && r.status.code != CodePendingDevolution {
		return SeatReleaseOutcome{}, ErrNotReducible
	}
	if len(seats) == 0 {
		return SeatReleaseOutcome{}, ErrEmptySeatList
	}
	if hasDuplicateSeats(seats) {
		return SeatReleaseOutcome{}, ErrDuplicateSeats
	}
	owned := make(map[int]struct{}, len(r.confirmedSeats))
	for _, s := range r.confirmedSeats {
		owned[s] = struct{}{}
	}
	for _, s := range seats {
		if _, ok := owned[s]; !ok {
			return SeatReleaseOutcome{}, ErrSeatsNotOwned
		}
	}
	if r.reservedSeatsAmount-len(seats) <= 0 {
		return SeatReleaseOutcome{}, ErrMustKeepOneSeat
	}

	drop := make(map[int]struct{}, len(seats))
	for _, s := range seats {
		drop[s] = struct{}{}
	}
	kept := make([]int, 0, len(r.confirmedSeats)-len(seats))
	for _, s := range r.confirmedSeats {
		if _, ok := drop[s]; !ok {
			kept = append(kept, s)
		}
	}
	r.confirmedSeats = kept
	r.reservedSeatsAmount -= len(seats)

	return SeatReleaseOutcome{
		ReleasedSeats:   seats,
		ReleasedHold:    len(seats),
		ReputationDelta: client.ReputationLossOnConfirmedSeatDrop(tourPrice, len(seats)),
	}, nil
}

func (r *Reservation) cancelGuard(requireNoDevolution bool) error {
	if r.status.IsCanceled() {
		return ErrAlreadyCanceled
	}
	if requireNoDevolution && r.pendingDevolution > 0 {
		return ErrDevolutionOwed
	}
	return nil
}

func (r *Reservation) cancellationSeverity() client.CancellationSeverity {
	switch r.status.code {
	case CodePending:
		return client.SeverityPending
	case CodeAccepted:
		return client.SeverityAccepted
	default:
		return client.SeverityConfirmed
	}
}

// CancelByClient cancels at the client's request, with no devolution
// computed. Any pending devolution must be settled first unless an
// admin disabled that guard.
func (r *Reservation) CancelByClient(tourPrice float64, requireNoDevolution bool) (SeatReleaseOutcome, error) {
	if err := r.cancelGuard(requireNoDevolution); err != nil {
		return SeatReleaseOutcome{}, err
	}

	outcome := SeatReleaseOutcome{
		ReleasedSeats:   r.confirmedSeats,
		ReleasedHold:    r.reservedSeatsAmount,
		ReputationDelta: client.ReputationLossOnCancel(tourPrice, r.reservedSeatsAmount, r.cancellationSeverity()),
	}
	r.confirmedSeats = nil
	r.status = mustStatus(CodeCanceledByClient)
	return outcome, nil
}

// CancelWithoutDevolutions is the admin cancellation that keeps all
// money paid. The reputation penalty can be suppressed.
func (r *Reservation) CancelWithoutDevolutions(tourPrice float64, changeReputation bool) (SeatReleaseOutcome, error) {
	if err := r.cancelGuard(true); err != nil {
		return SeatReleaseOutcome{}, err
	}

	outcome := SeatReleaseOutcome{
		ReleasedSeats: r.confirmedSeats,
		ReleasedHold:  r.reservedSeatsAmount,
	}
	if changeReputation {
		outcome.ReputationDelta = client.ReputationLossOnCancel(tourPrice, r.reservedSeatsAmount, r.cancellationSeverity())
	}
	r.confirmedSeats = nil
	r.status = mustStatus(CodeCanceled)
	return outcome, nil
}

// CancelWithDevolutions is the admin cancellation that owes money
// back: everything paid (full) or everything above the reserve
// minimum (partial). A positive devolution holds the reservation in
// the devolution state on its way to Canceled.
func (r *Reservation) CancelWithDevolutions(full bool) (SeatReleaseOutcome, error) {
	if err := r.cancelGuard(false); err != nil {
		return SeatReleaseOutcome{}, err
	}

	devolution := r.amountPaid
	if !full {
		devolution = math.Max(r.amountPaid-r.priceToReserve, 0)
	}

	outcome := SeatReleaseOutcome{
		ReleasedSeats: r.confirmedSeats,
		ReleasedHold:  r.reservedSeatsAmount,
		Devolution:    devolution,
	}
	r.confirmedSeats = nil
	if devolution > 0 {
		r.pendingDevolution = devolution
		r.status = mustPendingDevolution(CodeCanceled)
	} else {
		r.status = mustStatus(CodeCanceled)
	}
	return outcome, nil
}

// CancelForTour applies the full-devolution treatment during a bulk
// tour cancellation, landing on the tour-canceled terminal state.
// Terminal reservations report skipped=true and stay untouched.
func (r *Reservation) CancelForTour() (outcome SeatReleaseOutcome, skipped bool) {
	if r.status.IsTerminal() {
		return SeatReleaseOutcome{}, true
	}

	devolution := r.amountPaid
	outcome = SeatReleaseOutcome{
		ReleasedSeats: r.confirmedSeats,
		ReleasedHold:  r.reservedSeatsAmount,
		Devolution:    devolution,
	}
	r.confirmedSeats = nil
	if devolution > 0 {
		r.pendingDevolution = devolution
		r.status = mustPendingDevolution(CodeTourCanceled)
	} else {
		r.status = mustStatus(CodeTourCanceled)
	}
	return outcome, false
}

// CompleteForTour settles the reservation during a bulk tour
// completion. A pending balance keeps it in the devolution state on
// its way to Completed.
func (r *Reservation) CompleteForTour() (hasDevolution bool, skipped bool) {
	if r.status.IsTerminal() {
		return false, true
	}

	if r.pendingDevolution > 0 {
		r.status = mustPendingDevolution(CodeCompleted)
		return true, false
	}
	r.status = mustStatus(CodeCompleted)
	return false, false
}

// AddDiscount lowers the price to pay by a flat amount and marks the
// reservation so later seat reductions are blocked. The reserve
// minimum never exceeds the discounted total.
func (r *Reservation) AddDiscount(amount float64) (PaymentOutcome, error) {
	if err := validAmount(amount); err != nil {
		return PaymentOutcome{}, err
	}
	if r.status.code != CodePending && r.status.code != CodeAccepted {
		return PaymentOutcome{}, ErrNotReducible
	}
	newPriceToPay := r.priceToPay - amount
	if newPriceToPay < 0 || newPriceToPay < r.amountPaid {
		return PaymentOutcome{}, ErrDiscountTooLarge
	}

	r.priceToPay = newPriceToPay
	r.priceToReserve = math.Min(r.priceToReserve, newPriceToPay)
	r.hasExtraDiscounts = true

	fullyPaid := r.paymentThresholds()
	var outcome PaymentOutcome
	if fullyPaid {
		outcome.ReputationDelta = client.ReputationGainOnFullPayment(r.priceToPay)
	}
	return outcome, nil
}

// ReduceAmountPaid corrects a mistaken payment record. The status is
// re-derived from the reserve threshold alone.
func (r *Reservation) ReduceAmountPaid(amount float64) error {
	if err := validAmount(amount); err != nil {
		return err
	}
	if r.status.code != CodePending && r.status.code != CodeAccepted {
		return ErrNotReducible
	}
	newPaid := r.amountPaid - amount
	if newPaid < 0 {
		return ErrPaymentBelowZero
	}

	r.amountPaid = newPaid
	if newPaid >= r.priceToReserve {
		r.status = mustStatus(CodeAccepted)
	} else {
		r.status = mustStatus(CodePending)
	}
	return nil
}

// ReducePendingDevolution lowers the owed balance by decree. Only
// paying out the exact full remainder advances the status.
func (r *Reservation) ReducePendingDevolution(amount float64) (advanced bool, err error) {
	if err := validAmount(amount); err != nil {
		return false, err
	}
	if r.status.code != CodePendingDevolution {
		return false, ErrNoDevolutionDue
	}
	if amount > r.pendingDevolution {
		return false, &DevolutionExceedsError{Requested: amount, Pending: r.pendingDevolution}
	}

	r.pendingDevolution -= amount
	if r.pendingDevolution == 0 {
		r.status = mustStatus(r.status.next)
		return true, nil
	}
	return false, nil
}

func (r *Reservation) ID() uuid.UUID                    { return r.id }
func (r *Reservation) TourID() uuid.UUID                { return r.tourID }
func (r *Reservation) ClientID() uuid.UUID              { return r.clientID }
func (r *Reservation) ReservedSeatsAmount() int         { return r.reservedSeatsAmount }
func (r *Reservation) ConfirmedSeats() []int            { return r.confirmedSeats }
func (r *Reservation) PromoApplied() *tour.AppliedPromo { return r.promoApplied }
func (r *Reservation) PriceWithoutDiscounts() float64   { return r.priceWithoutDiscounts }
func (r *Reservation) PriceToReserve() float64          { return r.priceToReserve }
func (r *Reservation) TotalPrice() float64              { return r.totalPrice }
func (r *Reservation) PriceToPay() float64              { return r.priceToPay }
func (r *Reservation) AmountPaid() float64              { return r.amountPaid }
func (r *Reservation) PendingDevolution() float64       { return r.pendingDevolution }
func (r *Reservation) Status() Status                   { return r.status }
func (r *Reservation) HasExtraDiscounts() bool          { return r.hasExtraDiscounts }
func (r *Reservation) IsActive() bool                   { return r.isActive }
func (r *Reservation) CreatedAt() time.Time             { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time             { return r.updatedAt }

func validAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func hasDuplicateSeats(seats []int) bool {
	seen := make(map[int]struct{}, len(seats))
	for _, s := range seats {
		if _, ok := seen[s]; ok {
			return true
		}
		seen[s] = struct{}{}
	}
	return false
}
