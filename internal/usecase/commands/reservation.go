package commands

import (
	"context"
	"fmt"

	"tour-booking/internal/domain/history"
	"tour-booking/internal/domain/reservation"
	"tour-booking/internal/domain/tour"
	"tour-booking/internal/pkg/errs"
	"tour-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	TourID      uuid.UUID
	ClientID    uuid.UUID
	SeatsAmount int
	PromoCode   string
	PromoAmount int
}

type ReservationCommands interface {
	Create(ctx context.Context, req CreateReservationRequest, actor history.Actor) (uuid.UUID, error)
	Deposit(ctx context.Context, id uuid.UUID, amount float64, actor history.Actor) error
	ChooseSeats(ctx context.Context, id uuid.UUID, seats []int, actor history.Actor) error
	MakeDevolution(ctx context.Context, id uuid.UUID, amount float64, actor history.Actor) error
	ChangeConfirmedSeats(ctx context.Context, id uuid.UUID, seats []int, actor history.Actor) error
	ReduceReservedSeats(ctx context.Context, id uuid.UUID, amount int, surcharge bool, actor history.Actor) error
	ReduceConfirmedSeats(ctx context.Context, id uuid.UUID, seats []int, actor history.Actor) error
	CancelByClient(ctx context.Context, id uuid.UUID, requireNoDevolution bool, actor history.Actor) error
}

type reservationUseCaseImpl struct {
	uow shared.UnitOfWork
}

func NewReservationUseCase(uow shared.UnitOfWork) ReservationCommands {
	return &reservationUseCaseImpl{uow: uow}
}

func (uc *reservationUseCaseImpl) Create(ctx context.Context, req CreateReservationRequest, actor history.Actor) (uuid.UUID, error) {
	if req.SeatsAmount <= 0 {
		return uuid.Nil, errs.Mark(reservation.ErrInvalidSeatAmount, errs.ErrValidation)
	}
	if req.PromoCode != "" && req.PromoAmount <= 0 {
		return uuid.Nil, errs.Mark(errs.New("promo amount must be a positive integer"), errs.ErrValidation)
	}

	// Fail fast on missing references before opening the transaction
	reads := uc.uow.CommandReads()
	tourSnap, err := reads.TourByID(ctx, req.TourID)
	if err != nil {
		return uuid.Nil, wrapTourErr(err)
	}
	if !tourSnap.IsActive {
		return uuid.Nil, errs.Mark(errs.New("tour is not active"), errs.ErrTourNotFound)
	}
	clientSnap, err := reads.ClientByID(ctx, req.ClientID)
	if err != nil {
		return uuid.Nil, wrapClientErr(err)
	}
	if !clientSnap.IsActive {
		return uuid.Nil, errs.Mark(errs.New("client is not active"), errs.ErrClientNotFound)
	}

	var createdID uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		t, derr := tx.Tours().FindByID(ctx, tx.DB(), req.TourID)
		if derr != nil {
			return wrapTourErr(derr)
		}

		if derr = t.HoldSeats(req.SeatsAmount); derr != nil {
			return wrapDomainErr(derr)
		}

		var applied *tour.AppliedPromo
		if req.PromoCode != "" {
			promo, perr := t.FindPromo(req.PromoCode)
			if perr != nil {
				return wrapDomainErr(perr)
			}
			snapshot, perr := promo.Apply(req.PromoAmount, req.SeatsAmount)
			if perr != nil {
				return wrapDomainErr(perr)
			}
			applied = &snapshot
		}

		quote := reservation.ComputeQuote(req.SeatsAmount, t.Price(), t.MinPayment(), applied)
		res, outcome, derr := reservation.NewReservation(req.TourID, req.ClientID, req.SeatsAmount, quote, applied)
		if derr != nil {
			return wrapDomainErr(derr)
		}

		id, derr := tx.Reservations().Create(ctx, tx.DB(), res)
		if derr != nil {
			return derr
		}
		createdID = id

		if derr = tx.Tours().Update(ctx, tx.DB(), t); derr != nil {
			return derr
		}

		if derr = applyReputation(ctx, tx, req.ClientID, outcome.ReputationDelta, actor,
			"Reservation created", fmt.Sprintf("Reservation %s created", id)); derr != nil {
			return derr
		}

		return tx.History().Append(ctx, tx.DB(),
			history.NewEntry(history.KindReservation, id, actor, "Reservation created",
				fmt.Sprintf("Seats reserved: %d. Price to pay: %.2f", req.SeatsAmount, quote.PriceToPay)),
			history.NewEntry(history.KindTour, req.TourID, actor, "Seats reserved",
				fmt.Sprintf("Seats reserved: %d. Reservation: %s", req.SeatsAmount, id)),
		)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return createdID, nil
}

func (uc *reservationUseCaseImpl) Deposit(ctx context.Context, id uuid.UUID, amount float64, actor history.Actor) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := loadReservation(ctx, tx, id)
		if err != nil {
			return err
		}

		outcome, err := res.Deposit(amount)
		if err != nil {
			return wrapDomainErr(err)
		}

		if err = tx.Reservations().Update(ctx, tx.DB(), res); err != nil {
			return err
		}

		desc := fmt.Sprintf("Deposit made: %.2f", amount)
		if res.PendingDevolution() > 0 {
			desc += fmt.Sprintf(". Pending devolution: %.2f", res.PendingDevolution())
		}
		entry := history.NewEntry(history.KindReservation, id, actor, "Deposit", desc).WithAmount(amount)
		if err = tx.History().Append(ctx, tx.DB(), entry); err != nil {
			return err
		}

		return applyReputation(ctx, tx, res.ClientID(), outcome.ReputationDelta, actor,
			"Reservation paid", fmt.Sprintf("Reservation %s fully paid", id))
	})
}

func (uc *reservationUseCaseImpl) ChooseSeats(ctx context.Context, id uuid.UUID, seats []int, actor history.Actor) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := loadReservation(ctx, tx, id)
		if err != nil {
			return err
		}
		t, err := loadTour(ctx, tx, res.TourID())
		if err != nil {
			return err
		}

		if err = res.ChooseSeats(seats); err != nil {
			return wrapDomainErr(err)
		}
		// Availability is validated against the tour row read inside
		// this transaction, not the pre-transaction state.
		if err = t.AssignSeats(seats); err != nil {
			return wrapDomainErr(err)
		}

		if err = tx.Reservations().Update(ctx, tx.DB(), res); err != nil {
			return err
		}
		if err = tx.Tours().Update(ctx, tx.DB(), t); err != nil {
			return err
		}

		return tx.History().Append(ctx, tx.DB(),
			history.NewEntry(history.KindReservation, id, actor, "Seats chosen",
				fmt.Sprintf("Seats assigned: %v", seats)),
			history.NewEntry(history.KindTour, t.ID(), actor, "Seats confirmed",
				fmt.Sprintf("Seats confirmed: %v. Reservation: %s", seats, id)),
		)
	})
}

func (uc *reservationUseCaseImpl) MakeDevolution(ctx context.Context, id uuid.UUID, amount float64, actor history.Actor) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := loadReservation(ctx, tx, id)
		if err != nil {
			return err
		}

		if _, err = res.MakeDevolution(amount); err != nil {
			return wrapDomainErr(err)
		}

		if err = tx.Reservations().Update(ctx, tx.DB(), res); err != nil {
			return err
		}

		entry := history.NewEntry(history.KindReservation, id, actor, "Devolution made",
			fmt.Sprintf("Devolution made: %.2f", amount)).WithAmount(amount)
		return tx.History().Append(ctx, tx.DB(), entry)
	})
}

func (uc *reservationUseCaseImpl) ChangeConfirmedSeats(ctx context.Context, id uuid.UUID, seats []int, actor history.Actor) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := loadReservation(ctx, tx, id)
		if err != nil {
			return err
		}
		t, err := loadTour(ctx, tx, res.TourID())
		if err != nil {
			return err
		}

		oldSeats, err := res.ChangeConfirmedSeats(seats)
		if err != nil {
			return wrapDomainErr(err)
		}
		if err = t.SwapSeats(oldSeats, seats); err != nil {
			return wrapDomainErr(err)
		}

		if err = tx.Reservations().Update(ctx, tx.DB(), res); err != nil {
			return err
		}
		if err = tx.Tours().Update(ctx, tx.DB(), t); err != nil {
			return err
		}

		return tx.History().Append(ctx, tx.DB(),
			history.NewEntry(history.KindReservation, id, actor, "Confirmed seats changed",
				fmt.Sprintf("Seats changed from %v to %v", oldSeats, seats)),
			history.NewEntry(history.KindTour, t.ID(), actor, "Confirmed seats changed",
				fmt.Sprintf("Seats changed from %v to %v. Reservation: %s", oldSeats, seats, id)),
		)
	})
}

func (uc *reservationUseCaseImpl) ReduceReservedSeats(ctx context.Context, id uuid.UUID, amount int, surcharge bool, actor history.Actor) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := loadReservation(ctx, tx, id)
		if err != nil {
			return err
		}
		t, err := loadTour(ctx, tx, res.TourID())
		if err != nil {
			return err
		}

		outcome, err := res.ReduceReservedSeats(amount, t.Price(), t.MinPayment(), surcharge)
		if err != nil {
			return wrapDomainErr(err)
		}
		if err = t.ReleaseHold(amount); err != nil {
			return wrapDomainErr(err)
		}

		if err = tx.Reservations().Update(ctx, tx.DB(), res); err != nil {
			return err
		}
		if err = tx.Tours().Update(ctx, tx.DB(), t); err != nil {
			return err
		}

		if err = tx.History().Append(ctx, tx.DB(),
			history.NewEntry(history.KindReservation, id, actor, "Reserved seats released",
				fmt.Sprintf("Seats released: %d", amount)),
			history.NewEntry(history.KindTour, t.ID(), actor, "Reserved seats released",
				fmt.Sprintf("Seats released: %d. Reservation: %s", amount, id)),
		); err != nil {
			return err
		}

		return applyReputation(ctx, tx, res.ClientID(), outcome.ReputationDelta, actor,
			"Reserved seats released", fmt.Sprintf("Seats released: %d. Reservation: %s", amount, id))
	})
}

func (uc *reservationUseCaseImpl) ReduceConfirmedSeats(ctx context.Context, id uuid.UUID, seats []int, actor history.Actor) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := loadReservation(ctx, tx, id)
		if err != nil {
			return err
		}
		t, err := loadTour(ctx, tx, res.TourID())
		if err != nil {
			return err
		}

		outcome, err := res.ReduceConfirmedSeats(seats, t.Price())
		if err != nil {
			return wrapDomainErr(err)
		}
		t.ReleaseSeats(outcome.ReleasedSeats)
		if err = t.ReleaseHold(outcome.ReleasedHold); err != nil {
			return wrapDomainErr(err)
		}

		if err = tx.Reservations().Update(ctx, tx.DB(), res); err != nil {
			return err
		}
		if err = tx.Tours().Update(ctx, tx.DB(), t); err != nil {
			return err
		}

		if err = tx.History().Append(ctx, tx.DB(),
			history.NewEntry(history.KindReservation, id, actor, "Confirmed seats released",
				fmt.Sprintf("Seats released: %v", seats)),
			history.NewEntry(history.KindTour, t.ID(), actor, "Confirmed seats released",
				fmt.Sprintf("Seats released: %v. Reservation: %s", seats, id)),
		); err != nil {
			return err
		}

		return applyReputation(ctx, tx, res.ClientID(), outcome.ReputationDelta, actor,
			"Confirmed seats released", fmt.Sprintf("Seats released: %d. Reservation: %s", len(seats), id))
	})
}

func (uc *reservationUseCaseImpl) CancelByClient(ctx context.Context, id uuid.UUID, requireNoDevolution bool, actor history.Actor) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := loadReservation(ctx, tx, id)
		if err != nil {
			return err
		}
		t, err := loadTour(ctx, tx, res.TourID())
		if err != nil {
			return err
		}

		outcome, err := res.CancelByClient(t.Price(), requireNoDevolution)
		if err != nil {
			return wrapDomainErr(err)
		}
		t.ReleaseSeats(outcome.ReleasedSeats)
		if err = t.ReleaseHold(outcome.ReleasedHold); err != nil {
			return wrapDomainErr(err)
		}

		if err = tx.Reservations().Update(ctx, tx.DB(), res); err != nil {
			return err
		}
		if err = tx.Tours().Update(ctx, tx.DB(), t); err != nil {
			return err
		}

		if err = tx.History().Append(ctx, tx.DB(),
			history.NewEntry(history.KindReservation, id, actor, "Reservation canceled by client",
				"Reservation canceled by client. No devolutions"),
			history.NewEntry(history.KindTour, t.ID(), actor, "Reservation canceled by client",
				fmt.Sprintf("Reservation: %s", id)),
		); err != nil {
			return err
		}

		return applyReputation(ctx, tx, res.ClientID(), outcome.ReputationDelta, actor,
			"Reservation canceled by client", fmt.Sprintf("Reservation: %s", id))
	})
}

func loadReservation(ctx context.Context, tx shared.Tx, id uuid.UUID) (*reservation.Reservation, error) {
	res, err := tx.Reservations().FindByID(ctx, tx.DB(), id)
	if err != nil {
		return nil, wrapReservationErr(err)
	}
	if !res.IsActive() {
		return nil, errs.Mark(errs.New("reservation is not active"), errs.ErrReservationNotFound)
	}
	return res, nil
}

func loadTour(ctx context.Context, tx shared.Tx, id uuid.UUID) (*tour.Tour, error) {
	t, err := tx.Tours().FindByID(ctx, tx.DB(), id)
	if err != nil {
		return nil, wrapTourErr(err)
	}
	return t, nil
}

// applyReputation adjusts the client's score and records the change.
// Zero deltas are skipped entirely, matching the rule that no-op
// writes leave no history behind.
func applyReputation(ctx context.Context, tx shared.Tx, clientID uuid.UUID, delta int, actor history.Actor, action, desc string) error {
	if delta == 0 {
		return nil
	}

	c, err := tx.Clients().FindByID(ctx, tx.DB(), clientID)
	if err != nil {
		return wrapClientErr(err)
	}
	c.AdjustReputation(delta)
	if err = tx.Clients().Update(ctx, tx.DB(), c); err != nil {
		return err
	}

	entry := history.NewEntry(history.KindClient, clientID, actor, action,
		fmt.Sprintf("%s. Reputation change: %+d", desc, delta))
	return tx.History().Append(ctx, tx.DB(), entry)
}
