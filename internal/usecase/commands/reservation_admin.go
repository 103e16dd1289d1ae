package commands

import (
	"context"
	"fmt"

	"tour-booking/internal/domain/history"

	"tour-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// AdminReservationCommands are the operator-only corrections:
// cancellations with explicit devolution policies and money fixes.
type AdminReservationCommands interface {
	CancelWithoutDevolutions(ctx context.Context, id uuid.UUID, changeReputation bool, actor history.Actor) error
	CancelWithDevolutions(ctx context.Context, id uuid.UUID, full bool, actor history.Actor) error
	AddDiscount(ctx context.Context, id uuid.UUID, amount float64, actor history.Actor) error
	ReduceAmountPaid(ctx context.Context, id uuid.UUID, amount float64, actor history.Actor) error
	ReducePendingDevolution(ctx context.Context, id uuid.UUID, amount float64, actor history.Actor) error
}

type adminReservationUseCaseImpl struct {
	uow shared.UnitOfWork
}

func NewAdminReservationUseCase(uow shared.UnitOfWork) AdminReservationCommands {
	return &adminReservationUseCaseImpl{uow: uow}
}

func (uc *adminReservationUseCaseImpl) CancelWithoutDevolutions(ctx context.Context, id uuid.UUID, changeReputation bool, actor history.Actor) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := loadReservation(ctx, tx, id)
		if err != nil {
			return err
		}
		t, err := tx.Tours().FindByID(ctx, tx.DB(), res.TourID())
		if err != nil {
			return wrapTourErr(err)
		}

		outcome, err := res.CancelWithoutDevolutions(t.Price(), changeReputation)
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
			history.NewEntry(history.KindReservation, id, actor, "Reservation canceled",
				"Reservation canceled. No devolutions"),
			history.NewEntry(history.KindTour, t.ID(), actor, "Reservation canceled",
				fmt.Sprintf("Reservation: %s", id)),
		); err != nil {
			return err
		}

		return applyReputation(ctx, tx, res.ClientID(), outcome.ReputationDelta, actor,
			"Reservation canceled", fmt.Sprintf("Reservation: %s", id))
	})
}

func (uc *adminReservationUseCaseImpl) CancelWithDevolutions(ctx context.Context, id uuid.UUID, full bool, actor history.Actor) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := loadReservation(ctx, tx, id)
		if err != nil {
			return err
		}
		t, err := tx.Tours().FindByID(ctx, tx.DB(), res.TourID())
		if err != nil {
			return wrapTourErr(err)
		}

		outcome, err := res.CancelWithDevolutions(full)
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

		kind := "full"
		if !full {
			kind = "partial"
		}
		entry := history.NewEntry(history.KindReservation, id, actor, "Reservation canceled",
			fmt.Sprintf("Reservation canceled with %s devolution: %.2f", kind, outcome.Devolution)).
			WithAmount(outcome.Devolution)
		return tx.History().Append(ctx, tx.DB(),
			entry,
			history.NewEntry(history.KindTour, t.ID(), actor, "Reservation canceled",
				fmt.Sprintf("Reservation: %s", id)),
		)
	})
}

func (uc *adminReservationUseCaseImpl) AddDiscount(ctx context.Context, id uuid.UUID, amount float64, actor history.Actor) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := loadReservation(ctx, tx, id)
		if err != nil {
			return err
		}

		outcome, err := res.AddDiscount(amount)
		if err != nil {
			return wrapDomainErr(err)
		}

		if err = tx.Reservations().Update(ctx, tx.DB(), res); err != nil {
			return err
		}

		entry := history.NewEntry(history.KindReservation, id, actor, "Extra discount added",
			fmt.Sprintf("Discount applied: %.2f. New price to pay: %.2f", amount, res.PriceToPay())).
			WithAmount(amount)
		if err = tx.History().Append(ctx, tx.DB(), entry); err != nil {
			return err
		}

		return applyReputation(ctx, tx, res.ClientID(), outcome.ReputationDelta, actor,
			"Reservation paid", fmt.Sprintf("Reservation %s fully paid", id))
	})
}

func (uc *adminReservationUseCaseImpl) ReduceAmountPaid(ctx context.Context, id uuid.UUID, amount float64, actor history.Actor) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := loadReservation(ctx, tx, id)
		if err != nil {
			return err
		}

		if err = res.ReduceAmountPaid(amount); err != nil {
			return wrapDomainErr(err)
		}

		if err = tx.Reservations().Update(ctx, tx.DB(), res); err != nil {
			return err
		}

		entry := history.NewEntry(history.KindReservation, id, actor, "Amount paid reduced",
			fmt.Sprintf("Amount paid reduced by %.2f. New amount paid: %.2f", amount, res.AmountPaid())).
			WithAmount(amount)
		return tx.History().Append(ctx, tx.DB(), entry)
	})
}

func (uc *adminReservationUseCaseImpl) ReducePendingDevolution(ctx context.Context, id uuid.UUID, amount float64, actor history.Actor) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := loadReservation(ctx, tx, id)
		if err != nil {
			return err
		}

		if _, err = res.ReducePendingDevolution(amount); err != nil {
			return wrapDomainErr(err)
		}

		if err = tx.Reservations().Update(ctx, tx.DB(), res); err != nil {
			return err
		}

		entry := history.NewEntry(history.KindReservation, id, actor, "Pending devolution reduced",
			fmt.Sprintf("Pending devolution reduced by %.2f. Remaining: %.2f", amount, res.PendingDevolution())).
			WithAmount(amount)
		return tx.History().Append(ctx, tx.DB(), entry)
	})
}

