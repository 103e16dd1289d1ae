package commands

import (
	"context"
	"fmt"
	"time"

	"tour-booking/internal/domain/history"
	"tour-booking/internal/domain/tour"
	"tour-booking/internal/pkg/clock"
	"tour-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateTourRequest struct {
	TemplateID        uuid.UUID
	Name              string
	StartingDate      time.Time
	TotalSeats        int
	TotalSeatsNumbers []int
	Price             float64
	MinPayment        float64
}

type AddPromoRequest struct {
	Type                  string
	Value                 float64
	Amount                int
	MaxUsesPerReservation int
	Code                  string
	Show                  bool
}

// BulkResult summarizes a tour-wide lifecycle operation.
type BulkResult struct {
	UpdatedReservations         int
	ReservationsWithDevolutions int
}

type TourCommands interface {
	Create(ctx context.Context, req CreateTourRequest, actor history.Actor) (uuid.UUID, error)
	AddPromo(ctx context.Context, tourID uuid.UUID, req AddPromoRequest, actor history.Actor) error
	CancelTour(ctx context.Context, tourID uuid.UUID, actor history.Actor) (*BulkResult, error)
	CompleteTour(ctx context.Context, tourID uuid.UUID, actor history.Actor) (*BulkResult, error)
}

type tourUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewTourUseCase(uow shared.UnitOfWork, clock clock.Clock) TourCommands {
	return &tourUseCaseImpl{uow: uow, clock: clock}
}

func (uc *tourUseCaseImpl) Create(ctx context.Context, req CreateTourRequest, actor history.Actor) (uuid.UUID, error) {
	if req.StartingDate.Before(uc.clock.Now()) {
		return uuid.Nil, wrapDomainErr(tour.ErrStartingDatePast)
	}

	t, err := tour.NewTour(req.TemplateID, req.Name, req.StartingDate, req.TotalSeats, req.TotalSeatsNumbers, req.Price, req.MinPayment)
	if err != nil {
		return uuid.Nil, wrapDomainErr(err)
	}

	var createdID uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, derr := tx.Tours().Create(ctx, tx.DB(), t)
		if derr != nil {
			return derr
		}
		createdID = id

		entry := history.NewEntry(history.KindTour, id, actor, "Tour created",
			fmt.Sprintf("Tour created with %d seats at price %.2f", req.TotalSeats, req.Price))
		return tx.History().Append(ctx, tx.DB(), entry)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return createdID, nil
}

func (uc *tourUseCaseImpl) AddPromo(ctx context.Context, tourID uuid.UUID, req AddPromoRequest, actor history.Actor) error {
	promo, err := tour.NewPromo(tour.PromoType(req.Type), req.Value, req.Amount, req.MaxUsesPerReservation, req.Code, req.Show)
	if err != nil {
		return wrapDomainErr(err)
	}

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		t, derr := loadTour(ctx, tx, tourID)
		if derr != nil {
			return derr
		}
		if !t.IsActive() {
			return wrapDomainErr(tour.ErrTourInactive)
		}

		if derr = t.AddPromo(promo); derr != nil {
			return wrapDomainErr(derr)
		}
		if derr = tx.Tours().UpsertPromos(ctx, tx.DB(), tourID, t.Promos()); derr != nil {
			return derr
		}

		entry := history.NewEntry(history.KindTour, tourID, actor, "Promo added",
			fmt.Sprintf("Promo %s added: %s", req.Code, req.Type))
		return tx.History().Append(ctx, tx.DB(), entry)
	})
}

// CancelTour cancels every live reservation of the tour with the
// full-devolution treatment, then flips the tour itself. Everything
// happens in one transaction; a single failure aborts the batch.
func (uc *tourUseCaseImpl) CancelTour(ctx context.Context, tourID uuid.UUID, actor history.Actor) (*BulkResult, error) {
	result := &BulkResult{}
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		t, derr := loadTour(ctx, tx, tourID)
		if derr != nil {
			return derr
		}
		if derr = t.Cancel(); derr != nil {
			return wrapDomainErr(derr)
		}

		reservations, derr := tx.Reservations().FindLiveByTour(ctx, tx.DB(), tourID)
		if derr != nil {
			return derr
		}

		for _, res := range reservations {
			outcome, skipped := res.CancelForTour()
			if skipped {
				continue
			}
			t.ReleaseSeats(outcome.ReleasedSeats)
			if derr = t.ReleaseHold(outcome.ReleasedHold); derr != nil {
				return wrapDomainErr(derr)
			}

			if derr = tx.Reservations().Update(ctx, tx.DB(), res); derr != nil {
				return derr
			}

			desc := "Reservation canceled: tour canceled"
			if outcome.Devolution > 0 {
				desc += fmt.Sprintf(". Devolution owed: %.2f", outcome.Devolution)
				result.ReservationsWithDevolutions++
			}
			entry := history.NewEntry(history.KindReservation, res.ID(), actor, "Tour canceled", desc)
			if derr = tx.History().Append(ctx, tx.DB(), entry); derr != nil {
				return derr
			}
			result.UpdatedReservations++
		}

		if derr = tx.Tours().Update(ctx, tx.DB(), t); derr != nil {
			return derr
		}

		entry := history.NewEntry(history.KindTour, tourID, actor, "Tour canceled",
			fmt.Sprintf("Tour canceled. Reservations updated: %d", result.UpdatedReservations))
		return tx.History().Append(ctx, tx.DB(), entry)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CompleteTour settles every live reservation, holding back the ones
// that still owe the client a devolution.
func (uc *tourUseCaseImpl) CompleteTour(ctx context.Context, tourID uuid.UUID, actor history.Actor) (*BulkResult, error) {
	result := &BulkResult{}
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		t, derr := loadTour(ctx, tx, tourID)
		if derr != nil {
			return derr
		}
		if derr = t.Complete(); derr != nil {
			return wrapDomainErr(derr)
		}

		reservations, derr := tx.Reservations().FindLiveByTour(ctx, tx.DB(), tourID)
		if derr != nil {
			return derr
		}

		for _, res := range reservations {
			hasDevolution, skipped := res.CompleteForTour()
			if skipped {
				continue
			}

			if derr = tx.Reservations().Update(ctx, tx.DB(), res); derr != nil {
				return derr
			}

			desc := "Reservation completed: tour completed"
			if hasDevolution {
				desc += fmt.Sprintf(". Devolution still pending: %.2f", res.PendingDevolution())
				result.ReservationsWithDevolutions++
			}
			entry := history.NewEntry(history.KindReservation, res.ID(), actor, "Tour completed", desc)
			if derr = tx.History().Append(ctx, tx.DB(), entry); derr != nil {
				return derr
			}
			result.UpdatedReservations++
		}

		if derr = tx.Tours().Update(ctx, tx.DB(), t); derr != nil {
			return derr
		}

		entry := history.NewEntry(history.KindTour, tourID, actor, "Tour completed",
			fmt.Sprintf("Tour completed. Reservations updated: %d", result.UpdatedReservations))
		return tx.History().Append(ctx, tx.DB(), entry)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
