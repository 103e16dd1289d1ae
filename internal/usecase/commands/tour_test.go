//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"tour-booking/internal/domain/history"
	"tour-booking/internal/domain/reservation"
	"tour-booking/internal/domain/tour"
	"tour-booking/internal/pkg/clock"
	"tour-booking/internal/pkg/errs"
	"tour-booking/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTourCreate(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	newUseCase := func(u *fakeUoW) commands.TourCommands {
		return commands.NewTourUseCase(u, clock.NewMockClock(now))
	}

	t.Run("stores the tour and records its creation", func(t *testing.T) {
		u := newFakeUoW()
		uc := newUseCase(u)

		id, err := uc.Create(ctx, commands.CreateTourRequest{
			TemplateID:        uuid.New(),
			Name:              "City walk",
			StartingDate:      now.Add(48 * time.Hour),
			TotalSeats:        4,
			TotalSeatsNumbers: []int{1, 2, 3, 4},
			Price:             100,
			MinPayment:        50,
		}, testActor)
		require.NoError(t, err)
		require.NotEqual(t, uuid.Nil, id)

		stored := u.tx.tours.items[id]
		require.NotNil(t, stored)
		assert.Equal(t, tour.StatusActive, stored.Status())
		assert.Len(t, u.tx.history.byEntity(history.KindTour), 1)
	})

	t.Run("rejects a starting date in the past", func(t *testing.T) {
		u := newFakeUoW()
		uc := newUseCase(u)

		_, err := uc.Create(ctx, commands.CreateTourRequest{
			TemplateID:        uuid.New(),
			Name:              "City walk",
			StartingDate:      now.Add(-time.Hour),
			TotalSeats:        4,
			TotalSeatsNumbers: []int{1, 2, 3, 4},
			Price:             100,
			MinPayment:        50,
		}, testActor)
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("rejects an invalid definition", func(t *testing.T) {
		u := newFakeUoW()
		uc := newUseCase(u)

		_, err := uc.Create(ctx, commands.CreateTourRequest{
			TemplateID:   uuid.New(),
			Name:         "City walk",
			StartingDate: now.Add(48 * time.Hour),
			TotalSeats:   0,
			Price:        100,
			MinPayment:   50,
		}, testActor)
		assert.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestTourAddPromo(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("attaches the promo to an active tour", func(t *testing.T) {
		u := newFakeUoW()
		tr := seedTour(t, u, 100, 50, 4)
		uc := commands.NewTourUseCase(u, clock.NewMockClock(now))

		err := uc.AddPromo(ctx, tr.ID(), commands.AddPromoRequest{
			Type: string(tour.PromoFlatDiscount), Value: 50, Amount: 5,
			MaxUsesPerReservation: 2, Code: "FLAT", Show: true,
		}, testActor)
		require.NoError(t, err)

		require.Len(t, tr.Promos(), 1)
		assert.Equal(t, "FLAT", tr.Promos()[0].Code())
		assert.Len(t, u.tx.history.byEntity(history.KindTour), 1)
	})

	t.Run("unknown tour", func(t *testing.T) {
		u := newFakeUoW()
		uc := commands.NewTourUseCase(u, clock.NewMockClock(now))

		err := uc.AddPromo(ctx, uuid.New(), commands.AddPromoRequest{
			Type: string(tour.PromoFlatDiscount), Value: 50, Amount: 5,
			MaxUsesPerReservation: 2, Code: "FLAT", Show: true,
		}, testActor)
		assert.ErrorIs(t, err, errs.ErrTourNotFound)
	})

	t.Run("canceled tours take no promos", func(t *testing.T) {
		u := newFakeUoW()
		tr := seedTour(t, u, 100, 50, 4)
		require.NoError(t, tr.Cancel())
		uc := commands.NewTourUseCase(u, clock.NewMockClock(now))

		err := uc.AddPromo(ctx, tr.ID(), commands.AddPromoRequest{
			Type: string(tour.PromoFlatDiscount), Value: 50, Amount: 5,
			MaxUsesPerReservation: 2, Code: "FLAT", Show: true,
		}, testActor)
		assert.ErrorIs(t, err, errs.ErrStateConflict)
	})
}

func TestCancelTour(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	u := newFakeUoW()
	tr := seedTour(t, u, 100, 50, 10)
	c := seedClient(t, u, "555-0101")
	resUC := commands.NewReservationUseCase(u)
	tourUC := commands.NewTourUseCase(u, clock.NewMockClock(now))

	// one paid reservation, one unpaid, one already terminal
	paid, err := resUC.Create(ctx, commands.CreateReservationRequest{
		TourID: tr.ID(), ClientID: c.ID(), SeatsAmount: 2,
	}, testActor)
	require.NoError(t, err)
	require.NoError(t, resUC.Deposit(ctx, paid, 100, testActor))

	unpaid, err := resUC.Create(ctx, commands.CreateReservationRequest{
		TourID: tr.ID(), ClientID: c.ID(), SeatsAmount: 1,
	}, testActor)
	require.NoError(t, err)

	canceled, err := resUC.Create(ctx, commands.CreateReservationRequest{
		TourID: tr.ID(), ClientID: c.ID(), SeatsAmount: 1,
	}, testActor)
	require.NoError(t, err)
	require.NoError(t, resUC.CancelByClient(ctx, canceled, true, testActor))

	result, err := tourUC.CancelTour(ctx, tr.ID(), testActor)
	require.NoError(t, err)

	assert.Equal(t, 2, result.UpdatedReservations)
	assert.Equal(t, 1, result.ReservationsWithDevolutions)
	assert.Equal(t, tour.StatusCanceled, tr.Status())
	assert.Equal(t, 0, tr.ReservedSeatsAmount())

	assert.Equal(t, reservation.CodePendingDevolution, u.tx.reservations.items[paid].Status().Code())
	assert.InDelta(t, 100.0, u.tx.reservations.items[paid].PendingDevolution(), 1e-9)
	assert.Equal(t, reservation.CodeTourCanceled, u.tx.reservations.items[unpaid].Status().Code())
	assert.Equal(t, reservation.CodeCanceledByClient, u.tx.reservations.items[canceled].Status().Code())

	_, err = tourUC.CancelTour(ctx, tr.ID(), testActor)
	assert.ErrorIs(t, err, errs.ErrStateConflict)
}

func TestCompleteTour(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	u := newFakeUoW()
	tr := seedTour(t, u, 100, 50, 10)
	c := seedClient(t, u, "555-0101")
	resUC := commands.NewReservationUseCase(u)
	tourUC := commands.NewTourUseCase(u, clock.NewMockClock(now))

	// overpaid by 50, so a devolution survives the completion
	owed, err := resUC.Create(ctx, commands.CreateReservationRequest{
		TourID: tr.ID(), ClientID: c.ID(), SeatsAmount: 2,
	}, testActor)
	require.NoError(t, err)
	require.NoError(t, resUC.Deposit(ctx, owed, 250, testActor))

	open, err := resUC.Create(ctx, commands.CreateReservationRequest{
		TourID: tr.ID(), ClientID: c.ID(), SeatsAmount: 1,
	}, testActor)
	require.NoError(t, err)

	result, err := tourUC.CompleteTour(ctx, tr.ID(), testActor)
	require.NoError(t, err)

	assert.Equal(t, 2, result.UpdatedReservations)
	assert.Equal(t, 1, result.ReservationsWithDevolutions)
	assert.Equal(t, tour.StatusCompleted, tr.Status())

	assert.Equal(t, reservation.CodePendingDevolution, u.tx.reservations.items[owed].Status().Code())
	assert.Equal(t, reservation.CodeCompleted, u.tx.reservations.items[open].Status().Code())

	_, err = tourUC.CompleteTour(ctx, tr.ID(), testActor)
	assert.ErrorIs(t, err, errs.ErrStateConflict)
}
