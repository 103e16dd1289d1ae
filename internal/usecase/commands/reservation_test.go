//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"tour-booking/internal/domain/client"
	"tour-booking/internal/domain/history"
	"tour-booking/internal/domain/reservation"
	"tour-booking/internal/domain/tour"
	"tour-booking/internal/pkg/errs"
	"tour-booking/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testActor = history.Actor{UserID: uuid.New(), Comment: "via test"}

func seedTour(t *testing.T, u *fakeUoW, price, minPayment float64, seats int) *tour.Tour {
	t.Helper()
	numbers := make([]int, seats)
	for i := range numbers {
		numbers[i] = i + 1
	}
	tr, err := tour.NewTour(uuid.New(), "City walk", time.Now().Add(24*time.Hour), seats, numbers, price, minPayment)
	require.NoError(t, err)
	u.tx.tours.items[tr.ID()] = tr
	return tr
}

func seedClient(t *testing.T, u *fakeUoW, phone string) *client.Client {
	t.Helper()
	c, err := client.NewClient("Ana Torres", phone, "")
	require.NoError(t, err)
	u.tx.clients.items[c.ID()] = c
	return c
}

func TestReservationCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("persists the reservation, holds seats and rewards the client", func(t *testing.T) {
		u := newFakeUoW()
		tr := seedTour(t, u, 1000, 500, 10)
		c := seedClient(t, u, "555-0101")
		uc := commands.NewReservationUseCase(u)

		id, err := uc.Create(ctx, commands.CreateReservationRequest{
			TourID: tr.ID(), ClientID: c.ID(), SeatsAmount: 2,
		}, testActor)
		require.NoError(t, err)
		require.NotEqual(t, uuid.Nil, id)

		res := u.tx.reservations.items[id]
		require.NotNil(t, res)
		assert.Equal(t, reservation.CodePending, res.Status().Code())
		assert.InDelta(t, 2000.0, res.PriceToPay(), 1e-9)
		assert.Equal(t, 2, tr.ReservedSeatsAmount())

		// ptp 2000 earns a creation reward of 2
		assert.Equal(t, 12, c.Reputation())
		assert.Len(t, u.tx.history.byEntity(history.KindReservation), 1)
		assert.Len(t, u.tx.history.byEntity(history.KindTour), 1)
		assert.Len(t, u.tx.history.byEntity(history.KindClient), 1)
	})

	t.Run("zero reward leaves reputation and history untouched", func(t *testing.T) {
		u := newFakeUoW()
		tr := seedTour(t, u, 100, 50, 10)
		c := seedClient(t, u, "555-0101")
		uc := commands.NewReservationUseCase(u)

		_, err := uc.Create(ctx, commands.CreateReservationRequest{
			TourID: tr.ID(), ClientID: c.ID(), SeatsAmount: 2,
		}, testActor)
		require.NoError(t, err)

		assert.Equal(t, client.InitialReputation, c.Reputation())
		assert.Empty(t, u.tx.history.byEntity(history.KindClient))
	})

	t.Run("applies a promo when a code is given", func(t *testing.T) {
		u := newFakeUoW()
		tr := seedTour(t, u, 100, 50, 10)
		c := seedClient(t, u, "555-0101")
		promo, err := tour.NewPromo(tour.PromoTwoForOne, 0, 5, 2, "2X1", true)
		require.NoError(t, err)
		require.NoError(t, tr.AddPromo(promo))
		uc := commands.NewReservationUseCase(u)

		id, err := uc.Create(ctx, commands.CreateReservationRequest{
			TourID: tr.ID(), ClientID: c.ID(), SeatsAmount: 2,
			PromoCode: "2X1", PromoAmount: 1,
		}, testActor)
		require.NoError(t, err)

		res := u.tx.reservations.items[id]
		assert.InDelta(t, 100.0, res.PriceToPay(), 1e-9)
		assert.InDelta(t, 100.0, res.PriceToReserve(), 1e-9)
		assert.Equal(t, 1, promo.UsedCount())
	})

	t.Run("rejects invalid input before touching the stores", func(t *testing.T) {
		u := newFakeUoW()
		tr := seedTour(t, u, 100, 50, 10)
		c := seedClient(t, u, "555-0101")
		uc := commands.NewReservationUseCase(u)

		_, err := uc.Create(ctx, commands.CreateReservationRequest{
			TourID: tr.ID(), ClientID: c.ID(), SeatsAmount: 0,
		}, testActor)
		assert.ErrorIs(t, err, errs.ErrValidation)

		_, err = uc.Create(ctx, commands.CreateReservationRequest{
			TourID: tr.ID(), ClientID: c.ID(), SeatsAmount: 2, PromoCode: "2X1",
		}, testActor)
		assert.ErrorIs(t, err, errs.ErrValidation)
		assert.Equal(t, 0, tr.ReservedSeatsAmount())
	})

	t.Run("missing or inactive references map to not-found", func(t *testing.T) {
		u := newFakeUoW()
		tr := seedTour(t, u, 100, 50, 10)
		c := seedClient(t, u, "555-0101")
		uc := commands.NewReservationUseCase(u)

		_, err := uc.Create(ctx, commands.CreateReservationRequest{
			TourID: uuid.New(), ClientID: c.ID(), SeatsAmount: 1,
		}, testActor)
		assert.ErrorIs(t, err, errs.ErrTourNotFound)

		_, err = uc.Create(ctx, commands.CreateReservationRequest{
			TourID: tr.ID(), ClientID: uuid.New(), SeatsAmount: 1,
		}, testActor)
		assert.ErrorIs(t, err, errs.ErrClientNotFound)

		require.NoError(t, tr.Cancel())
		_, err = uc.Create(ctx, commands.CreateReservationRequest{
			TourID: tr.ID(), ClientID: c.ID(), SeatsAmount: 1,
		}, testActor)
		assert.ErrorIs(t, err, errs.ErrTourNotFound)
	})

	t.Run("overbooking surfaces as a capacity error", func(t *testing.T) {
		u := newFakeUoW()
		tr := seedTour(t, u, 100, 50, 2)
		c := seedClient(t, u, "555-0101")
		uc := commands.NewReservationUseCase(u)

		_, err := uc.Create(ctx, commands.CreateReservationRequest{
			TourID: tr.ID(), ClientID: c.ID(), SeatsAmount: 3,
		}, testActor)
		assert.ErrorIs(t, err, errs.ErrCapacity)
	})
}

func TestReservationDeposit(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*fakeUoW, commands.ReservationCommands, *client.Client, uuid.UUID) {
		u := newFakeUoW()
		tr := seedTour(t, u, 1000, 500, 10)
		c := seedClient(t, u, "555-0101")
		uc := commands.NewReservationUseCase(u)
		id, err := uc.Create(ctx, commands.CreateReservationRequest{
			TourID: tr.ID(), ClientID: c.ID(), SeatsAmount: 2,
		}, testActor)
		require.NoError(t, err)
		return u, uc, c, id
	}

	t.Run("full payment advances the status and rewards the client", func(t *testing.T) {
		u, uc, c, id := setup(t)

		require.NoError(t, uc.Deposit(ctx, id, 2000, testActor))

		res := u.tx.reservations.items[id]
		assert.Equal(t, reservation.CodeChooseSeats, res.Status().Code())
		// create reward 2 plus full payment reward 6
		assert.Equal(t, 18, c.Reputation())

		entries := u.tx.history.byEntity(history.KindReservation)
		require.Len(t, entries, 2)
		require.NotNil(t, entries[1].Amount())
		assert.InDelta(t, 2000.0, *entries[1].Amount(), 1e-9)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		_, uc, _, _ := setup(t)
		err := uc.Deposit(ctx, uuid.New(), 100, testActor)
		assert.ErrorIs(t, err, errs.ErrReservationNotFound)
	})

	t.Run("non-positive amounts are rejected", func(t *testing.T) {
		_, uc, _, id := setup(t)
		assert.ErrorIs(t, uc.Deposit(ctx, id, -5, testActor), errs.ErrValidation)
	})

	t.Run("no deposits after full payment", func(t *testing.T) {
		_, uc, _, id := setup(t)
		require.NoError(t, uc.Deposit(ctx, id, 2000, testActor))
		assert.ErrorIs(t, uc.Deposit(ctx, id, 10, testActor), errs.ErrStateConflict)
	})
}

func TestReservationChooseSeats(t *testing.T) {
	ctx := context.Background()
	u := newFakeUoW()
	tr := seedTour(t, u, 100, 50, 10)
	c := seedClient(t, u, "555-0101")
	uc := commands.NewReservationUseCase(u)

	id, err := uc.Create(ctx, commands.CreateReservationRequest{
		TourID: tr.ID(), ClientID: c.ID(), SeatsAmount: 2,
	}, testActor)
	require.NoError(t, err)

	t.Run("only the seat-selection state accepts seats", func(t *testing.T) {
		err := uc.ChooseSeats(ctx, id, []int{1, 2}, testActor)
		assert.ErrorIs(t, err, errs.ErrStateConflict)
	})

	require.NoError(t, uc.Deposit(ctx, id, 200, testActor))

	t.Run("seat count must match the reservation", func(t *testing.T) {
		err := uc.ChooseSeats(ctx, id, []int{1}, testActor)
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("assigns the seats on both aggregates", func(t *testing.T) {
		require.NoError(t, uc.ChooseSeats(ctx, id, []int{1, 2}, testActor))

		res := u.tx.reservations.items[id]
		assert.Equal(t, reservation.CodeCompleted, res.Status().Code())
		assert.ElementsMatch(t, []int{1, 2}, res.ConfirmedSeats())
		assert.ElementsMatch(t, []int{1, 2}, tr.ConfirmedSeats())
	})
}

func TestReservationReduceReservedSeats(t *testing.T) {
	ctx := context.Background()
	u := newFakeUoW()
	tr := seedTour(t, u, 100, 50, 10)
	c := seedClient(t, u, "555-0101")
	uc := commands.NewReservationUseCase(u)

	id, err := uc.Create(ctx, commands.CreateReservationRequest{
		TourID: tr.ID(), ClientID: c.ID(), SeatsAmount: 3,
	}, testActor)
	require.NoError(t, err)

	t.Run("at least one seat must remain", func(t *testing.T) {
		err := uc.ReduceReservedSeats(ctx, id, 3, true, testActor)
		assert.ErrorIs(t, err, errs.ErrStateConflict)
	})

	t.Run("reprices and releases the hold", func(t *testing.T) {
		require.NoError(t, uc.ReduceReservedSeats(ctx, id, 1, true, testActor))

		res := u.tx.reservations.items[id]
		assert.Equal(t, 2, res.ReservedSeatsAmount())
		assert.InDelta(t, 100.0, res.PriceToReserve(), 1e-9)
		assert.InDelta(t, 200.0, res.PriceToPay(), 1e-9)
		assert.Equal(t, 2, tr.ReservedSeatsAmount())
	})
}

func TestReservationCancelByClient(t *testing.T) {
	ctx := context.Background()

	t.Run("cancels, releases the hold and charges the penalty", func(t *testing.T) {
		u := newFakeUoW()
		tr := seedTour(t, u, 1000, 500, 10)
		c := seedClient(t, u, "555-0101")
		uc := commands.NewReservationUseCase(u)

		id, err := uc.Create(ctx, commands.CreateReservationRequest{
			TourID: tr.ID(), ClientID: c.ID(), SeatsAmount: 2,
		}, testActor)
		require.NoError(t, err)

		require.NoError(t, uc.CancelByClient(ctx, id, true, testActor))

		res := u.tx.reservations.items[id]
		assert.Equal(t, reservation.CodeCanceledByClient, res.Status().Code())
		assert.Equal(t, 0, tr.ReservedSeatsAmount())
		// create reward 2, pending cancel penalty ceil(2000/1000) = 2
		assert.Equal(t, 10, c.Reputation())
	})

	t.Run("a pending devolution blocks the default cancel path", func(t *testing.T) {
		u := newFakeUoW()
		tr := seedTour(t, u, 100, 50, 10)
		c := seedClient(t, u, "555-0101")
		uc := commands.NewReservationUseCase(u)

		id, err := uc.Create(ctx, commands.CreateReservationRequest{
			TourID: tr.ID(), ClientID: c.ID(), SeatsAmount: 2,
		}, testActor)
		require.NoError(t, err)
		// 250 against a ptp of 200 leaves 50 owed back
		require.NoError(t, uc.Deposit(ctx, id, 250, testActor))

		err = uc.CancelByClient(ctx, id, true, testActor)
		assert.ErrorIs(t, err, errs.ErrStateConflict)

		require.NoError(t, uc.CancelByClient(ctx, id, false, testActor))
		assert.True(t, u.tx.reservations.items[id].Status().IsTerminal())
	})
}
