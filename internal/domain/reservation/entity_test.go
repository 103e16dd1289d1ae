//go:build unit

package reservation_test

import (
	"testing"

	"tour-booking/internal/domain/reservation"
	"tour-booking/internal/domain/tour"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	seatPrice  = 100.0
	minPayment = 50.0
)

func newReservation(t *testing.T, seats int, promo *tour.AppliedPromo) *reservation.Reservation {
	t.Helper()
	quote := reservation.ComputeQuote(seats, seatPrice, minPayment, promo)
	r, _, err := reservation.NewReservation(uuid.New(), uuid.New(), seats, quote, promo)
	require.NoError(t, err)
	return r
}

func TestNewReservation(t *testing.T) {
	t.Run("starts pending with the quoted prices", func(t *testing.T) {
		r := newReservation(t, 2, nil)

		assert.Equal(t, reservation.CodePending, r.Status().Code())
		assert.Equal(t, 2, r.ReservedSeatsAmount())
		assert.InDelta(t, 200.0, r.PriceWithoutDiscounts(), 1e-9)
		assert.InDelta(t, 100.0, r.PriceToReserve(), 1e-9)
		assert.InDelta(t, 200.0, r.PriceToPay(), 1e-9)
		assert.Zero(t, r.AmountPaid())
		assert.True(t, r.IsActive())
	})

	t.Run("rewards creation per thousand of the price to pay", func(t *testing.T) {
		quote := reservation.ComputeQuote(2, 2000, 1000, nil)
		_, outcome, err := reservation.NewReservation(uuid.New(), uuid.New(), 2, quote, nil)
		require.NoError(t, err)
		assert.Equal(t, 4, outcome.ReputationDelta)
	})

	t.Run("rejects non-positive seat counts", func(t *testing.T) {
		quote := reservation.ComputeQuote(1, seatPrice, minPayment, nil)
		_, _, err := reservation.NewReservation(uuid.New(), uuid.New(), 0, quote, nil)
		assert.ErrorIs(t, err, reservation.ErrInvalidSeatAmount)
	})
}

func TestDeposit(t *testing.T) {
	t.Run("below the reserve minimum stays pending", func(t *testing.T) {
		r := newReservation(t, 2, nil)
		_, err := r.Deposit(50)
		require.NoError(t, err)
		assert.Equal(t, reservation.CodePending, r.Status().Code())
	})

	t.Run("reaching the reserve minimum accepts the reservation", func(t *testing.T) {
		r := newReservation(t, 2, nil)
		_, err := r.Deposit(100)
		require.NoError(t, err)
		assert.Equal(t, reservation.CodeAccepted, r.Status().Code())
	})

	t.Run("full payment moves to seat selection", func(t *testing.T) {
		r := newReservation(t, 2, nil)
		_, err := r.Deposit(200)
		require.NoError(t, err)
		assert.Equal(t, reservation.CodeChooseSeats, r.Status().Code())
		assert.Zero(t, r.PendingDevolution())
	})

	t.Run("overpayment records the excess as a devolution", func(t *testing.T) {
		r := newReservation(t, 2, nil)
		_, err := r.Deposit(350)
		require.NoError(t, err)
		assert.Equal(t, reservation.CodeChooseSeats, r.Status().Code())
		assert.InDelta(t, 150.0, r.PendingDevolution(), 1e-9)
	})

	t.Run("full payment earns triple the creation reward", func(t *testing.T) {
		quote := reservation.ComputeQuote(2, 2000, 1000, nil)
		r, _, err := reservation.NewReservation(uuid.New(), uuid.New(), 2, quote, nil)
		require.NoError(t, err)

		outcome, err := r.Deposit(4000)
		require.NoError(t, err)
		assert.Equal(t, 12, outcome.ReputationDelta)
	})

	t.Run("tolerance band around the full price", func(t *testing.T) {
		cases := []struct {
			name       string
			amount     float64
			wantCode   reservation.Code
			devolution float64
		}{
			{"one under the price counts as accepted only", 199, reservation.CodeAccepted, 0},
			{"just inside the band counts as paid", 199.5, reservation.CodeChooseSeats, 0},
			{"one over the price still has no devolution", 201, reservation.CodeChooseSeats, 0},
			{"past the band owes the full excess back", 201.5, reservation.CodeChooseSeats, 1.5},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				r := newReservation(t, 2, nil)
				_, err := r.Deposit(tc.amount)
				require.NoError(t, err)
				assert.Equal(t, tc.wantCode, r.Status().Code())
				assert.InDelta(t, tc.devolution, r.PendingDevolution(), 1e-9)
			})
		}
	})

	t.Run("rejects invalid amounts", func(t *testing.T) {
		r := newReservation(t, 2, nil)
		_, err := r.Deposit(0)
		assert.ErrorIs(t, err, reservation.ErrInvalidAmount)
		_, err = r.Deposit(-10)
		assert.ErrorIs(t, err, reservation.ErrInvalidAmount)
	})

	t.Run("rejected once seats are being chosen", func(t *testing.T) {
		r := newReservation(t, 2, nil)
		_, err := r.Deposit(200)
		require.NoError(t, err)
		_, err = r.Deposit(10)
		assert.ErrorIs(t, err, reservation.ErrDepositNotAllowed)
	})
}

func TestChooseSeats(t *testing.T) {
	t.Run("assigns seats and completes", func(t *testing.T) {
		r := newReservation(t, 2, nil)
		_, err := r.Deposit(200)
		require.NoError(t, err)

		require.NoError(t, r.ChooseSeats([]int{3, 7}))
		assert.Equal(t, reservation.CodeCompleted, r.Status().Code())
		assert.Equal(t, []int{3, 7}, r.ConfirmedSeats())
	})

	t.Run("keeps an overpaid reservation in devolution on its way to completed", func(t *testing.T) {
		r := newReservation(t, 2, nil)
		_, err := r.Deposit(350)
		require.NoError(t, err)

		require.NoError(t, r.ChooseSeats([]int{1, 2}))
		assert.Equal(t, reservation.CodePendingDevolution, r.Status().Code())
		assert.Equal(t, reservation.CodeCompleted, r.Status().Next())
	})

	t.Run("seat list must match the reserved amount", func(t *testing.T) {
		r := newReservation(t, 2, nil)
		_, err := r.Deposit(200)
		require.NoError(t, err)

		assert.ErrorIs(t, r.ChooseSeats([]int{1}), reservation.ErrSeatCountMismatch)
		assert.ErrorIs(t, r.ChooseSeats([]int{1, 1}), reservation.ErrDuplicateSeats)
		assert.ErrorIs(t, r.ChooseSeats(nil), reservation.ErrEmptySeatList)
	})

	t.Run("rejected before full payment", func(t *testing.T) {
		r := newReservation(t, 2, nil)
		assert.ErrorIs(t, r.ChooseSeats([]int{1, 2}), reservation.ErrNotChoosingSeats)
	})
}

func TestMakeDevolution(t *testing.T) {
	setup := func(t *testing.T) *reservation.Reservation {
		r := newReservation(t, 2, nil)
		_, err := r.Deposit(350)
		require.NoError(t, err)
		require.NoError(t, r.ChooseSeats([]int{1, 2}))
		return r
	}

	t.Run("partial payout keeps the state", func(t *testing.T) {
		r := setup(t)
		advanced, err := r.MakeDevolution(100)
		require.NoError(t, err)
		assert.False(t, advanced)
		assert.InDelta(t, 50.0, r.PendingDevolution(), 1e-9)
		assert.Equal(t, reservation.CodePendingDevolution, r.Status().Code())
	})

	t.Run("paying the remainder advances to the follow-up state", func(t *testing.T) {
		r := setup(t)
		advanced, err := r.MakeDevolution(150)
		require.NoError(t, err)
		assert.True(t, advanced)
		assert.Zero(t, r.PendingDevolution())
		assert.Equal(t, reservation.CodeCompleted, r.Status().Code())
	})

	t.Run("overpaying floors the balance at zero", func(t *testing.T) {
		r := setup(t)
		advanced, err := r.MakeDevolution(500)
		require.NoError(t, err)
		assert.True(t, advanced)
		assert.Zero(t, r.PendingDevolution())
	})

	t.Run("rejected when nothing is owed", func(t *testing.T) {
		r := newReservation(t, 2, nil)
		_, err := r.MakeDevolution(10)
		assert.ErrorIs(t, err, reservation.ErrNoDevolutionDue)
	})
}

func TestChangeConfirmedSeats(t *testing.T) {
	setup := func(t *testing.T) *reservation.Reservation {
		r := newReservation(t, 2, nil)
		_, err := r.Deposit(200)
		require.NoError(t, err)
		require.NoError(t, r.ChooseSeats([]int{1, 2}))
		return r
	}

	t.Run("swaps the assigned set and returns the old one", func(t *testing.T) {
		r := setup(t)
		old, err := r.ChangeConfirmedSeats([]int{5, 6})
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2}, old)
		assert.Equal(t, []int{5, 6}, r.ConfirmedSeats())
	})

	t.Run("new set must keep the same size", func(t *testing.T) {
		r := setup(t)
		_, err := r.ChangeConfirmedSeats([]int{5})
		assert.ErrorIs(t, err, reservation.ErrSeatCountMismatch)
	})

	t.Run("rejected before completion", func(t *testing.T) {
		r := newReservation(t, 2, nil)
		_, err := r.ChangeConfirmedSeats([]int{5, 6})
		assert.ErrorIs(t, err, reservation.ErrNotReducible)
	})
}

func TestReduceReservedSeats(t *testing.T) {
	t.Run("pending reservation is simply repriced", func(t *testing.T) {
		r := newReservation(t, 4, nil)
		_, err := r.ReduceReservedSeats(1, seatPrice, minPayment, true)
		require.NoError(t, err)

		assert.Equal(t, 3, r.ReservedSeatsAmount())
		assert.InDelta(t, 150.0, r.PriceToReserve(), 1e-9)
		assert.InDelta(t, 300.0, r.PriceToPay(), 1e-9)
	})

	t.Run("accepted reservation pays the surcharge", func(t *testing.T) {
		r := newReservation(t, 4, nil)
		_, err := r.Deposit(200)
		require.NoError(t, err)
		require.Equal(t, reservation.CodeAccepted, r.Status().Code())

		_, err = r.ReduceReservedSeats(1, seatPrice, minPayment, true)
		require.NoError(t, err)

		assert.InDelta(t, 200.0, r.PriceToReserve(), 1e-9)
		assert.InDelta(t, 350.0, r.PriceToPay(), 1e-9)
		assert.Equal(t, reservation.CodeAccepted, r.Status().Code())
	})

	t.Run("surcharge never prices below the no-surcharge path", func(t *testing.T) {
		with := newReservation(t, 4, nil)
		_, err := with.Deposit(200)
		require.NoError(t, err)
		_, err = with.ReduceReservedSeats(1, seatPrice, minPayment, true)
		require.NoError(t, err)

		without := newReservation(t, 4, nil)
		_, err = without.Deposit(200)
		require.NoError(t, err)
		_, err = without.ReduceReservedSeats(1, seatPrice, minPayment, false)
		require.NoError(t, err)

		assert.Greater(t, with.PriceToReserve(), without.PriceToReserve())
		assert.Greater(t, with.PriceToPay(), without.PriceToPay())
	})

	t.Run("accepted reduction doubles the reputation penalty", func(t *testing.T) {
		quote := reservation.ComputeQuote(4, 2000, 1000, nil)
		r, _, err := reservation.NewReservation(uuid.New(), uuid.New(), 4, quote, nil)
		require.NoError(t, err)
		_, err = r.Deposit(4000)
		require.NoError(t, err)
		require.Equal(t, reservation.CodeAccepted, r.Status().Code())

		outcome, err := r.ReduceReservedSeats(1, 2000, 1000, false)
		require.NoError(t, err)
		// price to pay drops 8000 -> 6000, two points per thousand lost
		assert.Equal(t, -4, outcome.ReputationDelta)
	})

	t.Run("a 2x1 promo is re-capped for the new count", func(t *testing.T) {
		promo := &tour.AppliedPromo{Type: tour.PromoTwoForOne, Code: "2X1", Amount: 2}
		r := newReservation(t, 4, promo)
		require.InDelta(t, 200.0, r.PriceToPay(), 1e-9)

		_, err := r.ReduceReservedSeats(1, seatPrice, minPayment, true)
		require.NoError(t, err)

		assert.Equal(t, 1, r.PromoApplied().Amount)
		assert.InDelta(t, 200.0, r.PriceToPay(), 1e-9)
		assert.InDelta(t, 200.0, r.PriceToReserve(), 1e-9)
	})

	t.Run("blocked after an extra discount", func(t *testing.T) {
		r := newReservation(t, 4, nil)
		_, err := r.AddDiscount(50)
		require.NoError(t, err)

		_, err = r.ReduceReservedSeats(1, seatPrice, minPayment, true)
		assert.ErrorIs(t, err, reservation.ErrHasExtraDiscounts)
	})

	t.Run("must keep at least one seat", func(t *testing.T) {
		r := newReservation(t, 2, nil)
		_, err := r.ReduceReservedSeats(2, seatPrice, minPayment, true)
		assert.ErrorIs(t, err, reservation.ErrMustKeepOneSeat)
	})
}

func TestReduceConfirmedSeats(t *testing.T) {
	setup := func(t *testing.T) *reservation.Reservation {
		r := newReservation(t, 3, nil)
		_, err := r.Deposit(300)
		require.NoError(t, err)
		require.NoError(t, r.ChooseSeats([]int{1, 2, 3}))
		return r
	}

	t.Run("releases the listed seats and shrinks the hold", func(t *testing.T) {
		r := setup(t)
		outcome, err := r.ReduceConfirmedSeats([]int{2}, 2000)
		require.NoError(t, err)

		assert.Equal(t, []int{2}, outcome.ReleasedSeats)
		assert.Equal(t, 1, outcome.ReleasedHold)
		assert.Equal(t, -6, outcome.ReputationDelta)
		assert.Equal(t, []int{1, 3}, r.ConfirmedSeats())
		assert.Equal(t, 2, r.ReservedSeatsAmount())
	})

	t.Run("only owned seats can be released", func(t *testing.T) {
		r := setup(t)
		_, err := r.ReduceConfirmedSeats([]int{9}, seatPrice)
		assert.ErrorIs(t, err, reservation.ErrSeatsNotOwned)
	})

	t.Run("cannot release every seat", func(t *testing.T) {
		r := setup(t)
		_, err := r.ReduceConfirmedSeats([]int{1, 2, 3}, seatPrice)
		assert.ErrorIs(t, err, reservation.ErrMustKeepOneSeat)
	})
}

func TestCancellations(t *testing.T) {
	t.Run("client cancellation severity scales with progress", func(t *testing.T) {
		pending := newReservation(t, 2, nil)
		outcome, err := pending.CancelByClient(2000, true)
		require.NoError(t, err)
		assert.Equal(t, -4, outcome.ReputationDelta)
		assert.Equal(t, reservation.CodeCanceledByClient, pending.Status().Code())

		accepted := newReservation(t, 2, nil)
		_, err = accepted.Deposit(100)
		require.NoError(t, err)
		outcome, err = accepted.CancelByClient(2000, true)
		require.NoError(t, err)
		assert.Equal(t, -8, outcome.ReputationDelta)

		completed := newReservation(t, 2, nil)
		_, err = completed.Deposit(200)
		require.NoError(t, err)
		require.NoError(t, completed.ChooseSeats([]int{1, 2}))
		outcome, err = completed.CancelByClient(2000, true)
		require.NoError(t, err)
		assert.Equal(t, -12, outcome.ReputationDelta)
		assert.Equal(t, []int{1, 2}, outcome.ReleasedSeats)
	})

	t.Run("client cancellation is blocked while a devolution is owed", func(t *testing.T) {
		r := newReservation(t, 2, nil)
		_, err := r.Deposit(350)
		require.NoError(t, err)
		require.NoError(t, r.ChooseSeats([]int{1, 2}))

		_, err = r.CancelByClient(seatPrice, true)
		assert.ErrorIs(t, err, reservation.ErrDevolutionOwed)

		// Admin override skips the guard.
		_, err = r.CancelByClient(seatPrice, false)
		require.NoError(t, err)
	})

	t.Run("cancel without devolutions can suppress the penalty", func(t *testing.T) {
		r := newReservation(t, 2, nil)
		outcome, err := r.CancelWithoutDevolutions(2000, false)
		require.NoError(t, err)
		assert.Zero(t, outcome.ReputationDelta)
		assert.Equal(t, reservation.CodeCanceled, r.Status().Code())
	})

	t.Run("full cancel with devolutions owes everything paid", func(t *testing.T) {
		r := newReservation(t, 2, nil)
		_, err := r.Deposit(150)
		require.NoError(t, err)

		outcome, err := r.CancelWithDevolutions(true)
		require.NoError(t, err)
		assert.InDelta(t, 150.0, outcome.Devolution, 1e-9)
		assert.Equal(t, reservation.CodePendingDevolution, r.Status().Code())
		assert.Equal(t, reservation.CodeCanceled, r.Status().Next())
	})

	t.Run("partial cancel keeps the reserve minimum", func(t *testing.T) {
		r := newReservation(t, 2, nil)
		_, err := r.Deposit(150)
		require.NoError(t, err)

		outcome, err := r.CancelWithDevolutions(false)
		require.NoError(t, err)
		assert.InDelta(t, 50.0, outcome.Devolution, 1e-9)
	})

	t.Run("partial cancel with nothing above the minimum cancels outright", func(t *testing.T) {
		r := newReservation(t, 2, nil)
		_, err := r.Deposit(100)
		require.NoError(t, err)

		outcome, err := r.CancelWithDevolutions(false)
		require.NoError(t, err)
		assert.Zero(t, outcome.Devolution)
		assert.Equal(t, reservation.CodeCanceled, r.Status().Code())
	})

	t.Run("double cancellation is rejected", func(t *testing.T) {
		r := newReservation(t, 2, nil)
		_, err := r.CancelByClient(seatPrice, true)
		require.NoError(t, err)
		_, err = r.CancelByClient(seatPrice, true)
		assert.ErrorIs(t, err, reservation.ErrAlreadyCanceled)
	})
}

func TestBulkTourTransitions(t *testing.T) {
	t.Run("tour cancellation owes back everything paid", func(t *testing.T) {
		r := newReservation(t, 2, nil)
		_, err := r.Deposit(150)
		require.NoError(t, err)

		outcome, skipped := r.CancelForTour()
		assert.False(t, skipped)
		assert.InDelta(t, 150.0, outcome.Devolution, 1e-9)
		assert.Equal(t, reservation.CodePendingDevolution, r.Status().Code())
		assert.Equal(t, reservation.CodeTourCanceled, r.Status().Next())
	})

	t.Run("terminal reservations are skipped", func(t *testing.T) {
		r := newReservation(t, 2, nil)
		_, err := r.CancelByClient(seatPrice, true)
		require.NoError(t, err)

		_, skipped := r.CancelForTour()
		assert.True(t, skipped)
		assert.Equal(t, reservation.CodeCanceledByClient, r.Status().Code())
	})

	t.Run("tour completion holds back owed devolutions", func(t *testing.T) {
		owing := newReservation(t, 2, nil)
		_, err := owing.Deposit(350)
		require.NoError(t, err)
		require.NoError(t, owing.ChooseSeats([]int{1, 2}))

		hasDevolution, skipped := owing.CompleteForTour()
		assert.False(t, skipped)
		assert.True(t, hasDevolution)
		assert.Equal(t, reservation.CodePendingDevolution, owing.Status().Code())
		assert.Equal(t, reservation.CodeCompleted, owing.Status().Next())

		clean := newReservation(t, 2, nil)
		hasDevolution, skipped = clean.CompleteForTour()
		assert.False(t, skipped)
		assert.False(t, hasDevolution)
		assert.Equal(t, reservation.CodeCompleted, clean.Status().Code())
	})
}

func TestAdminAdjustments(t *testing.T) {
	t.Run("discount lowers the price and caps the minimum", func(t *testing.T) {
		r := newReservation(t, 2, nil)
		_, err := r.AddDiscount(150)
		require.NoError(t, err)

		assert.InDelta(t, 50.0, r.PriceToPay(), 1e-9)
		assert.InDelta(t, 50.0, r.PriceToReserve(), 1e-9)
		assert.True(t, r.HasExtraDiscounts())
	})

	t.Run("discount can complete the payment", func(t *testing.T) {
		r := newReservation(t, 2, nil)
		_, err := r.Deposit(120)
		require.NoError(t, err)

		_, err = r.AddDiscount(80)
		require.NoError(t, err)
		assert.Equal(t, reservation.CodeChooseSeats, r.Status().Code())
	})

	t.Run("discount cannot drop below what was already paid", func(t *testing.T) {
		r := newReservation(t, 2, nil)
		_, err := r.Deposit(150)
		require.NoError(t, err)

		_, err = r.AddDiscount(80)
		assert.ErrorIs(t, err, reservation.ErrDiscountTooLarge)
	})

	t.Run("payment reduction re-derives the status", func(t *testing.T) {
		r := newReservation(t, 2, nil)
		_, err := r.Deposit(150)
		require.NoError(t, err)
		require.Equal(t, reservation.CodeAccepted, r.Status().Code())

		require.NoError(t, r.ReduceAmountPaid(100))
		assert.Equal(t, reservation.CodePending, r.Status().Code())
		assert.InDelta(t, 50.0, r.AmountPaid(), 1e-9)

		assert.ErrorIs(t, r.ReduceAmountPaid(100), reservation.ErrPaymentBelowZero)
	})

	t.Run("devolution write-down advances only on an exact zero", func(t *testing.T) {
		r := newReservation(t, 2, nil)
		_, err := r.Deposit(350)
		require.NoError(t, err)
		require.NoError(t, r.ChooseSeats([]int{1, 2}))

		advanced, err := r.ReducePendingDevolution(100)
		require.NoError(t, err)
		assert.False(t, advanced)

		var exceeds *reservation.DevolutionExceedsError
		_, err = r.ReducePendingDevolution(60)
		require.ErrorAs(t, err, &exceeds)
		assert.InDelta(t, 50.0, exceeds.Pending, 1e-9)

		advanced, err = r.ReducePendingDevolution(50)
		require.NoError(t, err)
		assert.True(t, advanced)
		assert.Equal(t, reservation.CodeCompleted, r.Status().Code())
	})
}
