//go:build unit

package client_test

import (
	"testing"

	"tour-booking/internal/domain/client"

	"github.com/stretchr/testify/assert"
)

func TestReputationFormulas(t *testing.T) {
	t.Run("gains round down", func(t *testing.T) {
		assert.Equal(t, 0, client.ReputationGainOnCreate(999))
		assert.Equal(t, 1, client.ReputationGainOnCreate(1000))
		assert.Equal(t, 2, client.ReputationGainOnCreate(2999))

		assert.Equal(t, 0, client.ReputationGainOnFullPayment(999))
		assert.Equal(t, 3, client.ReputationGainOnFullPayment(1000))
		assert.Equal(t, 6, client.ReputationGainOnFullPayment(2999))
	})

	t.Run("cancellation penalties scale with severity and round up", func(t *testing.T) {
		assert.Equal(t, -1, client.ReputationLossOnCancel(100, 1, client.SeverityPending))
		assert.Equal(t, -2, client.ReputationLossOnCancel(100, 1, client.SeverityAccepted))
		assert.Equal(t, -3, client.ReputationLossOnCancel(100, 1, client.SeverityConfirmed))
		assert.Equal(t, -4, client.ReputationLossOnCancel(1000, 2, client.SeverityAccepted))
	})

	t.Run("confirmed seat drops charge the steep rate", func(t *testing.T) {
		assert.Equal(t, -3, client.ReputationLossOnConfirmedSeatDrop(500, 1))
		assert.Equal(t, -12, client.ReputationLossOnConfirmedSeatDrop(2000, 2))
	})

	t.Run("seat reductions double when accepted", func(t *testing.T) {
		assert.Equal(t, -1, client.ReputationLossOnSeatReduction(2500, 2000, false))
		assert.Equal(t, -2, client.ReputationLossOnSeatReduction(2500, 2000, true))
		assert.Equal(t, 0, client.ReputationLossOnSeatReduction(2000, 2500, false))
	})
}
