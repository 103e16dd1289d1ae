package client

import "math"

// Reputation deltas are derived from reservation money amounts at a
// rate of one point per thousand. Gains round down, penalties round
// up, so borderline amounts never favor the client.

// ReputationGainOnCreate rewards booking a reservation.
func ReputationGainOnCreate(priceToPay float64) int {
	return int(math.Floor(priceToPay / 1000))
}

// ReputationGainOnFullPayment rewards settling the full outstanding
// amount, at triple the creation rate.
func ReputationGainOnFullPayment(priceToPay float64) int {
	return 3 * int(math.Floor(priceToPay/1000))
}

// CancellationSeverity scales the cancellation penalty with how far
// the reservation had progressed before the client backed out.
type CancellationSeverity int

const (
	SeverityPending   CancellationSeverity = 1
	SeverityAccepted  CancellationSeverity = 2
	SeverityConfirmed CancellationSeverity = 3
)

// ReputationLossOnCancel penalizes a client-initiated cancellation
// proportionally to the full seat value, not the discounted price.
func ReputationLossOnCancel(pricePerSeat float64, seats int, severity CancellationSeverity) int {
	return -int(severity) * int(math.Ceil(pricePerSeat*float64(seats)/1000))
}

// ReputationLossOnConfirmedSeatDrop penalizes giving up seats that
// were already confirmed with concrete positions.
func ReputationLossOnConfirmedSeatDrop(pricePerSeat float64, removedSeats int) int {
	return -3 * int(math.Ceil(pricePerSeat*float64(removedSeats)/1000))
}

// ReputationLossOnSeatReduction penalizes shrinking a reservation by
// the value the tour operator loses. Accepted reservations pay double
// because the operator had already committed to them.
func ReputationLossOnSeatReduction(oldPriceToPay, newPriceToPay float64, accepted bool) int {
	lost := math.Max(oldPriceToPay-newPriceToPay, 0)
	penalty := int(math.Ceil(lost / 1000))
	if accepted {
		penalty *= 2
	}
	return -penalty
}
