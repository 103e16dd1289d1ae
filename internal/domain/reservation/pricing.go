package reservation

import (
	"math"

	"tour-booking/internal/domain/tour"
)

// Quote is the full price breakdown for a seat count on a tour, with
// an optional promo already applied.
type Quote struct {
	PriceWithoutDiscounts float64
	PriceToReserve        float64
	TotalPrice            float64
	PriceToPay            float64
}

// ComputeQuote prices a reservation. Absent a promo, the reservable
// minimum is min_payment per seat. With a promo the separate minimum
// disappears: price_to_reserve equals the discounted total.
func ComputeQuote(seats int, pricePerSeat, minPayment float64, promo *tour.AppliedPromo) Quote {
	base := pricePerSeat * float64(seats)
	q := Quote{
		PriceWithoutDiscounts: base,
		PriceToReserve:        minPayment * float64(seats),
		TotalPrice:            base,
		PriceToPay:            base,
	}
	if promo == nil {
		return q
	}

	switch promo.Type {
	case tour.PromoTwoForOne:
		q.PriceToPay = math.Max(base-pricePerSeat*float64(promo.Amount), 0)
	case tour.PromoFlatDiscount:
		q.PriceToPay = math.Max(base-promo.Value, 0)
	case tour.PromoPercentageDiscount:
		factor := math.Max(math.Min(1-promo.Value/100, 1), 0)
		q.PriceToPay = factor * base
	}
	q.TotalPrice = q.PriceToPay
	q.PriceToReserve = q.PriceToPay
	return q
}
