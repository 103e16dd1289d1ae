package repository

import (
	"context"
	"errors"

	"tour-booking/internal/domain/reservation"
	"tour-booking/internal/domain/tour"
	"tour-booking/internal/infra"
	"tour-booking/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ReservationRepository struct{}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{}
}

const reservationColumns = `
	id, tour_id, client_id, reserved_seats_amount, confirmed_seats,
	promo_type, promo_value, promo_code, promo_amount,
	price_without_discounts, price_to_reserve, total_price, price_to_pay,
	amount_paid, pending_devolution,
	status_code, status_description, status_next,
	has_extra_discounts, is_active, created_at, updated_at`

func (r *ReservationRepository) Create(ctx context.Context, tx db.DBTX, res *reservation.Reservation) (uuid.UUID, error) {
	promoType, promoValue, promoCode, promoAmount := promoColumns(res.PromoApplied())

	var id uuid.UUID
	err := tx.QueryRow(ctx, `
		INSERT INTO reservations (
			id, tour_id, client_id, reserved_seats_amount, confirmed_seats,
			promo_type, promo_value, promo_code, promo_amount,
			price_without_discounts, price_to_reserve, total_price, price_to_pay,
			amount_paid, pending_devolution,
			status_code, status_description, status_next,
			has_extra_discounts, is_active
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20
		)
		RETURNING id`,
		res.ID(), res.TourID(), res.ClientID(), res.ReservedSeatsAmount(), seatsToDB(res.ConfirmedSeats()),
		promoType, promoValue, promoCode, promoAmount,
		res.PriceWithoutDiscounts(), res.PriceToReserve(), res.TotalPrice(), res.PriceToPay(),
		res.AmountPaid(), res.PendingDevolution(),
		string(res.Status().Code()), res.Status().Description(), nullableCode(res.Status().Next()),
		res.HasExtraDiscounts(), res.IsActive(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, wrapWriteErr("failed to create reservation", err)
	}
	return id, nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*reservation.Reservation, error) {
	row := tx.QueryRow(ctx, `SELECT`+reservationColumns+` FROM reservations WHERE id = $1`, id)
	res, err := scanReservation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "reservation not found", err)
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to find reservation", err)
	}
	return res, nil
}

func (r *ReservationRepository) Update(ctx context.Context, tx db.DBTX, res *reservation.Reservation) error {
	promoType, promoValue, promoCode, promoAmount := promoColumns(res.PromoApplied())

	tag, err := tx.Exec(ctx, `
		UPDATE reservations SET
			reserved_seats_amount = $2,
			confirmed_seats = $3,
			promo_type = $4,
			promo_value = $5,
			promo_code = $6,
			promo_amount = $7,
			price_to_reserve = $8,
			price_to_pay = $9,
			amount_paid = $10,
			pending_devolution = $11,
			status_code = $12,
			status_description = $13,
			status_next = $14,
			has_extra_discounts = $15,
			is_active = $16,
			updated_at = now()
		WHERE id = $1`,
		res.ID(), res.ReservedSeatsAmount(), seatsToDB(res.ConfirmedSeats()),
		promoType, promoValue, promoCode, promoAmount,
		res.PriceToReserve(), res.PriceToPay(),
		res.AmountPaid(), res.PendingDevolution(),
		string(res.Status().Code()), res.Status().Description(), nullableCode(res.Status().Next()),
		res.HasExtraDiscounts(), res.IsActive(),
	)
	if err != nil {
		return wrapWriteErr("failed to update reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindNotFound, "reservation not found", nil)
	}
	return nil
}

func (r *ReservationRepository) FindLiveByTour(ctx context.Context, tx db.DBTX, tourID uuid.UUID) ([]*reservation.Reservation, error) {
	rows, err := tx.Query(ctx,
		`SELECT`+reservationColumns+` FROM reservations WHERE tour_id = $1 AND is_active = TRUE ORDER BY created_at`,
		tourID,
	)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list tour reservations", err)
	}
	defer rows.Close()

	var result []*reservation.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan reservation", err)
		}
		result = append(result, res)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to read tour reservations", err)
	}
	return result, nil
}

func (r *ReservationRepository) CountOpenByClient(ctx context.Context, tx db.DBTX, clientID uuid.UUID) (int64, error) {
	var count int64
	err := tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM reservations
		WHERE client_id = $1
		  AND is_active = TRUE
		  AND status_code IN ('Pending', 'Accepted', 'Choose seats', 'Pending devolution')`,
		clientID,
	).Scan(&count)
	if err != nil {
		return 0, infra.WrapRepoErr(infra.KindDBFailure, "failed to count open reservations", err)
	}
	return count, nil
}

func scanReservation(row pgx.Row) (*reservation.Reservation, error) {
	var (
		m         reservationRow
		seats     []int32
		promoType *string
	)
	err := row.Scan(
		&m.ID, &m.TourID, &m.ClientID, &m.ReservedSeatsAmount, &seats,
		&promoType, &m.PromoValue, &m.PromoCode, &m.PromoAmount,
		&m.PriceWithoutDiscounts, &m.PriceToReserve, &m.TotalPrice, &m.PriceToPay,
		&m.AmountPaid, &m.PendingDevolution,
		&m.StatusCode, &m.StatusDescription, &m.StatusNext,
		&m.HasExtraDiscounts, &m.IsActive, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.Seats = seats
	m.PromoType = promoType
	return m.toDomain(), nil
}

func promoColumns(promo *tour.AppliedPromo) (promoType *string, value *float64, code *string, amount *int32) {
	if promo == nil {
		return nil, nil, nil, nil
	}
	t := string(promo.Type)
	v := promo.Value
	c := promo.Code
	a := int32(promo.Amount)
	return &t, &v, &c, &a
}

func nullableCode(code reservation.Code) *string {
	if code == "" {
		return nil
	}
	s := string(code)
	return &s
}
