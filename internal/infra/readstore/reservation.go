package readstore

import (
	"context"
	"errors"

	"tour-booking/internal/infra"
	"tour-booking/internal/infra/db"
	"tour-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ReservationStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error)
	FindByTour(ctx context.Context, tourID uuid.UUID) ([]*queries.ReservationListItem, error)
	FindByClient(ctx context.Context, clientID uuid.UUID) ([]*queries.ReservationListItem, error)
}

type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(db db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: db}
}

const reservationViewQuery = `
	SELECT r.id, r.tour_id, t.name AS tour_name, r.client_id, c.name AS client_name,
	       r.reserved_seats_amount, r.confirmed_seats,
	       r.promo_type, r.promo_code, r.promo_amount,
	       r.price_without_discounts, r.price_to_reserve, r.total_price, r.price_to_pay,
	       r.amount_paid, r.pending_devolution,
	       r.status_code, r.status_description, r.status_next,
	       r.has_extra_discounts, r.is_active, r.created_at, r.updated_at
	FROM reservations r
	JOIN tours t ON t.id = r.tour_id
	JOIN clients c ON c.id = r.client_id`

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row := r.db.QueryRow(ctx, reservationViewQuery+` WHERE r.id = $1`, id)

	view, err := scanReservationView(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "reservation not found", err)
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to find reservation by ID", err)
	}
	return view, nil
}

func (r *ReservationReadStore) FindByTour(ctx context.Context, tourID uuid.UUID) ([]*queries.ReservationListItem, error) {
	return r.findList(ctx, ` WHERE r.tour_id = $1 ORDER BY r.created_at`, tourID)
}

func (r *ReservationReadStore) FindByClient(ctx context.Context, clientID uuid.UUID) ([]*queries.ReservationListItem, error) {
	return r.findList(ctx, ` WHERE r.client_id = $1 ORDER BY r.created_at DESC`, clientID)
}

func (r *ReservationReadStore) findList(ctx context.Context, where string, arg any) ([]*queries.ReservationListItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT r.id, r.tour_id, t.name AS tour_name, c.name AS client_name,
		       r.reserved_seats_amount, r.status_code, r.price_to_pay, r.amount_paid, r.created_at
		FROM reservations r
		JOIN tours t ON t.id = r.tour_id
		JOIN clients c ON c.id = r.client_id`+where, arg)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list reservations", err)
	}
	defer rows.Close()

	var result []*queries.ReservationListItem
	for rows.Next() {
		item := &queries.ReservationListItem{}
		err := rows.Scan(
			&item.ID, &item.TourID, &item.TourName, &item.ClientName,
			&item.ReservedSeatsAmount, &item.StatusCode, &item.PriceToPay, &item.AmountPaid, &item.CreatedAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan reservation list item", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to read reservation list", err)
	}
	return result, nil
}

func scanReservationView(row pgx.Row) (*queries.ReservationView, error) {
	v := &queries.ReservationView{}
	err := row.Scan(
		&v.ID, &v.TourID, &v.TourName, &v.ClientID, &v.ClientName,
		&v.ReservedSeatsAmount, &v.ConfirmedSeats,
		&v.PromoType, &v.PromoCode, &v.PromoAmount,
		&v.PriceWithoutDiscounts, &v.PriceToReserve, &v.TotalPrice, &v.PriceToPay,
		&v.AmountPaid, &v.PendingDevolution,
		&v.StatusCode, &v.StatusDescription, &v.NextStatus,
		&v.HasExtraDiscounts, &v.IsActive, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return v, nil
}
