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

type TourStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*queries.TourView, error)
	FindActive(ctx context.Context) ([]*queries.TourView, error)
}

type TourReadStore struct {
	db db.DBTX
}

func NewTourReadStore(db db.DBTX) *TourReadStore {
	return &TourReadStore{db: db}
}

func (r *TourReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.TourView, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, template_id, name, starting_date,
		       total_seats, total_seats_numbers, confirmed_seats, reserved_seats_amount,
		       price, min_payment, status, is_active, created_at, updated_at
		FROM tours WHERE id = $1`, id)

	view, err := scanTourView(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "tour not found", err)
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to find tour by ID", err)
	}

	promos, err := r.findPromoViews(ctx, view.ID)
	if err != nil {
		return nil, err
	}
	view.Promos = promos
	return view, nil
}

func (r *TourReadStore) FindActive(ctx context.Context) ([]*queries.TourView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, template_id, name, starting_date,
		       total_seats, total_seats_numbers, confirmed_seats, reserved_seats_amount,
		       price, min_payment, status, is_active, created_at, updated_at
		FROM tours WHERE is_active = TRUE ORDER BY starting_date`)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list tours", err)
	}
	defer rows.Close()

	var result []*queries.TourView
	for rows.Next() {
		view, err := scanTourView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan tour", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to read tour list", err)
	}
	return result, nil
}

func (r *TourReadStore) findPromoViews(ctx context.Context, tourID uuid.UUID) ([]queries.PromoView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT code, promo_type, value, amount, max_uses_per_reservation, used_count, show, is_active
		FROM tour_promos WHERE tour_id = $1 ORDER BY created_at`, tourID)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list tour promos", err)
	}
	defer rows.Close()

	var promos []queries.PromoView
	for rows.Next() {
		var p queries.PromoView
		if err := rows.Scan(&p.Code, &p.Type, &p.Value, &p.Amount, &p.MaxUsesPerReservation, &p.UsedCount, &p.Show, &p.IsActive); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan promo", err)
		}
		promos = append(promos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to read promo list", err)
	}
	return promos, nil
}

func scanTourView(row pgx.Row) (*queries.TourView, error) {
	v := &queries.TourView{}
	var totalSeatsNumbers []int32
	err := row.Scan(
		&v.ID, &v.TemplateID, &v.Name, &v.StartingDate,
		&v.TotalSeats, &totalSeatsNumbers, &v.ConfirmedSeats, &v.ReservedSeatsAmount,
		&v.Price, &v.MinPayment, &v.Status, &v.IsActive, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	v.AvailableCapacity = v.TotalSeats - v.ReservedSeatsAmount
	taken := make(map[int32]struct{}, len(v.ConfirmedSeats))
	for _, s := range v.ConfirmedSeats {
		taken[s] = struct{}{}
	}
	for _, s := range totalSeatsNumbers {
		if _, ok := taken[s]; !ok {
			v.AvailableSeatNumbers = append(v.AvailableSeatNumbers, s)
		}
	}
	return v, nil
}
