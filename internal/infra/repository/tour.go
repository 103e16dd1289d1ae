package repository

import (
	"context"
	"errors"
	"time"

	"tour-booking/internal/domain/tour"
	"tour-booking/internal/infra"
	"tour-booking/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type TourRepository struct{}

func NewTourRepository() *TourRepository {
	return &TourRepository{}
}

func (r *TourRepository) Create(ctx context.Context, tx db.DBTX, t *tour.Tour) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, `
		INSERT INTO tours (
			id, template_id, name, starting_date,
			total_seats, total_seats_numbers, confirmed_seats, reserved_seats_amount,
			price, min_payment, status, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`,
		t.ID(), t.TemplateID(), t.Name(), t.StartingDate(),
		t.TotalSeats(), seatsToDB(t.TotalSeatsNumbers()), seatsToDB(t.ConfirmedSeats()), t.ReservedSeatsAmount(),
		t.Price(), t.MinPayment(), string(t.Status()), t.IsActive(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, wrapWriteErr("failed to create tour", err)
	}

	if err := r.UpsertPromos(ctx, tx, id, t.Promos()); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (r *TourRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*tour.Tour, error) {
	var (
		tourID, templateID             uuid.UUID
		name                           string
		startingDate                   time.Time
		totalSeats, reservedSeats      int
		totalSeatsNumbers, seatNumbers []int32
		price, minPayment              float64
		status                         string
		isActive                       bool
		createdAt, updatedAt           time.Time
	)
	err := tx.QueryRow(ctx, `
		SELECT id, template_id, name, starting_date,
		       total_seats, total_seats_numbers, confirmed_seats, reserved_seats_amount,
		       price, min_payment, status, is_active, created_at, updated_at
		FROM tours WHERE id = $1`, id,
	).Scan(
		&tourID, &templateID, &name, &startingDate,
		&totalSeats, &totalSeatsNumbers, &seatNumbers, &reservedSeats,
		&price, &minPayment, &status, &isActive, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "tour not found", err)
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to find tour", err)
	}

	promos, err := r.findPromos(ctx, tx, tourID)
	if err != nil {
		return nil, err
	}

	return tour.ReconstructTour(
		tourID, templateID, name, startingDate,
		totalSeats, seatsFromDB(totalSeatsNumbers), seatsFromDB(seatNumbers), reservedSeats,
		price, minPayment, promos,
		tour.Status(status), isActive, createdAt, updatedAt,
	), nil
}

func (r *TourRepository) Update(ctx context.Context, tx db.DBTX, t *tour.Tour) error {
	tag, err := tx.Exec(ctx, `
		UPDATE tours SET
			confirmed_seats = $2,
			reserved_seats_amount = $3,
			price = $4,
			min_payment = $5,
			status = $6,
			is_active = $7,
			updated_at = now()
		WHERE id = $1`,
		t.ID(), seatsToDB(t.ConfirmedSeats()), t.ReservedSeatsAmount(),
		t.Price(), t.MinPayment(), string(t.Status()), t.IsActive(),
	)
	if err != nil {
		return wrapWriteErr("failed to update tour", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindNotFound, "tour not found", nil)
	}

	return r.UpsertPromos(ctx, tx, t.ID(), t.Promos())
}

// UpsertPromos persists promo definitions and their consumed counts.
// Promos are keyed by their own id so reservation creation can bump
// used_count without racing other promos of the same tour.
func (r *TourRepository) UpsertPromos(ctx context.Context, tx db.DBTX, tourID uuid.UUID, promos []*tour.Promo) error {
	for _, p := range promos {
		_, err := tx.Exec(ctx, `
			INSERT INTO tour_promos (
				id, tour_id, promo_type, value, amount,
				max_uses_per_reservation, used_count, show, code, is_active
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (id) DO UPDATE SET
				used_count = EXCLUDED.used_count,
				is_active = EXCLUDED.is_active,
				show = EXCLUDED.show`,
			p.ID(), tourID, string(p.Type()), p.Value(), p.Amount(),
			p.MaxUsesPerReservation(), p.UsedCount(), p.Show(), p.Code(), p.IsActive(),
		)
		if err != nil {
			return wrapWriteErr("failed to upsert tour promo", err)
		}
	}
	return nil
}

func (r *TourRepository) findPromos(ctx context.Context, tx db.DBTX, tourID uuid.UUID) ([]*tour.Promo, error) {
	rows, err := tx.Query(ctx, `
		SELECT id, promo_type, value, amount, max_uses_per_reservation, used_count, show, code, is_active
		FROM tour_promos WHERE tour_id = $1 ORDER BY created_at`, tourID)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list tour promos", err)
	}
	defer rows.Close()

	var promos []*tour.Promo
	for rows.Next() {
		var (
			id                            uuid.UUID
			promoType, code               string
			value                         float64
			amount, maxUses, usedCount    int
			show, isActive                bool
		)
		if err := rows.Scan(&id, &promoType, &value, &amount, &maxUses, &usedCount, &show, &code, &isActive); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan tour promo", err)
		}
		promos = append(promos, tour.ReconstructPromo(
			id, tour.PromoType(promoType), value, amount, maxUses, usedCount, code, show, isActive,
		))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to read tour promos", err)
	}
	return promos, nil
}
