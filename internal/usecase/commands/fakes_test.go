//go:build unit

package commands_test

import (
	"context"

	"tour-booking/internal/domain/client"
	"tour-booking/internal/domain/history"
	"tour-booking/internal/domain/reservation"
	"tour-booking/internal/domain/tour"
	"tour-booking/internal/infra"
	"tour-booking/internal/infra/db"
	"tour-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// In-memory unit of work. Every command runs against the same shared
// stores, so assertions can read the state a transaction left behind.
type fakeUoW struct {
	tx *fakeTx
}

func newFakeUoW() *fakeUoW {
	return &fakeUoW{
		tx: &fakeTx{
			reservations: &fakeReservationRepo{items: map[uuid.UUID]*reservation.Reservation{}},
			tours:        &fakeTourRepo{items: map[uuid.UUID]*tour.Tour{}},
			clients:      &fakeClientRepo{items: map[uuid.UUID]*client.Client{}},
			history:      &fakeHistoryRepo{},
		},
	}
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, u.tx)
}

func (u *fakeUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *fakeUoW) WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *fakeUoW) CommandReads() shared.CommandReads {
	return &fakeReads{tx: u.tx}
}

type fakeTx struct {
	reservations *fakeReservationRepo
	tours        *fakeTourRepo
	clients      *fakeClientRepo
	history      *fakeHistoryRepo
}

func (t *fakeTx) Reservations() shared.ReservationRepository { return t.reservations }
func (t *fakeTx) Tours() shared.TourRepository               { return t.tours }
func (t *fakeTx) Clients() shared.ClientRepository           { return t.clients }
func (t *fakeTx) History() shared.HistoryRepository          { return t.history }
func (t *fakeTx) Reads() shared.CommandReads                 { return &fakeReads{tx: t} }
func (t *fakeTx) DB() db.DBTX                                { return nil }

func notFound(msg string) error {
	return infra.WrapRepoErr(infra.KindNotFound, msg, nil)
}

type fakeReservationRepo struct {
	items map[uuid.UUID]*reservation.Reservation
}

func (r *fakeReservationRepo) Create(_ context.Context, _ db.DBTX, res *reservation.Reservation) (uuid.UUID, error) {
	r.items[res.ID()] = res
	return res.ID(), nil
}

func (r *fakeReservationRepo) FindByID(_ context.Context, _ db.DBTX, id uuid.UUID) (*reservation.Reservation, error) {
	res, ok := r.items[id]
	if !ok {
		return nil, notFound("reservation not found")
	}
	return res, nil
}

func (r *fakeReservationRepo) Update(_ context.Context, _ db.DBTX, res *reservation.Reservation) error {
	r.items[res.ID()] = res
	return nil
}

func (r *fakeReservationRepo) FindLiveByTour(_ context.Context, _ db.DBTX, tourID uuid.UUID) ([]*reservation.Reservation, error) {
	var out []*reservation.Reservation
	for _, res := range r.items {
		if res.TourID() == tourID && res.IsActive() {
			out = append(out, res)
		}
	}
	return out, nil
}

func (r *fakeReservationRepo) CountOpenByClient(_ context.Context, _ db.DBTX, clientID uuid.UUID) (int64, error) {
	var n int64
	for _, res := range r.items {
		if res.ClientID() == clientID && !res.Status().IsTerminal() {
			n++
		}
	}
	return n, nil
}

type fakeTourRepo struct {
	items map[uuid.UUID]*tour.Tour
}

func (r *fakeTourRepo) Create(_ context.Context, _ db.DBTX, t *tour.Tour) (uuid.UUID, error) {
	r.items[t.ID()] = t
	return t.ID(), nil
}

func (r *fakeTourRepo) FindByID(_ context.Context, _ db.DBTX, id uuid.UUID) (*tour.Tour, error) {
	t, ok := r.items[id]
	if !ok {
		return nil, notFound("tour not found")
	}
	return t, nil
}

func (r *fakeTourRepo) Update(_ context.Context, _ db.DBTX, t *tour.Tour) error {
	r.items[t.ID()] = t
	return nil
}

func (r *fakeTourRepo) UpsertPromos(_ context.Context, _ db.DBTX, _ uuid.UUID, _ []*tour.Promo) error {
	return nil
}

type fakeClientRepo struct {
	items map[uuid.UUID]*client.Client
}

func (r *fakeClientRepo) Create(_ context.Context, _ db.DBTX, c *client.Client) (uuid.UUID, error) {
	for _, existing := range r.items {
		if existing.Phone() == c.Phone() {
			return uuid.Nil, infra.WrapRepoErr(infra.KindDuplicateKey, "phone already registered", nil)
		}
	}
	r.items[c.ID()] = c
	return c.ID(), nil
}

func (r *fakeClientRepo) FindByID(_ context.Context, _ db.DBTX, id uuid.UUID) (*client.Client, error) {
	c, ok := r.items[id]
	if !ok {
		return nil, notFound("client not found")
	}
	return c, nil
}

func (r *fakeClientRepo) Update(_ context.Context, _ db.DBTX, c *client.Client) error {
	r.items[c.ID()] = c
	return nil
}

type fakeHistoryRepo struct {
	entries []history.Entry
}

func (r *fakeHistoryRepo) Append(_ context.Context, _ db.DBTX, entries ...history.Entry) error {
	r.entries = append(r.entries, entries...)
	return nil
}

func (r *fakeHistoryRepo) byEntity(kind history.EntityKind) []history.Entry {
	var out []history.Entry
	for _, e := range r.entries {
		if e.Entity() == kind {
			out = append(out, e)
		}
	}
	return out
}

type fakeReads struct {
	tx *fakeTx
}

func (f *fakeReads) TourByID(ctx context.Context, id uuid.UUID) (*shared.TourSnapshot, error) {
	t, err := f.tx.tours.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	return &shared.TourSnapshot{
		ID:            t.ID(),
		Price:         t.Price(),
		MinPayment:    t.MinPayment(),
		TotalSeats:    t.TotalSeats(),
		ReservedSeats: t.ReservedSeatsAmount(),
		Status:        string(t.Status()),
		IsActive:      t.IsActive(),
	}, nil
}

func (f *fakeReads) ClientByID(ctx context.Context, id uuid.UUID) (*shared.ClientSnapshot, error) {
	c, err := f.tx.clients.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	return &shared.ClientSnapshot{
		ID:         c.ID(),
		Name:       c.Name(),
		Phone:      c.Phone(),
		Reputation: c.Reputation(),
		IsActive:   c.IsActive(),
	}, nil
}

func (f *fakeReads) ClientByPhone(_ context.Context, phone string) (*shared.ClientSnapshot, error) {
	for _, c := range f.tx.clients.items {
		if c.Phone() == phone {
			return &shared.ClientSnapshot{ID: c.ID(), Name: c.Name(), Phone: c.Phone(), Reputation: c.Reputation(), IsActive: c.IsActive()}, nil
		}
	}
	return nil, notFound("client not found")
}

func (f *fakeReads) ReservationByID(ctx context.Context, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	res, err := f.tx.reservations.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	return &shared.ReservationSnapshot{
		ID:                res.ID(),
		TourID:            res.TourID(),
		ClientID:          res.ClientID(),
		StatusCode:        string(res.Status().Code()),
		PendingDevolution: res.PendingDevolution(),
		IsActive:          res.IsActive(),
	}, nil
}
