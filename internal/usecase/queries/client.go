package queries

import (
	"context"

	"github.com/google/uuid"
)

type ClientQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ClientView, error)
	GetByPhone(ctx context.Context, phone string) (*ClientView, error)
	ListReservations(ctx context.Context, clientID uuid.UUID) ([]*ReservationListItem, error)
	History(ctx context.Context, id uuid.UUID) ([]*HistoryEntryView, error)
}

type ClientViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ClientView, error)
	FindByPhone(ctx context.Context, phone string) (*ClientView, error)
}

type clientQueriesImpl struct {
	repo         ClientViewRepo
	reservations ReservationViewRepo
	history      HistoryViewRepo
}

func NewClientQueries(repo ClientViewRepo, reservations ReservationViewRepo, history HistoryViewRepo) ClientQueries {
	return &clientQueriesImpl{repo: repo, reservations: reservations, history: history}
}

func (q *clientQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ClientView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *clientQueriesImpl) GetByPhone(ctx context.Context, phone string) (*ClientView, error) {
	return q.repo.FindByPhone(ctx, phone)
}

func (q *clientQueriesImpl) ListReservations(ctx context.Context, clientID uuid.UUID) ([]*ReservationListItem, error) {
	return q.reservations.FindByClient(ctx, clientID)
}

func (q *clientQueriesImpl) History(ctx context.Context, id uuid.UUID) ([]*HistoryEntryView, error) {
	return q.history.FindByEntity(ctx, "client", id)
}
