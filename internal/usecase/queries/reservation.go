package queries

import (
	"context"

	"github.com/google/uuid"
)

type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListByTour(ctx context.Context, tourID uuid.UUID) ([]*ReservationListItem, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]*ReservationListItem, error)
	History(ctx context.Context, id uuid.UUID) ([]*HistoryEntryView, error)
}

type ReservationViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindByTour(ctx context.Context, tourID uuid.UUID) ([]*ReservationListItem, error)
	FindByClient(ctx context.Context, clientID uuid.UUID) ([]*ReservationListItem, error)
}

type HistoryViewRepo interface {
	FindByEntity(ctx context.Context, entityType string, entityID uuid.UUID) ([]*HistoryEntryView, error)
}

type reservationQueriesImpl struct {
	repo    ReservationViewRepo
	history HistoryViewRepo
}

func NewReservationQueries(repo ReservationViewRepo, history HistoryViewRepo) ReservationQueries {
	return &reservationQueriesImpl{repo: repo, history: history}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *reservationQueriesImpl) ListByTour(ctx context.Context, tourID uuid.UUID) ([]*ReservationListItem, error) {
	return q.repo.FindByTour(ctx, tourID)
}

func (q *reservationQueriesImpl) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*ReservationListItem, error) {
	return q.repo.FindByClient(ctx, clientID)
}

func (q *reservationQueriesImpl) History(ctx context.Context, id uuid.UUID) ([]*HistoryEntryView, error) {
	return q.history.FindByEntity(ctx, "reservation", id)
}
