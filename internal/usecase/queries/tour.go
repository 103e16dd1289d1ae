package queries

import (
	"context"

	"github.com/google/uuid"
)

type TourQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*TourView, error)
	ListActive(ctx context.Context) ([]*TourView, error)
	History(ctx context.Context, id uuid.UUID) ([]*HistoryEntryView, error)
}

type TourViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*TourView, error)
	FindActive(ctx context.Context) ([]*TourView, error)
}

type tourQueriesImpl struct {
	repo    TourViewRepo
	history HistoryViewRepo
}

func NewTourQueries(repo TourViewRepo, history HistoryViewRepo) TourQueries {
	return &tourQueriesImpl{repo: repo, history: history}
}

func (q *tourQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*TourView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *tourQueriesImpl) ListActive(ctx context.Context) ([]*TourView, error) {
	return q.repo.FindActive(ctx)
}

func (q *tourQueriesImpl) History(ctx context.Context, id uuid.UUID) ([]*HistoryEntryView, error) {
	return q.history.FindByEntity(ctx, "tour", id)
}
