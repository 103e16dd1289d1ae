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

type ClientStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*queries.ClientView, error)
	FindByPhone(ctx context.Context, phone string) (*queries.ClientView, error)
}

type ClientReadStore struct {
	db db.DBTX
}

func NewClientReadStore(db db.DBTX) *ClientReadStore {
	return &ClientReadStore{db: db}
}

const clientViewQuery = `
	SELECT id, name, phone, email, reputation, is_active, created_at, updated_at
	FROM clients`

func (r *ClientReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ClientView, error) {
	return r.findOne(ctx, clientViewQuery+` WHERE id = $1`, id)
}

func (r *ClientReadStore) FindByPhone(ctx context.Context, phone string) (*queries.ClientView, error) {
	return r.findOne(ctx, clientViewQuery+` WHERE phone = $1`, phone)
}

func (r *ClientReadStore) findOne(ctx context.Context, query string, arg any) (*queries.ClientView, error) {
	v := &queries.ClientView{}
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&v.ID, &v.Name, &v.Phone, &v.Email, &v.Reputation, &v.IsActive, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "client not found", err)
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to find client", err)
	}
	return v, nil
}
