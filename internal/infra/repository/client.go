package repository

import (
	"context"
	"errors"
	"time"

	"tour-booking/internal/domain/client"
	"tour-booking/internal/infra"
	"tour-booking/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ClientRepository struct{}

func NewClientRepository() *ClientRepository {
	return &ClientRepository{}
}

func (r *ClientRepository) Create(ctx context.Context, tx db.DBTX, c *client.Client) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, `
		INSERT INTO clients (id, name, phone, email, reputation, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		c.ID(), c.Name(), c.Phone(), c.Email(), c.Reputation(), c.IsActive(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, wrapWriteErr("failed to create client", err)
	}
	return id, nil
}

func (r *ClientRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*client.Client, error) {
	row := tx.QueryRow(ctx, `
		SELECT id, name, phone, email, reputation, is_active, created_at, updated_at
		FROM clients WHERE id = $1`, id)

	c, err := scanClient(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "client not found", err)
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to find client", err)
	}
	return c, nil
}

func (r *ClientRepository) Update(ctx context.Context, tx db.DBTX, c *client.Client) error {
	tag, err := tx.Exec(ctx, `
		UPDATE clients SET
			name = $2,
			phone = $3,
			email = $4,
			reputation = $5,
			is_active = $6,
			updated_at = now()
		WHERE id = $1`,
		c.ID(), c.Name(), c.Phone(), c.Email(), c.Reputation(), c.IsActive(),
	)
	if err != nil {
		return wrapWriteErr("failed to update client", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindNotFound, "client not found", nil)
	}
	return nil
}

func scanClient(row pgx.Row) (*client.Client, error) {
	var (
		id                   uuid.UUID
		name, phone, email   string
		reputation           int
		isActive             bool
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &name, &phone, &email, &reputation, &isActive, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return client.ReconstructClient(id, name, phone, email, reputation, isActive, createdAt, updatedAt), nil
}
