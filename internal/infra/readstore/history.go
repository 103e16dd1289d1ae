package readstore

import (
	"context"

	"tour-booking/internal/infra"
	"tour-booking/internal/infra/db"
	"tour-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type HistoryStore interface {
	FindByEntity(ctx context.Context, entityType string, entityID uuid.UUID) ([]*queries.HistoryEntryView, error)
}

type HistoryReadStore struct {
	db db.DBTX
}

func NewHistoryReadStore(db db.DBTX) *HistoryReadStore {
	return &HistoryReadStore{db: db}
}

func (r *HistoryReadStore) FindByEntity(ctx context.Context, entityType string, entityID uuid.UUID) ([]*queries.HistoryEntryView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, entity_type, entity_id, actor_id, action_type, description, amount, user_comments, created_at
		FROM history_entries
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at`, entityType, entityID)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list history entries", err)
	}
	defer rows.Close()

	var result []*queries.HistoryEntryView
	for rows.Next() {
		v := &queries.HistoryEntryView{}
		err := rows.Scan(&v.ID, &v.EntityType, &v.EntityID, &v.ActorID, &v.ActionType, &v.Description, &v.Amount, &v.Comment, &v.CreatedAt)
		if err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan history entry", err)
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to read history entries", err)
	}
	return result, nil
}
