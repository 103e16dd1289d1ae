package repository

import (
	"context"

	"tour-booking/internal/domain/history"
	"tour-booking/internal/infra/db"

	"github.com/google/uuid"
)

type HistoryRepository struct{}

func NewHistoryRepository() *HistoryRepository {
	return &HistoryRepository{}
}

// Append writes audit entries inside the caller's transaction, so a
// failed operation leaves no history behind.
func (r *HistoryRepository) Append(ctx context.Context, tx db.DBTX, entries ...history.Entry) error {
	for _, e := range entries {
		_, err := tx.Exec(ctx, `
			INSERT INTO history_entries (
				id, entity_type, entity_id, actor_id,
				action_type, description, amount, user_comments
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			uuid.New(), string(e.Entity()), e.EntityID(), e.ActorID(),
			e.ActionType(), e.Description(), e.Amount(), e.Comment(),
		)
		if err != nil {
			return wrapWriteErr("failed to append history entry", err)
		}
	}
	return nil
}
