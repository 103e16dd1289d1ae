package history

import (
	"time"

	"github.com/google/uuid"
)

// EntityKind identifies which aggregate a history entry belongs to.
type EntityKind string

const (
	KindReservation EntityKind = "reservation"
	KindTour        EntityKind = "tour"
	KindClient      EntityKind = "client"
)

// Actor is the authenticated user an operation is attributed to,
// threaded explicitly through every command instead of living in
// ambient request state.
type Actor struct {
	UserID  uuid.UUID
	Comment string
}

// Entry is a single append-only audit record. Entries are never
// mutated or removed once written.
type Entry struct {
	entity     EntityKind
	entityID   uuid.UUID
	actorID    uuid.UUID
	actionType string
	desc       string
	amount     *float64
	comment    string
	createdAt  time.Time
}

func NewEntry(entity EntityKind, entityID uuid.UUID, actor Actor, actionType, desc string) Entry {
	return Entry{
		entity:     entity,
		entityID:   entityID,
		actorID:    actor.UserID,
		actionType: actionType,
		desc:       desc,
		comment:    actor.Comment,
	}
}

func (e Entry) WithAmount(amount float64) Entry {
	e.amount = &amount
	return e
}

func (e Entry) Entity() EntityKind   { return e.entity }
func (e Entry) EntityID() uuid.UUID  { return e.entityID }
func (e Entry) ActorID() uuid.UUID   { return e.actorID }
func (e Entry) ActionType() string   { return e.actionType }
func (e Entry) Description() string  { return e.desc }
func (e Entry) Amount() *float64     { return e.amount }
func (e Entry) Comment() string      { return e.comment }
func (e Entry) CreatedAt() time.Time { return e.createdAt }
