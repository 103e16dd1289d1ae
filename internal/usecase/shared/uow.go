package shared

import (
	"context"

	"tour-booking/internal/domain/client"
	"tour-booking/internal/domain/history"
	"tour-booking/internal/domain/reservation"
	"tour-booking/internal/domain/tour"
	"tour-booking/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Reservations() ReservationRepository
	Tours() TourRepository
	Clients() ClientRepository
	History() HistoryRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	TourByID(ctx context.Context, id uuid.UUID) (*TourSnapshot, error)
	ClientByID(ctx context.Context, id uuid.UUID) (*ClientSnapshot, error)
	ClientByPhone(ctx context.Context, phone string) (*ClientSnapshot, error)
	ReservationByID(ctx context.Context, id uuid.UUID) (*ReservationSnapshot, error)
}

// Minimal snapshots for command-side validation reads. Commands
// re-load full aggregates inside the transaction before mutating.
type TourSnapshot struct {
	ID            uuid.UUID
	Price         float64
	MinPayment    float64
	TotalSeats    int
	ReservedSeats int
	Status        string
	IsActive      bool
}

type ClientSnapshot struct {
	ID         uuid.UUID
	Name       string
	Phone      string
	Reputation int
	IsActive   bool
}

type ReservationSnapshot struct {
	ID                uuid.UUID
	TourID            uuid.UUID
	ClientID          uuid.UUID
	StatusCode        string
	PendingDevolution float64
	IsActive          bool
}

type ReservationRepository interface {
	Create(ctx context.Context, tx db.DBTX, res *reservation.Reservation) (uuid.UUID, error)
	FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*reservation.Reservation, error)
	Update(ctx context.Context, tx db.DBTX, res *reservation.Reservation) error
	FindLiveByTour(ctx context.Context, tx db.DBTX, tourID uuid.UUID) ([]*reservation.Reservation, error)
	CountOpenByClient(ctx context.Context, tx db.DBTX, clientID uuid.UUID) (int64, error)
}

type TourRepository interface {
	Create(ctx context.Context, tx db.DBTX, t *tour.Tour) (uuid.UUID, error)
	FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*tour.Tour, error)
	Update(ctx context.Context, tx db.DBTX, t *tour.Tour) error
	UpsertPromos(ctx context.Context, tx db.DBTX, tourID uuid.UUID, promos []*tour.Promo) error
}

type ClientRepository interface {
	Create(ctx context.Context, tx db.DBTX, c *client.Client) (uuid.UUID, error)
	FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*client.Client, error)
	Update(ctx context.Context, tx db.DBTX, c *client.Client) error
}

type HistoryRepository interface {
	Append(ctx context.Context, tx db.DBTX, entries ...history.Entry) error
}
