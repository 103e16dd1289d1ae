package client

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName           = errors.New("client name cannot be empty")
	ErrEmptyPhone          = errors.New("client phone number cannot be empty")
	ErrClientInactive      = errors.New("client is inactive")
	ErrOpenReservations    = errors.New("client has reservations still in progress")
	ErrInvalidReputation   = errors.New("reputation adjustment would not change anything")
	ErrReservationRequired = errors.New("reputation changes must reference a reservation")
)

// InitialReputation is the trust score every new client starts with.
const InitialReputation = 10

type Client struct {
	id         uuid.UUID
	name       string
	phone      string
	email      string
	reputation int
	isActive   bool
	createdAt  time.Time
	updatedAt  time.Time
}

func NewClient(name, phone, email string) (*Client, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, ErrEmptyPhone
	}

	return &Client{
		id:         uuid.New(),
		name:       name,
		phone:      phone,
		email:      strings.TrimSpace(email),
		reputation: InitialReputation,
		isActive:   true,
	}, nil
}

func ReconstructClient(
	id uuid.UUID,
	name, phone, email string,
	reputation int,
	isActive bool,
	createdAt, updatedAt time.Time,
) *Client {
	return &Client{
		id:         id,
		name:       name,
		phone:      phone,
		email:      email,
		reputation: reputation,
		isActive:   isActive,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// AdjustReputation applies a lifecycle delta. Zero deltas are a no-op
// by contract: callers skip the write entirely instead of recording
// a zero-valued history entry.
func (c *Client) AdjustReputation(delta int) {
	c.reputation += delta
}

// Deactivate soft-deletes the client. The caller must have verified
// that no reservation remains in a non-final state.
func (c *Client) Deactivate() error {
	if !c.isActive {
		return ErrClientInactive
	}
	c.isActive = false
	return nil
}

func (c *Client) ID() uuid.UUID        { return c.id }
func (c *Client) Name() string         { return c.name }
func (c *Client) Phone() string        { return c.phone }
func (c *Client) Email() string        { return c.email }
func (c *Client) Reputation() int      { return c.reputation }
func (c *Client) IsActive() bool       { return c.isActive }
func (c *Client) CreatedAt() time.Time { return c.createdAt }
func (c *Client) UpdatedAt() time.Time { return c.updatedAt }
