package dataaccess

import (
	"context"
	"errors"

	"github.com/Jacobbrewer1/neutron/pkg/entities"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when a write would break a uniqueness constraint, such as a second open ticket for
	// the same creator and panel.
	ErrDuplicate = errors.New("duplicate record")

	// ErrConflict is returned when a conditional update did not apply because the record is no longer in the
	// expected state.
	ErrConflict = errors.New("conflicting update")
)

// PanelDal is the data access layer for ticket panels.
type PanelDal interface {
	// CreatePanel saves a new panel, assigning its ID and creation time.
	CreatePanel(ctx context.Context, panel *entities.Panel) error

	// GetPanel gets a panel by ID.
	GetPanel(ctx context.Context, id int64) (*entities.Panel, error)

	// ListPanelsByGuild gets all panels belonging to a guild, oldest first.
	ListPanelsByGuild(ctx context.Context, guildID string) ([]*entities.Panel, error)

	// DeletePanel deletes a panel. Tickets opened from it are kept.
	DeletePanel(ctx context.Context, id int64) error
}

// TicketDal is the data access layer for tickets.
type TicketDal interface {
	// CreateTicket saves a new open ticket, assigning its ID. ErrDuplicate is returned if the creator already has an
	// open ticket for the panel.
	CreateTicket(ctx context.Context, ticket *entities.Ticket) error

	// GetTicketByChannel gets the ticket backed by a channel.
	GetTicketByChannel(ctx context.Context, channelID string) (*entities.Ticket, error)

	// HasOpenTicket reports whether the creator has an open ticket for the panel.
	HasOpenTicket(ctx context.Context, creatorID string, panelID int64) (bool, error)

	// ClaimTicket records the claimant of an unclaimed ticket. ErrConflict is returned if the ticket was already
	// claimed.
	ClaimTicket(ctx context.Context, id int64, claimantID string) error

	// CloseTicket marks an open ticket as closed.
	CloseTicket(ctx context.Context, id int64) error
}

// Store is a persistence store for both panels and tickets.
type Store interface {
	PanelDal
	TicketDal

	// Ping checks that the store is reachable.
	Ping(ctx context.Context) error

	// Close releases the store's resources.
	Close(ctx context.Context) error
}
