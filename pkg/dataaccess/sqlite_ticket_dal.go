package dataaccess

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Jacobbrewer1/neutron/pkg/custom"
	"github.com/Jacobbrewer1/neutron/pkg/dataaccess/monitoring"
	"github.com/Jacobbrewer1/neutron/pkg/entities"
)

const ticketColumns = `id, panel_id, guild_id, channel_id, creator_id, status, claimed_by, category_selected,
	created_at, closed_at`

func (s *sqliteStore) CreateTicket(ctx context.Context, ticket *entities.Ticket) error {
	t := monitoring.ObserveSqlite(ticketDalName, "create_ticket", collectionTickets)
	defer t.ObserveDuration()

	ticket.Status = entities.TicketStatusOpen
	if ticket.CreatedAt.IsZero() {
		ticket.CreatedAt = custom.Now()
	}

	res, err := s.db.NamedExecContext(ctx, `
		INSERT INTO tickets (panel_id, guild_id, channel_id, creator_id, status, claimed_by, category_selected,
			created_at, closed_at)
		VALUES (:panel_id, :guild_id, :channel_id, :creator_id, :status, :claimed_by, :category_selected,
			:created_at, :closed_at)`, ticket)
	if isUniqueViolation(err) {
		return ErrDuplicate
	} else if err != nil {
		return fmt.Errorf("error inserting ticket: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("error getting ticket id: %w", err)
	}
	ticket.ID = id
	return nil
}

func (s *sqliteStore) GetTicketByChannel(ctx context.Context, channelID string) (*entities.Ticket, error) {
	t := monitoring.ObserveSqlite(ticketDalName, "get_ticket_by_channel", collectionTickets)
	defer t.ObserveDuration()

	ticket := new(entities.Ticket)
	err := s.db.GetContext(ctx, ticket, `SELECT `+ticketColumns+` FROM tickets WHERE channel_id = ? ORDER BY id DESC LIMIT 1`, channelID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("error getting ticket: %w", err)
	}
	return ticket, nil
}

func (s *sqliteStore) HasOpenTicket(ctx context.Context, creatorID string, panelID int64) (bool, error) {
	t := monitoring.ObserveSqlite(ticketDalName, "has_open_ticket", collectionTickets)
	defer t.ObserveDuration()

	var exists bool
	err := s.db.GetContext(ctx, &exists, `
		SELECT EXISTS (SELECT 1 FROM tickets WHERE creator_id = ? AND panel_id = ? AND status = ?)`,
		creatorID, panelID, entities.TicketStatusOpen)
	if err != nil {
		return false, fmt.Errorf("error checking open tickets: %w", err)
	}
	return exists, nil
}

func (s *sqliteStore) ClaimTicket(ctx context.Context, id int64, claimantID string) error {
	t := monitoring.ObserveSqlite(ticketDalName, "claim_ticket", collectionTickets)
	defer t.ObserveDuration()

	res, err := s.db.ExecContext(ctx, `UPDATE tickets SET claimed_by = ? WHERE id = ? AND claimed_by = ''`, claimantID, id)
	if err != nil {
		return fmt.Errorf("error claiming ticket: %w", err)
	}
	return s.checkUpdated(ctx, res, id)
}

func (s *sqliteStore) CloseTicket(ctx context.Context, id int64) error {
	t := monitoring.ObserveSqlite(ticketDalName, "close_ticket", collectionTickets)
	defer t.ObserveDuration()

	res, err := s.db.ExecContext(ctx, `UPDATE tickets SET status = ?, closed_at = ? WHERE id = ? AND status = ?`,
		entities.TicketStatusClosed, custom.Now(), id, entities.TicketStatusOpen)
	if err != nil {
		return fmt.Errorf("error closing ticket: %w", err)
	}
	return s.checkUpdated(ctx, res, id)
}

// checkUpdated turns a conditional update that touched no rows into ErrNotFound or ErrConflict.
func (s *sqliteStore) checkUpdated(ctx context.Context, res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting updated rows: %w", err)
	} else if n > 0 {
		return nil
	}

	var exists bool
	if err := s.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM tickets WHERE id = ?)`, id); err != nil {
		return fmt.Errorf("error checking ticket: %w", err)
	} else if !exists {
		return ErrNotFound
	}
	return ErrConflict
}
