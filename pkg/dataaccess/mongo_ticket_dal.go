package dataaccess

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Jacobbrewer1/neutron/pkg/custom"
	"github.com/Jacobbrewer1/neutron/pkg/dataaccess/monitoring"
	"github.com/Jacobbrewer1/neutron/pkg/entities"
	"github.com/Jacobbrewer1/neutron/pkg/logging"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *mongoStore) CreateTicket(ctx context.Context, ticket *entities.Ticket) error {
	id, err := s.nextID(ctx, ticketDalName, collectionTickets)
	if err != nil {
		return err
	}

	ticket.ID = id
	ticket.Status = entities.TicketStatusOpen
	if ticket.CreatedAt.IsZero() {
		ticket.CreatedAt = custom.Now()
	}

	t := monitoring.ObserveMongo(ticketDalName, "create_ticket", s.db.Name(), collectionTickets)
	defer t.ObserveDuration()

	if _, err := s.db.Collection(collectionTickets).InsertOne(ctx, ticket); mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	} else if err != nil {
		return fmt.Errorf("error inserting ticket: %w", err)
	}

	s.l.Debug("Created ticket",
		slog.Int64(logging.KeyTicketID, ticket.ID),
		slog.String(logging.KeyChannelID, ticket.ChannelID),
	)
	return nil
}

func (s *mongoStore) GetTicketByChannel(ctx context.Context, channelID string) (*entities.Ticket, error) {
	t := monitoring.ObserveMongo(ticketDalName, "get_ticket_by_channel", s.db.Name(), collectionTickets)
	defer t.ObserveDuration()

	opts := options.FindOne().SetSort(bson.M{"id": -1})

	ticket := new(entities.Ticket)
	err := s.db.Collection(collectionTickets).FindOne(ctx, bson.M{"channel_id": channelID}, opts).Decode(ticket)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("error getting ticket: %w", err)
	}
	return ticket, nil
}

func (s *mongoStore) HasOpenTicket(ctx context.Context, creatorID string, panelID int64) (bool, error) {
	t := monitoring.ObserveMongo(ticketDalName, "has_open_ticket", s.db.Name(), collectionTickets)
	defer t.ObserveDuration()

	n, err := s.db.Collection(collectionTickets).CountDocuments(ctx, bson.M{
		"creator_id": creatorID,
		"panel_id":   panelID,
		"status":     entities.TicketStatusOpen,
	}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("error counting open tickets: %w", err)
	}
	return n > 0, nil
}

func (s *mongoStore) ClaimTicket(ctx context.Context, id int64, claimantID string) error {
	t := monitoring.ObserveMongo(ticketDalName, "claim_ticket", s.db.Name(), collectionTickets)
	defer t.ObserveDuration()

	res, err := s.db.Collection(collectionTickets).UpdateOne(ctx,
		bson.M{"id": id, "claimed_by": ""},
		bson.M{"$set": bson.M{"claimed_by": claimantID}},
	)
	if err != nil {
		return fmt.Errorf("error claiming ticket: %w", err)
	}
	if res.MatchedCount == 0 {
		return s.missOrConflict(ctx, id)
	}
	return nil
}

func (s *mongoStore) CloseTicket(ctx context.Context, id int64) error {
	t := monitoring.ObserveMongo(ticketDalName, "close_ticket", s.db.Name(), collectionTickets)
	defer t.ObserveDuration()

	res, err := s.db.Collection(collectionTickets).UpdateOne(ctx,
		bson.M{"id": id, "status": entities.TicketStatusOpen},
		bson.M{"$set": bson.M{
			"status":    entities.TicketStatusClosed,
			"closed_at": custom.Now(),
		}},
	)
	if err != nil {
		return fmt.Errorf("error closing ticket: %w", err)
	}
	if res.MatchedCount == 0 {
		return s.missOrConflict(ctx, id)
	}
	return nil
}

// missOrConflict works out why a conditional update on a ticket matched nothing.
func (s *mongoStore) missOrConflict(ctx context.Context, id int64) error {
	n, err := s.db.Collection(collectionTickets).CountDocuments(ctx, bson.M{"id": id}, options.Count().SetLimit(1))
	if err != nil {
		return fmt.Errorf("error checking ticket: %w", err)
	} else if n == 0 {
		return ErrNotFound
	}
	return ErrConflict
}
