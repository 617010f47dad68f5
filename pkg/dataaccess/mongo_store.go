package dataaccess

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Jacobbrewer1/neutron/pkg/dataaccess/monitoring"
	"github.com/Jacobbrewer1/neutron/pkg/logging"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoStore struct {
	// l is the logger.
	l *slog.Logger

	// client is the Mongo client. This is a connection pool.
	client *mongo.Client

	// db is the database the collections live in.
	db *mongo.Database
}

// NewMongoStore creates a store backed by the given Mongo database and ensures its indexes exist.
func NewMongoStore(ctx context.Context, l *slog.Logger, client *mongo.Client, database string) (Store, error) {
	if client == nil {
		return nil, fmt.Errorf("mongo client is nil")
	}

	s := &mongoStore{
		l:      l.With(slog.String(logging.KeyDal, "mongo")),
		client: client,
		db:     client.Database(database),
	}

	if err := s.ensureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("error ensuring indexes: %w", err)
	}

	return s, nil
}

func (s *mongoStore) ensureIndexes(ctx context.Context) error {
	panelIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetName("panel_id").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "guild_id", Value: 1}},
			Options: options.Index().SetName("panel_guild_id"),
		},
	}
	if _, err := s.db.Collection(collectionPanels).Indexes().CreateMany(ctx, panelIndexes); err != nil {
		return fmt.Errorf("error creating panel indexes: %w", err)
	}

	ticketIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetName("ticket_id").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "channel_id", Value: 1}},
			Options: options.Index().SetName("ticket_channel_id").SetUnique(true),
		},
		{
			// Only one open ticket per creator and panel. Closed tickets are not part of the index.
			Keys: bson.D{{Key: "creator_id", Value: 1}, {Key: "panel_id", Value: 1}},
			Options: options.Index().
				SetName("ticket_one_open_per_creator").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": "open"}),
		},
	}
	if _, err := s.db.Collection(collectionTickets).Indexes().CreateMany(ctx, ticketIndexes); err != nil {
		return fmt.Errorf("error creating ticket indexes: %w", err)
	}

	return nil
}

// nextID increments and returns the named sequence.
func (s *mongoStore) nextID(ctx context.Context, dal, sequence string) (int64, error) {
	t := monitoring.ObserveMongo(dal, "next_id", s.db.Name(), collectionCounters)
	defer t.ObserveDuration()

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := s.db.Collection(collectionCounters).
		FindOneAndUpdate(ctx, bson.M{"_id": sequence}, bson.M{"$inc": bson.M{"seq": int64(1)}}, opts).
		Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("error incrementing %s sequence: %w", sequence, err)
	}

	return counter.Seq, nil
}

func (s *mongoStore) Ping(ctx context.Context) error {
	t := monitoring.ObserveMongo("health_check", "ping", "-", "-")
	defer t.ObserveDuration()

	if err := s.client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("error pinging mongo: %w", err)
	}
	return nil
}

func (s *mongoStore) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("error disconnecting from mongo: %w", err)
	}
	return nil
}
