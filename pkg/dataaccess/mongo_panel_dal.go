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

func (s *mongoStore) CreatePanel(ctx context.Context, panel *entities.Panel) error {
	id, err := s.nextID(ctx, panelDalName, collectionPanels)
	if err != nil {
		return err
	}

	panel.ID = id
	panel.CreatedAt = custom.Now()

	t := monitoring.ObserveMongo(panelDalName, "create_panel", s.db.Name(), collectionPanels)
	defer t.ObserveDuration()

	if _, err := s.db.Collection(collectionPanels).InsertOne(ctx, panel); err != nil {
		return fmt.Errorf("error inserting panel: %w", err)
	}

	s.l.Debug("Created panel",
		slog.Int64(logging.KeyPanelID, panel.ID),
		slog.String(logging.KeyGuildID, panel.GuildID),
	)
	return nil
}

func (s *mongoStore) GetPanel(ctx context.Context, id int64) (*entities.Panel, error) {
	t := monitoring.ObserveMongo(panelDalName, "get_panel", s.db.Name(), collectionPanels)
	defer t.ObserveDuration()

	panel := new(entities.Panel)
	err := s.db.Collection(collectionPanels).FindOne(ctx, bson.M{"id": id}).Decode(panel)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("error getting panel: %w", err)
	}
	return panel, nil
}

func (s *mongoStore) ListPanelsByGuild(ctx context.Context, guildID string) ([]*entities.Panel, error) {
	t := monitoring.ObserveMongo(panelDalName, "list_panels_by_guild", s.db.Name(), collectionPanels)
	defer t.ObserveDuration()

	opts := options.Find().SetSort(bson.M{"id": 1})
	cur, err := s.db.Collection(collectionPanels).Find(ctx, bson.M{"guild_id": guildID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing panels: %w", err)
	}

	panels := make([]*entities.Panel, 0)
	if err := cur.All(ctx, &panels); err != nil {
		return nil, fmt.Errorf("error decoding panels: %w", err)
	}
	return panels, nil
}

func (s *mongoStore) DeletePanel(ctx context.Context, id int64) error {
	t := monitoring.ObserveMongo(panelDalName, "delete_panel", s.db.Name(), collectionPanels)
	defer t.ObserveDuration()

	res, err := s.db.Collection(collectionPanels).DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("error deleting panel: %w", err)
	} else if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
