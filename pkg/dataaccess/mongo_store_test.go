package dataaccess

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/Jacobbrewer1/neutron/pkg/dataaccess/connection"
	"github.com/Jacobbrewer1/neutron/pkg/entities"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

// envTestMongoURI points the live mongo tests at a deployment. They are skipped when it is unset.
const envTestMongoURI = "MONGO_URI"

func newTestMongoStore(t *testing.T) Store {
	t.Helper()

	uri := os.Getenv(envTestMongoURI)
	if uri == "" {
		t.Skipf("%s not set", envTestMongoURI)
	}

	ctx := context.Background()
	conn := &connection.MongoDB{ConnectionString: uri}
	client, err := conn.Connect(ctx)
	require.NoError(t, err, "Failed to connect to mongo")

	database := "neutron_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	s, err := NewMongoStore(ctx, slog.New(slog.NewTextHandler(io.Discard, nil)), client, database)
	require.NoError(t, err, "Failed to create store")

	t.Cleanup(func() {
		require.NoError(t, client.Database(database).Drop(ctx))
		require.NoError(t, s.Close(ctx))
	})
	return s
}

func TestMongoStore_Panels(t *testing.T) {
	testPanelRegistry(t, newTestMongoStore(t))
}

func TestMongoStore_Tickets(t *testing.T) {
	testTicketLifecycle(t, newTestMongoStore(t))
}

// indexResponses answers the createIndexes commands sent by NewMongoStore.
func indexResponses() []bson.D {
	return []bson.D{mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse()}
}

func newMockMongoStore(mt *mtest.T) Store {
	mt.AddMockResponses(indexResponses()...)
	s, err := NewMongoStore(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)), mt.Client, "neutron")
	require.NoError(mt, err)
	mt.ClearEvents()
	return s
}

func TestMongoStore_Mock(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("DuplicateOpenTicket", func(mt *mtest.T) {
		s := newMockMongoStore(mt)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
				{Key: "_id", Value: collectionTickets},
				{Key: "seq", Value: int64(2)},
			}}),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{
				Index:   0,
				Code:    11000,
				Message: "E11000 duplicate key error collection: neutron.tickets index: ticket_one_open_per_creator",
			}),
		)

		err := s.CreateTicket(context.Background(), &entities.Ticket{PanelID: 1, ChannelID: "chan2", CreatorID: "u1"})
		require.ErrorIs(mt, err, ErrDuplicate)
	})

	mt.Run("CreateTicket", func(mt *mtest.T) {
		s := newMockMongoStore(mt)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
				{Key: "_id", Value: collectionTickets},
				{Key: "seq", Value: int64(7)},
			}}),
			mtest.CreateSuccessResponse(),
		)

		ticket := &entities.Ticket{PanelID: 1, ChannelID: "chan1", CreatorID: "u1"}
		require.NoError(mt, s.CreateTicket(context.Background(), ticket))
		require.Equal(mt, int64(7), ticket.ID)
		require.Equal(mt, entities.TicketStatusOpen, ticket.Status)
		require.False(mt, ticket.CreatedAt.IsZero())
	})

	mt.Run("ClaimAlreadyClaimed", func(mt *mtest.T) {
		s := newMockMongoStore(mt)
		mt.AddMockResponses(
			// The claimed_by filter matches nothing.
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
			// The ticket itself exists.
			mtest.CreateCursorResponse(0, "neutron."+collectionTickets, mtest.FirstBatch, bson.D{{Key: "n", Value: 1}}),
		)

		require.ErrorIs(mt, s.ClaimTicket(context.Background(), 1, "staff2"), ErrConflict)
	})

	mt.Run("ClaimMissing", func(mt *mtest.T) {
		s := newMockMongoStore(mt)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
			mtest.CreateCursorResponse(0, "neutron."+collectionTickets, mtest.FirstBatch),
		)

		require.ErrorIs(mt, s.ClaimTicket(context.Background(), 999, "staff2"), ErrNotFound)
	})

	mt.Run("Claim", func(mt *mtest.T) {
		s := newMockMongoStore(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))

		require.NoError(mt, s.ClaimTicket(context.Background(), 1, "staff1"))

		// Only an unclaimed ticket may be claimed.
		update := mt.GetStartedEvent()
		require.NotNil(mt, update)
		require.Equal(mt, "update", update.CommandName)
		q := update.Command.Lookup("updates").Array().Index(0).Value().Document().Lookup("q").Document()
		require.Equal(mt, "", q.Lookup("claimed_by").StringValue())
		require.Equal(mt, int64(1), q.Lookup("id").Int64())
	})

	mt.Run("GetTicketMissing", func(mt *mtest.T) {
		s := newMockMongoStore(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "neutron."+collectionTickets, mtest.FirstBatch))

		_, err := s.GetTicketByChannel(context.Background(), "missing")
		require.ErrorIs(mt, err, ErrNotFound)
	})
}
