package tickets_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/Jacobbrewer1/neutron/pkg/entities"
	"github.com/Jacobbrewer1/neutron/pkg/permissions"
	"github.com/Jacobbrewer1/neutron/pkg/tickets"
	"github.com/Jacobbrewer1/neutron/pkg/tickets/tickettest"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
)

const (
	testGuild = "guild1"
	roleA     = "roleA"
)

var (
	alice   = tickets.Actor{ID: "alice", Username: "alice"}
	staff   = tickets.Actor{ID: "sam", Username: "sam", RoleIDs: []string{"other", roleA}}
	staff2  = tickets.Actor{ID: "sue", Username: "sue", RoleIDs: []string{roleA}}
	admin   = tickets.Actor{ID: "ada", Username: "ada", Admin: true}
	mallory = tickets.Actor{ID: "mallory", Username: "mallory", RoleIDs: []string{"other"}}
)

type fixture struct {
	store    *tickettest.Store
	platform *tickettest.Platform
	c        *tickets.Controller
	panel    *entities.Panel
}

func newFixture(t *testing.T, opts ...tickets.Option) *fixture {
	t.Helper()

	store := tickettest.NewStore()
	platform := tickettest.NewPlatform()

	panel := &entities.Panel{
		GuildID:         testGuild,
		ChannelID:       "panels",
		StaffRoles:      entities.StringList{roleA},
		DropdownOptions: entities.DropdownOptions{{Label: "Billing", Emoji: "\U0001F4B3"}},
	}
	panel.ApplyDefaults()
	require.NoError(t, store.CreatePanel(context.Background(), panel))

	opts = append([]tickets.Option{tickets.WithCloseDelay(0)}, opts...)
	l := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &fixture{
		store:    store,
		platform: platform,
		c:        tickets.NewController(l, store, store, platform, opts...),
		panel:    panel,
	}
}

func (f *fixture) create(t *testing.T, requester tickets.Actor, category string) *entities.Ticket {
	t.Helper()

	ticket, err := f.c.Create(context.Background(), tickets.CreateRequest{
		PanelID:   f.panel.ID,
		GuildID:   testGuild,
		Requester: requester,
		Category:  category,
	})
	require.NoError(t, err)
	return ticket
}

func (f *fixture) lookup(t *testing.T, ticket *entities.Ticket) *tickets.Linked {
	t.Helper()

	linked, err := f.c.Lookup(context.Background(), ticket.ChannelID)
	require.NoError(t, err)
	return linked
}

func overwriteFor(overwrites []*discordgo.PermissionOverwrite, id string) *discordgo.PermissionOverwrite {
	for _, o := range overwrites {
		if o.ID == id {
			return o
		}
	}
	return nil
}

func TestController_Create(t *testing.T) {
	f := newFixture(t)

	ticket := f.create(t, alice, "Billing")
	require.Equal(t, entities.TicketStatusOpen, ticket.Status)
	require.Equal(t, "Billing", ticket.CategorySelected)
	require.Equal(t, alice.ID, ticket.CreatorID)
	require.Equal(t, f.panel.ID, ticket.PanelID)
	require.Equal(t, testGuild, ticket.GuildID)
	require.Empty(t, ticket.ClaimedBy)

	stored, ok := f.store.Ticket(ticket.ID)
	require.True(t, ok)
	require.Equal(t, ticket.ChannelID, stored.ChannelID)

	data, ok := f.platform.Channels[ticket.ChannelID]
	require.True(t, ok)
	require.Equal(t, "billing-alice", data.Name)
	require.Equal(t, discordgo.ChannelTypeGuildText, data.Type)
	require.Equal(t, f.platform.Categories[testGuild+"/"+tickets.DefaultCategoryName].ID, data.ParentID)

	everyone := overwriteFor(data.PermissionOverwrites, testGuild)
	require.NotNil(t, everyone)
	require.Equal(t, permissions.Hidden, everyone.Deny)

	requester := overwriteFor(data.PermissionOverwrites, alice.ID)
	require.NotNil(t, requester)
	require.Equal(t, discordgo.PermissionOverwriteTypeMember, requester.Type)
	require.Equal(t, permissions.Requester, requester.Allow)

	role := overwriteFor(data.PermissionOverwrites, roleA)
	require.NotNil(t, role)
	require.Equal(t, discordgo.PermissionOverwriteTypeRole, role.Type)
	require.Equal(t, permissions.Staff, role.Allow)

	require.NotNil(t, overwriteFor(data.PermissionOverwrites, tickettest.BotID))
	require.Len(t, data.PermissionOverwrites, 4)

	welcome := f.platform.MessagesIn(ticket.ChannelID)
	require.Len(t, welcome, 1)
	require.Equal(t, alice.Mention(), welcome[0].Content)
	require.Len(t, welcome[0].Components, 1)
}

func TestController_Create_DefaultCategory(t *testing.T) {
	f := newFixture(t)

	ticket := f.create(t, alice, "")
	require.Equal(t, entities.DefaultCategory, ticket.CategorySelected)
	require.Equal(t, "general-support-alice", f.platform.Channels[ticket.ChannelID].Name)
}

func TestController_Create_ReusesCategory(t *testing.T) {
	f := newFixture(t)

	a := f.create(t, alice, "Billing")
	b := f.create(t, staff, "Billing")
	require.Equal(t, f.platform.Channels[a.ChannelID].ParentID, f.platform.Channels[b.ChannelID].ParentID)
	require.Len(t, f.platform.Categories, 1)
}

func TestController_Create_ConfigNotFound(t *testing.T) {
	tests := []struct {
		name    string
		panelID int64
		guildID string
	}{
		{
			name:    "missing panel",
			panelID: 99,
			guildID: testGuild,
		},
		{
			name:    "panel in another guild",
			panelID: 1,
			guildID: "elsewhere",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.c.Create(context.Background(), tickets.CreateRequest{
				PanelID:   tt.panelID,
				GuildID:   tt.guildID,
				Requester: alice,
			})
			require.ErrorIs(t, err, tickets.ErrConfigNotFound)
			require.Zero(t, f.platform.ChannelCount())
			require.Zero(t, f.store.TicketCount())
		})
	}
}

func TestController_Create_DuplicateOpenTicket(t *testing.T) {
	f := newFixture(t)

	f.create(t, alice, "Billing")

	_, err := f.c.Create(context.Background(), tickets.CreateRequest{
		PanelID:   f.panel.ID,
		GuildID:   testGuild,
		Requester: alice,
		Category:  "Billing",
	})
	require.ErrorIs(t, err, tickets.ErrDuplicateOpenTicket)
	require.Equal(t, 1, f.platform.ChannelCount())
	require.Equal(t, 1, f.store.TicketCount())

	// Another user is unaffected.
	f.create(t, staff, "Billing")
}

func TestController_Create_DuplicateRace(t *testing.T) {
	f := newFixture(t)

	first := f.create(t, alice, "Billing")

	// The open ticket check passes, the store's constraint does not.
	f.store.SkipOpenCheck = true

	_, err := f.c.Create(context.Background(), tickets.CreateRequest{
		PanelID:   f.panel.ID,
		GuildID:   testGuild,
		Requester: alice,
	})
	require.ErrorIs(t, err, tickets.ErrDuplicateOpenTicket)
	require.Equal(t, 1, f.platform.ChannelCount())
	require.Len(t, f.platform.Deleted, 1)
	require.NotEqual(t, first.ChannelID, f.platform.Deleted[0])
}

func TestController_Create_ChannelCreateFailed(t *testing.T) {
	f := newFixture(t)
	f.platform.CreateChannelErr = errors.New("Missing Permissions")

	_, err := f.c.Create(context.Background(), tickets.CreateRequest{
		PanelID:   f.panel.ID,
		GuildID:   testGuild,
		Requester: alice,
	})
	require.ErrorIs(t, err, tickets.ErrChannelCreateFailed)

	var createErr *tickets.ChannelCreateError
	require.ErrorAs(t, err, &createErr)
	require.EqualError(t, createErr.Err, "Missing Permissions")
	require.Equal(t, "❌ Error creating channel: Missing Permissions", tickets.UserMessage(err))
	require.Zero(t, f.store.TicketCount())
}

func TestController_Create_WelcomeFailureKeepsTicket(t *testing.T) {
	f := newFixture(t)
	f.platform.SendMessageErr = tickettest.ErrUnreachable

	ticket := f.create(t, alice, "Billing")
	require.True(t, ticket.IsOpen())
	require.Equal(t, 1, f.store.TicketCount())
}

func TestController_Lookup(t *testing.T) {
	f := newFixture(t)
	ticket := f.create(t, alice, "Billing")

	linked := f.lookup(t, ticket)
	require.Equal(t, ticket.ID, linked.Ticket.ID)
	require.NotNil(t, linked.Panel)
	require.Equal(t, f.panel.ID, linked.Panel.ID)

	_, err := f.c.Lookup(context.Background(), "not-a-ticket")
	require.ErrorIs(t, err, tickets.ErrTicketNotFound)

	require.NoError(t, f.c.Close(context.Background(), linked, alice, nil))
	_, err = f.c.Lookup(context.Background(), ticket.ChannelID)
	require.ErrorIs(t, err, tickets.ErrTicketNotFound)
}

func TestController_Lookup_PanelDeleted(t *testing.T) {
	f := newFixture(t)
	ticket := f.create(t, alice, "Billing")
	require.NoError(t, f.store.DeletePanel(context.Background(), f.panel.ID))

	linked := f.lookup(t, ticket)
	require.Nil(t, linked.Panel)

	require.ErrorIs(t, f.c.Claim(context.Background(), linked, staff), tickets.ErrUnauthorized)
	require.NoError(t, f.c.Claim(context.Background(), linked, admin))
}

func TestIsStaff(t *testing.T) {
	panel := &entities.Panel{StaffRoles: entities.StringList{roleA}}

	tests := []struct {
		name  string
		panel *entities.Panel
		actor tickets.Actor
		want  bool
	}{
		{name: "staff role", panel: panel, actor: staff, want: true},
		{name: "admin", panel: panel, actor: admin, want: true},
		{name: "admin without panel", panel: nil, actor: admin, want: true},
		{name: "other role", panel: panel, actor: mallory, want: false},
		{name: "no roles", panel: panel, actor: alice, want: false},
		{name: "panel without staff", panel: &entities.Panel{}, actor: staff, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tickets.IsStaff(tt.panel, tt.actor))
		})
	}
}

func TestController_Claim(t *testing.T) {
	f := newFixture(t)
	ticket := f.create(t, alice, "Billing")
	linked := f.lookup(t, ticket)

	require.NoError(t, f.c.Claim(context.Background(), linked, staff))
	require.Equal(t, staff.ID, linked.Ticket.ClaimedBy)
	require.Equal(t, "Ticket Claimed by: sam", f.platform.Topics[ticket.ChannelID])

	stored, _ := f.store.Ticket(ticket.ID)
	require.Equal(t, staff.ID, stored.ClaimedBy)

	// A second staff member is refused and the first claim stands.
	err := f.c.Claim(context.Background(), f.lookup(t, ticket), staff2)
	require.ErrorIs(t, err, tickets.ErrAlreadyClaimed)

	var claimed *tickets.AlreadyClaimedError
	require.ErrorAs(t, err, &claimed)
	require.Equal(t, staff.ID, claimed.ClaimantID)
	require.Equal(t, "❌ Already claimed by <@sam>", tickets.UserMessage(err))

	stored, _ = f.store.Ticket(ticket.ID)
	require.Equal(t, staff.ID, stored.ClaimedBy)
}

func TestController_Claim_StaleRead(t *testing.T) {
	f := newFixture(t)
	ticket := f.create(t, alice, "Billing")

	first := f.lookup(t, ticket)
	second := f.lookup(t, ticket)

	require.NoError(t, f.c.Claim(context.Background(), first, staff))

	var claimed *tickets.AlreadyClaimedError
	require.ErrorAs(t, f.c.Claim(context.Background(), second, staff2), &claimed)
	require.Equal(t, staff.ID, claimed.ClaimantID)
}

func TestController_Claim_Unauthorized(t *testing.T) {
	f := newFixture(t)
	ticket := f.create(t, alice, "Billing")
	linked := f.lookup(t, ticket)

	for _, actor := range []tickets.Actor{alice, mallory} {
		err := f.c.Claim(context.Background(), linked, actor)
		require.ErrorIs(t, err, tickets.ErrUnauthorized)
		require.Equal(t, "❌ Only assigned staff can claim tickets.", tickets.UserMessage(err))
	}

	stored, _ := f.store.Ticket(ticket.ID)
	require.Empty(t, stored.ClaimedBy)
	require.Empty(t, f.platform.Topics)
}

func TestController_Claim_Admin(t *testing.T) {
	f := newFixture(t)
	ticket := f.create(t, alice, "Billing")

	require.NoError(t, f.c.Claim(context.Background(), f.lookup(t, ticket), admin))
}

func TestController_Claim_TopicFailureKeepsClaim(t *testing.T) {
	f := newFixture(t)
	f.platform.TopicErr = tickettest.ErrUnreachable
	ticket := f.create(t, alice, "Billing")

	require.NoError(t, f.c.Claim(context.Background(), f.lookup(t, ticket), staff))
	stored, _ := f.store.Ticket(ticket.ID)
	require.Equal(t, staff.ID, stored.ClaimedBy)
}

func TestController_Close_ByCreator(t *testing.T) {
	f := newFixture(t)
	ticket := f.create(t, alice, "Billing")

	f.platform.History = []*discordgo.Message{
		{
			Author:    &discordgo.User{Username: "alice"},
			Content:   "my invoice is wrong",
			Timestamp: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
		},
		{
			Author:    &discordgo.User{Username: "sam"},
			Content:   "fixed",
			Timestamp: time.Date(2024, 3, 1, 9, 45, 0, 0, time.UTC),
		},
	}

	acked := false
	err := f.c.Close(context.Background(), f.lookup(t, ticket), alice, func(context.Context) error {
		acked = true
		return nil
	})
	require.NoError(t, err)
	require.True(t, acked)

	stored, _ := f.store.Ticket(ticket.ID)
	require.Equal(t, entities.TicketStatusClosed, stored.Status)
	require.False(t, stored.ClosedAt.IsZero())
	require.Equal(t, []string{ticket.ChannelID}, f.platform.Deleted)

	dms := f.platform.DirectMessages[alice.ID]
	require.Len(t, dms, 1)
	require.Len(t, dms[0].Files, 1)
	require.Equal(t, tickets.TranscriptName(ticket.ID), dms[0].Files[0].Name)

	body, err := io.ReadAll(dms[0].Files[0].Reader)
	require.NoError(t, err)
	require.Equal(t, "2024-03-01 09:30 - alice: my invoice is wrong\n2024-03-01 09:45 - sam: fixed", string(body))
}

func TestController_Close_ByStaff(t *testing.T) {
	f := newFixture(t)
	ticket := f.create(t, alice, "Billing")

	require.NoError(t, f.c.Close(context.Background(), f.lookup(t, ticket), staff, nil))
	stored, _ := f.store.Ticket(ticket.ID)
	require.False(t, stored.IsOpen())
}

func TestController_Close_Unauthorized(t *testing.T) {
	f := newFixture(t)
	ticket := f.create(t, alice, "Billing")

	err := f.c.Close(context.Background(), f.lookup(t, ticket), mallory, func(context.Context) error {
		t.Fatal("close must not be acknowledged")
		return nil
	})
	require.ErrorIs(t, err, tickets.ErrUnauthorized)
	require.Equal(t, "❌ You do not have permission to close this ticket.", tickets.UserMessage(err))

	stored, _ := f.store.Ticket(ticket.ID)
	require.True(t, stored.IsOpen())
	require.Empty(t, f.platform.Deleted)
}

func TestController_Close_TranscriptUndeliverable(t *testing.T) {
	f := newFixture(t)
	ticket := f.create(t, alice, "Billing")
	f.platform.DirectMessageErr = tickettest.ErrUnreachable
	f.platform.HistoryErr = tickettest.ErrUnreachable

	require.NoError(t, f.c.Close(context.Background(), f.lookup(t, ticket), alice, nil))

	stored, _ := f.store.Ticket(ticket.ID)
	require.False(t, stored.IsOpen())
	require.Equal(t, []string{ticket.ChannelID}, f.platform.Deleted)
}

func TestController_Close_DeleteFailureKeepsTicketOpen(t *testing.T) {
	f := newFixture(t)
	ticket := f.create(t, alice, "Billing")
	f.platform.DeleteErr = tickettest.ErrUnreachable

	require.Error(t, f.c.Close(context.Background(), f.lookup(t, ticket), alice, nil))

	stored, _ := f.store.Ticket(ticket.ID)
	require.True(t, stored.IsOpen())
}

func TestController_Close_AckFailure(t *testing.T) {
	f := newFixture(t)
	ticket := f.create(t, alice, "Billing")

	err := f.c.Close(context.Background(), f.lookup(t, ticket), alice, func(context.Context) error {
		return tickettest.ErrUnreachable
	})
	require.ErrorIs(t, err, tickettest.ErrUnreachable)
	require.Empty(t, f.platform.Deleted)

	// The ticket can still be closed afterwards.
	require.NoError(t, f.c.Close(context.Background(), f.lookup(t, ticket), alice, nil))
}

func TestController_Close_NotCancellable(t *testing.T) {
	f := newFixture(t, tickets.WithCloseDelay(10*time.Millisecond))
	ticket := f.create(t, alice, "Billing")

	ctx, cancel := context.WithCancel(context.Background())
	err := f.c.Close(ctx, f.lookup(t, ticket), alice, func(context.Context) error {
		cancel()
		return nil
	})
	require.NoError(t, err)

	stored, _ := f.store.Ticket(ticket.ID)
	require.False(t, stored.IsOpen())
}

func TestController_Close_AlreadyClosing(t *testing.T) {
	f := newFixture(t)
	ticket := f.create(t, alice, "Billing")

	started := make(chan struct{})
	release := make(chan struct{})

	wg := new(sync.WaitGroup)
	wg.Add(1)

	var firstErr error
	go func() {
		defer wg.Done()
		firstErr = f.c.Close(context.Background(), f.lookup(t, ticket), alice, func(context.Context) error {
			close(started)
			<-release
			return nil
		})
	}()

	<-started
	err := f.c.Close(context.Background(), f.lookup(t, ticket), staff, nil)
	require.ErrorIs(t, err, tickets.ErrAlreadyClosing)
	require.Equal(t, "\U0001F6D1 This ticket is already closing.", tickets.UserMessage(err))

	close(release)
	wg.Wait()
	require.NoError(t, firstErr)
	require.Len(t, f.platform.Deleted, 1)
}

func TestController_ReopenAfterClose(t *testing.T) {
	f := newFixture(t)
	first := f.create(t, alice, "Billing")
	require.NoError(t, f.c.Close(context.Background(), f.lookup(t, first), alice, nil))

	second := f.create(t, alice, "Billing")
	require.NotEqual(t, first.ID, second.ID)
	require.NotEqual(t, first.ChannelID, second.ChannelID)

	stored, _ := f.store.Ticket(first.ID)
	require.False(t, stored.IsOpen())
}

func TestController_Publish(t *testing.T) {
	f := newFixture(t)

	id, err := f.c.Publish(context.Background(), f.panel)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	msgs := f.platform.MessagesIn(f.panel.ChannelID)
	require.Len(t, msgs, 1)
	require.Len(t, msgs[0].Components, 2)

	_, err = f.c.Publish(context.Background(), &entities.Panel{ID: 5})
	require.ErrorIs(t, err, tickets.ErrNoPublishChannel)
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "config", err: tickets.ErrConfigNotFound, want: "❌ Panel configuration not found."},
		{name: "duplicate", err: tickets.ErrDuplicateOpenTicket, want: "❌ You already have an open ticket."},
		{name: "unknown", err: errors.New("boom"), want: "There was an error processing your request. Please try again later."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tickets.UserMessage(tt.err))
		})
	}
}
