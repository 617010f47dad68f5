package platform

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	channels []*discordgo.Channel
	created  []discordgo.GuildChannelCreateData
	sent     map[string][]*discordgo.MessageSend
	edits    map[string]*discordgo.ChannelEdit
	deleted  []string

	// history is oldest first.
	history  []*discordgo.Message
	requests int

	dmErr error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		sent:  make(map[string][]*discordgo.MessageSend),
		edits: make(map[string]*discordgo.ChannelEdit),
	}
}

func (f *fakeAPI) GuildChannels(string, ...discordgo.RequestOption) ([]*discordgo.Channel, error) {
	return f.channels, nil
}

func (f *fakeAPI) GuildChannelCreateComplex(guildID string, data discordgo.GuildChannelCreateData, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	f.created = append(f.created, data)
	c := &discordgo.Channel{
		ID:      "new-" + strconv.Itoa(len(f.created)),
		GuildID: guildID,
		Name:    data.Name,
		Type:    data.Type,
	}
	f.channels = append(f.channels, c)
	return c, nil
}

func (f *fakeAPI) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.sent[channelID] = append(f.sent[channelID], data)
	return &discordgo.Message{ID: "m", ChannelID: channelID}, nil
}

func (f *fakeAPI) ChannelEdit(channelID string, data *discordgo.ChannelEdit, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	f.edits[channelID] = data
	return &discordgo.Channel{ID: channelID, Topic: data.Topic}, nil
}

// ChannelMessages returns the limit messages right after afterID, newest first, as the API does.
func (f *fakeAPI) ChannelMessages(_ string, limit int, _, afterID, _ string, _ ...discordgo.RequestOption) ([]*discordgo.Message, error) {
	f.requests++

	after, _ := strconv.Atoi(afterID)
	page := make([]*discordgo.Message, 0, limit)
	for _, m := range f.history {
		id, _ := strconv.Atoi(m.ID)
		if id > after && len(page) < limit {
			page = append(page, m)
		}
	}
	slices.Reverse(page)
	return page, nil
}

func (f *fakeAPI) ChannelDelete(channelID string, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	f.deleted = append(f.deleted, channelID)
	return &discordgo.Channel{ID: channelID}, nil
}

func (f *fakeAPI) UserChannelCreate(recipientID string, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	if f.dmErr != nil {
		return nil, f.dmErr
	}
	return &discordgo.Channel{ID: "dm-" + recipientID, Type: discordgo.ChannelTypeDM}, nil
}

// oldestFirst builds n messages with IDs 1 up to n.
func oldestFirst(n int) []*discordgo.Message {
	msgs := make([]*discordgo.Message, 0, n)
	for i := 1; i <= n; i++ {
		msgs = append(msgs, &discordgo.Message{ID: strconv.Itoa(i)})
	}
	return msgs
}

func TestDiscord_FetchHistory(t *testing.T) {
	tests := []struct {
		name     string
		messages int
		limit    int
		want     int
		requests int
	}{
		{name: "empty", messages: 0, limit: 500, want: 0, requests: 1},
		{name: "single page", messages: 30, limit: 500, want: 30, requests: 1},
		{name: "exact page", messages: 100, limit: 500, want: 100, requests: 2},
		{name: "several pages", messages: 250, limit: 500, want: 250, requests: 3},
		{name: "over limit", messages: 700, limit: 500, want: 500, requests: 5},
		{name: "just over limit", messages: 600, limit: 500, want: 500, requests: 5},
		{name: "small limit", messages: 50, limit: 10, want: 10, requests: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI()
			api.history = oldestFirst(tt.messages)
			d := &Discord{api: api}

			got, err := d.FetchHistory(context.Background(), "c", tt.limit)
			require.NoError(t, err)
			require.Len(t, got, tt.want)
			require.Equal(t, tt.requests, api.requests)

			// The first messages of the channel, oldest first.
			for i, m := range got {
				require.Equal(t, strconv.Itoa(i+1), m.ID)
			}
		})
	}
}

func TestDiscord_EnsureCategory(t *testing.T) {
	api := newFakeAPI()
	api.channels = []*discordgo.Channel{
		{ID: "text", Name: "Neutron Tickets", Type: discordgo.ChannelTypeGuildText},
	}
	d := &Discord{api: api}

	first, err := d.EnsureCategory(context.Background(), "g", "Neutron Tickets", nil)
	require.NoError(t, err)
	require.Equal(t, discordgo.ChannelTypeGuildCategory, first.Type)
	require.Len(t, api.created, 1)

	second, err := d.EnsureCategory(context.Background(), "g", "Neutron Tickets", nil)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Len(t, api.created, 1)
}

func TestDiscord_SendDirectMessage(t *testing.T) {
	api := newFakeAPI()
	d := &Discord{api: api}

	msg := &discordgo.MessageSend{Content: "bye"}
	require.NoError(t, d.SendDirectMessage(context.Background(), "u1", msg))
	require.Equal(t, []*discordgo.MessageSend{msg}, api.sent["dm-u1"])

	api.dmErr = errors.New("Cannot send messages to this user")
	require.Error(t, d.SendDirectMessage(context.Background(), "u2", msg))
	require.Empty(t, api.sent["dm-u2"])
}

func TestDiscord_TopicAndDelete(t *testing.T) {
	api := newFakeAPI()
	d := &Discord{api: api}

	require.NoError(t, d.SetChannelTopic(context.Background(), "c", "Ticket Claimed by: sam"))
	require.Equal(t, "Ticket Claimed by: sam", api.edits["c"].Topic)

	require.NoError(t, d.DeleteChannel(context.Background(), "c"))
	require.Equal(t, []string{"c"}, api.deleted)
}

func TestDiscord_State(t *testing.T) {
	state := discordgo.NewState()
	state.User = &discordgo.User{ID: "bot"}
	require.NoError(t, state.GuildAdd(&discordgo.Guild{ID: "g", Name: "Wolf Pack"}))

	d := &Discord{api: newFakeAPI(), state: state}
	require.Equal(t, "bot", d.BotUserID())
	require.Equal(t, "Wolf Pack", d.GuildName("g"))
	require.Equal(t, "unknown", d.GuildName("unknown"))

	empty := &Discord{api: newFakeAPI()}
	require.Empty(t, empty.BotUserID())
	require.Equal(t, "g", empty.GuildName("g"))
}

func TestActorFromInteraction(t *testing.T) {
	member := &discordgo.Interaction{
		Member: &discordgo.Member{
			User:        &discordgo.User{ID: "u1", Username: "wolf"},
			Roles:       []string{"r1"},
			Permissions: discordgo.PermissionAdministrator,
		},
	}
	actor := ActorFromInteraction(member)
	require.Equal(t, "u1", actor.ID)
	require.Equal(t, "wolf", actor.Username)
	require.Equal(t, []string{"r1"}, actor.RoleIDs)
	require.True(t, actor.Admin)

	dm := &discordgo.Interaction{User: &discordgo.User{ID: "u2", Username: "cub"}}
	actor = ActorFromInteraction(dm)
	require.Equal(t, "u2", actor.ID)
	require.False(t, actor.Admin)
	require.Empty(t, actor.RoleIDs)
}
