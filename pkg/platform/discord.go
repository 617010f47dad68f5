package platform

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/Jacobbrewer1/neutron/pkg/tickets"
	"github.com/bwmarrin/discordgo"
	"github.com/prometheus/client_golang/prometheus"
)

// pageSize is the most messages the API returns per history request.
const pageSize = 100

// api is the part of the discordgo session the adapter calls.
type api interface {
	GuildChannels(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Channel, error)
	GuildChannelCreateComplex(guildID string, data discordgo.GuildChannelCreateData, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelEdit(channelID string, data *discordgo.ChannelEdit, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessages(channelID string, limit int, beforeID, afterID, aroundID string, options ...discordgo.RequestOption) ([]*discordgo.Message, error)
	ChannelDelete(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
}

var _ tickets.Platform = new(Discord)

// Discord drives a guild through a discordgo session.
type Discord struct {
	api   api
	state *discordgo.State
}

// NewDiscord creates a platform adapter over the session.
func NewDiscord(s *discordgo.Session) *Discord {
	return &Discord{
		api:   s,
		state: s.State,
	}
}

func observe(op string) *prometheus.Timer {
	return prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		DiscordRequestDuration.WithLabelValues(op).Observe(v)
	}))
}

func failed(op string, err error) error {
	DiscordRequestErrors.WithLabelValues(op).Inc()
	return err
}

func (d *Discord) BotUserID() string {
	if d.state == nil || d.state.User == nil {
		return ""
	}
	return d.state.User.ID
}

func (d *Discord) GuildName(guildID string) string {
	if d.state == nil {
		return guildID
	}

	g, err := d.state.Guild(guildID)
	if err != nil || g.Name == "" {
		return guildID
	}
	return g.Name
}

func (d *Discord) EnsureCategory(ctx context.Context, guildID, name string, overwrites []*discordgo.PermissionOverwrite) (*discordgo.Channel, error) {
	t := observe("ensure_category")
	defer t.ObserveDuration()

	channels, err := d.api.GuildChannels(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, failed("ensure_category", fmt.Errorf("error listing guild channels: %w", err))
	}

	for _, c := range channels {
		if c.Type == discordgo.ChannelTypeGuildCategory && c.Name == name {
			return c, nil
		}
	}

	c, err := d.api.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name:                 name,
		Type:                 discordgo.ChannelTypeGuildCategory,
		PermissionOverwrites: overwrites,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return nil, failed("ensure_category", fmt.Errorf("error creating category: %w", err))
	}
	return c, nil
}

func (d *Discord) CreateChannel(ctx context.Context, guildID string, data discordgo.GuildChannelCreateData) (*discordgo.Channel, error) {
	t := observe("create_channel")
	defer t.ObserveDuration()

	c, err := d.api.GuildChannelCreateComplex(guildID, data, discordgo.WithContext(ctx))
	if err != nil {
		return nil, failed("create_channel", err)
	}
	return c, nil
}

func (d *Discord) SendMessage(ctx context.Context, channelID string, msg *discordgo.MessageSend) (*discordgo.Message, error) {
	t := observe("send_message")
	defer t.ObserveDuration()

	m, err := d.api.ChannelMessageSendComplex(channelID, msg, discordgo.WithContext(ctx))
	if err != nil {
		return nil, failed("send_message", err)
	}
	return m, nil
}

func (d *Discord) SetChannelTopic(ctx context.Context, channelID, topic string) error {
	t := observe("set_topic")
	defer t.ObserveDuration()

	if _, err := d.api.ChannelEdit(channelID, &discordgo.ChannelEdit{Topic: topic}, discordgo.WithContext(ctx)); err != nil {
		return failed("set_topic", err)
	}
	return nil
}

// FetchHistory pages forwards from the start of the channel and returns its first limit messages, oldest first.
func (d *Discord) FetchHistory(ctx context.Context, channelID string, limit int) ([]*discordgo.Message, error) {
	t := observe("fetch_history")
	defer t.ObserveDuration()

	history := make([]*discordgo.Message, 0, limit)
	after := "0"

	for len(history) < limit {
		page := pageSize
		if remaining := limit - len(history); remaining < page {
			page = remaining
		}

		msgs, err := d.api.ChannelMessages(channelID, page, "", after, "", discordgo.WithContext(ctx))
		if err != nil {
			return nil, failed("fetch_history", fmt.Errorf("error fetching messages: %w", err))
		}
		if len(msgs) == 0 {
			break
		}

		// Pages come back newest first.
		slices.SortFunc(msgs, func(a, b *discordgo.Message) int {
			return cmp.Compare(snowflake(a.ID), snowflake(b.ID))
		})

		history = append(history, msgs...)
		if len(msgs) < page {
			break
		}
		after = msgs[len(msgs)-1].ID
	}

	return history, nil
}

// snowflake returns the numeric value of a discord ID. IDs grow with creation time.
func snowflake(id string) uint64 {
	n, _ := strconv.ParseUint(id, 10, 64)
	return n
}

func (d *Discord) DeleteChannel(ctx context.Context, channelID string) error {
	t := observe("delete_channel")
	defer t.ObserveDuration()

	if _, err := d.api.ChannelDelete(channelID, discordgo.WithContext(ctx)); err != nil {
		return failed("delete_channel", err)
	}
	return nil
}

func (d *Discord) SendDirectMessage(ctx context.Context, userID string, msg *discordgo.MessageSend) error {
	t := observe("direct_message")
	defer t.ObserveDuration()

	dm, err := d.api.UserChannelCreate(userID, discordgo.WithContext(ctx))
	if err != nil {
		return failed("direct_message", fmt.Errorf("error opening direct message channel: %w", err))
	}

	if _, err := d.api.ChannelMessageSendComplex(dm.ID, msg, discordgo.WithContext(ctx)); err != nil {
		return failed("direct_message", fmt.Errorf("error sending direct message: %w", err))
	}
	return nil
}
