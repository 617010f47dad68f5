// Package tickettest provides in-memory stand-ins for the collaborators of the ticket controller.
package tickettest

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// BotID is the user ID the fake platform reports for the bot.
const BotID = "bot"

// ErrUnreachable is returned by a platform call that has been set up to fail.
var ErrUnreachable = errors.New("unreachable")

// Sent is a message recorded by the fake platform.
type Sent struct {
	ChannelID string
	Message   *discordgo.MessageSend
}

// Platform is a fake chat platform that records every side effect.
type Platform struct {
	mut sync.Mutex

	nextID int

	// Categories are the created categories keyed by guild and name.
	Categories map[string]*discordgo.Channel

	// Channels are the created channels keyed by ID.
	Channels map[string]discordgo.GuildChannelCreateData

	// Deleted are the IDs of deleted channels, in order.
	Deleted []string

	// Messages are the messages sent into channels, in order.
	Messages []Sent

	// Topics are the current channel topics keyed by channel ID.
	Topics map[string]string

	// DirectMessages are the direct messages sent, keyed by user ID.
	DirectMessages map[string][]*discordgo.MessageSend

	// History is returned by FetchHistory.
	History []*discordgo.Message

	// CreateChannelErr fails CreateChannel when set.
	CreateChannelErr error

	// SendMessageErr fails SendMessage when set.
	SendMessageErr error

	// TopicErr fails SetChannelTopic when set.
	TopicErr error

	// HistoryErr fails FetchHistory when set.
	HistoryErr error

	// DeleteErr fails DeleteChannel when set.
	DeleteErr error

	// DirectMessageErr fails SendDirectMessage when set.
	DirectMessageErr error
}

// NewPlatform creates an empty fake platform.
func NewPlatform() *Platform {
	return &Platform{
		Categories:     make(map[string]*discordgo.Channel),
		Channels:       make(map[string]discordgo.GuildChannelCreateData),
		Topics:         make(map[string]string),
		DirectMessages: make(map[string][]*discordgo.MessageSend),
	}
}

func (p *Platform) id() string {
	p.nextID++
	return strconv.Itoa(p.nextID)
}

func (p *Platform) BotUserID() string {
	return BotID
}

func (p *Platform) GuildName(guildID string) string {
	return "Guild " + guildID
}

func (p *Platform) EnsureCategory(_ context.Context, guildID, name string, _ []*discordgo.PermissionOverwrite) (*discordgo.Channel, error) {
	p.mut.Lock()
	defer p.mut.Unlock()

	key := guildID + "/" + name
	if c, ok := p.Categories[key]; ok {
		return c, nil
	}

	c := &discordgo.Channel{
		ID:      "cat-" + p.id(),
		GuildID: guildID,
		Name:    name,
		Type:    discordgo.ChannelTypeGuildCategory,
	}
	p.Categories[key] = c
	return c, nil
}

func (p *Platform) CreateChannel(_ context.Context, guildID string, data discordgo.GuildChannelCreateData) (*discordgo.Channel, error) {
	p.mut.Lock()
	defer p.mut.Unlock()

	if p.CreateChannelErr != nil {
		return nil, p.CreateChannelErr
	}

	id := "chan-" + p.id()
	p.Channels[id] = data
	return &discordgo.Channel{
		ID:       id,
		GuildID:  guildID,
		Name:     data.Name,
		ParentID: data.ParentID,
		Type:     data.Type,
	}, nil
}

func (p *Platform) SendMessage(_ context.Context, channelID string, msg *discordgo.MessageSend) (*discordgo.Message, error) {
	p.mut.Lock()
	defer p.mut.Unlock()

	if p.SendMessageErr != nil {
		return nil, p.SendMessageErr
	}

	p.Messages = append(p.Messages, Sent{ChannelID: channelID, Message: msg})
	return &discordgo.Message{
		ID:        "msg-" + p.id(),
		ChannelID: channelID,
	}, nil
}

func (p *Platform) SetChannelTopic(_ context.Context, channelID, topic string) error {
	p.mut.Lock()
	defer p.mut.Unlock()

	if p.TopicErr != nil {
		return p.TopicErr
	}
	p.Topics[channelID] = topic
	return nil
}

func (p *Platform) FetchHistory(_ context.Context, _ string, limit int) ([]*discordgo.Message, error) {
	p.mut.Lock()
	defer p.mut.Unlock()

	if p.HistoryErr != nil {
		return nil, p.HistoryErr
	}
	if len(p.History) > limit {
		return p.History[len(p.History)-limit:], nil
	}
	return p.History, nil
}

func (p *Platform) DeleteChannel(_ context.Context, channelID string) error {
	p.mut.Lock()
	defer p.mut.Unlock()

	if p.DeleteErr != nil {
		return p.DeleteErr
	}
	delete(p.Channels, channelID)
	p.Deleted = append(p.Deleted, channelID)
	return nil
}

func (p *Platform) SendDirectMessage(_ context.Context, userID string, msg *discordgo.MessageSend) error {
	p.mut.Lock()
	defer p.mut.Unlock()

	if p.DirectMessageErr != nil {
		return p.DirectMessageErr
	}
	p.DirectMessages[userID] = append(p.DirectMessages[userID], msg)
	return nil
}

// MessagesIn returns the messages sent into a channel.
func (p *Platform) MessagesIn(channelID string) []*discordgo.MessageSend {
	p.mut.Lock()
	defer p.mut.Unlock()

	msgs := make([]*discordgo.MessageSend, 0)
	for _, s := range p.Messages {
		if s.ChannelID == channelID {
			msgs = append(msgs, s.Message)
		}
	}
	return msgs
}

// ChannelCount returns the number of channels that exist.
func (p *Platform) ChannelCount() int {
	p.mut.Lock()
	defer p.mut.Unlock()
	return len(p.Channels)
}
