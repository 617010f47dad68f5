package tickets

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// Platform is the part of the chat platform the controller drives. Every call may block on the network and
// returns the platform's error as is; nothing here is retried.
type Platform interface {
	// BotUserID returns the ID of the bot's own user.
	BotUserID() string

	// GuildName returns the display name of a guild, or its ID if the name is not known.
	GuildName(guildID string) string

	// EnsureCategory returns the guild's category with the given name, creating it with the overwrites if it does
	// not exist.
	EnsureCategory(ctx context.Context, guildID, name string, overwrites []*discordgo.PermissionOverwrite) (*discordgo.Channel, error)

	// CreateChannel creates a guild channel.
	CreateChannel(ctx context.Context, guildID string, data discordgo.GuildChannelCreateData) (*discordgo.Channel, error)

	// SendMessage posts a message into a channel.
	SendMessage(ctx context.Context, channelID string, msg *discordgo.MessageSend) (*discordgo.Message, error)

	// SetChannelTopic replaces a channel's topic.
	SetChannelTopic(ctx context.Context, channelID, topic string) error

	// FetchHistory returns up to limit of the channel's most recent messages, oldest first.
	FetchHistory(ctx context.Context, channelID string, limit int) ([]*discordgo.Message, error)

	// DeleteChannel deletes a channel.
	DeleteChannel(ctx context.Context, channelID string) error

	// SendDirectMessage sends a message to a user's direct messages.
	SendDirectMessage(ctx context.Context, userID string, msg *discordgo.MessageSend) error
}

// Actor is the user behind an interaction, with what is needed to authorize them.
type Actor struct {
	// ID is the user's ID.
	ID string

	// Username is the user's name, used in channel names and topics.
	Username string

	// RoleIDs are the IDs of the roles the user holds in the guild.
	RoleIDs []string

	// Admin is whether the user holds the administrator permission in the guild.
	Admin bool
}

// Mention returns the text that mentions the actor.
func (a Actor) Mention() string {
	return "<@" + a.ID + ">"
}
