package permissions

import "github.com/bwmarrin/discordgo"

const (
	// Requester is what the user that opened a ticket can do in its channel.
	Requester int64 = discordgo.PermissionViewChannel |
		discordgo.PermissionSendMessages |
		discordgo.PermissionAttachFiles |
		discordgo.PermissionEmbedLinks |
		discordgo.PermissionReadMessageHistory

	// Staff is what a panel's staff roles can do in a ticket channel.
	Staff int64 = discordgo.PermissionViewChannel |
		discordgo.PermissionSendMessages |
		discordgo.PermissionAttachFiles |
		discordgo.PermissionReadMessageHistory

	// Bot is what the bot needs to run a ticket channel and later delete it.
	Bot int64 = discordgo.PermissionViewChannel |
		discordgo.PermissionSendMessages |
		discordgo.PermissionEmbedLinks |
		discordgo.PermissionAttachFiles |
		discordgo.PermissionReadMessageHistory |
		discordgo.PermissionManageChannels |
		discordgo.PermissionManageRoles

	// Hidden is denied to @everyone so the channel is private.
	Hidden int64 = discordgo.PermissionViewChannel
)

type grant struct {
	id    string
	typ   discordgo.PermissionOverwriteType
	allow int64
}

// Builder builds the permission overwrites of a private channel. The guild's @everyone role, which shares the
// guild's ID, is always denied Hidden; everyone else must be granted access explicitly.
type Builder struct {
	guildID string
	grants  []grant
}

// NewBuilder creates a builder for a private channel in the guild.
func NewBuilder(guildID string) *Builder {
	return &Builder{
		guildID: guildID,
	}
}

// AllowMember grants a single member the given permissions.
func (b *Builder) AllowMember(userID string, allow int64) *Builder {
	return b.add(userID, discordgo.PermissionOverwriteTypeMember, allow)
}

// AllowRole grants every member of a role the given permissions.
func (b *Builder) AllowRole(roleID string, allow int64) *Builder {
	return b.add(roleID, discordgo.PermissionOverwriteTypeRole, allow)
}

// AllowRoles grants every role the given permissions.
func (b *Builder) AllowRoles(roleIDs []string, allow int64) *Builder {
	for _, id := range roleIDs {
		b.AllowRole(id, allow)
	}
	return b
}

func (b *Builder) add(id string, typ discordgo.PermissionOverwriteType, allow int64) *Builder {
	// Granting @everyone would undo the privacy of the channel.
	if id == "" || (typ == discordgo.PermissionOverwriteTypeRole && id == b.guildID) {
		return b
	}

	for i := range b.grants {
		if b.grants[i].id == id && b.grants[i].typ == typ {
			b.grants[i].allow |= allow
			return b
		}
	}

	b.grants = append(b.grants, grant{id: id, typ: typ, allow: allow})
	return b
}

// Build returns a fresh list of overwrites. Later changes to the builder do not affect lists already built.
func (b *Builder) Build() []*discordgo.PermissionOverwrite {
	out := make([]*discordgo.PermissionOverwrite, 0, len(b.grants)+1)
	out = append(out, &discordgo.PermissionOverwrite{
		ID:   b.guildID,
		Type: discordgo.PermissionOverwriteTypeRole,
		Deny: Hidden,
	})

	for _, g := range b.grants {
		out = append(out, &discordgo.PermissionOverwrite{
			ID:    g.id,
			Type:  g.typ,
			Allow: g.allow,
		})
	}
	return out
}
