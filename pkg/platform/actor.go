package platform

import (
	"github.com/Jacobbrewer1/neutron/pkg/tickets"
	"github.com/bwmarrin/discordgo"
)

// ActorFromInteraction returns the user behind an interaction. Interactions outside a guild carry no roles and
// never count as administrator.
func ActorFromInteraction(i *discordgo.Interaction) tickets.Actor {
	if i.Member != nil && i.Member.User != nil {
		return tickets.Actor{
			ID:       i.Member.User.ID,
			Username: i.Member.User.Username,
			RoleIDs:  i.Member.Roles,
			Admin:    i.Member.Permissions&discordgo.PermissionAdministrator != 0,
		}
	}

	if i.User != nil {
		return tickets.Actor{
			ID:       i.User.ID,
			Username: i.User.Username,
		}
	}

	return tickets.Actor{}
}
