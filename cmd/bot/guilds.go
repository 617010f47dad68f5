package main

import (
	"log/slog"

	"github.com/Jacobbrewer1/neutron/cmd/bot/monitoring"
	"github.com/Jacobbrewer1/neutron/pkg/logging"
	"github.com/bwmarrin/discordgo"
)

func guildJoinedHandler(a IApp) func(s *discordgo.Session, g *discordgo.GuildCreate) {
	return func(_ *discordgo.Session, g *discordgo.GuildCreate) {
		a.Log().Info("Joined guild",
			slog.String(logging.KeyGuildID, g.ID),
			slog.String("name", g.Name),
		)

		// Increment the total number of guilds.
		monitoring.TotalDiscordGuilds.Inc()
	}
}

func guildLeaveHandler(a IApp) func(s *discordgo.Session, g *discordgo.GuildDelete) {
	return func(_ *discordgo.Session, g *discordgo.GuildDelete) {
		// An outage also removes the guild; it is created again once available.
		if g.Unavailable {
			a.Log().Warn("Guild unavailable", slog.String(logging.KeyGuildID, g.ID))
		} else {
			a.Log().Info("Left guild", slog.String(logging.KeyGuildID, g.ID))
		}

		// Decrement the total number of guilds.
		monitoring.TotalDiscordGuilds.Dec()
	}
}
