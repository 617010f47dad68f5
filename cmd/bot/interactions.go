package main

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/Jacobbrewer1/neutron/cmd/bot/monitoring"
	"github.com/Jacobbrewer1/neutron/pkg/dispatch"
	"github.com/Jacobbrewer1/neutron/pkg/interaction"
	"github.com/Jacobbrewer1/neutron/pkg/logging"
	"github.com/Jacobbrewer1/neutron/pkg/messages"
	"github.com/Jacobbrewer1/neutron/pkg/platform"
	"github.com/bwmarrin/discordgo"
)

// interactionTimeout bounds the platform calls made while handling an interaction, up to the close being
// acknowledged.
const interactionTimeout = 30 * time.Second

// interactionHandler hands component interactions in guilds to the engine.
func interactionHandler(a IApp, engine *dispatch.Engine) func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		if i.Type != discordgo.InteractionMessageComponent || i.GuildID == "" {
			return
		}

		if appID := a.Config().ApplicationId; i.AppID != "" && i.AppID != appID {
			return
		}

		data := i.MessageComponentData()
		l := a.Log().With(
			slog.String(logging.KeyGuildID, i.GuildID),
			slog.String(logging.KeyCustomID, data.CustomID),
		)

		ctx, cancel := context.WithTimeout(context.Background(), interactionTimeout)
		defer cancel()

		r := newInteractionResponder(s, i.Interaction)

		// Recover from any panics that occur in the engine.
		defer func() {
			if rec := recover(); rec != nil {
				monitoring.InteractionPanics.Inc()
				l.Error("Panic in interaction handler",
					slog.String(logging.KeyError, fmt.Sprint(rec)),
					slog.String("stack", string(debug.Stack())),
				)
				if err := r.Ephemeral(ctx, messages.ErrUserErrorProcessing); err != nil {
					l.Error("Error responding to interaction", slog.String(logging.KeyError, err.Error()))
				}
			}
		}()

		// Creating a ticket takes several calls, more than the response deadline allows for.
		if _, ok := interaction.Parse(data.CustomID).(interaction.CreateEvent); ok {
			if err := r.Defer(ctx); err != nil {
				l.Error("Error deferring interaction", slog.String(logging.KeyError, err.Error()))
				return
			}
		}

		err := engine.Handle(ctx, &dispatch.Interaction{
			GuildID:   i.GuildID,
			ChannelID: i.ChannelID,
			CustomID:  data.CustomID,
			Values:    data.Values,
			Actor:     platform.ActorFromInteraction(i.Interaction),
		}, r)
		if err != nil {
			l.Error("Error handling interaction", slog.String(logging.KeyError, err.Error()))
		}
	}
}
