package main

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// interactionResponder answers a single interaction. Once deferred, replies edit the deferred response instead.
type interactionResponder struct {
	s        *discordgo.Session
	i        *discordgo.Interaction
	deferred bool
}

func newInteractionResponder(s *discordgo.Session, i *discordgo.Interaction) *interactionResponder {
	return &interactionResponder{
		s: s,
		i: i,
	}
}

// Defer acknowledges the interaction privately so the reply can come after the platform's response deadline.
func (r *interactionResponder) Defer(ctx context.Context) error {
	err := r.s.InteractionRespond(r.i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return err
	}
	r.deferred = true
	return nil
}

func (r *interactionResponder) Ephemeral(ctx context.Context, content string) error {
	if r.deferred {
		_, err := r.s.InteractionResponseEdit(r.i, &discordgo.WebhookEdit{
			Content: &content,
		}, discordgo.WithContext(ctx))
		return err
	}

	return respondEphemeral(ctx, r.s, r.i, content)
}

func (r *interactionResponder) Public(ctx context.Context, embed *discordgo.MessageEmbed) error {
	if r.deferred {
		_, err := r.s.FollowupMessageCreate(r.i, true, &discordgo.WebhookParams{
			Embeds: []*discordgo.MessageEmbed{embed},
		}, discordgo.WithContext(ctx))
		return err
	}

	return r.s.InteractionRespond(r.i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	}, discordgo.WithContext(ctx))
}

func respondEphemeral(ctx context.Context, s *discordgo.Session, i *discordgo.Interaction, content string) error {
	return s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	}, discordgo.WithContext(ctx))
}
