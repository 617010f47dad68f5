package tickets

import (
	"fmt"
	"strings"

	"github.com/Jacobbrewer1/neutron/pkg/entities"
	"github.com/Jacobbrewer1/neutron/pkg/interaction"
	"github.com/Jacobbrewer1/neutron/pkg/messages"
	"github.com/bwmarrin/discordgo"
)

const (
	// ClaimEmoji is the emoji on the claim button. (Person raising hand)
	ClaimEmoji = "\U0001F64B\u200D\u2642\uFE0F"

	// CloseEmoji is the emoji on the close button. (Lock)
	CloseEmoji = "\U0001F512"

	colorLauncher = 0x2b2d31
	colorWelcome  = 0x5865F2
	colorClaimed  = 0x4ade80
	colorClosed   = 0xef4444

	selectPlaceholder = "Select a support category..."
)

// LauncherMessage is the message a panel is published as: an embed, the category dropdown when the panel has
// categories, and the create ticket button.
func LauncherMessage(panel *entities.Panel) *discordgo.MessageSend {
	embed := &discordgo.MessageEmbed{
		Title:       panel.Title,
		Description: panel.Description,
		Color:       colorLauncher,
		Footer:      &discordgo.MessageEmbedFooter{Text: messages.Footer},
	}
	if panel.BannerURL != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: panel.BannerURL}
	}
	if panel.ThumbnailURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: panel.ThumbnailURL}
	}

	components := make([]discordgo.MessageComponent, 0, 2)

	if len(panel.DropdownOptions) > 0 {
		opts := make([]discordgo.SelectMenuOption, 0, len(panel.DropdownOptions))
		for _, o := range panel.DropdownOptions {
			opts = append(opts, discordgo.SelectMenuOption{
				Label: o.Label,
				Value: o.Label,
				Emoji: entities.ParseEmoji(o.Emoji).Component(),
			})
		}

		minValues := 1
		components = append(components, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					MenuType:    discordgo.StringSelectMenu,
					CustomID:    interaction.SelectID(panel.ID),
					Placeholder: selectPlaceholder,
					MinValues:   &minValues,
					MaxValues:   1,
					Options:     opts,
				},
			},
		})
	}

	components = append(components, discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    panel.ButtonLabel,
				Style:    panel.ButtonColor.Style(),
				Emoji:    entities.ParseEmoji(panel.ButtonEmoji).Component(),
				CustomID: interaction.ButtonID(panel.ID),
			},
		},
	})

	return &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: components,
	}
}

// ControlsRow is the row of buttons posted in every ticket channel.
func ControlsRow() discordgo.ActionsRow {
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Claim Ticket",
				Style:    discordgo.SuccessButton,
				Emoji:    &discordgo.ComponentEmoji{Name: ClaimEmoji},
				CustomID: interaction.ClaimID,
			},
			discordgo.Button{
				Label:    "Close Ticket",
				Style:    discordgo.DangerButton,
				Emoji:    &discordgo.ComponentEmoji{Name: CloseEmoji},
				CustomID: interaction.CloseID,
			},
		},
	}
}

// WelcomeMessage is the first message in a new ticket channel, addressed to the requester.
func WelcomeMessage(panel *entities.Panel, requester Actor, category, guildName string) *discordgo.MessageSend {
	embed := &discordgo.MessageEmbed{
		Title:       strings.TrimSpace(entities.ParseEmoji(panel.ButtonEmoji).String() + " " + category),
		Description: fmt.Sprintf(messages.Welcome, requester.Mention(), category),
		Color:       colorWelcome,
		Footer:      &discordgo.MessageEmbedFooter{Text: messages.Footer + " • " + guildName},
	}
	if panel.ThumbnailURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: panel.ThumbnailURL}
	}

	return &discordgo.MessageSend{
		Content:    requester.Mention(),
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{ControlsRow()},
		AllowedMentions: &discordgo.MessageAllowedMentions{
			Users: []string{requester.ID},
		},
	}
}

// ClaimedEmbed announces the claimant in the ticket channel.
func ClaimedEmbed(claimant Actor) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Description: fmt.Sprintf(messages.Claimed, claimant.ID),
		Color:       colorClaimed,
	}
}

// ClosedMessage is the direct message sent to the creator with the transcript attached.
func ClosedMessage(ticket *entities.Ticket, guildName, transcript string) *discordgo.MessageSend {
	category := ticket.CategorySelected
	if category == "" {
		category = "General"
	}

	return &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       "Ticket Closed",
				Description: fmt.Sprintf(messages.TicketClosed, guildName),
				Color:       colorClosed,
				Fields: []*discordgo.MessageEmbedField{
					{
						Name:  "Category",
						Value: category,
					},
				},
				Footer: &discordgo.MessageEmbedFooter{Text: messages.Footer + " Transcripts"},
			},
		},
		Files: []*discordgo.File{
			{
				Name:        TranscriptName(ticket.ID),
				ContentType: "text/plain",
				Reader:      strings.NewReader(transcript),
			},
		},
	}
}
