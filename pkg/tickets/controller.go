package tickets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Jacobbrewer1/neutron/pkg/dataaccess"
	"github.com/Jacobbrewer1/neutron/pkg/entities"
	"github.com/Jacobbrewer1/neutron/pkg/logging"
	"github.com/Jacobbrewer1/neutron/pkg/messages"
	"github.com/Jacobbrewer1/neutron/pkg/permissions"
	"github.com/bwmarrin/discordgo"
)

const (
	// DefaultCloseDelay is how long a close waits before the channel is deleted.
	DefaultCloseDelay = 5 * time.Second

	// DefaultCategoryName is the name of the guild category ticket channels are created in.
	DefaultCategoryName = "Neutron Tickets"
)

// CreateRequest is a request to open a ticket from a panel.
type CreateRequest struct {
	// PanelID is the ID of the panel whose button was pressed.
	PanelID int64

	// GuildID is the guild the button was pressed in.
	GuildID string

	// Requester is the user opening the ticket.
	Requester Actor

	// Category is the dropdown category the ticket is opened under.
	Category string
}

// Linked is a ticket together with the panel it was opened from. Panel is nil if the panel has since been deleted.
type Linked struct {
	Ticket *entities.Ticket
	Panel  *entities.Panel
}

// Controller enforces the ticket lifecycle: a ticket is created open, may be claimed once, and is closed for good.
type Controller struct {
	// l is the logger.
	l *slog.Logger

	// panels is the panel registry.
	panels dataaccess.PanelDal

	// tickets is the ticket store.
	tickets dataaccess.TicketDal

	// platform is the chat platform the side effects go through.
	platform Platform

	// categoryName is the name of the category ticket channels are grouped in.
	categoryName string

	// closeDelay is how long a close waits before deleting the channel.
	closeDelay time.Duration

	// closingMut guards closing.
	closingMut sync.Mutex

	// closing holds the IDs of tickets waiting out their close delay.
	closing map[int64]struct{}
}

// Option configures a Controller.
type Option func(*Controller)

// WithCloseDelay sets the delay between acknowledging a close and deleting the channel.
func WithCloseDelay(d time.Duration) Option {
	return func(c *Controller) {
		c.closeDelay = d
	}
}

// WithCategoryName sets the name of the category ticket channels are created in.
func WithCategoryName(name string) Option {
	return func(c *Controller) {
		if name != "" {
			c.categoryName = name
		}
	}
}

// NewController creates a new lifecycle controller.
func NewController(l *slog.Logger, panels dataaccess.PanelDal, tickets dataaccess.TicketDal, platform Platform, opts ...Option) *Controller {
	c := &Controller{
		l:            l,
		panels:       panels,
		tickets:      tickets,
		platform:     platform,
		categoryName: DefaultCategoryName,
		closeDelay:   DefaultCloseDelay,
		closing:      make(map[int64]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CloseDelay returns the delay between acknowledging a close and deleting the channel.
func (c *Controller) CloseDelay() time.Duration {
	return c.closeDelay
}

// Create opens a ticket for the requester: a private channel visible to them, the bot and the panel's staff roles.
//
// The open ticket check happens before the channel is created; the store's uniqueness constraint catches two
// presses racing through it, in which case the second channel is removed again.
func (c *Controller) Create(ctx context.Context, req CreateRequest) (*entities.Ticket, error) {
	l := c.l.With(
		slog.Int64(logging.KeyPanelID, req.PanelID),
		slog.String(logging.KeyUserID, req.Requester.ID),
	)

	panel, err := c.panels.GetPanel(ctx, req.PanelID)
	if errors.Is(err, dataaccess.ErrNotFound) {
		TicketsRejected.WithLabelValues("create", "config_not_found").Inc()
		return nil, ErrConfigNotFound
	} else if err != nil {
		return nil, fmt.Errorf("error getting panel: %w", err)
	}

	guildID := req.GuildID
	if guildID == "" {
		guildID = panel.GuildID
	} else if guildID != panel.GuildID {
		TicketsRejected.WithLabelValues("create", "config_not_found").Inc()
		return nil, ErrConfigNotFound
	}

	exists, err := c.tickets.HasOpenTicket(ctx, req.Requester.ID, panel.ID)
	if err != nil {
		return nil, fmt.Errorf("error checking open tickets: %w", err)
	} else if exists {
		TicketsRejected.WithLabelValues("create", "duplicate").Inc()
		return nil, ErrDuplicateOpenTicket
	}

	category := req.Category
	if category == "" {
		category = entities.DefaultCategory
	}

	botID := c.platform.BotUserID()

	parent, err := c.platform.EnsureCategory(ctx, guildID, c.categoryName,
		permissions.NewBuilder(guildID).
			AllowMember(botID, permissions.Bot).
			Build(),
	)
	if err != nil {
		return nil, fmt.Errorf("error ensuring ticket category: %w", err)
	}

	channel, err := c.platform.CreateChannel(ctx, guildID, discordgo.GuildChannelCreateData{
		Name:     ChannelName(category, req.Requester.Username),
		Type:     discordgo.ChannelTypeGuildText,
		ParentID: parent.ID,
		PermissionOverwrites: permissions.NewBuilder(guildID).
			AllowMember(req.Requester.ID, permissions.Requester).
			AllowMember(botID, permissions.Bot).
			AllowRoles(panel.StaffRoles, permissions.Staff).
			Build(),
	})
	if err != nil {
		TicketsRejected.WithLabelValues("create", "channel_create_failed").Inc()
		return nil, &ChannelCreateError{Err: err}
	}

	ticket := &entities.Ticket{
		PanelID:          panel.ID,
		GuildID:          guildID,
		ChannelID:        channel.ID,
		CreatorID:        req.Requester.ID,
		CategorySelected: category,
	}

	if err := c.tickets.CreateTicket(ctx, ticket); err != nil {
		// The channel is useless without a record behind it.
		if delErr := c.platform.DeleteChannel(ctx, channel.ID); delErr != nil {
			l.Error("Error removing orphaned ticket channel",
				slog.String(logging.KeyChannelID, channel.ID),
				slog.String(logging.KeyError, delErr.Error()),
			)
		}

		if errors.Is(err, dataaccess.ErrDuplicate) {
			TicketsRejected.WithLabelValues("create", "duplicate").Inc()
			return nil, ErrDuplicateOpenTicket
		}
		return nil, fmt.Errorf("error saving ticket: %w", err)
	}

	TicketsCreated.Inc()
	l.Info("Ticket created",
		slog.Int64(logging.KeyTicketID, ticket.ID),
		slog.String(logging.KeyChannelID, ticket.ChannelID),
	)

	welcome := WelcomeMessage(panel, req.Requester, category, c.platform.GuildName(guildID))
	if _, err := c.platform.SendMessage(ctx, channel.ID, welcome); err != nil {
		l.Warn("Error sending welcome message",
			slog.Int64(logging.KeyTicketID, ticket.ID),
			slog.String(logging.KeyError, err.Error()),
		)
	}

	return ticket, nil
}

// Lookup finds the ticket backed by a channel, joined to its panel. ErrTicketNotFound is returned if the channel
// is not an open ticket.
func (c *Controller) Lookup(ctx context.Context, channelID string) (*Linked, error) {
	ticket, err := c.tickets.GetTicketByChannel(ctx, channelID)
	if errors.Is(err, dataaccess.ErrNotFound) {
		return nil, ErrTicketNotFound
	} else if err != nil {
		return nil, fmt.Errorf("error getting ticket: %w", err)
	}

	if !ticket.IsOpen() {
		return nil, ErrTicketNotFound
	}

	panel, err := c.panels.GetPanel(ctx, ticket.PanelID)
	if errors.Is(err, dataaccess.ErrNotFound) {
		c.l.Warn("Ticket panel no longer exists, only administrators can manage the ticket",
			slog.Int64(logging.KeyTicketID, ticket.ID),
			slog.Int64(logging.KeyPanelID, ticket.PanelID),
		)
		panel = nil
	} else if err != nil {
		return nil, fmt.Errorf("error getting panel: %w", err)
	}

	return &Linked{
		Ticket: ticket,
		Panel:  panel,
	}, nil
}

// IsStaff reports whether the actor holds one of the panel's staff roles or is an administrator.
func IsStaff(panel *entities.Panel, actor Actor) bool {
	if actor.Admin {
		return true
	}
	if panel == nil {
		return false
	}
	for _, r := range actor.RoleIDs {
		if panel.IsStaffRole(r) {
			return true
		}
	}
	return false
}

// Claim records the actor as the ticket's claimant. A ticket is only ever claimed once.
func (c *Controller) Claim(ctx context.Context, t *Linked, actor Actor) error {
	if !IsStaff(t.Panel, actor) {
		TicketsRejected.WithLabelValues("claim", "unauthorized").Inc()
		return errClaimUnauthorized
	}

	if t.Ticket.IsClaimed() {
		TicketsRejected.WithLabelValues("claim", "already_claimed").Inc()
		return &AlreadyClaimedError{ClaimantID: t.Ticket.ClaimedBy}
	}

	err := c.tickets.ClaimTicket(ctx, t.Ticket.ID, actor.ID)
	switch {
	case errors.Is(err, dataaccess.ErrConflict):
		// Someone else claimed it since the ticket was read.
		TicketsRejected.WithLabelValues("claim", "already_claimed").Inc()
		fresh, getErr := c.tickets.GetTicketByChannel(ctx, t.Ticket.ChannelID)
		if getErr != nil {
			return fmt.Errorf("error getting claimed ticket: %w", getErr)
		}
		return &AlreadyClaimedError{ClaimantID: fresh.ClaimedBy}
	case errors.Is(err, dataaccess.ErrNotFound):
		return ErrTicketNotFound
	case err != nil:
		return fmt.Errorf("error claiming ticket: %w", err)
	}

	t.Ticket.ClaimedBy = actor.ID
	TicketsClaimed.Inc()

	c.l.Info("Ticket claimed",
		slog.Int64(logging.KeyTicketID, t.Ticket.ID),
		slog.String(logging.KeyUserID, actor.ID),
	)

	if err := c.platform.SetChannelTopic(ctx, t.Ticket.ChannelID, fmt.Sprintf(messages.ClaimedTopic, actor.Username)); err != nil {
		c.l.Warn("Error updating ticket topic",
			slog.Int64(logging.KeyTicketID, t.Ticket.ID),
			slog.String(logging.KeyError, err.Error()),
		)
	}

	return nil
}

// AuthorizeClose checks that the actor may close the ticket: its creator, staff, or an administrator.
func (c *Controller) AuthorizeClose(t *Linked, actor Actor) error {
	if actor.ID == t.Ticket.CreatorID || IsStaff(t.Panel, actor) {
		return nil
	}
	TicketsRejected.WithLabelValues("close", "unauthorized").Inc()
	return errCloseUnauthorized
}

// Close closes a ticket. Once authorized, ack is called to tell the actor the close has started; after the close
// delay the transcript is sent to the creator, the channel is deleted and the ticket is marked closed.
//
// The delay cannot be cancelled, not even by ctx: once acknowledged the close runs to completion. Failing to
// deliver the transcript does not stop the close.
func (c *Controller) Close(ctx context.Context, t *Linked, actor Actor, ack func(ctx context.Context) error) error {
	if err := c.AuthorizeClose(t, actor); err != nil {
		return err
	}

	if !c.startClosing(t.Ticket.ID) {
		return ErrAlreadyClosing
	}
	defer c.doneClosing(t.Ticket.ID)

	if ack != nil {
		if err := ack(ctx); err != nil {
			return fmt.Errorf("error acknowledging close: %w", err)
		}
	}

	ctx = context.WithoutCancel(ctx)

	if c.closeDelay > 0 {
		time.Sleep(c.closeDelay)
	}

	l := c.l.With(
		slog.Int64(logging.KeyTicketID, t.Ticket.ID),
		slog.String(logging.KeyChannelID, t.Ticket.ChannelID),
	)

	c.deliverTranscript(ctx, l, t.Ticket)

	if err := c.platform.DeleteChannel(ctx, t.Ticket.ChannelID); err != nil {
		return fmt.Errorf("error deleting ticket channel: %w", err)
	}

	if err := c.tickets.CloseTicket(ctx, t.Ticket.ID); err != nil && !errors.Is(err, dataaccess.ErrConflict) {
		return fmt.Errorf("error closing ticket: %w", err)
	}

	t.Ticket.Status = entities.TicketStatusClosed
	TicketsClosed.Inc()
	l.Info("Ticket closed", slog.String(logging.KeyUserID, actor.ID))
	return nil
}

// deliverTranscript sends the channel history to the ticket's creator. Any failure is logged and swallowed.
func (c *Controller) deliverTranscript(ctx context.Context, l *slog.Logger, ticket *entities.Ticket) {
	history, err := c.platform.FetchHistory(ctx, ticket.ChannelID, historyLimit)
	if err != nil {
		l.Warn("Error fetching ticket history, sending an empty transcript", slog.String(logging.KeyError, err.Error()))
	}

	msg := ClosedMessage(ticket, c.platform.GuildName(ticket.GuildID), RenderTranscript(history))
	if err := c.platform.SendDirectMessage(ctx, ticket.CreatorID, msg); err != nil {
		TranscriptsUndelivered.Inc()
		l.Info("Transcript could not be delivered to the ticket creator",
			slog.String(logging.KeyUserID, ticket.CreatorID),
			slog.String(logging.KeyError, err.Error()),
		)
	}
}

func (c *Controller) startClosing(id int64) bool {
	c.closingMut.Lock()
	defer c.closingMut.Unlock()

	if _, ok := c.closing[id]; ok {
		return false
	}
	c.closing[id] = struct{}{}
	return true
}

func (c *Controller) doneClosing(id int64) {
	c.closingMut.Lock()
	defer c.closingMut.Unlock()
	delete(c.closing, id)
}
