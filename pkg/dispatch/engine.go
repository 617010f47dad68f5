package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Jacobbrewer1/neutron/pkg/entities"
	"github.com/Jacobbrewer1/neutron/pkg/interaction"
	"github.com/Jacobbrewer1/neutron/pkg/logging"
	"github.com/Jacobbrewer1/neutron/pkg/messages"
	"github.com/Jacobbrewer1/neutron/pkg/selection"
	"github.com/Jacobbrewer1/neutron/pkg/tickets"
	"github.com/bwmarrin/discordgo"
)

const (
	outcomeOK       = "ok"
	outcomeRejected = "rejected"
	outcomeIgnored  = "ignored"
	outcomeError    = "error"
)

// Interaction is a component interaction, stripped down to what routing needs.
type Interaction struct {
	// GuildID is the guild the component was used in.
	GuildID string

	// ChannelID is the channel the component was used in.
	ChannelID string

	// CustomID is the custom ID of the component.
	CustomID string

	// Values are the values picked in a select menu.
	Values []string

	// Actor is the user that used the component.
	Actor tickets.Actor
}

// Responder replies to the interaction being handled.
type Responder interface {
	// Ephemeral replies with a message only the actor can see.
	Ephemeral(ctx context.Context, content string) error

	// Public replies with an embed everyone in the channel can see.
	Public(ctx context.Context, embed *discordgo.MessageEmbed) error
}

// Lifecycle is the ticket lifecycle the engine routes button presses to.
type Lifecycle interface {
	Create(ctx context.Context, req tickets.CreateRequest) (*entities.Ticket, error)
	Lookup(ctx context.Context, channelID string) (*tickets.Linked, error)
	Claim(ctx context.Context, t *tickets.Linked, actor tickets.Actor) error
	Close(ctx context.Context, t *tickets.Linked, actor tickets.Actor, ack func(ctx context.Context) error) error
	CloseDelay() time.Duration
}

var _ Lifecycle = (*tickets.Controller)(nil)

// Engine routes component interactions to the selection cache or the ticket lifecycle.
type Engine struct {
	l         *slog.Logger
	cache     *selection.Cache
	lifecycle Lifecycle
}

// NewEngine creates an engine that owns the given selection cache.
func NewEngine(l *slog.Logger, cache *selection.Cache, lifecycle Lifecycle) *Engine {
	return &Engine{
		l:         l,
		cache:     cache,
		lifecycle: lifecycle,
	}
}

// Handle decodes the interaction's custom ID and routes it. Refusals are replied to the actor privately; the
// returned error is only for failures the actor could not be told about.
func (e *Engine) Handle(ctx context.Context, in *Interaction, r Responder) error {
	event := interaction.Parse(in.CustomID)

	l := e.l.With(
		slog.String(logging.KeyCustomID, in.CustomID),
		slog.String(logging.KeyUserID, in.Actor.ID),
		slog.String(logging.KeyChannelID, in.ChannelID),
	)

	var (
		outcome string
		err     error
	)

	switch ev := event.(type) {
	case interaction.SelectEvent:
		outcome, err = e.handleSelect(ctx, l, ev, in, r)
	case interaction.CreateEvent:
		outcome, err = e.handleCreate(ctx, l, ev, in, r)
	case interaction.ClaimEvent:
		outcome, err = e.handleClaim(ctx, l, in, r)
	case interaction.CloseEvent:
		outcome, err = e.handleClose(ctx, l, in, r)
	case interaction.UnknownEvent:
		l.Debug("Ignoring unknown component")
		outcome = outcomeIgnored
	default:
		panic(fmt.Sprintf("unhandled event kind %q", event.Kind()))
	}

	InteractionsTotal.WithLabelValues(event.Kind(), outcome).Inc()
	return err
}

func (e *Engine) handleSelect(ctx context.Context, l *slog.Logger, ev interaction.SelectEvent, in *Interaction, r Responder) (string, error) {
	l = l.With(slog.Int64(logging.KeyPanelID, ev.PanelID))

	if len(in.Values) == 0 || in.Values[0] == "" {
		l.Warn("Select interaction carried no value")
		return outcomeRejected, r.Ephemeral(ctx, messages.ErrUserErrorProcessing)
	}

	category := in.Values[0]
	if err := e.cache.Set(in.Actor.ID, category); err != nil {
		l.Error("Error saving selection", slog.String(logging.KeyError, err.Error()))
		return outcomeError, r.Ephemeral(ctx, messages.ErrUserErrorProcessing)
	}

	l.Debug("Category selected", slog.String("category", category))
	return outcomeOK, r.Ephemeral(ctx, fmt.Sprintf(messages.CategorySet, category))
}

func (e *Engine) handleCreate(ctx context.Context, l *slog.Logger, ev interaction.CreateEvent, in *Interaction, r Responder) (string, error) {
	l = l.With(slog.Int64(logging.KeyPanelID, ev.PanelID))

	category := e.cache.TakeOrDefault(in.Actor.ID, entities.DefaultCategory)

	ticket, err := e.lifecycle.Create(ctx, tickets.CreateRequest{
		PanelID:   ev.PanelID,
		GuildID:   in.GuildID,
		Requester: in.Actor,
		Category:  category,
	})
	if err != nil {
		return e.refuse(ctx, l, err, r)
	}

	return outcomeOK, r.Ephemeral(ctx, fmt.Sprintf(messages.TicketCreated, ticket.ChannelID))
}

func (e *Engine) handleClaim(ctx context.Context, l *slog.Logger, in *Interaction, r Responder) (string, error) {
	t, err := e.lifecycle.Lookup(ctx, in.ChannelID)
	if errors.Is(err, tickets.ErrTicketNotFound) {
		l.Debug("Claim pressed outside an open ticket")
		return outcomeIgnored, nil
	} else if err != nil {
		return e.refuse(ctx, l, err, r)
	}

	l = l.With(slog.Int64(logging.KeyTicketID, t.Ticket.ID))

	if err := e.lifecycle.Claim(ctx, t, in.Actor); err != nil {
		return e.refuse(ctx, l, err, r)
	}

	return outcomeOK, r.Public(ctx, tickets.ClaimedEmbed(in.Actor))
}

func (e *Engine) handleClose(ctx context.Context, l *slog.Logger, in *Interaction, r Responder) (string, error) {
	t, err := e.lifecycle.Lookup(ctx, in.ChannelID)
	if errors.Is(err, tickets.ErrTicketNotFound) {
		l.Debug("Close pressed outside an open ticket")
		return outcomeIgnored, nil
	} else if err != nil {
		return e.refuse(ctx, l, err, r)
	}

	l = l.With(slog.Int64(logging.KeyTicketID, t.Ticket.ID))

	acked := false
	err = e.lifecycle.Close(ctx, t, in.Actor, func(ctx context.Context) error {
		acked = true
		return r.Ephemeral(ctx, fmt.Sprintf(messages.Closing, int(e.lifecycle.CloseDelay().Seconds())))
	})
	if err == nil {
		return outcomeOK, nil
	}

	if acked {
		// The actor has already been answered.
		l.Error("Error closing ticket", slog.String(logging.KeyError, err.Error()))
		return outcomeError, err
	}
	return e.refuse(ctx, l, err, r)
}

// refuse tells the actor why their interaction failed. Unexpected errors are logged.
func (e *Engine) refuse(ctx context.Context, l *slog.Logger, err error, r Responder) (string, error) {
	outcome := outcomeRejected
	if isUnexpected(err) {
		outcome = outcomeError
		l.Error("Error handling interaction", slog.String(logging.KeyError, err.Error()))
	} else {
		l.Debug("Interaction refused", slog.String(logging.KeyError, err.Error()))
	}

	if replyErr := r.Ephemeral(ctx, tickets.UserMessage(err)); replyErr != nil {
		return outcome, fmt.Errorf("error replying to interaction: %w", replyErr)
	}
	return outcome, nil
}

func isUnexpected(err error) bool {
	for _, known := range []error{
		tickets.ErrConfigNotFound,
		tickets.ErrDuplicateOpenTicket,
		tickets.ErrChannelCreateFailed,
		tickets.ErrUnauthorized,
		tickets.ErrAlreadyClaimed,
		tickets.ErrAlreadyClosing,
	} {
		if errors.Is(err, known) {
			return false
		}
	}
	return true
}
