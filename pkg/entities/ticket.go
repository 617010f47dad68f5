package entities

import (
	"github.com/Jacobbrewer1/neutron/pkg/custom"
)

// DefaultCategory is the category recorded against a ticket when the user did not pick one.
const DefaultCategory = "General Support"

// TicketStatus is the status of a ticket. A ticket only ever moves from open to closed.
type TicketStatus string

const (
	TicketStatusOpen   TicketStatus = "open"
	TicketStatusClosed TicketStatus = "closed"
)

// Ticket is a support ticket backed by a private channel.
type Ticket struct {
	// ID is the number of the ticket. It is used to name the transcript, for example "transcript-12.txt".
	ID int64 `json:"id" bson:"id" db:"id"`

	// PanelID is the ID of the panel the ticket was opened from.
	PanelID int64 `json:"panel_id" bson:"panel_id" db:"panel_id"`

	// GuildID is the ID of the guild that the ticket is in.
	GuildID string `json:"guild_id" bson:"guild_id" db:"guild_id"`

	// ChannelID is the ID of the channel that backs the ticket. It is never reused.
	ChannelID string `json:"channel_id" bson:"channel_id" db:"channel_id"`

	// CreatorID is the ID of the user that created the ticket.
	CreatorID string `json:"creator_id" bson:"creator_id" db:"creator_id"`

	// Status is the status of the ticket.
	Status TicketStatus `json:"status" bson:"status" db:"status"`

	// ClaimedBy is the ID of the staff member that claimed the ticket. Empty until claimed.
	ClaimedBy string `json:"claimed_by" bson:"claimed_by" db:"claimed_by"`

	// CategorySelected is the dropdown category the ticket was opened under.
	CategorySelected string `json:"category_selected" bson:"category_selected" db:"category_selected"`

	// CreatedAt is the time that the ticket was created.
	CreatedAt custom.Datetime `json:"created_at" bson:"created_at" db:"created_at"`

	// ClosedAt is the time that the ticket was closed.
	ClosedAt custom.Datetime `json:"closed_at" bson:"closed_at" db:"closed_at"`
}

// IsOpen reports whether the ticket is open.
func (t Ticket) IsOpen() bool {
	return t.Status == TicketStatusOpen
}

// IsClaimed reports whether a staff member has claimed the ticket.
func (t Ticket) IsClaimed() bool {
	return t.ClaimedBy != ""
}
