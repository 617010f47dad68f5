package entities

import (
	"github.com/Jacobbrewer1/neutron/pkg/custom"
)

const (
	// DefaultPanelTitle is the title given to a panel when none is provided.
	DefaultPanelTitle = "Support Ticket"

	// DefaultPanelDescription is the description given to a panel when none is provided.
	DefaultPanelDescription = "Click the button below to contact support."

	// DefaultButtonLabel is the label of the create ticket button when none is provided.
	DefaultButtonLabel = "Open Ticket"

	// DefaultButtonEmoji is the emoji of the create ticket button when none is provided. (Envelope with arrow)
	DefaultButtonEmoji = "\U0001F4E9"

	// DefaultOptionEmoji is the emoji of a dropdown option when none is provided. (Ticket)
	DefaultOptionEmoji = "\U0001F3AB"
)

// Panel is the configuration of a ticket panel: the message users press to open a ticket.
type Panel struct {
	// ID is the numeric ID of the panel. It is encoded into the custom IDs of the panel's components and never
	// changes once assigned.
	ID int64 `json:"id" bson:"id" db:"id" yaml:"-"`

	// GuildID is the ID of the guild that owns the panel.
	GuildID string `json:"guild_id" bson:"guild_id" db:"guild_id" yaml:"guild_id"`

	// ChannelID is the ID of the channel the panel is published in.
	ChannelID string `json:"channel_id" bson:"channel_id" db:"channel_id" yaml:"channel_id"`

	// Title is the title of the panel embed.
	Title string `json:"title" bson:"title" db:"title" yaml:"title"`

	// Description is the body of the panel embed.
	Description string `json:"description" bson:"description" db:"description" yaml:"description"`

	// BannerURL is the URL of the large image shown on the panel embed.
	BannerURL string `json:"banner_url" bson:"banner_url" db:"banner_url" yaml:"banner_url"`

	// ThumbnailURL is the URL of the thumbnail shown on the panel and welcome embeds.
	ThumbnailURL string `json:"thumbnail_url" bson:"thumbnail_url" db:"thumbnail_url" yaml:"thumbnail_url"`

	// ButtonLabel is the label of the create ticket button.
	ButtonLabel string `json:"button_label" bson:"button_label" db:"button_label" yaml:"button_label"`

	// ButtonColor is the color of the create ticket button.
	ButtonColor ButtonColor `json:"button_color" bson:"button_color" db:"button_color" yaml:"button_color"`

	// ButtonEmoji is the emoji of the create ticket button, either a unicode glyph or a custom emoji reference.
	ButtonEmoji string `json:"button_emoji" bson:"button_emoji" db:"button_emoji" yaml:"button_emoji"`

	// StaffRoles are the IDs of the roles that can claim and close tickets opened from this panel.
	StaffRoles StringList `json:"staff_roles" bson:"staff_roles" db:"staff_roles" yaml:"staff_roles"`

	// DropdownOptions are the categories users can pick from before opening a ticket, in display order.
	DropdownOptions DropdownOptions `json:"dropdown_options" bson:"dropdown_options" db:"dropdown_options" yaml:"dropdown_options"`

	// CreatedAt is the time that the panel was created.
	CreatedAt custom.Datetime `json:"created_at" bson:"created_at" db:"created_at" yaml:"-"`
}

// DropdownOption is a single category in a panel's dropdown.
type DropdownOption struct {
	// Label is the name of the category. It is also the value recorded against the ticket.
	Label string `json:"label" bson:"label" yaml:"label"`

	// Emoji is the emoji shown next to the label.
	Emoji string `json:"emoji" bson:"emoji" yaml:"emoji"`
}

// ApplyDefaults fills in any unset display fields with their defaults.
func (p *Panel) ApplyDefaults() {
	if p.Title == "" {
		p.Title = DefaultPanelTitle
	}
	if p.Description == "" {
		p.Description = DefaultPanelDescription
	}
	if p.ButtonLabel == "" {
		p.ButtonLabel = DefaultButtonLabel
	}
	if !p.ButtonColor.Valid() {
		p.ButtonColor = ButtonColorBlurple
	}
	if p.ButtonEmoji == "" {
		p.ButtonEmoji = DefaultButtonEmoji
	}
	if p.StaffRoles == nil {
		p.StaffRoles = StringList{}
	}
	if p.DropdownOptions == nil {
		p.DropdownOptions = DropdownOptions{}
	}
	for i := range p.DropdownOptions {
		if p.DropdownOptions[i].Emoji == "" {
			p.DropdownOptions[i].Emoji = DefaultOptionEmoji
		}
	}
}

// IsStaffRole reports whether the role is one of the panel's staff roles.
func (p *Panel) IsStaffRole(roleID string) bool {
	for _, r := range p.StaffRoles {
		if r == roleID {
			return true
		}
	}
	return false
}
