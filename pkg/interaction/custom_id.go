// Package interaction decodes the custom IDs carried by ticket components.
//
// The IDs are a wire contract with components already posted in guilds, so their format must not change:
//
//	ticket:select:<panel_id>  the category dropdown on a panel
//	ticket:btn:<panel_id>     the create ticket button on a panel
//	ticket:claim              the claim button inside a ticket channel
//	ticket:close              the close button inside a ticket channel
package interaction

import (
	"strconv"
	"strings"
)

const (
	namespace = "ticket"

	prefixSelect = namespace + ":select:"
	prefixButton = namespace + ":btn:"

	// ClaimID is the custom ID of the claim button.
	ClaimID = namespace + ":claim"

	// CloseID is the custom ID of the close button.
	CloseID = namespace + ":close"
)

// Event is a decoded custom ID. It is one of SelectEvent, CreateEvent, ClaimEvent, CloseEvent or UnknownEvent.
type Event interface {
	// Kind names the event for logs and metrics.
	Kind() string

	event()
}

// SelectEvent is a category picked from a panel's dropdown.
type SelectEvent struct {
	PanelID int64
}

// CreateEvent is a press of a panel's create ticket button.
type CreateEvent struct {
	PanelID int64
}

// ClaimEvent is a press of the claim button in a ticket channel.
type ClaimEvent struct{}

// CloseEvent is a press of the close button in a ticket channel.
type CloseEvent struct{}

// UnknownEvent is any custom ID this bot does not own, or a malformed one.
type UnknownEvent struct {
	CustomID string
}

func (SelectEvent) Kind() string  { return "select" }
func (CreateEvent) Kind() string  { return "create" }
func (ClaimEvent) Kind() string   { return "claim" }
func (CloseEvent) Kind() string   { return "close" }
func (UnknownEvent) Kind() string { return "unknown" }

func (SelectEvent) event()  {}
func (CreateEvent) event()  {}
func (ClaimEvent) event()   {}
func (CloseEvent) event()   {}
func (UnknownEvent) event() {}

// Parse decodes a custom ID.
func Parse(customID string) Event {
	switch {
	case customID == ClaimID:
		return ClaimEvent{}
	case customID == CloseID:
		return CloseEvent{}
	case strings.HasPrefix(customID, prefixSelect):
		if id, ok := panelID(customID); ok {
			return SelectEvent{PanelID: id}
		}
	case strings.HasPrefix(customID, prefixButton):
		if id, ok := panelID(customID); ok {
			return CreateEvent{PanelID: id}
		}
	}
	return UnknownEvent{CustomID: customID}
}

// panelID extracts the trailing numeric segment.
func panelID(customID string) (int64, bool) {
	seg := customID[strings.LastIndex(customID, ":")+1:]
	id, err := strconv.ParseInt(seg, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// SelectID returns the custom ID of a panel's category dropdown.
func SelectID(panelID int64) string {
	return prefixSelect + strconv.FormatInt(panelID, 10)
}

// ButtonID returns the custom ID of a panel's create ticket button.
func ButtonID(panelID int64) string {
	return prefixButton + strconv.FormatInt(panelID, 10)
}
