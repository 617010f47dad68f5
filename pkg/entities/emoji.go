package entities

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Emoji is either a plain unicode glyph (only Name is set) or a reference to a custom emoji by ID.
type Emoji struct {
	Name     string
	ID       string
	Animated bool
}

// ParseEmoji parses the text form of an emoji. Custom emojis are written <:name:id> or <a:name:id>; anything else is
// taken as a unicode glyph.
func ParseEmoji(s string) Emoji {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "<") || !strings.HasSuffix(s, ">") {
		return Emoji{Name: s}
	}

	parts := strings.Split(strings.TrimSuffix(strings.TrimPrefix(s, "<"), ">"), ":")
	if len(parts) != 3 || parts[2] == "" {
		return Emoji{Name: s}
	}

	switch parts[0] {
	case "":
		return Emoji{Name: parts[1], ID: parts[2]}
	case "a":
		return Emoji{Name: parts[1], ID: parts[2], Animated: true}
	default:
		return Emoji{Name: s}
	}
}

// IsCustom reports whether the emoji references a custom emoji.
func (e Emoji) IsCustom() bool {
	return e.ID != ""
}

// String returns the emoji in the form used inside message content.
func (e Emoji) String() string {
	if !e.IsCustom() {
		return e.Name
	}
	if e.Animated {
		return "<a:" + e.Name + ":" + e.ID + ">"
	}
	return "<:" + e.Name + ":" + e.ID + ">"
}

// Component returns the emoji for use on a button or select option. A nil value means no emoji.
func (e Emoji) Component() *discordgo.ComponentEmoji {
	if e.Name == "" && e.ID == "" {
		return nil
	}
	return &discordgo.ComponentEmoji{
		Name:     e.Name,
		ID:       e.ID,
		Animated: e.Animated,
	}
}
