package interaction

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		customID string
		want     Event
	}{
		{name: "create", customID: "ticket:btn:42", want: CreateEvent{PanelID: 42}},
		{name: "select", customID: "ticket:select:7", want: SelectEvent{PanelID: 7}},
		{name: "claim", customID: "ticket:claim", want: ClaimEvent{}},
		{name: "close", customID: "ticket:close", want: CloseEvent{}},
		{name: "create without id", customID: "ticket:btn:", want: UnknownEvent{CustomID: "ticket:btn:"}},
		{name: "create with text id", customID: "ticket:btn:abc", want: UnknownEvent{CustomID: "ticket:btn:abc"}},
		{name: "negative id", customID: "ticket:select:-1", want: UnknownEvent{CustomID: "ticket:select:-1"}},
		{name: "claim with suffix", customID: "ticket:claim:5", want: UnknownEvent{CustomID: "ticket:claim:5"}},
		{name: "foreign", customID: "open_ticket_button", want: UnknownEvent{CustomID: "open_ticket_button"}},
		{name: "empty", customID: "", want: UnknownEvent{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Parse(tt.customID))
		})
	}
}

func TestEncode(t *testing.T) {
	require.Equal(t, "ticket:select:42", SelectID(42))
	require.Equal(t, "ticket:btn:42", ButtonID(42))
	require.Equal(t, "ticket:claim", ClaimID)
	require.Equal(t, "ticket:close", CloseID)

	require.Equal(t, CreateEvent{PanelID: 9}, Parse(ButtonID(9)))
	require.Equal(t, SelectEvent{PanelID: 9}, Parse(SelectID(9)))
}

func TestKind(t *testing.T) {
	require.Equal(t, "create", Parse("ticket:btn:1").Kind())
	require.Equal(t, "select", Parse("ticket:select:1").Kind())
	require.Equal(t, "claim", Parse(ClaimID).Kind())
	require.Equal(t, "close", Parse(CloseID).Kind())
	require.Equal(t, "unknown", Parse("x").Kind())
}
