package tickets

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

const (
	// historyLimit is the most messages kept in a transcript.
	historyLimit = 500

	transcriptTimeFormat = "2006-01-02 15:04"
)

// RenderTranscript renders messages, oldest first, one per line as "timestamp - author: content".
func RenderTranscript(msgs []*discordgo.Message) string {
	sb := new(strings.Builder)
	for i, m := range msgs {
		if i > 0 {
			sb.WriteByte('\n')
		}

		author := "unknown"
		if m.Author != nil {
			author = m.Author.Username
		}

		sb.WriteString(m.Timestamp.UTC().Format(transcriptTimeFormat))
		sb.WriteString(" - ")
		sb.WriteString(author)
		sb.WriteString(": ")
		sb.WriteString(m.Content)
	}
	return sb.String()
}

// TranscriptName returns the file name of a ticket's transcript.
func TranscriptName(ticketID int64) string {
	return fmt.Sprintf("transcript-%d.txt", ticketID)
}
