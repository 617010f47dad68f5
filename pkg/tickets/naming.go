package tickets

import (
	"strings"
	"unicode/utf8"
)

// maxChannelName is the longest channel name the platform accepts.
const maxChannelName = 100

// ChannelName returns the name of a new ticket channel: the category slug followed by the requester's name, for
// example "billing-wolf".
func ChannelName(category, username string) string {
	name := Slug(category) + "-" + username
	if utf8.RuneCountInString(name) <= maxChannelName {
		return name
	}
	return string([]rune(name)[:maxChannelName])
}

// Slug lowercases a category label and replaces its spaces with hyphens.
func Slug(category string) string {
	return strings.ReplaceAll(strings.ToLower(category), " ", "-")
}
