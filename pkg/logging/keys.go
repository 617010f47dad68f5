package logging

// EnvLogLevel is the environment variable for the log level.
const EnvLogLevel = `LOG_LEVEL`

const (
	// KeyApp is the key for the application name.
	KeyApp = "app"

	// KeyError is the key for an error.
	KeyError = "error"

	// KeyDal is the key for the data access layer name.
	KeyDal = "dal"

	// KeyGuildID is the key for a guild ID.
	KeyGuildID = "guild_id"

	// KeyChannelID is the key for a channel ID.
	KeyChannelID = "channel_id"

	// KeyUserID is the key for a user ID.
	KeyUserID = "user_id"

	// KeyPanelID is the key for a panel ID.
	KeyPanelID = "panel_id"

	// KeyTicketID is the key for a ticket ID.
	KeyTicketID = "ticket_id"

	// KeyCustomID is the key for an interaction custom ID.
	KeyCustomID = "custom_id"

	// KeyRequestID is the key for a HTTP request ID.
	KeyRequestID = "request_id"
)
