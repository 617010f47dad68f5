package config

import "time"

const (
	// AppName is the name of the application.
	AppName = "neutron"

	// EnvBotToken is the environment variable for the bot token.
	EnvBotToken = `BOT_TOKEN`

	// EnvApplicationId is the environment variable for the application ID.
	EnvApplicationId = `APPLICATION_ID`

	// EnvDatabaseDriver is the environment variable for the store to use, mongo or sqlite.
	EnvDatabaseDriver = `DATABASE_DRIVER`

	// EnvMongoUri is the environment variable for the MongoDB URI.
	EnvMongoUri = `MONGO_URI`

	// EnvMongoDatabase is the environment variable for the MongoDB database name.
	EnvMongoDatabase = `MONGO_DATABASE`

	// EnvSqlitePath is the environment variable for the SQLite database file.
	EnvSqlitePath = `SQLITE_PATH`

	// EnvMonitoringPort is the environment variable for the monitoring port.
	EnvMonitoringPort = `MONITORING_PORT`

	// EnvDashboardToken is the environment variable for the bearer token of the dashboard API.
	EnvDashboardToken = `DASHBOARD_TOKEN`

	// EnvDashboardRateLimit is the environment variable for the dashboard API requests allowed per second.
	EnvDashboardRateLimit = `DASHBOARD_RATE_LIMIT`

	// EnvCloseDelay is the environment variable for the delay before a closed ticket's channel is deleted.
	EnvCloseDelay = `CLOSE_DELAY`

	// EnvSelectionTTL is the environment variable for how long a dropdown selection is remembered.
	EnvSelectionTTL = `SELECTION_TTL`

	// EnvTicketCategoryName is the environment variable for the name of the category ticket channels go in.
	EnvTicketCategoryName = `TICKET_CATEGORY_NAME`

	// EnvPanelsFile is the environment variable for the YAML file of panels to create on startup.
	EnvPanelsFile = `PANELS_FILE`
)

const (
	defaultDatabaseDriver     = "mongo"
	defaultMongoDatabase      = "neutron"
	defaultSqlitePath         = "data/neutron.db"
	defaultMonitoringPort     = "8080"
	defaultDashboardRateLimit = 5.0
	defaultCloseDelay         = 5 * time.Second
	defaultSelectionTTL       = 30 * time.Minute
	defaultTicketCategoryName = "Neutron Tickets"
)

// Args are the command line arguments, without the program name.
type Args []string

// Config is the configuration of the bot.
type Config struct {
	// BotToken is the token for the bot.
	BotToken string

	// ApplicationId is the ID of the application.
	ApplicationId string

	// DatabaseDriver is the store to use.
	DatabaseDriver string

	// MongoUri is the URI for the MongoDB database.
	MongoUri string

	// MongoDatabase is the name of the MongoDB database.
	MongoDatabase string

	// SqlitePath is the path of the SQLite database file.
	SqlitePath string

	// MonitoringPort is the port for the monitoring server.
	MonitoringPort string

	// DashboardToken is the bearer token the dashboard API requires. The API is disabled when empty.
	DashboardToken string

	// DashboardRateLimit is the number of dashboard API requests allowed per second.
	DashboardRateLimit float64

	// CloseDelay is the delay between a close being acknowledged and the channel being deleted.
	CloseDelay time.Duration

	// SelectionTTL is how long a dropdown selection is remembered.
	SelectionTTL time.Duration

	// TicketCategoryName is the name of the category ticket channels are created in.
	TicketCategoryName string

	// PanelsFile is the YAML file of panels to create on startup.
	PanelsFile string
}
