package dataaccess

const (
	// DriverMongo selects the MongoDB store.
	DriverMongo = "mongo"

	// DriverSqlite selects the SQLite store.
	DriverSqlite = "sqlite"
)

const (
	panelDalName  = "panel_dal"
	ticketDalName = "ticket_dal"

	collectionPanels   = "panels"
	collectionTickets  = "tickets"
	collectionCounters = "counters"
)
