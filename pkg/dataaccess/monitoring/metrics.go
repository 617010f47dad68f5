package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MongoLatency is the duration of Mongo queries.
	MongoLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "dataaccess_mongo_latency",
			Help: "Duration of Mongo queries",
		},
		[]string{"dal", "query", "database", "collection"},
	)

	// MongoTotalRequests is the total number of Mongo requests.
	MongoTotalRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataaccess_mongo_total_requests",
			Help: "Total number of Mongo requests",
		},
		[]string{"dal", "query", "database", "collection"},
	)

	// SqliteLatency is the duration of SQLite queries.
	SqliteLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "dataaccess_sqlite_latency",
			Help: "Duration of SQLite queries",
		},
		[]string{"dal", "query", "table"},
	)

	// SqliteTotalRequests is the total number of SQLite requests.
	SqliteTotalRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataaccess_sqlite_total_requests",
			Help: "Total number of SQLite requests",
		},
		[]string{"dal", "query", "table"},
	)
)

// ObserveMongo counts a Mongo request and returns a timer for its latency.
func ObserveMongo(dal, query, database, collection string) *prometheus.Timer {
	MongoTotalRequests.WithLabelValues(dal, query, database, collection).Inc()
	return prometheus.NewTimer(MongoLatency.WithLabelValues(dal, query, database, collection))
}

// ObserveSqlite counts a SQLite request and returns a timer for its latency.
func ObserveSqlite(dal, query, table string) *prometheus.Timer {
	SqliteTotalRequests.WithLabelValues(dal, query, table).Inc()
	return prometheus.NewTimer(SqliteLatency.WithLabelValues(dal, query, table))
}
