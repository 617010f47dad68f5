package platform

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DiscordRequestDuration is the duration of Discord API calls by operation.
	DiscordRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "platform_discord_request_duration",
			Help: "Duration of Discord API calls",
		},
		[]string{"operation"},
	)

	// DiscordRequestErrors is the total number of failed Discord API calls by operation.
	DiscordRequestErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "platform_discord_request_errors_total",
			Help: "Total number of failed Discord API calls",
		},
		[]string{"operation"},
	)
)
