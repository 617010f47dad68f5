package tickets

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TicketsCreated is the total number of tickets created.
	TicketsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tickets_created_total",
			Help: "Total number of tickets created",
		},
	)

	// TicketsClaimed is the total number of tickets claimed.
	TicketsClaimed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tickets_claimed_total",
			Help: "Total number of tickets claimed",
		},
	)

	// TicketsClosed is the total number of tickets closed.
	TicketsClosed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tickets_closed_total",
			Help: "Total number of tickets closed",
		},
	)

	// TicketsRejected is the total number of refused ticket operations by reason.
	TicketsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tickets_rejected_total",
			Help: "Total number of refused ticket operations",
		},
		[]string{"operation", "reason"},
	)

	// TranscriptsUndelivered is the total number of transcripts that could not be sent to the creator.
	TranscriptsUndelivered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tickets_transcripts_undelivered_total",
			Help: "Total number of transcripts that could not be delivered",
		},
	)
)
