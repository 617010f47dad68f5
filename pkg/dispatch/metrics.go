package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// InteractionsTotal is the total number of component interactions handled by kind and outcome.
var InteractionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "dispatch_interactions_total",
		Help: "Total number of component interactions handled",
	},
	[]string{"kind", "outcome"},
)
