package realtime

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "realtime_connections_active",
			Help: "Number of open event stream connections",
		},
	)

	ConnectionsPrunedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "realtime_connections_pruned_total",
			Help: "Total number of event stream connections dropped because they stopped reading",
		},
	)

	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "realtime_events_published_total",
			Help: "Total number of realtime events published",
		},
		[]string{"event"},
	)
)
