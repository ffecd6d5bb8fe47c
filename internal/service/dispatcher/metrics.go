package dispatcher

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SideEffectsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "side_effects_total",
			Help: "Total number of executed side effects by kind and result",
		},
		[]string{"kind", "result"},
	)

	DispatchInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "side_effects_dispatch_in_flight",
			Help: "Number of side effect batches currently being dispatched",
		},
	)
)
