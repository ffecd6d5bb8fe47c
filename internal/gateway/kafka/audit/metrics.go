package audit

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var AuditPublishDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "audit_publish_duration_seconds",
		Help:    "Duration of audit log publishes to Kafka",
		Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	},
	[]string{"result"},
)
