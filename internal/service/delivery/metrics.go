package delivery

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ClaimAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "delivery_job_claims_total",
		Help: "Total number of delivery job claim attempts by outcome",
	},
	[]string{"result"},
)
