package application

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	signRequestsReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "signerd_sign_requests_received_total",
		Help: "Signing requests accepted into the pending table.",
	})
	signRequestsApproved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "signerd_sign_requests_approved_total",
		Help: "Signing requests approved by the user.",
	})
	signRequestsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "signerd_sign_requests_rejected_total",
		Help: "Signing requests rejected by the user.",
	})
	signRequestsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "signerd_sign_requests_failed_total",
		Help: "Approved signing requests that failed at signing time.",
	})
	signRequestsPending = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "signerd_sign_requests_pending",
		Help: "Signing requests currently awaiting a decision.",
	})
)
