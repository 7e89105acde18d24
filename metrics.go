package reminders

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	deliveredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "brokerdesk_reminders",
			Name:      "delivered_total",
			Help:      "Reminders handed to the delivery callback.",
		},
		[]string{"origin"},
	)

	duplicatesSuppressedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "brokerdesk_reminders",
			Name:      "duplicates_suppressed_total",
			Help:      "Due candidates discarded because the ledger already held their id.",
		},
	)

	expiredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "brokerdesk_reminders",
			Name:      "expired_total",
			Help:      "Reminders past the due window that were dropped unfired.",
		},
		[]string{"source"},
	)

	pollCyclesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "brokerdesk_reminders",
			Name:      "poll_cycles_total",
			Help:      "Poll cycles executed.",
		},
	)

	pollFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "brokerdesk_reminders",
			Name:      "poll_failures_total",
			Help:      "Poll cycles whose backend query failed (swallowed).",
		},
		[]string{"source"},
	)

	qualityAlertsEnqueuedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "brokerdesk_reminders",
			Name:      "quality_alerts_enqueued_total",
			Help:      "Under-length completions queued for oversight notification.",
		},
	)
)
