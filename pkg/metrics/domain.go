package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	OrderTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ticketescrow",
			Subsystem: "orders",
			Name:      "transitions_total",
			Help:      "Order status transitions by from/to pair",
		},
		[]string{"from", "to", "actor"},
	)

	StatusConflictsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ticketescrow",
			Subsystem: "orders",
			Name:      "status_conflicts_total",
			Help:      "Transitions rejected by the optimistic status precondition",
		},
		[]string{"entity"},
	)

	OversellRejectionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ticketescrow",
			Subsystem: "listings",
			Name:      "oversell_rejections_total",
			Help:      "Purchases rejected because listing quantity was exhausted",
		},
	)

	SweepTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ticketescrow",
			Subsystem: "sweeper",
			Name:      "transitions_total",
			Help:      "Deadline-driven transitions applied by the background sweep",
		},
		[]string{"kind"},
	)

	DisputesResolvedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ticketescrow",
			Subsystem: "disputes",
			Name:      "resolved_total",
			Help:      "Disputes resolved by outcome",
		},
		[]string{"outcome"},
	)
)

func init() {
	Registry.MustRegister(
		OrderTransitionsTotal,
		StatusConflictsTotal,
		OversellRejectionsTotal,
		SweepTransitionsTotal,
		DisputesResolvedTotal,
	)
}
