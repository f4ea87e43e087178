package engine

import "github.com/prometheus/client_golang/prometheus"

var eventsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "matchd",
		Subsystem: "engine",
		Name:      "events_total",
		Help:      "Total match events emitted, by event type",
	},
	[]string{"type"},
)

func init() {
	prometheus.MustRegister(eventsTotal)
}
