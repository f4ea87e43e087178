package hub

import "github.com/prometheus/client_golang/prometheus"

var subscribersGauge = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Namespace: "matchd",
		Subsystem: "hub",
		Name:      "subscribers",
		Help:      "Currently registered event stream subscribers",
	},
)

func init() {
	prometheus.MustRegister(subscribersGauge)
}
