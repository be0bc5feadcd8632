// Package metrics exposes dispatch outcomes for scraping via
// prometheus/client_golang.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// DispatchOutcomes counts Validate calls by algorithm and resulting code.
var DispatchOutcomes = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "ckb_auth",
		Name:      "dispatch_outcomes_total",
		Help:      "Number of auth.Validate calls by algorithm and result code.",
	},
	[]string{"algorithm", "code"},
)

func init() {
	prometheus.MustRegister(DispatchOutcomes)
}

// Observe records one dispatch outcome.
func Observe(algorithm, code string) {
	DispatchOutcomes.WithLabelValues(algorithm, code).Inc()
}
