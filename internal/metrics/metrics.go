// Package metrics exposes Prometheus counters for the kernel's algorithm
// dispatch decisions, plus a runtime memory snapshot helper.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// mulDispatch counts general-multiplication kernel selections.
	mulDispatch = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "apcalc_mul_dispatch_total",
		Help: "Number of multiplications routed to each kernel.",
	}, []string{"algorithm"})

	// sqrDispatch counts squaring kernel selections.
	sqrDispatch = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "apcalc_sqr_dispatch_total",
		Help: "Number of squarings routed to each kernel.",
	}, []string{"algorithm"})

	// divDispatch counts division path selections.
	divDispatch = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "apcalc_div_dispatch_total",
		Help: "Number of divisions routed to each path.",
	}, []string{"path"})
)

// ObserveMulDispatch records that a multiplication was routed to the named
// kernel.
func ObserveMulDispatch(algorithm string) {
	mulDispatch.WithLabelValues(algorithm).Inc()
}

// ObserveSqrDispatch records that a squaring was routed to the named
// kernel.
func ObserveSqrDispatch(algorithm string) {
	sqrDispatch.WithLabelValues(algorithm).Inc()
}

// ObserveDivDispatch records that a division was routed to the named path.
func ObserveDivDispatch(path string) {
	divDispatch.WithLabelValues(path).Inc()
}

// Handler returns the Prometheus exposition handler for the default
// registry, including the Go runtime collectors.
func Handler() http.Handler {
	return promhttp.Handler()
}
