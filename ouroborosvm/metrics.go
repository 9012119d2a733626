// (c) 2022, Ouroboros Finance. All rights reserved.
// See the file LICENSE for licensing terms.

package ouroborosvm

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type metrics struct {
	registry *prometheus.Registry

	// instructions counts executed instructions by operation and outcome
	// ("commit" or "abort").
	instructions *prometheus.CounterVec
}

func newMetrics() (*metrics, error) {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		instructions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ouroborosvm",
				Name:      "instructions",
				Help:      "number of instructions executed, by operation and outcome",
			},
			[]string{"op", "outcome"},
		),
	}
	return m, m.registry.Register(m.instructions)
}

func (m *metrics) committed(op string) {
	m.instructions.WithLabelValues(op, "commit").Inc()
}

func (m *metrics) aborted(op string) {
	m.instructions.WithLabelValues(op, "abort").Inc()
}

// Handler serves the VM's metrics in the Prometheus exposition format.
func (m *metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
