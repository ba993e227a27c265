// Package metrics exposes prometheus counters for access decisions.
package metrics

import (
	"net/http"
	"restrict_ip/internal/action"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all collectors for one daemon. A nil *Metrics records nothing.
type Metrics struct {
	DecisionsTotal *prometheus.CounterVec
	PolicyReloads  *prometheus.CounterVec
	AddressEntries prometheus.Gauge

	registry *prometheus.Registry
}

// New creates a new Metrics instance with all metrics registered.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
	}

	m.DecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "restrict_ip_decisions_total",
			Help: "Access decisions by result and deciding step",
		},
		[]string{"result", "reason"},
	)

	m.PolicyReloads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "restrict_ip_policy_reloads_total",
			Help: "Policy reload attempts by outcome",
		},
		[]string{"outcome"},
	)

	m.AddressEntries = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "restrict_ip_address_entries",
			Help: "Address tokens in the active policy, admin and static lists combined",
		},
	)

	m.registry.MustRegister(
		m.DecisionsTotal,
		m.PolicyReloads,
		m.AddressEntries,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *Metrics) RecordDecision(d action.Decision) {
	if m == nil {
		return
	}
	m.DecisionsTotal.WithLabelValues(d.Result(), string(d.Reason)).Inc()
}

func (m *Metrics) RecordReload(err error, addressEntries int) {
	if m == nil {
		return
	}
	if err != nil {
		m.PolicyReloads.WithLabelValues("error").Inc()
		return
	}
	m.PolicyReloads.WithLabelValues("ok").Inc()
	m.AddressEntries.Set(float64(addressEntries))
}

// Handler serves the registry in the prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
