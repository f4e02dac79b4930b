// Package telemetry exposes Prometheus collectors for tick/chunk/
// cluster instrumentation (spec §8's testable properties require
// these counts to be observable), grounded on aistore's pervasive use
// of prometheus/client_golang for runtime metrics.
package telemetry

import "github.com/prometheus/client_golang/prometheus"

// Metrics is a bundle of collectors a host registers with its own
// Prometheus registry; the core never starts its own HTTP server.
type Metrics struct {
	TickDuration       prometheus.Histogram
	ActiveChunks       prometheus.Gauge
	ActiveClusters     prometheus.Gauge
	DisplacementLost   prometheus.Counter
	PistonStalls       prometheus.Counter
	CellsSimulated     prometheus.Counter
}

// NewMetrics constructs a fresh set of collectors under the given
// namespace, ready for the host to register.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		TickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Wall-clock duration of one fixed-step tick.",
			Buckets:   prometheus.DefBuckets,
		}),
		ActiveChunks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_chunks",
			Help:      "Number of chunks selected for simulation this tick.",
		}),
		ActiveClusters: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_clusters",
			Help:      "Number of live (non-removed) clusters.",
		}),
		DisplacementLost: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "displacement_lost_total",
			Help:      "Cells dropped because no displacement destination was found within the search radius.",
		}),
		PistonStalls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "piston_stalls_total",
			Help:      "Ticks in which an extending piston encountered a fully blocked row.",
		}),
		CellsSimulated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cells_simulated_total",
			Help:      "Cumulative count of SimulateCell dispatches, for double-processing diagnostics.",
		}),
	}
}

// Collectors returns every metric as a prometheus.Collector, for bulk
// registration.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.TickDuration, m.ActiveChunks, m.ActiveClusters,
		m.DisplacementLost, m.PistonStalls, m.CellsSimulated,
	}
}
