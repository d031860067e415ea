// Package metrics exposes Prometheus counters for both pipelines. A nil
// *Metrics is valid and records nothing.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "video_history"

type Metrics struct {
	snapshots      *prometheus.CounterVec
	layouts        *prometheus.CounterVec
	lookups        *prometheus.CounterVec
	retries        *prometheus.CounterVec
	videos         *prometheus.CounterVec
	engagement     *prometheus.CounterVec
	tokenRotations prometheus.Counter
}

// New registers all collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		snapshots: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "wayback",
			Name:      "snapshots_total",
			Help:      "Snapshot fetches by outcome",
		}, []string{"outcome"}),
		layouts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "wayback",
			Name:      "layout_matches_total",
			Help:      "Snapshots resolved per page layout",
		}, []string{"layout"}),
		lookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "wayback",
			Name:      "timemap_lookups_total",
			Help:      "Timemap lookups by outcome",
		}, []string{"outcome"}),
		retries: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "request_retries_total",
			Help:      "HTTP request retries per operation",
		}, []string{"op"}),
		videos: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "videos_total",
			Help:      "Input videos by result",
		}, []string{"result"}),
		engagement: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "graph",
			Name:      "requests_total",
			Help:      "Engagement lookups by outcome",
		}, []string{"outcome"}),
		tokenRotations: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "graph",
			Name:      "token_rotations_total",
			Help:      "Access token switches after rate limiting or transport errors",
		}),
	}
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

func (m *Metrics) Snapshot(outcome string) {
	if m == nil {
		return
	}
	m.snapshots.WithLabelValues(outcome).Inc()
}

func (m *Metrics) LayoutMatched(layout string) {
	if m == nil {
		return
	}
	m.layouts.WithLabelValues(layout).Inc()
}

func (m *Metrics) Lookup(outcome string) {
	if m == nil {
		return
	}
	m.lookups.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Retry(op string) {
	if m == nil {
		return
	}
	m.retries.WithLabelValues(op).Inc()
}

func (m *Metrics) Video(result string) {
	if m == nil {
		return
	}
	m.videos.WithLabelValues(result).Inc()
}

func (m *Metrics) Engagement(outcome string) {
	if m == nil {
		return
	}
	m.engagement.WithLabelValues(outcome).Inc()
}

func (m *Metrics) TokenRotated() {
	if m == nil {
		return
	}
	m.tokenRotations.Inc()
}
