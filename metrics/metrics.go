// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics defines the server's Prometheus collectors.
package metrics

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mediaranker"

// Vote rejection reasons
const (
	ReasonDuplicate        = "duplicate"
	ReasonNotAuthenticated = "not_authenticated"
	ReasonInvalidUser      = "invalid_user"
	ReasonWorkNotFound     = "work_not_found"
)

// Metrics holds all Prometheus collectors for the server.
type Metrics struct {
	VotesTotal           *prometheus.CounterVec
	VoteRejections       *prometheus.CounterVec
	RequestDuration      *prometheus.HistogramVec
	RequestsInFlight     prometheus.Gauge
	RankingQueryDuration *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them on reg. Passing a fresh
// prometheus.NewRegistry() keeps tests isolated from the global registry.
// When db is non-nil its connection pool stats are exported too.
func New(reg *prometheus.Registry, db *sql.DB) *Metrics {
	m := &Metrics{
		VotesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "votes_total",
				Help:      "Total upvotes recorded, by work category.",
			},
			[]string{"category"},
		),
		VoteRejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "vote_rejections_total",
				Help:      "Upvotes refused, by reason.",
			},
			[]string{"reason"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds, by route pattern, method, and status.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route", "method", "status"},
		),
		RequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "requests_in_flight",
				Help:      "Number of HTTP requests currently being served.",
			},
		),
		RankingQueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "ranking_query_duration_seconds",
				Help:      "Duration of ranking queries, by query kind.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"query"},
		),
		gatherer: reg,
	}

	reg.MustRegister(
		m.VotesTotal,
		m.VoteRejections,
		m.RequestDuration,
		m.RequestsInFlight,
		m.RankingQueryDuration,
	)

	if db != nil {
		reg.MustRegister(collectors.NewDBStatsCollector(db, namespace))
	}

	return m
}

// ObserveRanking records how long a ranking query took since start.
func (m *Metrics) ObserveRanking(query string, start time.Time) {
	m.RankingQueryDuration.WithLabelValues(query).Observe(time.Since(start).Seconds())
}

// Handler serves the /metrics endpoint for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
