// Package metrics defines the Prometheus instrumentation for the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Hub Metrics
var (
	// HubConnectedClients tracks the number of connected WebSocket subscribers
	HubConnectedClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hub_connected_clients",
			Help: "Current number of connected WebSocket subscribers",
		},
	)

	// EventsPublishedTotal tracks broadcast events published by type
	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hub_events_published_total",
			Help: "Total broadcast events published by event type",
		},
		[]string{"type"},
	)

	// HubSlowClientsEvicted tracks number of slow clients evicted
	HubSlowClientsEvicted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hub_slow_clients_evicted_total",
			Help: "Total number of slow WebSocket clients evicted due to buffer full",
		},
	)

	// HubPanicsTotal tracks hub panic recoveries
	HubPanicsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hub_panics_total",
			Help: "Total hub panic recoveries",
		},
	)

	// HubStopTimeoutsTotal tracks hub stops that exceeded timeout
	HubStopTimeoutsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hub_stop_timeouts_total",
			Help: "Hub stops that exceeded timeout",
		},
	)
)

// WebSocket Metrics
var (
	// WebSocketMessageSendDuration tracks WebSocket message send duration
	WebSocketMessageSendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "websocket_message_send_duration_seconds",
			Help:    "WebSocket message send duration in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .025, .05, .1, .25},
		},
	)

	// WebSocketPingFailures tracks WebSocket ping failures
	WebSocketPingFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_ping_failures_total",
			Help: "Total WebSocket ping failures (client not responding)",
		},
	)
)

// Database Metrics
var (
	// DBQueryDuration tracks database query duration by query verb
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"query"},
	)

	// DBErrorsTotal tracks database query errors by query verb
	DBErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_errors_total",
			Help: "Total database query errors",
		},
		[]string{"query"},
	)
)

// Mutation Metrics
var (
	// MutationsTotal tracks poll mutations by operation and status
	MutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poll_mutations_total",
			Help: "Total poll mutations by operation (create_poll/vote/like) and status",
		},
		[]string{"operation", "status"},
	)

	// MutationDuration tracks mutation handling latency in seconds
	MutationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "poll_mutation_duration_seconds",
			Help:    "Mutation handling duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation"},
	)
)
