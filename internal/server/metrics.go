package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mosaic_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mosaic_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Assembly metrics
	assembleRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mosaic_assemble_requests_total",
			Help: "Total number of assembly requests",
		},
		[]string{"transport", "status"}, // transport: http, websocket
	)

	assembleDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mosaic_assemble_duration_seconds",
			Help:    "Document assembly duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"transport"},
	)

	assemblePages = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mosaic_assemble_pages",
			Help:    "Number of pages per assembly request",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250, 500},
		},
	)

	assembleBlocks = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mosaic_assemble_blocks",
			Help:    "Number of blocks produced per assembly request",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	// WebSocket metrics
	websocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mosaic_websocket_active_connections",
			Help: "Number of active WebSocket connections",
		},
	)

	websocketMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mosaic_websocket_messages_total",
			Help: "Total number of WebSocket messages",
		},
		[]string{"direction"}, // direction: sent, received
	)
)
