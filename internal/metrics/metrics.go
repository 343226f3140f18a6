package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "photo_vitrine_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "photo_vitrine_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	GalleryTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "photo_vitrine_gallery_transitions_total",
			Help: "Gallery status transitions applied by the moderation workflow",
		},
		[]string{"action", "outcome"},
	)

	NotificationsEmittedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "photo_vitrine_notifications_emitted_total",
			Help: "Notifications created by the moderation workflow",
		},
		[]string{"type"},
	)
)
