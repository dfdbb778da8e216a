// Package metrics 汇总 Prometheus 指标，通过 /metrics 暴露
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"time"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_http_requests_total",
			Help: "HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recipe_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	MediaUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_media_uploads_total",
			Help: "Media uploads by result (ok, too_large, error)",
		},
		[]string{"result"},
	)

	MediaUploadBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recipe_media_upload_bytes",
			Help:    "Size of stored assets after transformation",
			Buckets: prometheus.ExponentialBuckets(16*1024, 2, 10), // 16KB ~ 8MB
		},
	)

	AssetsReclaimed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_assets_reclaimed_total",
			Help: "Orphaned or released assets processed by the sweeper, by result",
		},
		[]string{"result"},
	)
)

func RecordRequest(method, route, status string, d time.Duration) {
	HTTPRequests.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func RecordUpload(result string, bytes int64) {
	MediaUploads.WithLabelValues(result).Inc()
	if bytes > 0 {
		MediaUploadBytes.Observe(float64(bytes))
	}
}
