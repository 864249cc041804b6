package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce         sync.Once
	adminRequestsTotal   *prometheus.CounterVec
	adminLatencySeconds  *prometheus.HistogramVec
	adminErrorsTotal     *prometheus.CounterVec
	galleryRequestsTotal *prometheus.CounterVec
	galleryLatency       prometheus.Histogram
	uploadRequestsTotal  *prometheus.CounterVec
	uploadRejectedTotal  *prometheus.CounterVec
	uploadLatency        prometheus.Histogram
	batchRunsTotal       *prometheus.CounterVec
	feedEventsTotal      *prometheus.CounterVec
	feedSubscribers      prometheus.Gauge
	contactTotal         *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used across the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		adminRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "admin_requests_total",
			Help: "Total number of admin API requests served.",
		}, []string{"method", "route", "status"})

		adminLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "admin_latency_seconds",
			Help:    "Latency distribution for admin API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		adminErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "admin_errors_total",
			Help: "Total number of error responses returned by admin endpoints.",
		}, []string{"method", "route", "status"})

		galleryRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gallery_requests_total",
			Help: "Total number of public gallery list requests.",
		}, []string{"result"})

		galleryLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gallery_list_latency_seconds",
			Help:    "Latency distribution for gallery list queries.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		})

		uploadRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "upload_requests_total",
			Help: "Total number of assets accepted for upload.",
		}, []string{"media_type"})

		uploadRejectedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "upload_rejected_total",
			Help: "Total number of uploads rejected before reaching the CDN.",
		}, []string{"reason"})

		uploadLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "upload_latency_seconds",
			Help:    "Latency distribution for single asset uploads.",
			Buckets: []float64{0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0},
		})

		batchRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gallery_batch_runs_total",
			Help: "Total number of batch upload runs by aggregate outcome.",
		}, []string{"outcome"})

		feedEventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gallery_feed_events_total",
			Help: "Total number of gallery feed events broadcast.",
		}, []string{"type"})

		feedSubscribers = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gallery_feed_subscribers",
			Help: "Number of active realtime gallery subscribers.",
		})

		contactTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "contact_submissions_total",
			Help: "Total number of contact submissions by processing result.",
		}, []string{"result"})

		prometheus.MustRegister(
			adminRequestsTotal, adminLatencySeconds, adminErrorsTotal,
			galleryRequestsTotal, galleryLatency,
			uploadRequestsTotal, uploadRejectedTotal, uploadLatency,
			batchRunsTotal, feedEventsTotal, feedSubscribers, contactTotal,
		)
	})
}

// AdminRequests exposes the counter for admin requests.
func AdminRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return adminRequestsTotal
}

// AdminLatency exposes the latency histogram for admin requests.
func AdminLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return adminLatencySeconds
}

// AdminErrors exposes the counter for admin error responses.
func AdminErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return adminErrorsTotal
}

// GalleryRequests exposes the counter for public gallery requests.
func GalleryRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return galleryRequestsTotal
}

// GalleryLatency exposes the gallery list latency histogram.
func GalleryLatency() prometheus.Histogram {
	RegisterMetrics()
	return galleryLatency
}

// UploadRequests exposes the counter for accepted uploads.
func UploadRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return uploadRequestsTotal
}

// UploadRejected exposes the counter for rejected uploads.
func UploadRejected() *prometheus.CounterVec {
	RegisterMetrics()
	return uploadRejectedTotal
}

// UploadLatency exposes the upload latency histogram.
func UploadLatency() prometheus.Histogram {
	RegisterMetrics()
	return uploadLatency
}

// BatchRuns exposes the counter for batch upload outcomes.
func BatchRuns() *prometheus.CounterVec {
	RegisterMetrics()
	return batchRunsTotal
}

// FeedEvents exposes the counter for broadcast feed events.
func FeedEvents() *prometheus.CounterVec {
	RegisterMetrics()
	return feedEventsTotal
}

// FeedSubscribersActive exposes the gauge of live feed subscribers.
func FeedSubscribersActive() prometheus.Gauge {
	RegisterMetrics()
	return feedSubscribers
}

// ContactSubmissions exposes the counter for contact processing results.
func ContactSubmissions() *prometheus.CounterVec {
	RegisterMetrics()
	return contactTotal
}
