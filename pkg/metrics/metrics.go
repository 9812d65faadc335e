package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	ReportUploadsTotal  *prometheus.CounterVec // status: success, no_text, failure
	FieldsExtracted     *prometheus.CounterVec
	IngestQueueDepth    prometheus.Gauge
	RenderDuration      prometheus.Histogram
)

func init() {
	Init(prometheus.DefaultRegisterer)
}

// Init (re)creates the collectors on reg. Tests pass a fresh registry.
func Init(reg prometheus.Registerer) {
	factory := promauto.With(reg)

	HTTPRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	ReportUploadsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_uploads_total",
			Help: "Report documents analysed, by outcome.",
		},
		[]string{"status"},
	)

	FieldsExtracted = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_fields_extracted_total",
			Help: "Metadata fields found by the extractor.",
		},
		[]string{"field"},
	)

	IngestQueueDepth = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "ingest_queue_depth",
			Help: "Documents waiting in the inbox ingest queue.",
		},
	)

	RenderDuration = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "report_render_duration_seconds",
			Help:    "Duration of report PDF rendering.",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30},
		},
	)
}
