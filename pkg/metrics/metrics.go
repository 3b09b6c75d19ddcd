package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Report generation metrics
	ReportsGenerated *prometheus.CounterVec
	ReportDuration   *prometheus.HistogramVec

	// Ingestion metrics
	IngestJobsTotal      *prometheus.CounterVec
	IngestJobDuration    prometheus.Histogram
	IngestJobsInProgress prometheus.Gauge
	IngestRowsAccepted   *prometheus.CounterVec
	IngestRowsFailed     *prometheus.CounterVec

	// External API metrics
	ExternalAPICalls    *prometheus.CounterVec
	ExternalAPIDuration *prometheus.HistogramVec
	ExternalAPIFailures *prometheus.CounterVec

	// Sink export metrics
	ReportsExported prometheus.Counter
	ExportFailures  prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
		),

		ReportsGenerated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reports_generated_total",
				Help: "Total number of analytics reports generated",
			},
			[]string{"report_type"},
		),

		ReportDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "report_generation_duration_seconds",
				Help:    "Report generation duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"report_type"},
		),

		IngestJobsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ingest_jobs_total",
				Help: "Total number of platform pull jobs",
			},
			[]string{"status"},
		),

		IngestJobDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ingest_job_duration_seconds",
				Help:    "Platform pull job duration in seconds",
				Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
			},
		),

		IngestJobsInProgress: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "ingest_jobs_in_progress",
				Help: "Number of ingestion jobs currently in progress",
			},
		),

		IngestRowsAccepted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ingest_rows_accepted_total",
				Help: "Total number of metric rows accepted",
			},
			[]string{"source"},
		),

		IngestRowsFailed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ingest_rows_failed_total",
				Help: "Total number of metric rows rejected during normalization",
			},
			[]string{"error_type"},
		),

		ExternalAPICalls: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "external_api_calls_total",
				Help: "Total number of external API calls",
			},
			[]string{"api", "status"},
		),

		ExternalAPIDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "external_api_duration_seconds",
				Help:    "External API call duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"api"},
		),

		ExternalAPIFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "external_api_failures_total",
				Help: "Total number of external API failures",
			},
			[]string{"api", "error_type"},
		),

		ReportsExported: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "reports_exported_total",
				Help: "Total number of reports pushed to the sink",
			},
		),

		ExportFailures: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "report_export_failures_total",
				Help: "Total number of failed sink exports",
			},
		),
	}
}

// HTTP request metrics
func (m *Metrics) RecordHTTPRequest(method, endpoint, statusCode string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// Report generation metrics
func (m *Metrics) RecordReport(reportType string, duration time.Duration) {
	m.ReportsGenerated.WithLabelValues(reportType).Inc()
	m.ReportDuration.WithLabelValues(reportType).Observe(duration.Seconds())
}

// Ingestion job metrics
func (m *Metrics) RecordIngestJob(status string, duration time.Duration) {
	m.IngestJobsTotal.WithLabelValues(status).Inc()
	m.IngestJobDuration.Observe(duration.Seconds())
}

// Accepted row metrics
func (m *Metrics) RecordIngestRows(source string, count int) {
	m.IngestRowsAccepted.WithLabelValues(source).Add(float64(count))
}

// Rejected row metrics
func (m *Metrics) RecordIngestRowFailure(errorType string) {
	m.IngestRowsFailed.WithLabelValues(errorType).Inc()
}

// External API call metrics
func (m *Metrics) RecordExternalAPICall(api, status string, duration time.Duration) {
	m.ExternalAPICalls.WithLabelValues(api, status).Inc()
	m.ExternalAPIDuration.WithLabelValues(api).Observe(duration.Seconds())
}

// External API failure metrics
func (m *Metrics) RecordExternalAPIFailure(api, errorType string) {
	m.ExternalAPIFailures.WithLabelValues(api, errorType).Inc()
}

// Sink export metrics
func (m *Metrics) RecordExport(count int) {
	m.ReportsExported.Add(float64(count))
}

// Sink export failure metrics
func (m *Metrics) RecordExportFailure() {
	m.ExportFailures.Inc()
}

// Ingestion jobs in progress counter
func (m *Metrics) IncIngestJobsInProgress() {
	m.IngestJobsInProgress.Inc()
}

// Ingestion jobs in progress counter
func (m *Metrics) DecIngestJobsInProgress() {
	m.IngestJobsInProgress.Dec()
}

// HTTP requests in flight counter
func (m *Metrics) IncHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Inc()
}

// HTTP requests in flight counter
func (m *Metrics) DecHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Dec()
}
