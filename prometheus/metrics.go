package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counter metrics
var (
	// Toggle counter by direction
	ToggleCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_tenant_toggles_total",
			Help: "Total number of tenant block/unblock toggles",
		},
		[]string{"action"}, // action is "blocked" or "unblocked"
	)

	// Tenant operation counter
	TenantOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_tenant_operations_total",
			Help: "Total number of tenant operations",
		},
		[]string{"operation"}, // operation can be "list", "export", "toggle", etc.
	)

	// Contact operation counter
	ContactOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_contact_operations_total",
			Help: "Total number of contact info operations",
		},
		[]string{"operation"}, // operation can be "read", "create", "update"
	)

	// Export counter by format
	ExportCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_exports_total",
			Help: "Total number of export files generated",
		},
		[]string{"format"}, // format is "xlsx" or "csv"
	)

	// HTTP request counter by endpoint and status
	HTTPRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_http_requests_total",
			Help: "Total number of HTTP requests by endpoint and status",
		},
		[]string{"endpoint", "method", "status"},
	)

	// Error counters
	AdminErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_errors_total",
			Help: "Total number of admin service errors",
		},
		[]string{"type"}, // type can be "tenant_not_found", "approval_pending", "db_error" etc.
	)
)

// Histogram metrics
var (
	// Request duration
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "admin_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	// Database operation duration
	DBOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "admin_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // operation can be "query", "insert", "update", "delete"
	)
)

// Gauge metrics
var (
	// System info
	InfoGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "admin_info",
			Help: "Information about the admin service",
		},
		[]string{"version"},
	)

	// Active tenants
	ActiveTenantsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "admin_active_tenants",
			Help: "Number of currently active tenants",
		},
	)
)

func init() {
	// Register counters
	prometheus.MustRegister(ToggleCounter)
	prometheus.MustRegister(TenantOperationCounter)
	prometheus.MustRegister(ContactOperationCounter)
	prometheus.MustRegister(ExportCounter)
	prometheus.MustRegister(HTTPRequestCounter)
	prometheus.MustRegister(AdminErrorCounter)

	// Register histograms
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(DBOperationDuration)

	// Register gauges
	prometheus.MustRegister(InfoGauge)
	prometheus.MustRegister(ActiveTenantsGauge)

	// Set initial service info
	InfoGauge.With(prometheus.Labels{"version": "1.0.0"}).Set(1)
}

// RecordAdminError increments the error counter for the given type
func RecordAdminError(errorType string) {
	AdminErrorCounter.With(prometheus.Labels{"type": errorType}).Inc()
}

// RecordTenantOperation increments the tenant operation counter
func RecordTenantOperation(operation string) {
	TenantOperationCounter.With(prometheus.Labels{"operation": operation}).Inc()
}

// RecordContactOperation increments the contact operation counter
func RecordContactOperation(operation string) {
	ContactOperationCounter.With(prometheus.Labels{"operation": operation}).Inc()
}

// GetPrometheusHandler returns an HTTP handler for the Prometheus metrics
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}

// TrackDBOperation measures database operation durations
func TrackDBOperation(operation string) func(time.Time) {
	startTime := time.Now()
	return func(endTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DBOperationDuration.With(prometheus.Labels{
			"operation": operation,
		}).Observe(duration)
	}
}

// MetricsMiddleware creates a middleware function that captures metrics for each request
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			// Execute the request handler
			err := next(c)

			// Record request duration
			duration := time.Since(start).Seconds()
			status := strconv.Itoa(c.Response().Status)
			endpoint := c.Path()
			method := c.Request().Method

			HTTPRequestCounter.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Inc()

			RequestDuration.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Observe(duration)

			return err
		}
	}
}
