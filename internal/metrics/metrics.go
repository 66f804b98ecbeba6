package metrics

import (
	"regexp"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// LoginsTotal counts login attempts by result (success, bad_credentials, captcha_failed, error).
	LoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "expense_tracker_logins_total",
			Help: "Total number of login attempts by result",
		},
		[]string{"result"},
	)

	// RegistrationsTotal counts successful user registrations.
	RegistrationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "expense_tracker_registrations_total",
			Help: "Total number of successful registrations",
		},
	)

	// UsersTotal is the current number of registered users (refreshed by the stats collector).
	UsersTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "expense_tracker_users",
			Help: "Number of registered users",
		},
	)

	// ExpensesTotal is the current number of stored expenses (refreshed by the stats collector).
	ExpensesTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "expense_tracker_expenses",
			Help: "Number of stored expenses",
		},
	)
)

var numericPathSegment = regexp.MustCompile(`/[0-9]+(/|$)`)

func init() {
	prometheus.MustRegister(RequestDuration, RequestTotal, LoginsTotal, RegistrationsTotal, UsersTotal, ExpensesTotal)
}

// NormalizePath reduces cardinality by replacing numeric path segments with {id}.
// E.g. /expenses/123 -> /expenses/{id}.
func NormalizePath(path string) string {
	return numericPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records duration and count for an HTTP request. Call from middleware with method, path, statusCode, duration.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// RecordLogin increments the login counter for the given result
// (success, bad_credentials, captcha_failed, error).
func RecordLogin(result string) {
	LoginsTotal.WithLabelValues(result).Inc()
}

// RecordRegistration increments the registration counter.
func RecordRegistration() {
	RegistrationsTotal.Inc()
}

// SetUsersTotal updates the registered users gauge.
func SetUsersTotal(n int) {
	UsersTotal.Set(float64(n))
}

// SetExpensesTotal updates the stored expenses gauge.
func SetExpensesTotal(n int) {
	ExpensesTotal.Set(float64(n))
}
