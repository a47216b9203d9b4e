package zohoclient

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "zoho_books_requests_total",
			Help: "Requests sent to the Zoho Books API by resource, method and status.",
		}, []string{"resource", "method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "zoho_books_request_duration_seconds",
			Help:    "Latency of Zoho Books API requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"resource", "method"}),
	}
	if reg == nil {
		return m
	}
	m.requests = register(reg, m.requests)
	m.duration = register(reg, m.duration)
	return m
}

// register returns the collector already registered under the same name, so
// several clients in one process share their series.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
	}
	return c
}

func (m *metrics) observe(resource, method string, status int, started time.Time) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.requests.WithLabelValues(resource, method, label).Inc()
	m.duration.WithLabelValues(resource, method).Observe(time.Since(started).Seconds())
}

// resourceOf keeps the first path segment: "salesorders/123/status/void" -> "salesorders".
func resourceOf(path string) string {
	path = strings.Trim(path, "/")
	resource, _, _ := strings.Cut(path, "/")
	return resource
}
