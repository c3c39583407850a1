package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metricsRegistry owns the request-count and request-duration metrics the
// service exposes at /metrics, grounded on the teacher's own
// infrastructure/monitoring/prometheus collector (a dedicated registry
// rather than the global default, so tests can construct their own without
// interfering with a package-level registry).
type metricsRegistry struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func newMetricsRegistry() *metricsRegistry {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "analytics_engine",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests processed, labeled by route, method, and status.",
	}, []string{"route", "method", "status"})

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "analytics_engine",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency in seconds, labeled by route and method.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	registry.MustRegister(requestsTotal, requestDuration)

	return &metricsRegistry{registry: registry, requestsTotal: requestsTotal, requestDuration: requestDuration}
}

func (m *metricsRegistry) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// middleware records request count and latency for every request. The route
// label uses gin's matched route template (c.FullPath()), not the raw path,
// so path parameters don't explode cardinality.
func (m *metricsRegistry) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		m.requestsTotal.WithLabelValues(route, c.Request.Method, status).Inc()
		m.requestDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
