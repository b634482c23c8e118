// Package metrics exports Prometheus metrics for rendered Results and the
// HTTP requests that produced them.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "webresult"

// Collector owns a registry and the metrics registered on it. It satisfies
// httpresult.Observer.
type Collector struct {
	registry *prometheus.Registry

	results        *prometheus.CounterVec
	errorObjects   *prometheus.CounterVec
	encodeFailures prometheus.Counter
	requests       *prometheus.CounterVec
	duration       *prometheus.HistogramVec
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		results: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "results_total",
			Help:      "Rendered results by outcome and HTTP status.",
		}, []string{"outcome", "status"}),
		errorObjects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "error_objects_total",
			Help:      "Error objects rendered, by the response status.",
		}, []string{"status"}),
		encodeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "encode_failures_total",
			Help:      "Results that could not be encoded and got the fallback body.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	c.registry.MustRegister(c.results, c.errorObjects, c.encodeFailures, c.requests, c.duration)
	return c
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveResult records one rendered Result. errors is 0 for success.
func (c *Collector) ObserveResult(status, errors int) {
	code := strconv.Itoa(status)
	if errors == 0 {
		c.results.WithLabelValues("ok", code).Inc()
		return
	}
	c.results.WithLabelValues("failure", code).Inc()
	c.errorObjects.WithLabelValues(code).Add(float64(errors))
}

func (c *Collector) ObserveEncodeFailure() {
	c.encodeFailures.Inc()
}

// Middleware records request counts and latency. Routes are labelled with
// the chi pattern so path parameters do not explode cardinality.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(ww, r)

		route := routePattern(r)
		c.requests.WithLabelValues(r.Method, route, strconv.Itoa(ww.statusCode)).Inc()
		c.duration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
