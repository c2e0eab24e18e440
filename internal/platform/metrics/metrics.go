// Package metrics holds the Prometheus instrumentation for marquee
//
// Metrics exposed:
//
//	marquee_http_requests_total            counter: requests by method, route and status
//	marquee_http_request_duration_seconds  histogram: latency by method and route
//	marquee_catalog_requests_total         counter: outbound catalog calls by endpoint and status class
//	marquee_catalog_request_duration_seconds histogram: outbound latency by endpoint
//	marquee_listings_open                  gauge: live listing sessions
//	marquee_listing_fetches_total          counter: page fetches by source and result
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "marquee"

// Set is one registration of every marquee metric
type Set struct {
	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
	CatalogRequests *prometheus.CounterVec
	CatalogDuration *prometheus.HistogramVec
	ListingsOpen    prometheus.Gauge
	ListingFetches  *prometheus.CounterVec
}

// New registers a fresh Set with reg. Registering twice on one registry panics
func New(reg prometheus.Registerer) *Set {
	f := promauto.With(reg)
	return &Set{
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests handled.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		CatalogRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_requests_total",
			Help:      "Outbound catalog API requests.",
		}, []string{"endpoint", "class"}),
		CatalogDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "catalog_request_duration_seconds",
			Help:      "Outbound catalog API latency in seconds.",
			Buckets:   []float64{.025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"endpoint"}),
		ListingsOpen: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "listings_open",
			Help:      "Listing sessions currently held in memory.",
		}),
		ListingFetches: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "listing_fetches_total",
			Help:      "Listing page fetches by source and result.",
		}, []string{"source", "result"}),
	}
}

var (
	defOnce sync.Once
	def     *Set
)

// Default returns the Set registered on the process wide default registerer
func Default() *Set {
	defOnce.Do(func() { def = New(prometheus.DefaultRegisterer) })
	return def
}

// Handler returns the scrape handler for the default gatherer
func Handler() http.Handler { return promhttp.Handler() }

// HandlerFor returns a scrape handler for a specific gatherer
func HandlerFor(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// StatusClass buckets a status code: 0 means the transport failed
func StatusClass(code int) string {
	switch {
	case code <= 0:
		return "error"
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

// ObserveCatalog records one outbound catalog call
func (s *Set) ObserveCatalog(endpoint string, status int, took time.Duration) {
	if s == nil {
		return
	}
	s.CatalogRequests.WithLabelValues(endpoint, StatusClass(status)).Inc()
	s.CatalogDuration.WithLabelValues(endpoint).Observe(took.Seconds())
}

// Middleware records request counts and latency labelled by the chi route
// pattern, unmatched requests are labelled "unmatched"
func (s *Set) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		s.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(rw.status)).Inc()
		s.HTTPDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Unwrap lets http.ResponseController reach the underlying writer
func (w *statusWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
