package observability

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "upahan", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "upahan", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	ReportComputations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "upahan", Name: "analytics_reports_total", Help: "Computed barangay reports."},
		[]string{"status"}, // status: ok|degraded
	)
	ReportDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "upahan", Name: "analytics_compute_duration_seconds",
			Help:    "Barangay report computation duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
	)
	DataQualityEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "upahan", Name: "data_quality_events_total", Help: "Missing or malformed record fields seen while decoding."},
		[]string{"collection", "field"},
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "upahan", Name: "cache_events_total", Help: "Cache hits/misses/sets/dels."},
		[]string{"cache", "event"}, // event: hit|miss|set|del
	)
)

func Serve() {
	addr := os.Getenv("METRICS_ADDR")
	if addr == "" {
		return // disabled
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, ReportComputations, ReportDuration, DataQualityEvents, CacheEvents)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveReport(status string, dur time.Duration) { // status: ok|degraded
	ReportComputations.WithLabelValues(status).Inc()
	ReportDuration.Observe(dur.Seconds())
}

func ObserveDataQuality(collection, field string) {
	DataQualityEvents.WithLabelValues(collection, field).Inc()
}

func ObserveCache(cache, event string) { // event: hit|miss|set|del
	CacheEvents.WithLabelValues(cache, event).Inc()
}
