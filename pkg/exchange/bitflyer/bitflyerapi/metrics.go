package bitflyerapi

import (
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	errorKindTimeout         = "timeout"
	errorKindErrorResponse   = "error_response"
	errorKindInvalidResponse = "invalid_response"
)

var latencyMetrics = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "bitflyer_api_latency_ms",
		Help:    "The histogram of latency returned by bitFlyer API",
		Buckets: prometheus.ExponentialBuckets(20, 2, 9), // 20ms to 5120ms
	},
	[]string{"path", "status_code"},
)

var errorMetrics = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "bitflyer_api_errors_total",
		Help: "The number of failed bitFlyer API calls by kind",
	},
	[]string{"path", "kind"},
)

func recordLatencyMetrics(path string, statusCode int, latency time.Duration) {
	latencyMetrics.With(prometheus.Labels{
		"path":        path,
		"status_code": strconv.Itoa(statusCode),
	}).Observe(float64(latency.Milliseconds()))
}

func recordErrorMetrics(path, kind string) {
	errorMetrics.With(prometheus.Labels{
		"path": stripQuery(path),
		"kind": kind,
	}).Inc()
}

func stripQuery(path string) string {
	path, _, _ = strings.Cut(path, "?")
	return path
}
