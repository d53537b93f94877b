package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bitsctl",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"node", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bitsctl",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"node", "method", "path", "status"},
	)
	decodeTransmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bitsctl",
			Subsystem: "decode",
			Name:      "transmissions_total",
			Help:      "Decoded BITS transmissions by source and outcome.",
		},
		[]string{"source", "outcome"},
	)
	decodeBits = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bitsctl",
			Subsystem: "decode",
			Name:      "bits_consumed",
			Help:      "Bits consumed by the root packet of successful decodes.",
			Buckets:   prometheus.ExponentialBuckets(16, 4, 8),
		},
		[]string{"source"},
	)
	decodeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bitsctl",
			Subsystem: "decode",
			Name:      "duration_seconds",
			Help:      "Decode and reduce duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"source", "outcome"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, decodeTransmissions, decodeBits, decodeDuration)
	})
}

func RecordHTTPRequest(node, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(node, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(node, method, path, statusLabel).Observe(duration.Seconds())
}

// RecordDecode counts one transmission. outcome is "ok" or an error kind.
func RecordDecode(source, outcome string, consumed int, duration time.Duration) {
	RegisterMetrics()
	decodeTransmissions.WithLabelValues(source, outcome).Inc()
	decodeDuration.WithLabelValues(source, outcome).Observe(duration.Seconds())
	if outcome == "ok" {
		decodeBits.WithLabelValues(source).Observe(float64(consumed))
	}
}
