package metrics

import (
    "sync"
    "time"

    "github.com/prometheus/client_golang/prometheus"
)

var (
    once sync.Once

    APILatency = prometheus.NewHistogramVec(
        prometheus.HistogramOpts{
            Namespace: "sajupulse",
            Subsystem: "api",
            Name:      "latency_seconds",
            Help:      "Latency of engine API endpoints",
            Buckets:   prometheus.DefBuckets,
        },
        []string{"endpoint"},
    )

    APIErrors = prometheus.NewCounterVec(
        prometheus.CounterOpts{
            Namespace: "sajupulse",
            Subsystem: "api",
            Name:      "errors_total",
            Help:      "Errors by engine API endpoint and kind",
        },
        []string{"endpoint", "kind"},
    )

    CacheLookups = prometheus.NewCounterVec(
        prometheus.CounterOpts{
            Namespace: "sajupulse",
            Subsystem: "api",
            Name:      "cache_lookups_total",
            Help:      "Report cache lookups by endpoint and result",
        },
        []string{"endpoint", "result"},
    )
)

func Register() {
    once.Do(func() {
        prometheus.MustRegister(APILatency, APIErrors, CacheLookups)
    })
}

// Observe records the latency of one endpoint call since start.
func Observe(endpoint string, start time.Time) {
    APILatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

// Fail counts an endpoint error of the given kind ("validation", "internal", ...).
func Fail(endpoint, kind string) {
    APIErrors.WithLabelValues(endpoint, kind).Inc()
}

// CacheResult counts a cache hit or miss.
func CacheResult(endpoint string, hit bool) {
    result := "miss"
    if hit {
        result = "hit"
    }
    CacheLookups.WithLabelValues(endpoint, result).Inc()
}
