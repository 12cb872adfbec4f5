package kafka

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricsOnce sync.Once

	publishedTotal *prometheus.CounterVec
	publishedBytes *prometheus.CounterVec
	publishLatency *prometheus.HistogramVec

	consumedTotal *prometheus.CounterVec
	handleLatency *prometheus.HistogramVec
	queueDepth    *prometheus.GaugeVec
)

func initMetrics() {
	metricsOnce.Do(func() {
		publishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sajupulse_kafka_published_total",
			Help: "Messages written to Kafka by result",
		}, []string{"topic", "result"})
		publishedBytes = promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sajupulse_kafka_published_bytes_total",
			Help: "Payload bytes written to Kafka",
		}, []string{"topic"})
		publishLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sajupulse_kafka_publish_seconds",
			Help:    "Time spent writing one message",
			Buckets: prometheus.DefBuckets,
		}, []string{"topic"})

		consumedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sajupulse_kafka_consumed_total",
			Help: "Messages handled by outcome (ok, dead_letter, failed, skipped)",
		}, []string{"topic", "outcome"})
		handleLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sajupulse_kafka_handle_seconds",
			Help:    "Time from dispatch to commit, retries included",
			Buckets: []float64{.01, .05, .1, .5, 1, 2.5, 5, 10, 30},
		}, []string{"topic"})
		queueDepth = promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "sajupulse_kafka_queue_depth",
			Help: "Fetched messages waiting for a worker",
		}, []string{"topic"})
	})
}

func observePublish(topic string, size int, took time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	publishedTotal.WithLabelValues(topic, result).Inc()
	publishedBytes.WithLabelValues(topic).Add(float64(size))
	publishLatency.WithLabelValues(topic).Observe(took.Seconds())
}

func observeHandled(topic, outcome string, took time.Duration) {
	consumedTotal.WithLabelValues(topic, outcome).Inc()
	handleLatency.WithLabelValues(topic).Observe(took.Seconds())
}
