package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	applogger "SajuPulse/pkg/logger"
)

type httpMetrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	size     *prometheus.HistogramVec
	inFlight prometheus.Gauge
}

var (
	httpOnce sync.Once
	httpM    httpMetrics
)

func loadHTTPMetrics() httpMetrics {
	httpOnce.Do(func() {
		httpM = httpMetrics{
			requests: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "sajupulse_http_requests_total",
				Help: "HTTP requests by route, method and status code",
			}, []string{"route", "method", "code"}),
			latency: promauto.NewHistogramVec(prometheus.HistogramOpts{
				Name:    "sajupulse_http_request_duration_seconds",
				Help:    "HTTP request latency by route and status class",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			}, []string{"route", "method", "class"}),
			size: promauto.NewHistogramVec(prometheus.HistogramOpts{
				Name:    "sajupulse_http_response_size_bytes",
				Help:    "HTTP response body size",
				Buckets: prometheus.ExponentialBuckets(256, 4, 8),
			}, []string{"route"}),
			inFlight: promauto.NewGauge(prometheus.GaugeOpts{
				Name: "sajupulse_http_in_flight_requests",
				Help: "Requests currently being served",
			}),
		}
	})
	return httpM
}

// Metrics records per-route request metrics and warns about requests slower
// than slow. Routes are labelled by their template, unmatched paths as
// "unmatched".
func Metrics(l *applogger.Logger, slow time.Duration) echo.MiddlewareFunc {
	m := loadHTTPMetrics()
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			m.inFlight.Inc()
			defer m.inFlight.Dec()
			start := time.Now()

			if err := next(c); err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method
			res := c.Response()
			took := time.Since(start)

			m.requests.WithLabelValues(route, method, strconv.Itoa(res.Status)).Inc()
			m.latency.WithLabelValues(route, method, strconv.Itoa(res.Status/100)+"xx").Observe(took.Seconds())
			m.size.WithLabelValues(route).Observe(float64(res.Size))

			if l != nil && slow > 0 && took >= slow {
				l.Warn("http request slow",
					applogger.String("route", route),
					applogger.String("method", method),
					applogger.Int("status", res.Status),
					applogger.Duration("took", took),
				)
			}
			return nil
		}
	}
}
