package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	reqTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "api_requests_total", Help: "Requests served, by route and status"},
		[]string{"path", "method", "status"},
	)
	reqDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Request latency, by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"path", "method"},
	)
	reqInflight = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "api_requests_inflight", Help: "Requests currently being handled"},
	)
)

func init() { prometheus.MustRegister(reqTotal, reqDuration, reqInflight) }

func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqInflight.Inc()
		c.Next()
		reqInflight.Dec()

		// unmatched routes keep the raw path so 404 noise stays visible
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		reqTotal.WithLabelValues(path, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		reqDuration.WithLabelValues(path, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
