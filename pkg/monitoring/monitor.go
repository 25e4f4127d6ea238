package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	QuizSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_submissions_total",
			Help: "Total number of scored quiz submissions",
		},
		[]string{"technology", "level"},
	)

	QuizScores = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "quiz_score_percent",
			Help:    "Distribution of submission scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
		[]string{"technology"},
	)

	ResultWriteFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "quiz_result_write_failures_total",
			Help: "Results from quiz submissions that could not be persisted",
		},
	)
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(QuizSubmissions)
		prometheus.MustRegister(QuizScores)
		prometheus.MustRegister(ResultWriteFailures)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

// ObserveSubmission 记录一次判分
func ObserveSubmission(technology, level string, score int) {
	QuizSubmissions.WithLabelValues(technology, level).Inc()
	QuizScores.WithLabelValues(technology).Observe(float64(score))
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
