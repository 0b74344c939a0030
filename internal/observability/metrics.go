package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	usersCreatedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "exercise_tracker",
		Subsystem: "users",
		Name:      "created_total",
		Help:      "Number of users registered.",
	})
	activitiesCreatedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "exercise_tracker",
		Subsystem: "activities",
		Name:      "created_total",
		Help:      "Number of activities recorded.",
	})
	logEntriesHistogram = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "exercise_tracker",
		Subsystem: "log",
		Name:      "entries_returned",
		Help:      "Number of entries returned per log query.",
		Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 500},
	})
	eventPublishFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "exercise_tracker",
		Subsystem: "events",
		Name:      "publish_failures_total",
		Help:      "Number of activity events that could not be published.",
	})
	httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "exercise_tracker",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route and status.",
		Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
	}, []string{"method", "route", "status"})
)

func init() {
	prometheus.MustRegister(
		usersCreatedCounter,
		activitiesCreatedCounter,
		logEntriesHistogram,
		eventPublishFailures,
		httpRequestDuration,
	)
}

func RecordUserCreated() {
	usersCreatedCounter.Inc()
}

func RecordActivityCreated() {
	activitiesCreatedCounter.Inc()
}

// RecordLogQuery observes the size of a served log.
func RecordLogQuery(entries int) {
	logEntriesHistogram.Observe(float64(entries))
}

func RecordPublishFailure() {
	eventPublishFailures.Inc()
}

// ObserveHTTPRequest records latency. Route is the matched pattern, not the raw path.
func ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
