package httpx

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var histogramBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5}

type metrics struct {
	requestTotal   *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	authRejections *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ledger",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Count of processed HTTP requests",
		}, []string{"method", "route", "code"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ledger",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency distribution of HTTP handlers",
			Buckets:   histogramBuckets,
		}, []string{"method", "route"}),
		authRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ledger",
			Subsystem: "http",
			Name:      "auth_rejections_total",
			Help:      "Requests refused by the access gateway",
		}, []string{"reason"}),
	}
	reg.MustRegister(m.requestTotal, m.requestLatency, m.authRejections)
	return m
}

func (m *metrics) observe(method, route string, status int, d time.Duration) {
	m.requestTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestLatency.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *metrics) authRejected(reason string) {
	m.authRejections.WithLabelValues(reason).Inc()
}

// withMetrics labels requests by the matched mux pattern so ids do not
// explode cardinality. The request is handed to the mux unchanged, which
// lets the mux record Pattern on it.
func (r *Router) withMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		recorder, ok := w.(*statusRecorder)
		if !ok {
			recorder = &statusRecorder{ResponseWriter: w}
		}
		start := time.Now()
		next.ServeHTTP(recorder, req)

		route := req.Pattern
		if route == "" {
			route = "unmatched"
		}
		r.metrics.observe(req.Method, route, recorder.code(), time.Since(start))
	})
}
