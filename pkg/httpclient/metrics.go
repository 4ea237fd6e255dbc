package httpclient

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestsInFlight = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_client_requests_in_flight",
			Help: "Number of outbound HTTP requests currently in flight",
		},
		[]string{"host"},
	)

	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_client_requests_total",
			Help: "Total number of outbound HTTP requests",
		},
		[]string{"method", "host", "status"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_client_request_duration_seconds",
			Help:    "Duration of outbound HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "host"},
	)
)

func init() {
	prometheus.MustRegister(requestsInFlight)
	prometheus.MustRegister(requestsTotal)
	prometheus.MustRegister(requestDuration)
}

func observeRequest(method, host string, resp *http.Response, err error, elapsed time.Duration) {
	status := "error"
	if err == nil && resp != nil {
		status = strconv.Itoa(resp.StatusCode)
	}
	requestsTotal.WithLabelValues(method, host, status).Inc()
	requestDuration.WithLabelValues(method, host).Observe(elapsed.Seconds())
}
