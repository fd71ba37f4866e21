package gateway

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-faster/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	gatewayRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gestionempl",
		Subsystem: "gateway",
		Name:      "requests_total",
		Help:      "Total number of gateway calls broken down by operation and result.",
	}, []string{"operation", "result"})

	gatewayLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "gestionempl",
		Subsystem: "gateway",
		Name:      "latency_seconds",
		Help:      "Latency distribution for gateway calls.",
		Buckets: []float64{
			0.01, 0.02, 0.05,
			0.1, 0.2, 0.5,
			1, 2, 5, 10, 30,
		},
	}, []string{"operation", "result"})
)

func observe(op string, start time.Time, err error) {
	result := resultLabel(err)
	gatewayRequests.WithLabelValues(op, result).Inc()
	gatewayLatency.WithLabelValues(op, result).Observe(time.Since(start).Seconds())
}

func resultLabel(err error) string {
	if err == nil {
		return "2xx"
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Status >= http.StatusInternalServerError:
			return "5xx"
		case apiErr.Status >= http.StatusBadRequest:
			return "4xx"
		}
		return strconv.Itoa(apiErr.Status)
	}
	return "transport"
}
