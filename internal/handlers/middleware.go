package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gestionempl",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of dashboard requests broken down by route and status code.",
	}, []string{"route", "code"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "gestionempl",
		Subsystem: "http",
		Name:      "latency_seconds",
		Help:      "Latency distribution for dashboard requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})
)

const requestIDHeader = "X-Request-ID"

type loggerKey struct{}

// logger returns the request-scoped entry set by the middleware.
func logger(ctx context.Context) logrus.FieldLogger {
	if l, ok := ctx.Value(loggerKey{}).(logrus.FieldLogger); ok {
		return l
	}
	return logrus.StandardLogger()
}

type statusRecordingResponseWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusRecordingResponseWriter) WriteHeader(status int) {
	if w.wroteHeader {
		return
	}
	w.status = status
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusRecordingResponseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *statusRecordingResponseWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// observe tags the request with an id, logs it once it completes and records
// it in the route metrics.
func (h *Handler) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		entry := h.log.WithField("request_id", id)
		req := r.WithContext(context.WithValue(r.Context(), loggerKey{}, logrus.FieldLogger(entry)))
		rec := &statusRecordingResponseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, req)

		elapsed := time.Since(start)
		route := req.Pattern
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		httpLatency.WithLabelValues(route).Observe(elapsed.Seconds())

		entry.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"route":    route,
			"status":   rec.status,
			"duration": elapsed.String(),
		}).Info("request")
	})
}
