package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/manumorante/whats-next/pkg/observability"
)

const (
	headerRequestID     = "X-Request-ID"
	headerCorrelationID = "X-Correlation-ID"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withRequestContext tags each request with request and correlation IDs,
// echoes the request ID back, and logs and counts the request.
func (s *Server) withRequestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ctx := observability.NewRequestContext(r.Context(), r.Header.Get(headerCorrelationID))
		if id := r.Header.Get(headerRequestID); id != "" {
			ctx = observability.WithRequestID(ctx, id)
		}
		r = r.WithContext(ctx)
		w.Header().Set(headerRequestID, observability.RequestIDFromContext(ctx))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		duration := time.Since(start)
		s.metrics.Counter(observability.MetricHTTPRequests, 1,
			observability.T("route", route),
			observability.T(observability.StatusKey, strconv.Itoa(rec.status)),
		)
		s.logger.DebugContext(ctx, "request served",
			"method", r.Method,
			"route", route,
			observability.StatusKey, rec.status,
			observability.DurationKey, duration.Milliseconds(),
		)
	})
}
