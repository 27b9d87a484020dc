package middleware

import (
	"net/http"
	"time"
)

// AccessLog пишет строку лога на каждый завершённый запрос
func AccessLog(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			duration := time.Since(start)
			if rec.status >= http.StatusInternalServerError {
				logger.Warn("%s %s - status=%d, duration_ms=%d, request_id=%s",
					r.Method, r.URL.Path, rec.status, duration.Milliseconds(), GetRequestID(r.Context()))
				return
			}
			logger.Info("%s %s - status=%d, duration_ms=%d, request_id=%s",
				r.Method, r.URL.Path, rec.status, duration.Milliseconds(), GetRequestID(r.Context()))
		})
	}
}
