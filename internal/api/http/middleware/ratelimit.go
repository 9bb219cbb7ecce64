package middleware

import (
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	defaultRPS   = 100
	defaultBurst = 10
)

// RateLimit ограничивает количество запросов (rate limiting)
// rps - запросов в секунду, burst - разрешает кратковременные всплески
func RateLimit(next http.Handler, rps int, burst int, log *zap.SugaredLogger) http.Handler {
	// Значения по умолчанию если не указаны
	if rps <= 0 {
		rps = defaultRPS
	}
	if burst <= 0 {
		burst = defaultBurst
	}

	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			log.Warnw("rate limit exceeded",
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
				"request_id", RequestIDFromContext(r.Context()),
			)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"detail":"Too Many Requests"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}
