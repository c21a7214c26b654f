package api

import (
	"net/http"

	"golang.org/x/time/rate"
)

// rateLimiter is satisfied by *rate.Limiter.
type rateLimiter interface {
	Allow() bool
}

var _ rateLimiter = (*rate.Limiter)(nil)

func newTokenBucketLimiter(perSecond float64, burst int) *rate.Limiter {
	if perSecond <= 0 {
		perSecond = 1
	}
	return rate.NewLimiter(rate.Limit(perSecond), max(burst, 1))
}

func rateLimitMiddleware(limiter rateLimiter, next http.Handler) http.Handler {
	if limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "Too many requests", "rate limit exceeded, please retry shortly")
			return
		}
		next.ServeHTTP(w, r)
	})
}
