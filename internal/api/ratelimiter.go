package api

import (
	"net/http"
	"strconv"

	"golang.org/x/time/rate"
)

// rateLimiter gates requests to the introspection endpoints. The responses
// are served from an in-memory snapshot, so the limiter only guards against
// pollers hammering the refresh path.
type rateLimiter interface {
	Allow() bool
}

type tokenBucket struct {
	bucket *rate.Limiter
}

// newTokenBucketLimiter builds a shared token bucket. Non-positive inputs are
// clamped to the smallest working limiter rather than an unlimited one; a
// fully disabled limiter is expressed as a nil rateLimiter.
func newTokenBucketLimiter(ratePerSecond float64, burst int) rateLimiter {
	if ratePerSecond <= 0 {
		ratePerSecond = 1
	}
	if burst <= 0 {
		burst = 1
	}

	return &tokenBucket{
		bucket: rate.NewLimiter(rate.Limit(ratePerSecond), burst),
	}
}

func (t *tokenBucket) Allow() bool {
	if t == nil || t.bucket == nil {
		return true
	}
	return t.bucket.Allow()
}

func rateLimitMiddleware(limiter rateLimiter, next http.Handler) http.Handler {
	if limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			w.Header().Set("Retry-After", strconv.Itoa(1))
			writeError(w, http.StatusTooManyRequests, "Too many requests",
				"request rate limit exceeded; the served configuration only changes on refresh, poll less often")
			return
		}
		next.ServeHTTP(w, r)
	})
}
