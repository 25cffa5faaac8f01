package demo

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const limiterIdle = 5 * time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimit allows rps requests per second per client IP with the given
// burst, answering 429 with a Retry-After header beyond it.
func rateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	var (
		mu          sync.Mutex
		limiters    = map[string]*limiterEntry{}
		lastCleanup time.Time
	)
	retryAfter := strconv.FormatFloat(max(1, 1/rps), 'f', 0, 64)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				key = r.RemoteAddr
			}

			mu.Lock()
			now := time.Now()
			if now.Sub(lastCleanup) >= time.Minute {
				for k, e := range limiters {
					if now.Sub(e.lastSeen) > limiterIdle {
						delete(limiters, k)
					}
				}
				lastCleanup = now
			}
			entry, ok := limiters[key]
			if !ok {
				entry = &limiterEntry{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
				limiters[key] = entry
			}
			entry.lastSeen = now
			mu.Unlock()

			if !entry.limiter.Allow() {
				w.Header().Set("Retry-After", retryAfter)
				writeJSON(w, http.StatusTooManyRequests, Message{Message: http.StatusText(http.StatusTooManyRequests)})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
