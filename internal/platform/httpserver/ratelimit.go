package httpserver

import (
	"sync"

	"golang.org/x/time/rate"
)

// claimLimiter throttles claim submissions per account address. This is
// transport-level abuse control; the single-claim rule itself lives in the
// ledger domain.
type claimLimiter struct {
	limiters     map[string]*rate.Limiter
	mu           sync.RWMutex
	defaultRate  rate.Limit
	defaultBurst int
}

func newClaimLimiter(requestsPerSecond float64, burst int) *claimLimiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}
	if burst <= 0 {
		burst = 3
	}
	return &claimLimiter{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  rate.Limit(requestsPerSecond),
		defaultBurst: burst,
	}
}

// Allow checks if a request is allowed without waiting.
func (l *claimLimiter) Allow(account string) bool {
	return l.getLimiter(account).Allow()
}

func (l *claimLimiter) getLimiter(account string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[account]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists := l.limiters[account]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.limiters[account] = limiter

	return limiter
}
