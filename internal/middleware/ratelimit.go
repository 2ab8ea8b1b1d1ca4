package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// defaultIdleTTL is how long a client's limiter is kept after its last request.
const defaultIdleTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiterMiddleware holds a rate limiter per client address.
// Limiters of clients idle for longer than idleTTL are dropped.
type RateLimiterMiddleware struct {
	limiters map[string]*clientLimiter
	mu       sync.Mutex
	// Rate is the number of events per second.
	rate rate.Limit
	// Burst is the burst size.
	burst int
	log   logrus.FieldLogger

	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewRateLimiterMiddleware creates a new RateLimiterMiddleware.
func NewRateLimiterMiddleware(r rate.Limit, b int, log logrus.FieldLogger) *RateLimiterMiddleware {
	return &RateLimiterMiddleware{
		limiters:  make(map[string]*clientLimiter),
		rate:      r,
		burst:     b,
		log:       log,
		idleTTL:   defaultIdleTTL,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

// Middleware is the actual middleware handler.
func (rl *RateLimiterMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := clientAddr(r)

		if !rl.limiter(client).Allow() {
			rl.log.WithField("client", client).Warn("rate limit exceeded")
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiterMiddleware) limiter(client string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) >= rl.idleTTL {
		rl.sweep(now)
	}

	c, exists := rl.limiters[client]
	if !exists {
		c = &clientLimiter{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[client] = c
	}
	c.lastSeen = now
	return c.limiter
}

// sweep drops idle limiters. Callers hold rl.mu.
func (rl *RateLimiterMiddleware) sweep(now time.Time) {
	for client, c := range rl.limiters {
		if now.Sub(c.lastSeen) >= rl.idleTTL {
			delete(rl.limiters, client)
		}
	}
	rl.lastSweep = now
	rl.log.WithField("clients", len(rl.limiters)).Debug("rate limiters swept")
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
