package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	limiterIdleTTL  = 10 * time.Minute
	limiterSweepGap = time.Minute
)

// clientLimiters tracks one rate limiter per client IP and drops
// entries that stay idle, so the map stays bounded on public routes.
type clientLimiters struct {
	mu      sync.Mutex
	rps     rate.Limit
	burst   int
	clients map[string]*clientLimiter
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newClientLimiters(rps rate.Limit, burst int) *clientLimiters {
	return &clientLimiters{
		rps:     rps,
		burst:   burst,
		clients: make(map[string]*clientLimiter),
	}
}

func (cl *clientLimiters) get(ip string) *rate.Limiter {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	c, ok := cl.clients[ip]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(cl.rps, cl.burst)}
		cl.clients[ip] = c
	}
	c.lastSeen = time.Now()
	return c.limiter
}

// purgeIdle removes entries last seen before cutoff.
func (cl *clientLimiters) purgeIdle(cutoff time.Time) {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	for ip, c := range cl.clients {
		if c.lastSeen.Before(cutoff) {
			delete(cl.clients, ip)
		}
	}
}

func (cl *clientLimiters) size() int {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return len(cl.clients)
}

// RateLimit throttles requests per client IP. Used on the auth endpoints
// to slow down confirmation-code guessing and mail flooding.
func RateLimit(rps rate.Limit, burst int) gin.HandlerFunc {
	limiters := newClientLimiters(rps, burst)

	go func() {
		ticker := time.NewTicker(limiterSweepGap)
		defer ticker.Stop()
		for range ticker.C {
			limiters.purgeIdle(time.Now().Add(-limiterIdleTTL))
		}
	}()

	return func(c *gin.Context) {
		if !limiters.get(c.ClientIP()).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"detail": "too many requests"})
			c.Abort()
			return
		}
		c.Next()
	}
}
