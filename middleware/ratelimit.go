package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cyphera/cyphera-autotax/constants"
	"github.com/cyphera/cyphera-autotax/types/api/responses"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	limiterCleanupInterval = 5 * time.Minute
	limiterIdleTimeout     = 10 * time.Minute
)

// RateLimiter keeps one token bucket per client and forgets clients that
// have been idle for limiterIdleTimeout.
type RateLimiter struct {
	rps   int
	burst int

	mu      sync.Mutex
	buckets map[string]*clientBucket

	stop     chan struct{}
	stopOnce sync.Once
}

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter allows rps requests per second per client with the given
// burst. It starts a cleanup goroutine; call Stop when done.
func NewRateLimiter(rps, burst int) *RateLimiter {
	rl := &RateLimiter{
		rps:     rps,
		burst:   burst,
		buckets: make(map[string]*clientBucket),
		stop:    make(chan struct{}),
	}
	go rl.sweep(limiterCleanupInterval)
	return rl
}

// Stop ends the cleanup goroutine. Safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *RateLimiter) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-rl.stop:
			return
		case now := <-ticker.C:
			rl.evictIdle(now)
		}
	}
}

func (rl *RateLimiter) evictIdle(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for client, b := range rl.buckets {
		if now.Sub(b.lastSeen) > limiterIdleTimeout {
			delete(rl.buckets, client)
		}
	}
}

// limiterFor returns the client's bucket, creating it on first sight.
func (rl *RateLimiter) limiterFor(client string, now time.Time) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	b, ok := rl.buckets[client]
	if !ok {
		b = &clientBucket{limiter: rate.NewLimiter(rate.Limit(rl.rps), rl.burst)}
		rl.buckets[client] = b
	}
	b.lastSeen = now
	return b.limiter
}

// clientKey identifies the caller by the first X-Forwarded-For hop, which is
// what the API gateway sets, and falls back to the peer address.
func clientKey(c *gin.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if first = strings.TrimSpace(first); first != "" {
			return "ip:" + first
		}
	}
	if ip := c.ClientIP(); ip != "" {
		return "ip:" + ip
	}
	return "ip:unknown"
}

// Middleware rejects requests over the client's budget with 429. /health is
// exempt.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	limit := strconv.Itoa(rl.rps)
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/health" {
			c.Next()
			return
		}

		now := time.Now()
		client := clientKey(c)
		limiter := rl.limiterFor(client, now)

		c.Header("X-RateLimit-Limit", limit)
		c.Header("X-RateLimit-Reset", strconv.FormatInt(now.Add(time.Second).Unix(), 10))

		if !limiter.AllowN(now, 1) {
			LogWithCorrelationID(c.Request.Context()).Warn("Rate limit exceeded",
				zap.String("client_id", client),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path))
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, responses.ErrorResponse{Error: constants.RateLimitExceeded})
			return
		}

		remaining := int(limiter.TokensAt(now))
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Next()
	}
}
