package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/robertopeiro12/buscocredito-sub002/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// windowEntry counts requests of one IP inside a fixed window.
type windowEntry struct {
	count     int
	windowEnd time.Time
}

// ipLimiter is a per-IP fixed-window counter. Expired entries are purged
// by a background goroutine so IPs that never return do not leak memory.
type ipLimiter struct {
	name   string
	limit  int
	window time.Duration

	mu      sync.Mutex
	entries map[string]*windowEntry
}

const purgeInterval = 5 * time.Minute

func newIPLimiter(name string, limit int, window time.Duration) *ipLimiter {
	l := &ipLimiter{name: name, limit: limit, window: window, entries: make(map[string]*windowEntry)}
	go l.purgeLoop()
	return l
}

// allow records a hit and reports whether it is within the limit, plus the
// end of the current window.
func (l *ipLimiter) allow(ip string, now time.Time) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[ip]
	if !ok || now.After(e.windowEnd) {
		e = &windowEntry{windowEnd: now.Add(l.window)}
		l.entries[ip] = e
	}
	e.count++
	return e.count <= l.limit, e.windowEnd
}

func (l *ipLimiter) purgeLoop() {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()
	for now := range ticker.C {
		l.mu.Lock()
		purged := 0
		for ip, e := range l.entries {
			if now.After(e.windowEnd) {
				delete(l.entries, ip)
				purged++
			}
		}
		remaining := len(l.entries)
		l.mu.Unlock()

		if purged > 0 {
			log.Debug().Str("limiter", l.name).Int("purged", purged).Int("remaining", remaining).Msg("rate limiter purged")
		}
	}
}

func (l *ipLimiter) middleware(msg string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, windowEnd := l.allow(c.ClientIP(), time.Now())
		if !ok {
			c.Header("Retry-After", windowEnd.UTC().Format(http.TimeFormat))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(http.StatusTooManyRequests, msg))
			return
		}
		c.Next()
	}
}

// RateLimiter limits every request per IP.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return newIPLimiter("api", limit, window).
		middleware("Demasiadas solicitudes. Intente nuevamente en un momento.")
}

// SensitiveRateLimiter protects login, registration and token validation
// against credential and token guessing: 20 attempts per minute per IP.
func SensitiveRateLimiter() gin.HandlerFunc {
	return newIPLimiter("sensitive", 20, time.Minute).
		middleware("Demasiados intentos. Intente en 1 minuto.")
}
