package server

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"relevancer/internal/config"
	"relevancer/internal/errors"
)

// LimiterManager hands out token-bucket limiters per client key and evicts
// idle ones in the background.
type LimiterManager struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	cfg      config.RateLimitConfig
	logger   *errors.Logger
	done     chan struct{}
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLimiterManager creates a manager and starts its cleanup loop.
func NewLimiterManager(cfg config.RateLimitConfig, logger *errors.Logger) *LimiterManager {
	m := &LimiterManager{
		limiters: make(map[string]*limiterEntry),
		cfg:      cfg,
		logger:   logger,
		done:     make(chan struct{}),
	}
	go m.cleanupLoop()
	return m
}

// Allow reports whether the client identified by key may proceed.
func (m *LimiterManager) Allow(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.limiters[key]
	if !ok {
		perSecond := rate.Limit(float64(m.cfg.RequestsPerMinute) / 60.0)
		entry = &limiterEntry{limiter: rate.NewLimiter(perSecond, m.cfg.BurstCapacity)}
		m.limiters[key] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter.Allow()
}

// Stats reports the number of tracked clients.
func (m *LimiterManager) Stats() map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return map[string]any{
		"tracked_clients":     len(m.limiters),
		"requests_per_minute": m.cfg.RequestsPerMinute,
		"burst_capacity":      m.cfg.BurstCapacity,
	}
}

// Stop terminates the cleanup loop.
func (m *LimiterManager) Stop() {
	close(m.done)
}

func (m *LimiterManager) cleanupLoop() {
	interval := m.cfg.CleanupInterval
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.cleanup(interval)
		}
	}
}

func (m *LimiterManager) cleanup(maxIdle time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxIdle)
	removed := 0
	for key, entry := range m.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(m.limiters, key)
			removed++
		}
	}
	if removed > 0 && m.logger != nil {
		m.logger.Debug("Rate limiter cleanup", "removed", removed, "remaining", len(m.limiters))
	}
}

// clientKey picks the rate-limiting identity for a request: the API key
// when configured and present, the client IP otherwise.
func (m *LimiterManager) clientKey(r *http.Request) (string, string) {
	if m.cfg.ByAPIKey {
		if key := requestAPIKey(r); key != "" {
			return "key:" + key, "api_key"
		}
	}
	return "ip:" + clientIP(r), "ip"
}

func requestAPIKey(r *http.Request) string {
	if key := r.Header.Get("X-API-Key"); key != "" {
		return key
	}
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// rateLimitMiddleware rejects requests exceeding the client's budget.
func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key, scope := s.limiter.clientKey(r)
		if !s.limiter.Allow(key) {
			if s.obs != nil {
				s.obs.RecordRateLimitHit(r.Context(), scope)
			}
			if s.logger != nil {
				s.logger.Warn("Request rate limited", "scope", scope, "path", r.URL.Path)
			}
			w.Header().Set("Retry-After", "60")
			writeErrorResponse(w, http.StatusTooManyRequests, "RATE_LIMITED", "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}
