package ratelimit

import (
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/feral-file/ff-nft-ledger/internal/adapter"
	"github.com/feral-file/ff-nft-ledger/internal/logger"
)

// Config holds the per-key token bucket settings
type Config struct {
	// RequestsPerSecond is the sustained rate per key; zero or less disables limiting
	RequestsPerSecond float64
	// Burst defaults to the rounded-up rate when not positive
	Burst int
	// IdleTTL is how long an unused bucket is kept, default 10m
	IdleTTL time.Duration
}

// Limiter hands out one token bucket per key (a caller account or a client IP).
// A nil Limiter allows everything.
type Limiter struct {
	config    Config
	clock     adapter.Clock
	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLimiter returns nil when the configured rate disables limiting
func NewLimiter(cfg Config, clock adapter.Clock) *Limiter {
	if cfg.RequestsPerSecond <= 0 {
		return nil
	}
	if cfg.Burst <= 0 {
		cfg.Burst = max(int(cfg.RequestsPerSecond+0.999), 1)
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 10 * time.Minute
	}

	logger.Info("Rate limiter initialized",
		zap.Float64("requests_per_second", cfg.RequestsPerSecond),
		zap.Int("burst", cfg.Burst),
	)

	return &Limiter{
		config:    cfg,
		clock:     clock,
		buckets:   make(map[string]*bucket),
		lastSweep: clock.Now(),
	}
}

// Allow takes a token from the key's bucket and reports whether one was available
func (l *Limiter) Allow(key string) bool {
	if l == nil {
		return true
	}

	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= l.config.IdleTTL {
		l.sweep(now)
	}

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(rate.Limit(l.config.RequestsPerSecond), l.config.Burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now

	return b.limiter.AllowN(now, 1)
}

// sweep drops buckets idle for longer than IdleTTL; an idle bucket is full again anyway
func (l *Limiter) sweep(now time.Time) {
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) >= l.config.IdleTTL {
			delete(l.buckets, key)
		}
	}
	l.lastSweep = now
}

// Len returns the number of live buckets
func (l *Limiter) Len() int {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
