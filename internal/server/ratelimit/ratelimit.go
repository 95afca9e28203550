// Package ratelimit throttles requests per client and endpoint with token buckets.
package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Rule limits one method and path prefix. A path ending in "/" matches everything below it.
type Rule struct {
	Method string
	Path   string
	// Limit is requests per Window. Zero or less is unlimited.
	Limit  int
	Window time.Duration
	// Burst defaults to Limit.
	Burst int
}

func (r Rule) matches(method, path string) bool {
	if r.Method != method {
		return false
	}
	if strings.HasSuffix(r.Path, "/") {
		return strings.HasPrefix(path, r.Path)
	}
	return r.Path == path
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled   bool
	Default   Rule
	Rules     []Rule
	Whitelist map[string]bool
	// IdleTTL is how long an unused client bucket is kept.
	IdleTTL time.Duration
}

// DefaultRules are tightest on analysis creation, which may fetch and render remote pages.
func DefaultRules() []Rule {
	return []Rule{
		{Method: "GET", Path: "/health"},
		{Method: "GET", Path: "/metrics"},
		{Method: "POST", Path: "/analyses", Limit: 30, Window: time.Minute, Burst: 5},
		{Method: "POST", Path: "/analyses/stream", Limit: 30, Window: time.Minute, Burst: 5},
		{Method: "PATCH", Path: "/analyses/", Limit: 120, Window: time.Minute, Burst: 20},
		{Method: "DELETE", Path: "/analyses", Limit: 10, Window: time.Minute, Burst: 2},
	}
}

// LoadConfig reads RATE_LIMIT_* environment variables over the defaults.
func LoadConfig() *Config {
	return &Config{
		Enabled: envBool("RATE_LIMIT_ENABLED", true),
		Default: Rule{
			Limit:  envInt("RATE_LIMIT_DEFAULT_LIMIT", 600),
			Window: envDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		},
		Rules:     DefaultRules(),
		Whitelist: parseList(os.Getenv("RATE_LIMIT_WHITELIST")),
		IdleTTL:   envDuration("RATE_LIMIT_IDLE_TTL", time.Hour),
	}
}

// Decision is the outcome for one request.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

type bucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// Limiter keeps one bucket per client, method and rule.
type Limiter struct {
	cfg     Config
	mu      sync.Mutex
	buckets map[string]*bucket
	swept   time.Time
	now     func() time.Time
}

// NewLimiter creates a limiter. A nil config disables limiting.
func NewLimiter(cfg *Config) *Limiter {
	if cfg == nil {
		cfg = &Config{}
	}
	l := &Limiter{cfg: *cfg, buckets: make(map[string]*bucket), now: time.Now}
	if l.cfg.IdleTTL <= 0 {
		l.cfg.IdleTTL = time.Hour
	}
	return l
}

func (l *Limiter) match(method, path string) Rule {
	for _, r := range l.cfg.Rules {
		if r.matches(method, path) {
			return r
		}
	}
	return l.cfg.Default
}

// Allow consumes a token for clientID on method and path.
func (l *Limiter) Allow(clientID, method, path string) Decision {
	if !l.cfg.Enabled || l.cfg.Whitelist[clientID] {
		return Decision{Allowed: true}
	}
	rule := l.match(method, path)
	if rule.Limit <= 0 || rule.Window <= 0 {
		return Decision{Allowed: true}
	}

	now := l.now()
	key := clientID + " " + method + " " + rule.Path

	l.mu.Lock()
	b, ok := l.buckets[key]
	if !ok {
		burst := rule.Burst
		if burst <= 0 {
			burst = rule.Limit
		}
		b = &bucket{lim: rate.NewLimiter(rate.Every(rule.Window/time.Duration(rule.Limit)), burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now
	l.sweep(now)
	l.mu.Unlock()

	res := b.lim.ReserveN(now, 1)
	d := Decision{Limit: rule.Limit}
	if delay := res.DelayFrom(now); delay > 0 {
		res.CancelAt(now)
		d.RetryAfter = delay
		return d
	}
	d.Allowed = true
	d.Remaining = int(b.lim.TokensAt(now))
	return d
}

// sweep drops idle buckets at most once a minute. Callers hold l.mu.
func (l *Limiter) sweep(now time.Time) {
	if now.Sub(l.swept) < time.Minute {
		return
	}
	l.swept = now
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) > l.cfg.IdleTTL {
			delete(l.buckets, key)
		}
	}
}

func envBool(key string, def bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func parseList(list string) map[string]bool {
	out := make(map[string]bool)
	for _, item := range strings.Split(list, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out[item] = true
		}
	}
	return out
}
