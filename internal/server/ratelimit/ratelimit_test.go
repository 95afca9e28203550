package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLimiter(rules ...Rule) (*Limiter, *time.Time) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewLimiter(&Config{
		Enabled: true,
		Default: Rule{Limit: 100, Window: time.Minute},
		Rules:   rules,
		IdleTTL: time.Hour,
	})
	l.now = func() time.Time { return now }
	return l, &now
}

func TestRule_Matches(t *testing.T) {
	tests := []struct {
		name   string
		rule   Rule
		method string
		path   string
		want   bool
	}{
		{"exact", Rule{Method: "POST", Path: "/analyses"}, "POST", "/analyses", true},
		{"exact does not match child", Rule{Method: "POST", Path: "/analyses"}, "POST", "/analyses/1", false},
		{"prefix", Rule{Method: "PATCH", Path: "/analyses/"}, "PATCH", "/analyses/1/confidence", true},
		{"method differs", Rule{Method: "POST", Path: "/analyses"}, "GET", "/analyses", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rule.matches(tt.method, tt.path))
		})
	}
}

func TestLimiter_BurstThenDeny(t *testing.T) {
	l, _ := testLimiter(Rule{Method: "POST", Path: "/analyses", Limit: 6, Window: time.Minute, Burst: 2})

	assert.True(t, l.Allow("1.2.3.4", "POST", "/analyses").Allowed)
	assert.True(t, l.Allow("1.2.3.4", "POST", "/analyses").Allowed)

	d := l.Allow("1.2.3.4", "POST", "/analyses")
	assert.False(t, d.Allowed)
	assert.Equal(t, 6, d.Limit)
	assert.Equal(t, 10*time.Second, d.RetryAfter)
}

func TestLimiter_Refill(t *testing.T) {
	l, now := testLimiter(Rule{Method: "POST", Path: "/analyses", Limit: 6, Window: time.Minute, Burst: 1})

	require.True(t, l.Allow("c", "POST", "/analyses").Allowed)
	require.False(t, l.Allow("c", "POST", "/analyses").Allowed)

	*now = now.Add(10 * time.Second)
	assert.True(t, l.Allow("c", "POST", "/analyses").Allowed)
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	l, _ := testLimiter(Rule{Method: "POST", Path: "/analyses", Limit: 1, Window: time.Minute})

	assert.True(t, l.Allow("a", "POST", "/analyses").Allowed)
	assert.False(t, l.Allow("a", "POST", "/analyses").Allowed)
	assert.True(t, l.Allow("b", "POST", "/analyses").Allowed)
}

func TestLimiter_Unlimited(t *testing.T) {
	l, _ := testLimiter(Rule{Method: "GET", Path: "/health"})
	for i := 0; i < 1000; i++ {
		require.True(t, l.Allow("a", "GET", "/health").Allowed)
	}
}

func TestLimiter_DisabledAndWhitelist(t *testing.T) {
	off := NewLimiter(&Config{Enabled: false, Default: Rule{Limit: 1, Window: time.Hour}})
	assert.True(t, off.Allow("a", "GET", "/x").Allowed)
	assert.True(t, off.Allow("a", "GET", "/x").Allowed)

	l, _ := testLimiter()
	l.cfg.Default = Rule{Limit: 1, Window: time.Hour}
	l.cfg.Whitelist = map[string]bool{"127.0.0.1": true}
	assert.True(t, l.Allow("127.0.0.1", "GET", "/x").Allowed)
	assert.True(t, l.Allow("127.0.0.1", "GET", "/x").Allowed)

	assert.True(t, NewLimiter(nil).Allow("a", "GET", "/").Allowed)
}

func TestLimiter_SweepsIdleBuckets(t *testing.T) {
	l, now := testLimiter()
	l.Allow("a", "GET", "/analyses")
	require.Len(t, l.buckets, 1)

	*now = now.Add(2 * time.Hour)
	l.Allow("b", "GET", "/analyses")
	assert.Len(t, l.buckets, 1)
	_, ok := l.buckets["b GET "]
	assert.True(t, ok)
}

func TestLimiter_Concurrent(t *testing.T) {
	l, _ := testLimiter(Rule{Method: "POST", Path: "/analyses", Limit: 50, Window: time.Minute})

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow("same", "POST", "/analyses").Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, allowed)
}

func TestParseList(t *testing.T) {
	got := parseList(" 10.0.0.1, ,127.0.0.1 ")
	assert.Equal(t, map[string]bool{"10.0.0.1": true, "127.0.0.1": true}, got)
}
