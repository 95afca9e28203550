package fetch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/jonathan/placement-readiness/internal/storage"
	"github.com/rs/zerolog"
)

// DefaultCacheTTL is how long a cached page is served without refetching.
const DefaultCacheTTL = 24 * time.Hour

const cacheKeyPrefix = "page_cache_"

type cachedPage struct {
	Page      Page      `json:"page"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Cached serves successful fetches from a storage backend until they expire.
type Cached struct {
	next    Getter
	backend storage.Backend
	ttl     time.Duration
	now     func() time.Time
	log     zerolog.Logger
}

// NewCached wraps next with a cache in backend. A non-positive ttl uses DefaultCacheTTL.
func NewCached(next Getter, backend storage.Backend, ttl time.Duration, log zerolog.Logger) *Cached {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cached{next: next, backend: backend, ttl: ttl, now: time.Now, log: log}
}

// CacheKey is the storage key used for rawURL.
func CacheKey(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	return cacheKeyPrefix + hex.EncodeToString(sum[:8])
}

// Get returns a fresh cached page when present, otherwise fetches and stores it.
// Cache read and write failures are logged and never fail the fetch.
func (c *Cached) Get(ctx context.Context, rawURL string) (*Page, error) {
	key := CacheKey(rawURL)

	raw, err := c.backend.Get(ctx, key)
	switch {
	case err == nil:
		var hit cachedPage
		if jsonErr := json.Unmarshal(raw, &hit); jsonErr == nil && hit.Page.URL == rawURL && c.now().Sub(hit.FetchedAt) < c.ttl {
			c.log.Debug().Str("url", rawURL).Msg("page cache hit")
			return &hit.Page, nil
		}
	case !errors.Is(err, storage.ErrNotFound):
		c.log.Warn().Err(err).Str("url", rawURL).Msg("page cache read failed")
	}

	page, err := c.next.Get(ctx, rawURL)
	if err != nil {
		return page, err
	}

	if encoded, jsonErr := json.Marshal(cachedPage{Page: *page, FetchedAt: c.now()}); jsonErr == nil {
		if setErr := c.backend.Set(ctx, key, encoded); setErr != nil {
			c.log.Warn().Err(setErr).Str("url", rawURL).Msg("page cache write failed")
		}
	}
	return page, nil
}
