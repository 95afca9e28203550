// Package storage provides key-value slot backends for persisted collections.
//
// Every backend stores one opaque JSON document per key and replaces it whole
// on write. Callers read, mutate in memory and write back.
package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

var (
	// ErrNotFound is returned by Get when the key holds no value.
	ErrNotFound = errors.New("storage: key not found")
	// ErrQuotaExceeded is returned by Set when the backend is out of space.
	ErrQuotaExceeded = errors.New("storage: quota exceeded")
)

// Backend is a key-value slot store.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open returns the backend described by rawURL.
//
//	memory://[?quota=<bytes>]
//	file:///path/to/dir or a bare path
//	sqlite:///path/to/db.sqlite
//	postgres://... or postgresql://...
//	redis://host:port/db[?prefix=<p>]
func Open(ctx context.Context, rawURL string) (Backend, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, fmt.Errorf("storage url is empty")
	}

	scheme, rest, ok := strings.Cut(rawURL, "://")
	if !ok {
		return NewFile(rawURL)
	}

	switch strings.ToLower(scheme) {
	case "memory", "mem":
		u, err := url.Parse(rawURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse storage url: %w", err)
		}
		quota := 0
		if q := u.Query().Get("quota"); q != "" {
			quota, err = strconv.Atoi(q)
			if err != nil || quota < 0 {
				return nil, fmt.Errorf("invalid memory quota %q", q)
			}
		}
		return NewMemory(quota), nil
	case "file":
		return NewFile(rest)
	case "sqlite":
		return NewSQLite(rest)
	case "postgres", "postgresql":
		return NewPostgres(ctx, rawURL)
	case "redis", "rediss":
		return NewRedis(ctx, rawURL)
	default:
		return nil, fmt.Errorf("unsupported storage scheme %q", scheme)
	}
}

// cutQueryParam removes name from the query of rawURL and returns its value.
func cutQueryParam(rawURL, name string) (string, string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL, "", false
	}
	q := u.Query()
	if !q.Has(name) {
		return rawURL, "", false
	}
	v := q.Get(name)
	q.Del(name)
	u.RawQuery = q.Encode()
	return u.String(), v, true
}
