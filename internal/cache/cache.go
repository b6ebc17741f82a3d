package cache

import (
	"fmt"
	"strings"
	"time"
)

// Package cache provides a local TTL cache for the API's read-only reference
// data (countries, languages, pricing tables).

// Cache stores raw JSON payloads keyed by endpoint name.
type Cache interface {
	Close() error
	// Get returns the cached payload for key, or ok=false when absent or expired.
	Get(key string) (payload []byte, ok bool, err error)
	// Put stores payload under key for the configured TTL.
	Put(key string, payload []byte) error
}

// Options controls retention characteristics for concrete cache implementations.
type Options struct {
	TTL             time.Duration
	CleanupInterval time.Duration
}

const (
	defaultTTL             = 24 * time.Hour
	defaultCleanupInterval = 6 * time.Hour
)

// New creates the configured cache backend.
func New(typ, path string, opts Options) (Cache, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopCache{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt cache requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported cache type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.TTL <= 0 {
		opts.TTL = defaultTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopCache struct{}

func (noopCache) Close() error                     { return nil }
func (noopCache) Get(string) ([]byte, bool, error) { return nil, false, nil }
func (noopCache) Put(string, []byte) error         { return nil }
