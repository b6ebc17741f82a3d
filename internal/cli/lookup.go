package cli

import (
	"context"
	"encoding/json"
)

// lookup serves reference data from the local cache when fresh, falling back
// to the API and refreshing the cache on a miss. Cache failures are logged
// and never fail the lookup.
func lookup[T any](a *App, ctx context.Context, key string, fetch func(context.Context) (T, error)) (T, error) {
	payload, ok, err := a.cache.Get(key)
	if err != nil {
		a.log.Warnw("reference cache read failed", "key", key, "error", err)
	} else if ok {
		var cached T
		if err := json.Unmarshal(payload, &cached); err == nil {
			a.log.Debugw("reference cache hit", "key", key)
			return cached, nil
		}
		a.log.Warnw("reference cache entry undecodable, refetching", "key", key)
	}

	value, err := fetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	if encoded, err := json.Marshal(value); err == nil {
		if err := a.cache.Put(key, encoded); err != nil {
			a.log.Warnw("reference cache write failed", "key", key, "error", err)
		}
	}
	return value, nil
}
