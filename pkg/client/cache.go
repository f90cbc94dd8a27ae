package client

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// CachedClient front-ends the counter API with two independent tiers:
// a TTL-bounded value cache and a session-scoped "already counted"
// flag. Caching is best-effort; storage failures never surface to the
// caller, they only cost a network round trip.
type CachedClient struct {
	api     *APIClient
	values  Store
	session Store
	ttl     time.Duration
	logger  *zap.Logger
}

// NewCachedClient wires the API client to the two store tiers. A zero
// ttl selects DefaultTTL. values and session may be the same Store; the
// key spaces do not overlap.
func NewCachedClient(api *APIClient, values, session Store, ttl time.Duration, logger *zap.Logger) *CachedClient {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedClient{
		api:     api,
		values:  values,
		session: session,
		ttl:     ttl,
		logger:  logger,
	}
}

func counterKey(name string) string { return "counter:" + name }
func visitedKey(name string) string { return "visited:" + name }

// FetchCounter returns a cached snapshot younger than the TTL, or calls
// the service and caches the result. Returns nil on failure; a stale
// cache entry is left untouched so a later call may still refresh it.
func (c *CachedClient) FetchCounter(ctx context.Context, name string) *Counter {
	if cached := c.readCache(ctx, name); cached != nil {
		return cached
	}

	counter, err := c.api.Get(ctx, name)
	if err != nil {
		c.logger.Warn("fetch counter failed", zap.String("name", name), zap.Error(err))
		return nil
	}
	c.writeCache(ctx, counter)
	return counter
}

// UpdateCounter applies an increment or reset. Mutations are never
// served from cache; on success the stale entry for name is replaced
// with the fresh row and a new timestamp, so the next FetchCounter
// reflects the mutation without a round trip. Returns nil on failure,
// leaving the old entry in place.
func (c *CachedClient) UpdateCounter(ctx context.Context, name, action string) *Counter {
	counter, err := c.api.Update(ctx, name, action)
	if err != nil {
		c.logger.Warn("update counter failed",
			zap.String("name", name), zap.String("action", action), zap.Error(err))
		return nil
	}
	c.writeCache(ctx, counter)
	return counter
}

// HasVisited reports whether the session already counted name.
func (c *CachedClient) HasVisited(ctx context.Context, name string) bool {
	val, err := c.session.Get(ctx, visitedKey(name))
	if err != nil {
		c.logger.Warn("read session flag failed", zap.String("name", name), zap.Error(err))
		return false
	}
	return val != nil
}

// MarkVisited records that the session counted name. The flag lives as
// long as the session store; it is never set with a TTL.
func (c *CachedClient) MarkVisited(ctx context.Context, name string) {
	if err := c.session.Set(ctx, visitedKey(name), []byte("1"), 0); err != nil {
		c.logger.Warn("write session flag failed", zap.String("name", name), zap.Error(err))
	}
}

// ClearCache drops the cached snapshot for name. The session flag is
// untouched.
func (c *CachedClient) ClearCache(ctx context.Context, name string) {
	if err := c.values.Delete(ctx, counterKey(name)); err != nil {
		c.logger.Warn("clear cache failed", zap.String("name", name), zap.Error(err))
	}
}

func (c *CachedClient) readCache(ctx context.Context, name string) *Counter {
	val, err := c.values.Get(ctx, counterKey(name))
	if err != nil || val == nil {
		return nil
	}
	var counter Counter
	if err := json.Unmarshal(val, &counter); err != nil {
		return nil
	}
	return &counter
}

func (c *CachedClient) writeCache(ctx context.Context, counter *Counter) {
	val, err := json.Marshal(counter)
	if err != nil {
		return
	}
	if err := c.values.Set(ctx, counterKey(counter.Name), val, c.ttl); err != nil {
		c.logger.Warn("write cache failed", zap.String("name", counter.Name), zap.Error(err))
	}
}
