package cache

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// loadTimeout bounds a shared load, which runs detached from its
// callers' contexts.
const loadTimeout = 10 * time.Second

// Cache is a read-through byte cache in Redis. Concurrent misses on the
// same key share one load.
type Cache struct {
	RDB *redis.Client
	sf  singleflight.Group

	// mu orders write-backs against Delete; epoch moves on every Delete so
	// a load that began before it never writes its result back.
	mu    sync.Mutex
	epoch uint64
}

func New(addr, pass string, db int) *Cache {
	return &Cache{
		RDB: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
	}
}

func (c *Cache) Ping(ctx context.Context) error { return c.RDB.Ping(ctx).Err() }

func (c *Cache) Close() error { return c.RDB.Close() }

// GetOrLoad serves key from Redis, falling back to load on a miss or a
// Redis error. Write-back failures are ignored. A caller whose ctx ends
// stops waiting without failing the others sharing the load.
func (c *Cache) GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error) {
	if b, err := c.RDB.Get(ctx, key).Bytes(); err == nil {
		return b, nil
	}
	ch := c.sf.DoChan(key, func() (any, error) {
		c.mu.Lock()
		epoch := c.epoch
		c.mu.Unlock()

		lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()
		b, err := load(lctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		if c.epoch == epoch {
			_ = c.RDB.Set(lctx, key, b, ttl).Err()
		}
		c.mu.Unlock()
		return b, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

// Delete drops keys and detaches them from any load in flight, so the next
// GetOrLoad reads the source again and stale loads are not written back.
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch++
	for _, k := range keys {
		c.sf.Forget(k)
	}
	if len(keys) == 0 {
		return nil
	}
	return c.RDB.Del(ctx, keys...).Err()
}
