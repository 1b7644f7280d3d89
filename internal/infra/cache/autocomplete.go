package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	domproduct "example.com/shopping-list/internal/domain/product"
)

const (
	DefaultTTL    = 10 * time.Minute
	DefaultPrefix = "shoppinglist:autocomplete:"

	autoCompleteKey = "all"
	generationKey   = "generation"
)

// AutoCompleteCache keeps the last built autocomplete index in Redis. Every
// Invalidate bumps a generation counter, and Set only stores an index built
// under the current generation.
type AutoCompleteCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

type Option func(*AutoCompleteCache)

func WithTTL(ttl time.Duration) Option {
	return func(c *AutoCompleteCache) {
		c.ttl = ttl
	}
}

func WithPrefix(prefix string) Option {
	return func(c *AutoCompleteCache) {
		c.prefix = prefix
	}
}

func NewAutoCompleteCache(client *redis.Client, opts ...Option) *AutoCompleteCache {
	c := &AutoCompleteCache{
		client: client,
		ttl:    DefaultTTL,
		prefix: DefaultPrefix,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get reports a miss for absent keys, Redis errors and undecodable values alike.
func (c *AutoCompleteCache) Get(ctx context.Context) (*domproduct.AutoCompleteLists, bool) {
	val, err := c.client.Get(ctx, c.key()).Bytes()
	if err != nil {
		return nil, false
	}

	var lists domproduct.AutoCompleteLists
	if err := json.Unmarshal(val, &lists); err != nil {
		return nil, false
	}
	return &lists, true
}

// Generation returns the current invalidation counter. A missing counter is
// generation 0.
func (c *AutoCompleteCache) Generation(ctx context.Context) (int64, error) {
	const op = "AutoCompleteCache.Generation"

	gen, err := c.client.Get(ctx, c.generationKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return gen, nil
}

// Set stores lists only if no invalidation happened since generation was read.
// Otherwise it returns domproduct.ErrAutoCompleteOutdated and leaves Redis as is.
func (c *AutoCompleteCache) Set(ctx context.Context, lists *domproduct.AutoCompleteLists, generation int64) error {
	const op = "AutoCompleteCache.Set"

	data, err := json.Marshal(lists)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, c.generationKey()).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			return domproduct.ErrAutoCompleteOutdated
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, c.key(), data, c.ttl)
			return nil
		})
		return err
	}, c.generationKey())

	switch {
	case err == nil:
		return nil
	case errors.Is(err, redis.TxFailedErr):
		return fmt.Errorf("%s: %w", op, domproduct.ErrAutoCompleteOutdated)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// Invalidate drops the cached index and bumps the generation in one transaction.
func (c *AutoCompleteCache) Invalidate(ctx context.Context) error {
	const op = "AutoCompleteCache.Invalidate"

	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, c.generationKey())
		pipe.Del(ctx, c.key())
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c *AutoCompleteCache) key() string {
	return c.prefix + autoCompleteKey
}

func (c *AutoCompleteCache) generationKey() string {
	return c.prefix + generationKey
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	const op = "cache.NewRedisClient"

	client := redis.NewClient(&redis.Options{Addr: addr})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%s: failed to connect to redis: %w", op, err)
	}
	return client, nil
}
