package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const versionKey = "bagshop:catalog:version"

// New connects to Redis and pings it.
func New(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache: ping: %w", err)
	}
	return client, nil
}

// Cache stores JSON values under versioned keys. A nil *Cache is valid and always misses.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	log    *slog.Logger
}

func NewCache(client *redis.Client, ttl time.Duration, log *slog.Logger) *Cache {
	if log == nil {
		log = slog.Default()
	}
	return &Cache{client: client, ttl: ttl, log: log}
}

func (c *Cache) enabled() bool { return c != nil && c.client != nil }

func (c *Cache) version(ctx context.Context) (int64, error) {
	ver, err := c.client.Get(ctx, versionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return ver, err
}

// Key joins parts and appends the current version.
func (c *Cache) Key(ctx context.Context, parts ...string) (string, error) {
	joined := "bagshop:" + strings.Join(parts, ":")
	if !c.enabled() {
		return joined, nil
	}
	ver, err := c.version(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:v%d", joined, ver), nil
}

// Fetch fills dest from the cache or from load. Redis failures are logged and
// bypassed so the caller always gets load's answer.
func Fetch[T any](ctx context.Context, c *Cache, parts []string, load func(context.Context) (T, error)) (T, error) {
	if !c.enabled() {
		return load(ctx)
	}
	key, err := c.Key(ctx, parts...)
	if err != nil {
		c.log.Warn("cache.key.fail", slog.String("err", err.Error()))
		return load(ctx)
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var out T
		if uerr := json.Unmarshal(raw, &out); uerr == nil {
			return out, nil
		}
		c.log.Warn("cache.decode.fail", slog.String("key", key))
	case !errors.Is(err, redis.Nil):
		c.log.Warn("cache.get.fail", slog.String("key", key), slog.String("err", err.Error()))
	}

	out, err := load(ctx)
	if err != nil {
		return out, err
	}
	if payload, merr := json.Marshal(out); merr == nil {
		if serr := c.client.Set(ctx, key, payload, c.ttl).Err(); serr != nil {
			c.log.Warn("cache.set.fail", slog.String("key", key), slog.String("err", serr.Error()))
		}
	}
	return out, nil
}

// Bump invalidates every key by moving to the next version. A failure is
// logged; stale entries then live until their TTL.
func (c *Cache) Bump(ctx context.Context) error {
	if !c.enabled() {
		return nil
	}
	if err := c.client.Incr(ctx, versionKey).Err(); err != nil {
		c.log.Warn("cache.bump.fail", slog.String("err", err.Error()))
		return err
	}
	return nil
}
