// Package cache keeps user search results in Redis for a short TTL.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ovaphlow/pitchfork/service-social-go/internal/user/entity"
)

const keySearch = "users:search:"

type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// ConfigFromEnv reads REDIS_* settings. An empty Addr disables the cache.
func ConfigFromEnv() Config {
	cfg := Config{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
		TTL:      30 * time.Second,
	}
	if n, err := strconv.Atoi(os.Getenv("REDIS_DB")); err == nil {
		cfg.DB = n
	}
	if d, err := time.ParseDuration(os.Getenv("SEARCH_CACHE_TTL")); err == nil && d > 0 {
		cfg.TTL = d
	}
	return cfg
}

// Connect opens a client and pings it.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// SearchCache caches search results keyed by normalized keyword and limit.
type SearchCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSearchCache(rdb *redis.Client, ttl time.Duration) *SearchCache {
	return &SearchCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached result; ok is false on a miss.
func (c *SearchCache) Get(ctx context.Context, keyword string, limit int) ([]entity.Summary, bool, error) {
	b, err := c.rdb.Get(ctx, key(keyword, limit)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var users []entity.Summary
	if err := json.Unmarshal(b, &users); err != nil {
		return nil, false, err
	}
	return users, true, nil
}

func (c *SearchCache) Set(ctx context.Context, keyword string, limit int, users []entity.Summary) error {
	b, err := json.Marshal(users)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key(keyword, limit), b, c.ttl).Err()
}

// Invalidate drops every cached search; called when a user registers.
func (c *SearchCache) Invalidate(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, keySearch+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func key(keyword string, limit int) string {
	return keySearch + strconv.Itoa(limit) + ":" + keyword
}
