package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sarkop/opname/internal/config"
	"github.com/sarkop/opname/internal/domain"
)

const (
	tableKeyPrefix = "opname:table"
	scanBatchSize  = 100
)

// TableCache shields the spreadsheet provider from repeated fetches of the
// same range. Misses return ok=false with a nil error.
type TableCache interface {
	Get(ctx context.Context, a1Range string) (domain.Table, bool, error)
	Set(ctx context.Context, a1Range string, table domain.Table) error
	InvalidateAll(ctx context.Context) error
}

type redisTableCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopTableCache struct{}

// NewTableCache builds a redis-backed cache, or a noop one when caching is
// disabled.
func NewTableCache(cfg config.CacheConfig) (TableCache, error) {
	if !cfg.Enabled {
		return &noopTableCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisTableCache{client: client, ttl: ttl}, nil
}

func NewNoopTableCache() TableCache {
	return &noopTableCache{}
}

func (c *redisTableCache) Get(ctx context.Context, a1Range string) (domain.Table, bool, error) {
	payload, err := c.client.Get(ctx, buildTableKey(a1Range)).Bytes()
	if err == redis.Nil {
		return domain.Table{}, false, nil
	}
	if err != nil {
		return domain.Table{}, false, fmt.Errorf("redis get failed: %w", err)
	}

	var table domain.Table
	if err := json.Unmarshal(payload, &table); err != nil {
		return domain.Table{}, false, fmt.Errorf("decode table cache: %w", err)
	}

	return table, true, nil
}

func (c *redisTableCache) Set(ctx context.Context, a1Range string, table domain.Table) error {
	payload, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("encode table cache: %w", err)
	}

	if err := c.client.Set(ctx, buildTableKey(a1Range), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (c *redisTableCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, tableKeyPrefix, scanBatchSize)
}

func (n *noopTableCache) Get(context.Context, string) (domain.Table, bool, error) {
	return domain.Table{}, false, nil
}

func (n *noopTableCache) Set(context.Context, string, domain.Table) error { return nil }

func (n *noopTableCache) InvalidateAll(context.Context) error { return nil }

func buildTableKey(a1Range string) string {
	sum := sha1.Sum([]byte(a1Range))

	return fmt.Sprintf("%s:%s", tableKeyPrefix, hex.EncodeToString(sum[:]))
}
