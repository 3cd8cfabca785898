package repositories

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const queryCachePrefix = "products_list_"

// QueryCache memoizes rendered product listings. A nil client disables caching.
// Catalog versions count per process, so keys carry a per-process instance id: several
// instances sharing one redis never read each other's listings.
type QueryCache struct {
	client   *redis.Client
	ttl      time.Duration
	instance string
}

func NewQueryCache(client *redis.Client, ttl time.Duration) *QueryCache {
	return &QueryCache{client: client, ttl: ttl, instance: uuid.NewString()[:8]}
}

func (c *QueryCache) Enabled() bool {
	return c != nil && c.client != nil
}

// Key identifies a listing by instance, catalog version and request parameters.
func (c *QueryCache) Key(version uint64, params interface{}) string {
	raw, _ := json.Marshal(params)
	sum := sha1.Sum(raw)
	return fmt.Sprintf("%s%s_v%d_%s", queryCachePrefix, c.instance, version, hex.EncodeToString(sum[:]))
}

func (c *QueryCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if !c.Enabled() {
		return nil, false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

func (c *QueryCache) Set(ctx context.Context, key string, data []byte) {
	if !c.Enabled() {
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.Printf("Failed to cache %s: %v", key, err)
	}
}

// Invalidate drops every cached listing.
func (c *QueryCache) Invalidate(ctx context.Context) {
	if !c.Enabled() {
		return
	}
	iter := c.client.Scan(ctx, 0, queryCachePrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		c.client.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Printf("Failed to invalidate product cache: %v", err)
	}
}
