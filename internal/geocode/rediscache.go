package geocode

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix = "assumables:geocode:"
	redisCacheTTL  = 30 * 24 * time.Hour
)

// RedisCache shares geocoding results across runs. Every operation fails
// soft: a Redis outage only costs provider calls.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to Redis at addr ("host:port").
func NewRedisCache(addr string) *RedisCache {
	return &RedisCache{client: redis.NewClient(&redis.Options{Addr: addr})}
}

// Close closes the Redis connection.
func (r *RedisCache) Close() error {
	return r.client.Close()
}

// Get looks up cached coordinates for an address key.
func (r *RedisCache) Get(ctx context.Context, key cacheKey) (*Coordinates, bool) {
	val, err := r.client.Get(ctx, redisKey(key)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Geocode cache read failed: %v", err)
		}
		return nil, false
	}
	var c Coordinates
	if _, err := fmt.Sscanf(val, "%f,%f", &c.Lat, &c.Lon); err != nil {
		return nil, false
	}
	return &c, true
}

// Put stores coordinates for an address key.
func (r *RedisCache) Put(ctx context.Context, key cacheKey, c *Coordinates) {
	val := fmt.Sprintf("%.7f,%.7f", c.Lat, c.Lon)
	if err := r.client.Set(ctx, redisKey(key), val, redisCacheTTL).Err(); err != nil {
		log.Printf("Geocode cache write failed: %v", err)
	}
}

func redisKey(k cacheKey) string {
	return redisKeyPrefix + k.street + "|" + k.unit + "|" + k.city + "|" + k.state + "|" + k.zip
}
