package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/christianbugingo/ticket-website/internal/domain"
	"github.com/christianbugingo/ticket-website/pkg/logger"
	pkgredis "github.com/christianbugingo/ticket-website/pkg/redis"
)

const (
	searchKeyPrefix = "search:"
	searchCacheTTL  = 60 * time.Second
)

// RedisSearchCache caches schedule search results in Redis with a short
// TTL. Booking and cancellation invalidate the whole search keyspace so
// stale availability is bounded by the TTL in the worst case.
type RedisSearchCache struct {
	client *pkgredis.Client
}

// NewRedisSearchCache creates a new RedisSearchCache
func NewRedisSearchCache(client *pkgredis.Client) *RedisSearchCache {
	return &RedisSearchCache{client: client}
}

func searchKey(params ScheduleSearchParams) string {
	return fmt.Sprintf("%s%s:%s:%s:%d",
		searchKeyPrefix,
		strings.ToLower(params.Origin),
		strings.ToLower(params.Destination),
		params.DayStart.Format("2006-01-02"),
		params.Passengers,
	)
}

// Get returns cached search results, or false on miss or decode failure
func (c *RedisSearchCache) Get(ctx context.Context, params ScheduleSearchParams) ([]*domain.ScheduleDetail, bool) {
	data, err := c.client.Get(ctx, searchKey(params)).Bytes()
	if err != nil {
		return nil, false
	}

	var results []*domain.ScheduleDetail
	if err := json.Unmarshal(data, &results); err != nil {
		logger.Get().Warn("failed to decode cached search results", zap.Error(err))
		return nil, false
	}
	return results, true
}

// Set stores search results with the cache TTL, best effort
func (c *RedisSearchCache) Set(ctx context.Context, params ScheduleSearchParams, results []*domain.ScheduleDetail) {
	data, err := json.Marshal(results)
	if err != nil {
		logger.Get().Warn("failed to encode search results", zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, searchKey(params), data, searchCacheTTL).Err(); err != nil {
		logger.Get().Warn("failed to cache search results", zap.Error(err))
	}
}

// Invalidate drops all cached search results, best effort
func (c *RedisSearchCache) Invalidate(ctx context.Context) {
	log := logger.Get()

	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, searchKeyPrefix+"*", 100).Result()
		if err != nil {
			log.Warn("failed to scan search cache keys", zap.Error(err))
			return
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				log.Warn("failed to delete search cache keys", zap.Error(err))
				return
			}
		}
		cursor = next
		if cursor == 0 {
			return
		}
	}
}

// NoOpSearchCache disables caching. Used when Redis is unavailable.
type NoOpSearchCache struct{}

// NewNoOpSearchCache creates a new NoOpSearchCache
func NewNoOpSearchCache() *NoOpSearchCache {
	return &NoOpSearchCache{}
}

func (c *NoOpSearchCache) Get(ctx context.Context, params ScheduleSearchParams) ([]*domain.ScheduleDetail, bool) {
	return nil, false
}

func (c *NoOpSearchCache) Set(ctx context.Context, params ScheduleSearchParams, results []*domain.ScheduleDetail) {
}

func (c *NoOpSearchCache) Invalidate(ctx context.Context) {}
