package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/EdsonAvelino/StrikeTecAPI-sub001/internal/domain/service"
)

const statsKeyPrefix = "striketec:stats:user:"

// setIfFresh writes KEYS[1] unless KEYS[2] holds an invalidation time at or
// after the stats' computed time (ARGV[2], unix micros).
var setIfFresh = redis.NewScript(`
local inv = redis.call('GET', KEYS[2])
if inv and tonumber(inv) >= tonumber(ARGV[2]) then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
else
	redis.call('SET', KEYS[1], ARGV[1])
end
return 1
`)

type redisStatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatsCache creates a redis-backed stats cache. A nil client yields a
// cache that never hits.
//
// Invalidate leaves a marker for one TTL; Set drops stats computed at or
// before the latest marker.
func NewStatsCache(client *redis.Client, ttl time.Duration) service.StatsCache {
	if client == nil {
		return noopStatsCache{}
	}
	return &redisStatsCache{client: client, ttl: ttl}
}

func statsKey(userID int64) string {
	return fmt.Sprintf("%s%d", statsKeyPrefix, userID)
}

func invalidatedKey(userID int64) string {
	return statsKey(userID) + ":invalidated_at"
}

func (c *redisStatsCache) Get(ctx context.Context, userID int64) (*service.UserBattleStats, error) {
	data, err := c.client.Get(ctx, statsKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cached stats: %w", err)
	}

	var stats service.UserBattleStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("failed to decode cached stats: %w", err)
	}
	return &stats, nil
}

func (c *redisStatsCache) Set(ctx context.Context, stats *service.UserBattleStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to encode stats: %w", err)
	}
	keys := []string{statsKey(stats.UserID), invalidatedKey(stats.UserID)}
	err = setIfFresh.Run(ctx, c.client, keys, data, stats.ComputedAt.UnixMicro(), c.ttl.Milliseconds()).Err()
	if err != nil {
		return fmt.Errorf("failed to cache stats: %w", err)
	}
	return nil
}

func (c *redisStatsCache) Invalidate(ctx context.Context, userIDs ...int64) error {
	if len(userIDs) == 0 {
		return nil
	}
	// Stats computed before now must not be written back by a slower reader.
	now := time.Now().UnixMicro()
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range userIDs {
			pipe.Del(ctx, statsKey(id))
			pipe.Set(ctx, invalidatedKey(id), now, c.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to invalidate stats: %w", err)
	}
	return nil
}

type noopStatsCache struct{}

func (noopStatsCache) Get(context.Context, int64) (*service.UserBattleStats, error) {
	return nil, nil
}

func (noopStatsCache) Set(context.Context, *service.UserBattleStats) error {
	return nil
}

func (noopStatsCache) Invalidate(context.Context, ...int64) error {
	return nil
}
