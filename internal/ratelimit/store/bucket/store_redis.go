package bucket

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"medcalc/internal/ratelimit/models"
	"medcalc/internal/ratelimit/ports"
)

const redisKeyPrefix = "medcalc:rl:"

var _ ports.BucketStore = (*RedisBucketStore)(nil)

// slidingWindowScript trims the window, admits the request when the budget
// allows it and reports the count and oldest timestamp, all in one round trip.
//
// KEYS[1] window key
// ARGV[1] now (ms), ARGV[2] window (ms), ARGV[3] cost, ARGV[4] limit, ARGV[5] member prefix
var slidingWindowScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local cost = tonumber(ARGV[3])
local limit = tonumber(ARGV[4])

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
local count = redis.call('ZCARD', key)
local allowed = 0
if count + cost <= limit then
  for i = 1, cost do
    redis.call('ZADD', key, now, ARGV[5] .. ':' .. i)
  end
  redis.call('PEXPIRE', key, window)
  count = count + cost
  allowed = 1
end

local oldest = now
local first = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
if first[2] then
  oldest = tonumber(first[2])
end
return {allowed, count, oldest}
`)

// RedisBucketStore implements BucketStore with one sorted set per key, scored
// by request time in milliseconds. Replicas sharing a Redis share budgets.
type RedisBucketStore struct {
	client *redis.Client
	now    func() time.Time
}

// RedisOption configures a RedisBucketStore.
type RedisOption func(*RedisBucketStore)

// WithRedisClock replaces time.Now.
func WithRedisClock(now func() time.Time) RedisOption {
	return func(s *RedisBucketStore) {
		s.now = now
	}
}

// NewRedis constructs a Redis-backed bucket store.
func NewRedis(client *redis.Client, opts ...RedisOption) *RedisBucketStore {
	s := &RedisBucketStore{client: client, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Allow checks if a request is allowed and increments the counter.
func (s *RedisBucketStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.RateLimitResult, error) {
	return s.AllowN(ctx, key, 1, limit, window)
}

// AllowN checks if a request with custom cost is allowed.
func (s *RedisBucketStore) AllowN(ctx context.Context, key string, cost, limit int, window time.Duration) (*models.RateLimitResult, error) {
	now := s.now()
	res, err := slidingWindowScript.Run(ctx, s.client,
		[]string{redisKeyPrefix + key},
		now.UnixMilli(), window.Milliseconds(), cost, limit, uuid.NewString(),
	).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("sliding window %s: %w", key, err)
	}
	if len(res) != 3 {
		return nil, fmt.Errorf("sliding window %s: unexpected reply of %d values", key, len(res))
	}

	resetAt := time.UnixMilli(res[2]).Add(window)
	if res[0] == 0 {
		return models.Denied(limit, resetAt, now), nil
	}
	return &models.RateLimitResult{
		Allowed:   true,
		Limit:     limit,
		Remaining: limit - int(res[1]),
		ResetAt:   resetAt,
	}, nil
}
