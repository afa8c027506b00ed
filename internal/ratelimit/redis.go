package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// slidingWindowScript implements a sliding-window counter over a sorted set.
// The request is recorded before the count is taken, so a denied request
// still consumes one unit of quota. Returns {allowed, resetAtMillis,
// remaining}; resetAt is when the oldest entry ages out of the window.
const slidingWindowScript = `
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local max = tonumber(ARGV[3])
local member = ARGV[4]

redis.call("ZREMRANGEBYSCORE", key, 0, now - window)
redis.call("ZADD", key, now, member)
redis.call("PEXPIRE", key, window)

local count = redis.call("ZCARD", key)
local oldest = redis.call("ZRANGE", key, 0, 0, "WITHSCORES")
local reset = tonumber(oldest[2]) + window

if count > max then
  return {0, reset, 0}
end
return {1, reset, max - count}
`

// RedisLimiter shares one quota store across all server processes, keyed by
// client identity.
type RedisLimiter struct {
	client   *redis.Client
	requests int64
	window   time.Duration
	prefix   string
}

func NewRedisLimiter(client *redis.Client, requests int64, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client:   client,
		requests: requests,
		window:   window,
		prefix:   "ratelimit:",
	}
}

func (l *RedisLimiter) Admit(ctx context.Context, identity string) (Result, error) {
	now := time.Now()

	res, err := l.client.Eval(ctx, slidingWindowScript,
		[]string{l.prefix + identity},
		now.UnixMilli(),
		l.window.Milliseconds(),
		l.requests,
		uuid.NewString(),
	).Result()
	if err != nil {
		return Result{}, fmt.Errorf("ratelimit eval: %w", err)
	}

	vals, ok := res.([]interface{})
	if !ok || len(vals) != 3 {
		return Result{}, fmt.Errorf("ratelimit eval: unexpected reply %v", res)
	}

	allowed, _ := vals[0].(int64)
	resetMillis, _ := vals[1].(int64)
	remaining, _ := vals[2].(int64)

	return Result{
		Allowed:   allowed == 1,
		Remaining: remaining,
		ResetAt:   time.UnixMilli(resetMillis),
	}, nil
}
