package quota

import (
	"context"
	"fmt"
	"time"

	"github.com/elonfeng/prodradar/pkg/tier"
	"github.com/redis/go-redis/v9"
)

// Only counts the view when it fits under the limit.
// KEYS[1] = daily counter key
// ARGV[1] = limit, ARGV[2] = ttl seconds
const consumeLuaScript = `
local current = tonumber(redis.call("GET", KEYS[1]) or "0")
local limit = tonumber(ARGV[1])
if current >= limit then
    return {0, current}
end
local newVal = redis.call("INCR", KEYS[1])
if newVal == 1 then
    redis.call("EXPIRE", KEYS[1], tonumber(ARGV[2]))
end
return {1, newVal}
`

// dayTTL keeps a daily bucket a little past midnight UTC.
const dayTTL = 25 * time.Hour

// Result is the outcome of a quota check.
type Result struct {
	Allowed bool
	Used    int
	Limit   int
}

// Counter tracks per-user daily detail views in Redis. A nil Counter never
// enforces a limit.
type Counter struct {
	redis  *redis.Client
	script *redis.Script
	prefix string
}

// New creates a counter on an existing client.
func New(client *redis.Client) *Counter {
	return &Counter{
		redis:  client,
		script: redis.NewScript(consumeLuaScript),
		prefix: "prodradar:views",
	}
}

// Connect dials Redis and verifies the connection.
func Connect(ctx context.Context, addr, password string, db int) (*Counter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return New(client), nil
}

// Consume records one detail view for userID on now's UTC day, unless the
// limit is already reached. tier.Unlimited always succeeds without counting.
func (c *Counter) Consume(ctx context.Context, userID string, limit int, now time.Time) (Result, error) {
	if c == nil || limit == tier.Unlimited {
		return Result{Allowed: true, Limit: limit}, nil
	}
	if limit <= 0 {
		return Result{Allowed: false, Limit: limit}, nil
	}

	res, err := c.script.Run(ctx, c.redis, []string{c.key(userID, now)}, limit, int(dayTTL.Seconds())).Slice()
	if err != nil {
		return Result{}, fmt.Errorf("consume detail view %s: %w", userID, err)
	}

	allowed, _ := res[0].(int64)
	used, _ := res[1].(int64)
	return Result{Allowed: allowed == 1, Used: int(used), Limit: limit}, nil
}

// Used returns how many detail views userID has consumed on now's UTC day.
func (c *Counter) Used(ctx context.Context, userID string, now time.Time) (int, error) {
	if c == nil {
		return 0, nil
	}
	n, err := c.redis.Get(ctx, c.key(userID, now)).Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get detail views %s: %w", userID, err)
	}
	return n, nil
}

// Close releases the Redis connection.
func (c *Counter) Close() error {
	if c == nil {
		return nil
	}
	return c.redis.Close()
}

func (c *Counter) key(userID string, now time.Time) string {
	return fmt.Sprintf("%s:%s:%s", c.prefix, userID, now.UTC().Format("2006-01-02"))
}
