package helpers

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient initializes a redis client
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// writes KEYS[1] only while the counter at KEYS[2] still equals ARGV[1]
var setIfGenerationScript = redis.NewScript(`
local gen = redis.call("GET", KEYS[2]) or "0"
if gen ~= ARGV[1] then
  return 0
end
redis.call("SET", KEYS[1], ARGV[2], "PX", ARGV[3])
return 1
`)

var invalidateScript = redis.NewScript(`
redis.call("INCR", KEYS[2])
redis.call("DEL", KEYS[1])
return 1
`)

func RedisGetJSON[T any](ctx context.Context, rdb redis.Cmdable, key string, dest *T) (bool, error) {
	res, err := rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(res, dest); err != nil {
		return false, err
	}
	return true, nil
}

// RedisGeneration reads an invalidation counter; a missing counter is "0".
func RedisGeneration(ctx context.Context, rdb redis.Cmdable, genKey string) (string, error) {
	v, err := rdb.Get(ctx, genKey).Result()
	if errors.Is(err, redis.Nil) {
		return "0", nil
	}
	return v, err
}

// RedisSetJSONIfGeneration stores value only if genKey has not moved past gen.
func RedisSetJSONIfGeneration(ctx context.Context, rdb redis.Cmdable, key, genKey, gen string, value interface{}, ttl time.Duration) (bool, error) {
	b, err := json.Marshal(value)
	if err != nil {
		return false, err
	}
	n, err := setIfGenerationScript.Run(ctx, rdb, []string{key, genKey}, gen, b, ttl.Milliseconds()).Int()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// RedisInvalidate bumps genKey and deletes key in one step.
func RedisInvalidate(ctx context.Context, rdb redis.Cmdable, key, genKey string) error {
	return invalidateScript.Run(ctx, rdb, []string{key, genKey}).Err()
}

func blacklistKey(jti string) string {
	return "auth:blacklist:" + jti
}

// BlacklistToken marks a token id as revoked until it would have expired anyway.
func BlacklistToken(ctx context.Context, rdb redis.Cmdable, jti string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return rdb.Set(ctx, blacklistKey(jti), 1, ttl).Err()
}

func IsTokenBlacklisted(ctx context.Context, rdb redis.Cmdable, jti string) (bool, error) {
	n, err := rdb.Exists(ctx, blacklistKey(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
