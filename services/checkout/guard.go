package checkout

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const guardPrefix = "checkout:guard:"

// Guard claims an idempotency key for the duration of a checkout.
type Guard interface {
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// RedisGuard claims keys with SETNX so only the first submission proceeds.
type RedisGuard struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisGuard(client *redis.Client, ttl time.Duration) *RedisGuard {
	return &RedisGuard{client: client, ttl: ttl}
}

func (g *RedisGuard) Acquire(ctx context.Context, key string) (bool, error) {
	return g.client.SetNX(ctx, guardPrefix+key, time.Now().Unix(), g.ttl).Result()
}

func (g *RedisGuard) Release(ctx context.Context, key string) error {
	return g.client.Del(ctx, guardPrefix+key).Err()
}

// IdempotencyKey derives a stable key for a submission when the caller did not send one.
func IdempotencyKey(paymentMethodID string, amountCents int64, email string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%s", paymentMethodID, amountCents, email)))
	return hex.EncodeToString(sum[:])
}
