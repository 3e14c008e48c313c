package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResendLimiter throttles one-time code generation per (user, purpose)
// using a Redis SETNX key with TTL. A nil limiter or nil client allows
// everything, so the service keeps working without Redis.
type ResendLimiter struct {
	client      *redis.Client
	keyPrefix   string
	resendAfter time.Duration
}

// NewResendLimiter builds a limiter. A non-positive resendAfter disables
// throttling.
func NewResendLimiter(client *redis.Client, resendAfter time.Duration) *ResendLimiter {
	return &ResendLimiter{
		client:      client,
		keyPrefix:   "dealer:otp:resend",
		resendAfter: resendAfter,
	}
}

// Allow reports whether a new code may be generated now for the pair.
// The first caller within a window wins; later callers are throttled
// until the key expires.
func (l *ResendLimiter) Allow(ctx context.Context, userID int64, purpose string) (bool, error) {
	if l == nil || l.client == nil || l.resendAfter <= 0 {
		return true, nil
	}
	key := fmt.Sprintf("%s:%d:%s", l.keyPrefix, userID, purpose)
	return l.client.SetNX(ctx, key, "1", l.resendAfter).Result()
}
