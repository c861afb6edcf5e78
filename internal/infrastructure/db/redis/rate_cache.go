package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/cohost-ai/rental-api/internal/core/ports"
)

const defaultRateTTL = 10 * time.Minute

// cacheClient is the subset of *redis.Client the rate cache needs.
type cacheClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// CachedRateProvider serves exchange rates from Redis and refreshes them from
// the wrapped provider on a miss. Only successful lookups are cached.
// Key format: fx:<base>:<quote>
type CachedRateProvider struct {
	client cacheClient
	next   ports.RateProvider
	ttl    time.Duration
	log    zerolog.Logger
}

func NewCachedRateProvider(client cacheClient, next ports.RateProvider, ttl time.Duration, log zerolog.Logger) *CachedRateProvider {
	if ttl <= 0 {
		ttl = defaultRateTTL
	}
	return &CachedRateProvider{client: client, next: next, ttl: ttl, log: log}
}

func (c *CachedRateProvider) Rate(ctx context.Context, base, quote string) (float64, error) {
	key := rateKey(base, quote)

	raw, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		if rate, perr := strconv.ParseFloat(raw, 64); perr == nil && rate > 0 {
			return rate, nil
		}
		c.log.Warn().Str("key", key).Str("value", raw).Msg("discarding unparseable cached rate")
	case !errors.Is(err, redis.Nil):
		// a broken cache must not take the live lookup down with it
		c.log.Warn().Err(err).Str("key", key).Msg("rate cache read failed")
	}

	rate, err := c.next.Rate(ctx, base, quote)
	if err != nil {
		return 0, err
	}

	if err := c.client.Set(ctx, key, strconv.FormatFloat(rate, 'f', -1, 64), c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("rate cache write failed")
	}
	return rate, nil
}

func rateKey(base, quote string) string {
	return fmt.Sprintf("fx:%s:%s", base, quote)
}
