package mem

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefixRequestToken = "wanderwise:reqtoken:"

func requestTokenKey(session string) string {
	return keyPrefixRequestToken + session
}

// RedisRequestTokens shares request tokens between API replicas.
type RedisRequestTokens struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRequestTokens(client *redis.Client, ttl time.Duration) *RedisRequestTokens {
	return &RedisRequestTokens{client: client, ttl: ttl}
}

func (s *RedisRequestTokens) Issue(ctx context.Context, session string) (int64, error) {
	key := requestTokenKey(session)
	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to issue request token: %w", err)
	}
	return incr.Val(), nil
}

func (s *RedisRequestTokens) Latest(ctx context.Context, session string) (int64, error) {
	token, err := s.client.Get(ctx, requestTokenKey(session)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read request token: %w", err)
	}
	return token, nil
}
