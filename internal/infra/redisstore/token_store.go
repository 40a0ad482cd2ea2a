package redisstore

import (
	"context"
	"time"

	"portal/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const csrfKeyPrefix = "portal:csrf:"

// tokenStore implements service.TokenStore on Redis. Only the token's
// existence matters; the value is a placeholder.
type tokenStore struct {
	rdb *redis.Client
}

// NewTokenStore is the constructor for tokenStore.
func NewTokenStore(rdb *redis.Client) service.TokenStore {
	return &tokenStore{rdb: rdb}
}

func (s *tokenStore) Save(ctx context.Context, token string, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, csrfKeyPrefix+token, "1", ttl).Err(); err != nil {
		return errors.Wrap(err, "failed to save csrf token")
	}

	return nil
}

func (s *tokenStore) Exists(ctx context.Context, token string) (bool, error) {
	count, err := s.rdb.Exists(ctx, csrfKeyPrefix+token).Result()
	if err != nil {
		return false, errors.Wrap(err, "failed to check csrf token")
	}

	return count > 0, nil
}

func (s *tokenStore) Delete(ctx context.Context, token string) error {
	if err := s.rdb.Del(ctx, csrfKeyPrefix+token).Err(); err != nil {
		return errors.Wrap(err, "failed to delete csrf token")
	}

	return nil
}
