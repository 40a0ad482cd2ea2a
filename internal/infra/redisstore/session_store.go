package redisstore

import (
	"context"
	"encoding/json"
	"time"

	"portal/internal/domain/entity"
	"portal/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "portal:session:"

// sessionStore implements service.SessionStore on Redis. The whole session
// is kept as one JSON blob under one key.
type sessionStore struct {
	rdb *redis.Client
}

// NewSessionStore is the constructor for sessionStore.
func NewSessionStore(rdb *redis.Client) service.SessionStore {
	return &sessionStore{rdb: rdb}
}

func (s *sessionStore) Save(ctx context.Context, session *entity.Session, ttl time.Duration) error {
	encoded, err := json.Marshal(session)
	if err != nil {
		return errors.Wrap(err, "failed to encode session")
	}

	if err := s.rdb.Set(ctx, sessionKeyPrefix+session.ID.String(), encoded, ttl).Err(); err != nil {
		return errors.Wrap(err, "failed to save session")
	}

	return nil
}

func (s *sessionStore) Get(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	raw, err := s.rdb.Get(ctx, sessionKeyPrefix+id.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, service.ErrStoreMiss
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load session")
	}

	var session entity.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, errors.Wrap(err, "failed to decode session")
	}

	return &session, nil
}

func (s *sessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.rdb.Del(ctx, sessionKeyPrefix+id.String()).Err(); err != nil {
		return errors.Wrap(err, "failed to delete session")
	}

	return nil
}
