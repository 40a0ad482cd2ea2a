package redisstore

import (
	"context"
	"encoding/json"
	"time"

	"portal/internal/domain/registration"
	"portal/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const registrationKeyPrefix = "portal:registration:"

// registrationStore implements service.RegistrationStore on Redis.
type registrationStore struct {
	rdb *redis.Client
}

// NewRegistrationStore is the constructor for registrationStore.
func NewRegistrationStore(rdb *redis.Client) service.RegistrationStore {
	return &registrationStore{rdb: rdb}
}

func (s *registrationStore) Save(ctx context.Context, session *registration.Session, ttl time.Duration) error {
	encoded, err := json.Marshal(session)
	if err != nil {
		return errors.Wrap(err, "failed to encode registration session")
	}

	if err := s.rdb.Set(ctx, registrationKeyPrefix+session.ID.String(), encoded, ttl).Err(); err != nil {
		return errors.Wrap(err, "failed to save registration session")
	}

	return nil
}

func (s *registrationStore) Get(ctx context.Context, id uuid.UUID) (*registration.Session, error) {
	raw, err := s.rdb.Get(ctx, registrationKeyPrefix+id.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, service.ErrStoreMiss
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load registration session")
	}

	var session registration.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, errors.Wrap(err, "failed to decode registration session")
	}

	return &session, nil
}

func (s *registrationStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.rdb.Del(ctx, registrationKeyPrefix+id.String()).Err(); err != nil {
		return errors.Wrap(err, "failed to delete registration session")
	}

	return nil
}
