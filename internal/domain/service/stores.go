package service

import (
	"context"
	"errors"
	"time"

	"portal/internal/domain/entity"
	"portal/internal/domain/registration"

	"github.com/google/uuid"
)

// ErrStoreMiss is returned by every store when the key is absent or the
// record's TTL has elapsed.
var ErrStoreMiss = errors.New("record not found in store")

// RegistrationStore keeps in-flight sign-up sessions. Records are TTL-bound;
// an expired session simply disappears and the user starts over.
type RegistrationStore interface {
	Save(ctx context.Context, session *registration.Session, ttl time.Duration) error
	Get(ctx context.Context, id uuid.UUID) (*registration.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TokenStore keeps issued CSRF tokens for their short lifetime.
type TokenStore interface {
	Save(ctx context.Context, token string, ttl time.Duration) error
	Exists(ctx context.Context, token string) (bool, error)
	Delete(ctx context.Context, token string) error
}

// SessionStore keeps materialized sign-in sessions as single JSON blobs.
type SessionStore interface {
	Save(ctx context.Context, session *entity.Session, ttl time.Duration) error
	Get(ctx context.Context, id uuid.UUID) (*entity.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
