package usecase

import (
	"context"

	"portal/internal/domain/entity"

	"github.com/google/uuid"
)

// SessionUsecase exposes the materialized sign-in session.
type SessionUsecase interface {
	// Current validates the provider-issued access token and returns the
	// session it belongs to. A token/session identity mismatch is treated
	// as an expired session, never as someone else's.
	Current(ctx context.Context, sessionID uuid.UUID, accessToken string) (*entity.Session, error)

	// SignOut revokes the provider session and drops the materialized one.
	SignOut(ctx context.Context, sessionID uuid.UUID, accessToken string) error
}
