package impl

import (
	"context"
	"log/slog"

	deliverycontext "portal/internal/delivery/context"
	"portal/internal/domain/entity"
	domainerrors "portal/internal/domain/errors"
	"portal/internal/domain/service"
	"portal/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	sessionStore service.SessionStore
	tokenService service.TokenService
	identity     service.IdentityProvider
	logger       *slog.Logger
}

// SessionServiceParams holds dependencies for sessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	SessionStore service.SessionStore
	TokenService service.TokenService
	Identity     service.IdentityProvider
	Logger       *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	return &sessionService{
		sessionStore: params.SessionStore,
		tokenService: params.TokenService,
		identity:     params.Identity,
		logger:       params.Logger,
	}
}

func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Current validates the provider-issued access token before handing out the
// materialized session. A token signed for a different identity than the
// session's reads as an expired session.
func (srv *sessionService) Current(ctx context.Context, sessionID uuid.UUID, accessToken string) (*entity.Session, error) {
	claims, err := srv.tokenService.ValidateAccessToken(accessToken)
	if err != nil {
		return nil, domainerrors.ErrTokenInvalid.WrapMessage("validate access token")
	}

	session, err := srv.sessionStore.Get(ctx, sessionID)
	if errors.Is(err, service.ErrStoreMiss) {
		return nil, domainerrors.ErrSessionNotFound.WrapMessage("session lookup")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load session")
	}

	if session.IdentityID != claims.IdentityID {
		srv.log(ctx).Warn("Access token does not match session identity",
			slog.String("sessionID", sessionID.String()))

		return nil, domainerrors.ErrSessionNotFound.WrapMessage("identity mismatch")
	}

	return session, nil
}

// SignOut revokes the provider session and drops the materialized one. The
// local session is removed even when provider revocation fails, so a stale
// provider token can never resurrect a signed-out session here.
func (srv *sessionService) SignOut(ctx context.Context, sessionID uuid.UUID, accessToken string) error {
	if err := srv.identity.SignOut(ctx, accessToken); err != nil {
		srv.log(ctx).Warn("Provider sign-out failed", slog.String("sessionID", sessionID.String()), slog.Any("error", err))
	}

	if err := srv.sessionStore.Delete(ctx, sessionID); err != nil {
		return errors.Wrap(err, "failed to delete session")
	}

	srv.log(ctx).Info("Signed out", slog.String("sessionID", sessionID.String()))

	return nil
}
