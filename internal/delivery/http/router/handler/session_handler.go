package handler

import (
	"net/http"
	"strings"

	"portal/internal/delivery/http/response"
	domainerrors "portal/internal/domain/errors"
	"portal/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// HeaderXSessionID carries the materialized session id alongside the
// provider access token.
const HeaderXSessionID = "X-Session-Id"

// SessionHandler holds dependencies for the session handlers.
type SessionHandler struct {
	uc usecase.SessionUsecase
}

// NewSessionHandler is the constructor for SessionHandler, injected by Fx.
func NewSessionHandler(uc usecase.SessionUsecase) *SessionHandler {
	return &SessionHandler{uc: uc}
}

// Current returns the signed-in session after validating the access token.
func (h *SessionHandler) Current(c echo.Context) error {
	sessionID, accessToken, err := sessionCredentials(c)
	if err != nil {
		return err
	}

	session, err := h.uc.Current(c.Request().Context(), sessionID, accessToken)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, session)
}

// SignOut revokes the provider session and drops the materialized one.
func (h *SessionHandler) SignOut(c echo.Context) error {
	sessionID, accessToken, err := sessionCredentials(c)
	if err != nil {
		return err
	}

	if err := h.uc.SignOut(c.Request().Context(), sessionID, accessToken); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Signed out"})
}

// sessionCredentials extracts the bearer access token and the session id
// header. Both must be present; a malformed pair reads as an invalid token
// rather than a validation error so the client treats it as a sign-in
// problem.
func sessionCredentials(c echo.Context) (uuid.UUID, string, error) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	accessToken := strings.TrimPrefix(authHeader, "Bearer ")
	if accessToken == "" || accessToken == authHeader {
		return uuid.Nil, "", domainerrors.ErrTokenInvalid.WrapMessage("missing bearer token")
	}

	sessionID, err := uuid.Parse(c.Request().Header.Get(HeaderXSessionID))
	if err != nil {
		return uuid.Nil, "", domainerrors.ErrSessionNotFound.WrapMessage("missing session id")
	}

	return sessionID, accessToken, nil
}
