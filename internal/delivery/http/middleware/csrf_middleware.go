package middleware

import (
	"portal/internal/domain/errors"
	"portal/internal/domain/service"
	"portal/internal/security"

	"github.com/labstack/echo/v4"
	pkgerrors "github.com/pkg/errors"
)

// HeaderXCSRFToken is the header the double-submit token travels in.
const HeaderXCSRFToken = "X-Csrf-Token"

// CSRFMiddleware guards the mutating registration routes. The token must
// have the issued shape and still be live in the token store; the store
// check is what makes an expired or fabricated token fail even when the
// shape is right.
type CSRFMiddleware struct {
	tokens service.TokenStore
}

// NewCSRFMiddleware creates a new CSRF middleware.
func NewCSRFMiddleware(tokens service.TokenStore) *CSRFMiddleware {
	return &CSRFMiddleware{tokens: tokens}
}

// Require rejects the request unless it carries a live CSRF token.
func (m *CSRFMiddleware) Require(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := c.Request().Header.Get(HeaderXCSRFToken)
		if !security.ValidateCSRFToken(token) {
			return errors.ErrCSRF.WrapMessage("malformed csrf token")
		}

		issued, err := m.tokens.Exists(c.Request().Context(), token)
		if err != nil {
			return pkgerrors.Wrap(err, "failed to check csrf token")
		}
		if !issued {
			return errors.ErrCSRF.WrapMessage("unknown or expired csrf token")
		}

		return next(c)
	}
}
