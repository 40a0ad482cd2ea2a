package middleware

import (
	"log/slog"
	"net/http"

	"portal/config"

	"github.com/labstack/echo/v4"
)

// SecureMiddleware enforces HTTPS in production. The server sits behind a
// TLS-terminating proxy, so the scheme arrives in X-Forwarded-Proto.
type SecureMiddleware struct {
	logger  *slog.Logger
	enforce bool
}

// NewSecureMiddleware creates a new HTTPS enforcement middleware.
func NewSecureMiddleware(logger *slog.Logger, cfg *config.Config) *SecureMiddleware {
	return &SecureMiddleware{
		logger:  logger,
		enforce: cfg.Env.Env == "production",
	}
}

// Handle redirects plain HTTP requests to their HTTPS form in production
// and only warns elsewhere, so local development stays on HTTP.
func (m *SecureMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		if req.TLS != nil || req.Header.Get(echo.HeaderXForwardedProto) == "https" {
			return next(c)
		}

		if !m.enforce {
			m.logger.Debug("Serving over plain HTTP", slog.String("uri", req.RequestURI))

			return next(c)
		}

		target := "https://" + req.Host + req.RequestURI

		return c.Redirect(http.StatusMovedPermanently, target)
	}
}
