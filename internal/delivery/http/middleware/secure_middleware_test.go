package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"portal/config"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSecureMiddleware(env string) *SecureMiddleware {
	cfg := &config.Config{}
	cfg.Env.Env = env
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewSecureMiddleware(logger, cfg)
}

func newSecureContext(t *testing.T, forwardedProto string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/sections?studentType=college", nil)
	req.Host = "portal.example.edu"
	if forwardedProto != "" {
		req.Header.Set(echo.HeaderXForwardedProto, forwardedProto)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestSecureMiddleware_Handle(t *testing.T) {
	t.Run("production redirects plain http to https", func(t *testing.T) {
		m := newSecureMiddleware("production")

		next := func(echo.Context) error {
			t.Fatal("handler ran for a plain http request")

			return nil
		}

		c, rec := newSecureContext(t, "")
		require.NoError(t, m.Handle(next)(c))

		assert.Equal(t, http.StatusMovedPermanently, rec.Code)
		assert.Equal(t, "https://portal.example.edu/sections?studentType=college", rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("production passes requests terminated upstream", func(t *testing.T) {
		m := newSecureMiddleware("production")

		called := false
		next := func(c echo.Context) error {
			called = true

			return c.NoContent(http.StatusOK)
		}

		c, rec := newSecureContext(t, "https")
		require.NoError(t, m.Handle(next)(c))

		assert.True(t, called)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("non-production serves plain http", func(t *testing.T) {
		m := newSecureMiddleware("local")

		called := false
		next := func(c echo.Context) error {
			called = true

			return c.NoContent(http.StatusOK)
		}

		c, rec := newSecureContext(t, "")
		require.NoError(t, m.Handle(next)(c))

		assert.True(t, called)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
