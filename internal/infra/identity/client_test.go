package identity

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"portal/config"
	"portal/internal/domain/entity"
	domainerrors "portal/internal/domain/errors"
	"portal/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return &Client{
		baseURL:    server.URL,
		anonKey:    "anon-key",
		httpClient: &http.Client{Timeout: time.Second},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:        func() time.Time { return testTime },
	}
}

func TestNew_FailsFastWithoutProviderConfig(t *testing.T) {
	_, err := New(Params{Config: &config.Config{}})
	require.Error(t, err)

	_, err = New(Params{Config: &config.Config{
		Identity: &config.IdentityConfig{BaseURL: "https://id.example.edu"},
	}})
	require.Error(t, err)
}

func TestClient_SignUp(t *testing.T) {
	identityID := uuid.New()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/signup", r.URL.Path)
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))

		var payload struct {
			Email    string                 `json:"email"`
			Password string                 `json:"password"`
			Data     service.SignUpMetadata `json:"data"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "juan@school.edu.ph", payload.Email)
		assert.Equal(t, entity.RoleStudent, payload.Data.Role)

		json.NewEncoder(w).Encode(providerUser{
			ID:    identityID.String(),
			Email: payload.Email,
		})
	}))

	identity, err := client.SignUp(context.Background(), "juan@school.edu.ph", "secret1", service.SignUpMetadata{
		FirstName: "Juan", Role: entity.RoleStudent,
	})

	require.NoError(t, err)
	assert.Equal(t, identityID, identity.ID)
	assert.False(t, identity.Verified)
}

func TestClient_SignInWithPassword(t *testing.T) {
	identityID := uuid.New()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))

		json.NewEncoder(w).Encode(tokenResponse{
			AccessToken: "access-token",
			ExpiresIn:   3600,
			User: &providerUser{
				ID:               identityID.String(),
				Email:            "juan@school.edu.ph",
				EmailConfirmedAt: "2026-08-30T10:00:00Z",
				UserMetadata:     map[string]any{"role": "student"},
			},
		})
	}))

	identity, session, err := client.SignInWithPassword(context.Background(), "juan@school.edu.ph", "secret1")

	require.NoError(t, err)
	assert.True(t, identity.Verified)
	assert.Equal(t, entity.RoleStudent, identity.Role)
	assert.Equal(t, "access-token", session.AccessToken)
	assert.Equal(t, testTime.Add(time.Hour), session.ExpiresAt)
}

func TestClient_SignIn_ClassifiesFailures(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error_code":"email_not_confirmed","msg":"Email not confirmed"}`))
	}))

	_, _, err := client.SignInWithPassword(context.Background(), "juan@school.edu.ph", "secret1")
	assert.ErrorIs(t, err, domainerrors.ErrUnverified)
}

func TestClient_VerifyOtp(t *testing.T) {
	identityID := uuid.New()

	t.Run("success returns a verified identity with a session", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/auth/v1/verify", r.URL.Path)

			var payload map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "email", payload["type"])
			assert.Equal(t, "12345678", payload["token"])

			json.NewEncoder(w).Encode(tokenResponse{
				AccessToken: "access-token",
				User: &providerUser{
					ID: identityID.String(), Email: "juan@school.edu.ph",
					EmailConfirmedAt: "2026-08-31T09:00:00Z",
				},
			})
		}))

		identity, session, err := client.VerifyOtp(context.Background(), "juan@school.edu.ph", "12345678")
		require.NoError(t, err)
		assert.True(t, identity.Verified)
		assert.NotNil(t, session)
	})

	t.Run("mismatch classifies as an invalid passcode", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"msg":"Otp mismatch"}`))
		}))

		_, _, err := client.VerifyOtp(context.Background(), "juan@school.edu.ph", "00000000")
		assert.ErrorIs(t, err, domainerrors.ErrInvalidOtp)
	})
}

func TestClient_SignOut(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, client.SignOut(context.Background(), "user-token"))
	assert.Equal(t, "Bearer user-token", gotAuth)
}
