// Package identity implements the IdentityProvider port against a
// Supabase-style auth REST API.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"portal/config"
	deliverycontext "portal/internal/delivery/context"
	"portal/internal/domain/entity"
	"portal/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Client talks to the external identity provider over HTTP.
type Client struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
	logger     *slog.Logger
	now        func() time.Time
}

// Params holds dependencies for the identity client, injected by Fx.
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// New is the constructor for Client. The provider URL and anonymous key are
// the only configuration the whole auth workflow cannot run without, so a
// missing value fails construction outright.
func New(params Params) (service.IdentityProvider, error) {
	cfg := params.Config.Identity
	if cfg == nil || cfg.BaseURL == "" || cfg.AnonKey == "" {
		return nil, errors.New("identity provider baseUrl and anonKey must be configured")
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		anonKey: cfg.AnonKey,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		logger: params.Logger,
		now:    time.Now,
	}, nil
}

// providerUser is the provider's wire shape for an account.
type providerUser struct {
	ID               string         `json:"id"`
	Email            string         `json:"email"`
	EmailConfirmedAt string         `json:"email_confirmed_at"`
	UserMetadata     map[string]any `json:"user_metadata"`
}

// tokenResponse is returned by the password grant and the verify endpoint.
type tokenResponse struct {
	AccessToken string        `json:"access_token"`
	ExpiresIn   int           `json:"expires_in"`
	User        *providerUser `json:"user"`
}

// SignUp creates a pending identity with the profile metadata attached. The
// provider emails the first passcode as part of account creation.
func (c *Client) SignUp(ctx context.Context, email, password string, metadata service.SignUpMetadata) (*service.Identity, error) {
	payload := map[string]any{
		"email":    email,
		"password": password,
		"data":     metadata,
	}

	var user providerUser
	if err := c.post(ctx, "/auth/v1/signup", "", payload, &user); err != nil {
		return nil, err
	}

	identity, err := toIdentity(&user)
	if err != nil {
		return nil, err
	}

	return identity, nil
}

// SignInWithPassword exchanges credentials for a provider session.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*service.Identity, *service.ProviderSession, error) {
	payload := map[string]any{
		"email":    email,
		"password": password,
	}

	var resp tokenResponse
	if err := c.post(ctx, "/auth/v1/token?grant_type=password", "", payload, &resp); err != nil {
		return nil, nil, err
	}

	identity, err := toIdentity(resp.User)
	if err != nil {
		return nil, nil, err
	}

	return identity, c.toProviderSession(&resp), nil
}

// VerifyOtp checks the emailed passcode against the provider.
func (c *Client) VerifyOtp(ctx context.Context, email, code string) (*service.Identity, *service.ProviderSession, error) {
	payload := map[string]any{
		"type":  "email",
		"email": email,
		"token": code,
	}

	var resp tokenResponse
	if err := c.post(ctx, "/auth/v1/verify", "", payload, &resp); err != nil {
		return nil, nil, err
	}

	identity, err := toIdentity(resp.User)
	if err != nil {
		return nil, nil, err
	}

	return identity, c.toProviderSession(&resp), nil
}

// ResendOtp asks the provider to email a fresh sign-up passcode.
func (c *Client) ResendOtp(ctx context.Context, email string) error {
	payload := map[string]any{
		"type":  "signup",
		"email": email,
	}

	return c.post(ctx, "/auth/v1/resend", "", payload, nil)
}

// SignOut revokes the provider session behind the access token.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	return c.post(ctx, "/auth/v1/logout", accessToken, nil, nil)
}

// post sends one JSON request and decodes the response into out. Non-2xx
// responses are classified into the domain error taxonomy before returning.
func (c *Client) post(ctx context.Context, path, bearer string, payload, out any) error {
	endpoint := c.baseURL + path
	if _, err := url.Parse(endpoint); err != nil {
		return errors.Wrapf(err, "invalid provider endpoint %s", path)
	}

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return errors.Wrap(err, "failed to encode provider request")
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return errors.Wrap(err, "failed to build provider request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.anonKey)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	} else {
		req.Header.Set("Authorization", "Bearer "+c.anonKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "provider request %s failed", path)
	}
	defer resp.Body.Close()

	deliverycontext.GetLoggerOrDefault(ctx, c.logger).Debug("Provider call",
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(start)))

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read provider response")
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return classify(path, resp.StatusCode, raw)
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return errors.Wrapf(err, "failed to decode provider response for %s", path)
		}
	}

	return nil
}

func toIdentity(user *providerUser) (*service.Identity, error) {
	if user == nil {
		return nil, errors.New("provider response carried no user")
	}

	id, err := uuid.Parse(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "provider returned a malformed identity id")
	}

	identity := &service.Identity{
		ID:       id,
		Email:    user.Email,
		Verified: user.EmailConfirmedAt != "",
	}
	if role, ok := user.UserMetadata["role"].(string); ok {
		identity.Role = entity.Role(role)
	}

	return identity, nil
}

// toProviderSession anchors the provider's relative expiry to the client's
// clock.
func (c *Client) toProviderSession(resp *tokenResponse) *service.ProviderSession {
	return &service.ProviderSession{
		AccessToken: resp.AccessToken,
		ExpiresAt:   c.now().Add(time.Duration(resp.ExpiresIn) * time.Second),
	}
}
