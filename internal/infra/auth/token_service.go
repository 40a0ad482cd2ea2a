// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"portal/config"
	"portal/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// jwtTokenService validates access tokens issued by the identity provider.
// Provider tokens are HS256-signed with a shared secret; the portal holds
// the secret only to verify, never to mint.
type jwtTokenService struct {
	secret []byte
}

// providerClaims is the wire shape of the provider's access token payload.
// The identity ID travels in the registered "sub" claim.
type providerClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// NewTokenService is the constructor for jwtTokenService.
func NewTokenService(cfg *config.Config) (service.TokenService, error) {
	if cfg.Identity == nil || cfg.Identity.JWTSecret == "" {
		return nil, errors.New("identity jwt secret must be provided")
	}

	return &jwtTokenService{secret: []byte(cfg.Identity.JWTSecret)}, nil
}

// ValidateAccessToken parses and verifies the token, rejecting anything not
// HS256-signed with the provider secret or past its expiry.
func (s *jwtTokenService) ValidateAccessToken(tokenString string) (*service.Claims, error) {
	var claims providerClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse access token")
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}

	identityID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, errors.Wrap(err, "access token subject is not an identity id")
	}

	return &service.Claims{
		IdentityID:       identityID,
		Email:            claims.Email,
		Role:             claims.Role,
		RegisteredClaims: claims.RegisteredClaims,
	}, nil
}
