package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims are the fields the portal reads out of a provider-issued access
// token.
type Claims struct {
	IdentityID uuid.UUID
	Email      string
	Role       string
	jwt.RegisteredClaims
}

// TokenService validates access tokens minted by the identity provider. The
// portal never issues tokens itself.
type TokenService interface {
	// ValidateAccessToken parses and verifies the token signature and
	// expiry, returning the embedded claims.
	ValidateAccessToken(tokenString string) (*Claims, error)
}
