// Package service defines the interfaces for external collaborators the use
// cases depend on: the identity provider, the token validator, and the
// short-lived stores.
package service

import (
	"context"
	"time"

	"portal/internal/domain/entity"

	"github.com/google/uuid"
)

// SignUpMetadata is the profile payload attached to a new identity. The
// provider stores it with the credential; a provisioning trigger later turns
// it into queryable role records.
type SignUpMetadata struct {
	FirstName   string             `json:"firstName"`
	MiddleName  string             `json:"middleName,omitempty"`
	LastName    string             `json:"lastName"`
	Role        entity.Role        `json:"role"`
	StudentType entity.StudentType `json:"studentType,omitempty"`
	Program     string             `json:"programOrStrand,omitempty"`
	YearLevel   string             `json:"yearOrGrade,omitempty"`
	SectionCode string             `json:"section,omitempty"`
	SchoolID    string             `json:"schoolId,omitempty"`
	Department  entity.Department  `json:"department,omitempty"`
}

// Identity is the provider's view of an account.
type Identity struct {
	ID       uuid.UUID
	Email    string
	Role     entity.Role // Role recorded in the identity metadata.
	Verified bool
}

// ProviderSession is the token material issued on a successful sign-in or
// verification.
type ProviderSession struct {
	AccessToken string
	ExpiresAt   time.Time
}

// IdentityProvider wraps the external auth provider. Implementations must
// classify provider failures into the domain error taxonomy at this
// boundary; callers never inspect raw provider messages.
type IdentityProvider interface {
	// SignUp creates a pending, unverified identity and opens the email
	// passcode challenge. Fails with the duplicate-email domain error when
	// the provider reports an existing account.
	SignUp(ctx context.Context, email, password string, metadata SignUpMetadata) (*Identity, error)

	// SignInWithPassword exchanges credentials for a provider session.
	// Fails with invalid-credentials or unverified domain errors.
	SignInWithPassword(ctx context.Context, email, password string) (*Identity, *ProviderSession, error)

	// VerifyOtp checks the emailed passcode and, on success, returns the
	// now-verified identity with a session. Fails with invalid-otp or
	// otp-expired domain errors.
	VerifyOtp(ctx context.Context, email, code string) (*Identity, *ProviderSession, error)

	// ResendOtp asks the provider to email a fresh passcode. Throttling is
	// the provider's concern.
	ResendOtp(ctx context.Context, email string) error

	// SignOut revokes the provider session behind the access token.
	SignOut(ctx context.Context, accessToken string) error
}
