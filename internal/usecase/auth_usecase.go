package usecase

import (
	"context"

	"portal/internal/domain/authflow"
	"portal/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// SignUpInput submits an in-flight registration session for account
// creation. The form fields were accumulated through UpdateField; only the
// credential travels with the submit.
type SignUpInput struct {
	SessionID       uuid.UUID
	Password        string
	ConfirmPassword string
}

// SignInInput defines the data required to sign in under a selected role.
type SignInInput struct {
	Email    string
	Password string
	Role     entity.Role
}

// VerifyOtpInput checks the emailed passcode. SessionID is set when the
// challenge belongs to an in-flight sign-up; a sign-in that hit an
// unverified account verifies by email alone.
type VerifyOtpInput struct {
	SessionID *uuid.UUID
	Email     string
	Code      string
}

// --- Output DTOs ---

// SignUpOutput reports how the submit resolved. FieldErrors is non-empty
// only when the local validation gate refused the form.
type SignUpOutput struct {
	Flow        authflow.Flow
	FieldErrors map[string]string
}

// SignInOutput carries the materialized session on success; on failure the
// flow state says which recovery path applies.
type SignInOutput struct {
	Flow    authflow.Flow
	Session *entity.Session
}

// VerifyOtpOutput reports the verification result.
type VerifyOtpOutput struct {
	Flow  authflow.Flow
	Email string
}

// AuthUsecase orchestrates the submit-to-resolution auth cycle against the
// identity provider. Every provider failure is resolved into a flow state
// with a user-facing message; none of these methods lets a classified
// provider error escape as a raised error.
type AuthUsecase interface {
	// SignUp runs the validation gate, dedupes the email, creates the
	// pending identity, and opens the passcode challenge. The best-effort
	// default-subject enrollment runs after creation and never fails the
	// sign-up.
	SignUp(ctx context.Context, input SignUpInput) (*SignUpOutput, error)

	// SignIn exchanges credentials for a materialized session. Wrong
	// password and unknown email resolve to distinct messages; an
	// unverified account reroutes to the passcode challenge.
	SignIn(ctx context.Context, input SignInInput) (*SignInOutput, error)

	// VerifyOtp checks the passcode; on success the sign-up form is
	// cleared. A rejected code keeps the challenge open.
	VerifyOtp(ctx context.Context, input VerifyOtpInput) (*VerifyOtpOutput, error)

	// ResendOtp requests a fresh passcode. Unlimited; throttling is the
	// provider's concern.
	ResendOtp(ctx context.Context, email string) error
}
