// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"portal/internal/domain/entity"
	"portal/internal/domain/registration"
	"portal/internal/security"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// UpdateFieldInput carries one field update for an in-flight sign-up form.
type UpdateFieldInput struct {
	SessionID uuid.UUID
	Field     registration.Field
	Value     string
}

// --- Output DTOs ---

// StartRegistrationOutput returns the new session with its CSRF token and
// the school id generated for this attempt.
type StartRegistrationOutput struct {
	Session *registration.Session
}

// UpdateFieldOutput reflects the form after the update: the next field
// values, whether the section selector is usable, and the section options
// fetched for the current triad (nil when no fetch was needed).
type UpdateFieldOutput struct {
	Form           registration.Form
	SectionEnabled bool
	SectionOptions []entity.Section
}

// RegistrationUsecase drives the cascading sign-up form held server-side.
type RegistrationUsecase interface {
	// StartSession opens a fresh sign-up session with a generated school id
	// and CSRF token.
	StartSession(ctx context.Context) (*StartRegistrationOutput, error)

	// GetSession returns the current state of an in-flight session.
	GetSession(ctx context.Context, id uuid.UUID) (*registration.Session, error)

	// UpdateField sanitizes the value, applies the update through the form
	// reducer, and refetches section options when the cohort triad changed.
	UpdateField(ctx context.Context, input UpdateFieldInput) (*UpdateFieldOutput, error)

	// RegenerateSchoolID replaces the school id on explicit user request.
	RegenerateSchoolID(ctx context.Context, sessionID uuid.UUID) (string, error)

	// Abandon discards an in-flight session and invalidates its CSRF
	// token, the server-side equivalent of dismissing the sign-up form.
	Abandon(ctx context.Context, sessionID uuid.UUID) error

	// ScorePassword classifies a password draft for the strength meter.
	// Scored during sign-up only; the result is never persisted.
	ScorePassword(password string) security.Strength
}
