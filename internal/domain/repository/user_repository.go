// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"portal/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// ErrRoleRecordNotFound is returned when an identity exists but has no record
// for the requested role. The sign-in flow treats this as a credential failure.
var ErrRoleRecordNotFound = errors.New("no record for the requested role")

// UserRepository defines the read operations the auth workflow needs against
// the relational store. Records are written by the provisioning trigger that
// runs after account creation, so the portal never creates them directly.
type UserRepository interface {
	// EmailExists reports whether any account is registered under the email.
	EmailExists(ctx context.Context, email string) (bool, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByIDAndRole retrieves the role-scoped record for an identity.
	// Returns ErrRoleRecordNotFound when the identity exists under a
	// different role, so a role mismatch never signs a user in.
	FindByIDAndRole(ctx context.Context, id uuid.UUID, role entity.Role) (*entity.User, error)
}
