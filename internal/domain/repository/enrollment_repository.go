package repository

import (
	"context"

	"github.com/google/uuid"
)

// EnrollmentRepository assigns new students to the default subjects of their
// section. Enrollment is a best-effort side effect of sign-up; callers log
// failures and move on because the account is valid without it.
type EnrollmentRepository interface {
	// EnrollDefaultSubjects enrolls the identity in every default subject
	// of the section and returns how many enrollments were written.
	EnrollDefaultSubjects(ctx context.Context, identityID uuid.UUID, sectionCode string) (int, error)
}
