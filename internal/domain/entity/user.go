// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity in the system, representing one registered person.
// The identity provider owns the credential; this record mirrors the profile
// attributes the portal needs for sign-in and session assembly.
type User struct {
	ID             uuid.UUID       // Identity id assigned by the external provider.
	Email          string          // The login email.
	FirstName      string          // Given name collected at sign-up.
	MiddleName     string          // Middle name; optional at sign-up.
	LastName       string          // Family name collected at sign-up.
	Role           Role            // The role the account was registered under.
	Verified       bool            // Whether the email passcode challenge has been completed.
	StudentProfile *StudentProfile // Non-nil only for student accounts.
	TeacherProfile *TeacherProfile // Non-nil only for teacher accounts.
	CreatedAt      time.Time       // Timestamp of when this account record was created.
	UpdatedAt      time.Time       // Timestamp of the last modification.
}

// StudentProfile holds the student-specific attributes collected by the
// cascading sign-up form.
type StudentProfile struct {
	UserID      uuid.UUID   // Foreign key to the core User record.
	StudentType StudentType // Senior high or college.
	Program     string      // Program (college) or strand (senior high).
	YearLevel   string      // Year or grade level, e.g. "Grade 11", "1st Year College".
	SectionCode string      // The enrollment cohort chosen at sign-up.
	SchoolID    string      // System-generated school id, format {MM}{DD}{YYYY}-{NNNN}.
	UpdatedAt   time.Time   // Timestamp of the last modification.
}

// TeacherProfile holds the teacher-specific attributes.
type TeacherProfile struct {
	UserID     uuid.UUID  // Foreign key to the core User record.
	Department Department // The teaching division the teacher belongs to.
	UpdatedAt  time.Time  // Timestamp of the last modification.
}
