// Package registration models the sign-up form as a pure reducer: field
// updates are events, and applying an event returns the next form plus a
// flag telling the caller whether the section options must be refetched.
package registration

import (
	"fmt"
	"time"

	"portal/internal/domain/authflow"
	"portal/internal/domain/entity"
	"portal/internal/security"
)

// Field names one updatable slot of the registration form.
type Field string

const (
	FieldRole        Field = "role"
	FieldFirstName   Field = "firstName"
	FieldMiddleName  Field = "middleName"
	FieldLastName    Field = "lastName"
	FieldEmail       Field = "email"
	FieldStudentType Field = "studentType"
	FieldProgram     Field = "programOrStrand"
	FieldYearLevel   Field = "yearOrGrade"
	FieldSection     Field = "section"
	FieldDepartment  Field = "department"
)

// Event is one field update.
type Event struct {
	Field Field
	Value string
}

// Form holds the current values of the sign-up form. Role-specific fields
// are only meaningful for the matching role; the reducer clears them when
// the role moves away.
type Form struct {
	Role        entity.Role        `json:"role"`
	FirstName   string             `json:"firstName"`
	MiddleName  string             `json:"middleName,omitempty"`
	LastName    string             `json:"lastName"`
	Email       string             `json:"email"`
	StudentType entity.StudentType `json:"studentType,omitempty"`
	Program     string             `json:"programOrStrand,omitempty"`
	YearLevel   string             `json:"yearOrGrade,omitempty"`
	SectionCode string             `json:"section,omitempty"`
	SchoolID    string             `json:"schoolId,omitempty"`
	Department  entity.Department  `json:"department,omitempty"`
}

// Triad is the (studentType, program, yearLevel) combination that determines
// which sections are fetchable. It doubles as the identity used to discard
// stale section fetches.
type Triad struct {
	StudentType entity.StudentType
	Program     string
	YearLevel   string
}

// Complete reports whether every member is set.
func (t Triad) Complete() bool {
	return t.StudentType != "" && t.Program != "" && t.YearLevel != ""
}

// Triad returns the form's current cohort triad.
func (f Form) Triad() Triad {
	return Triad{StudentType: f.StudentType, Program: f.Program, YearLevel: f.YearLevel}
}

// SectionEnabled reports whether the section selector is usable. Section
// stays disabled until the whole triad is chosen.
func (f Form) SectionEnabled() bool {
	return f.Role == entity.RoleStudent && f.Triad().Complete()
}

// Apply returns the form after one field update. Setting an upstream field
// clears every dependent field below it in the chain
// role -> studentType -> program -> yearLevel -> section. needsSectionFetch
// is true when the update leaves the triad complete, meaning the section
// options for the new triad must be (re)fetched.
func Apply(form Form, event Event) (Form, bool) {
	switch event.Field {
	case FieldRole:
		form.Role = entity.Role(event.Value)
		form.StudentType = ""
		form.Program = ""
		form.YearLevel = ""
		form.SectionCode = ""
		form.Department = ""
	case FieldFirstName:
		form.FirstName = event.Value
	case FieldMiddleName:
		form.MiddleName = event.Value
	case FieldLastName:
		form.LastName = event.Value
	case FieldEmail:
		form.Email = event.Value
	case FieldStudentType:
		form.StudentType = entity.StudentType(event.Value)
		form.Program = ""
		form.YearLevel = ""
		form.SectionCode = ""
	case FieldProgram:
		form.Program = event.Value
		form.YearLevel = ""
		form.SectionCode = ""
	case FieldYearLevel:
		form.YearLevel = event.Value
		form.SectionCode = ""
	case FieldSection:
		form.SectionCode = event.Value
	case FieldDepartment:
		form.Department = entity.Department(event.Value)
	}

	needsSectionFetch := false
	switch event.Field {
	case FieldRole, FieldStudentType, FieldProgram, FieldYearLevel:
		needsSectionFetch = form.Role == entity.RoleStudent && form.Triad().Complete()
	}

	return form, needsSectionFetch
}

// NewSchoolID builds a school id from the current date and clock:
// {MM}{DD}{YYYY}-{last 4 digits of the millisecond timestamp}. It is
// generated once when a sign-up session starts and again only on explicit
// user request.
func NewSchoolID(now time.Time) string {
	return fmt.Sprintf("%s-%04d", now.Format("01022006"), now.UnixMilli()%10000)
}

// minPasswordLength is the hard submit floor. It is deliberately lower than
// the 8-character threshold of the strength meter: 6 is the minimum, 8 the
// recommendation.
const minPasswordLength = 6

// ValidateSubmit runs the pre-submit gate and returns field-keyed messages;
// an empty map means the form may be submitted. Nothing here touches the
// network.
func (f Form) ValidateSubmit(mode authflow.Mode, password, confirmPassword string) map[string]string {
	problems := make(map[string]string)

	if !security.ValidateField(f.Email, security.FieldEmail) {
		problems["email"] = "Please enter a valid email address"
	}
	if len(password) < minPasswordLength {
		problems["password"] = "Password must be at least 6 characters"
	}

	if mode == authflow.ModeSignIn {
		if !f.Role.IsValid() {
			problems["role"] = "Please select a role"
		}

		return problems
	}

	if password != confirmPassword {
		problems["confirmPassword"] = "Passwords do not match"
	}
	if f.FirstName == "" {
		problems["firstName"] = "First name is required"
	}
	if f.LastName == "" {
		problems["lastName"] = "Last name is required"
	}
	if !f.Role.IsValid() {
		problems["role"] = "Please select a role"
	}

	switch f.Role {
	case entity.RoleStudent:
		if !f.StudentType.IsValid() {
			problems["studentType"] = "Please select senior high or college"
		}
		if f.Program == "" {
			problems["programOrStrand"] = "Please select a program or strand"
		}
		if f.YearLevel == "" {
			problems["yearOrGrade"] = "Please select a year or grade level"
		}
		if f.SectionCode == "" {
			problems["section"] = "Please select a section"
		}
		if f.SchoolID == "" {
			problems["schoolId"] = "School ID is missing"
		}
	case entity.RoleTeacher:
		if !f.Department.IsValid() {
			problems["department"] = "Please select a department"
		}
	}

	return problems
}
