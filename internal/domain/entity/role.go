// Package entity contains the core business objects of the project.
package entity

// Role represents the kind of account a person registers for.
type Role string

const (
	// RoleStudent indicates a student account.
	RoleStudent Role = "student"
	// RoleTeacher indicates a teacher account.
	RoleTeacher Role = "teacher"
	// RoleParent indicates a parent or guardian account.
	RoleParent Role = "parent"
	// RoleAdmin indicates an administrator account.
	RoleAdmin Role = "admin"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleParent, RoleAdmin:
		return true
	default:
		return false
	}
}

// StudentType distinguishes the two student populations the school serves.
type StudentType string

const (
	// StudentTypeSeniorHigh indicates a senior-high-school student.
	StudentTypeSeniorHigh StudentType = "seniorHigh"
	// StudentTypeCollege indicates a college student.
	StudentTypeCollege StudentType = "college"
)

// String returns the string representation of the StudentType.
func (s StudentType) String() string {
	return string(s)
}

// IsValid checks if the StudentType is a valid value.
func (s StudentType) IsValid() bool {
	switch s {
	case StudentTypeSeniorHigh, StudentTypeCollege:
		return true
	default:
		return false
	}
}

// Label returns the human-readable form stored in the relational store.
// The database keeps "Senior High" and "College" while the rest of the
// system works with the camelCase enum values.
func (s StudentType) Label() string {
	switch s {
	case StudentTypeSeniorHigh:
		return "Senior High"
	case StudentTypeCollege:
		return "College"
	default:
		return string(s)
	}
}

// StudentTypeFromLabel translates a stored human-readable label back into
// the enum value. Unknown labels are returned unchanged so callers can
// surface them instead of silently remapping.
func StudentTypeFromLabel(label string) StudentType {
	switch label {
	case "Senior High":
		return StudentTypeSeniorHigh
	case "College":
		return StudentTypeCollege
	default:
		return StudentType(label)
	}
}

// Department is the teaching division a teacher belongs to.
type Department string

const (
	// DepartmentSeniorHigh covers senior-high-school classes only.
	DepartmentSeniorHigh Department = "seniorHigh"
	// DepartmentCollege covers college classes only.
	DepartmentCollege Department = "college"
	// DepartmentBoth covers classes in both divisions.
	DepartmentBoth Department = "both"
)

// String returns the string representation of the Department.
func (d Department) String() string {
	return string(d)
}

// IsValid checks if the Department is a valid value.
func (d Department) IsValid() bool {
	switch d {
	case DepartmentSeniorHigh, DepartmentCollege, DepartmentBoth:
		return true
	default:
		return false
	}
}
