package entity

import (
	"time"

	"github.com/google/uuid"
)

// PortalRoute names the destination a freshly signed-in user lands on.
type PortalRoute string

const (
	RouteSeniorHighPortal     PortalRoute = "/portal/senior-high"
	RouteCollegePortal        PortalRoute = "/portal/college"
	RouteGenericStudentPortal PortalRoute = "/portal/student"
	RouteTeacherPortal        PortalRoute = "/portal/teacher"
	RouteParentPortal         PortalRoute = "/portal/parent"
	RouteAdminPortal          PortalRoute = "/portal/admin"
)

// RouteFor computes the destination route from the role and, for students,
// the student type. Students of an unrecognized type land on the generic
// student portal rather than failing.
func RouteFor(role Role, studentType StudentType) PortalRoute {
	switch role {
	case RoleStudent:
		switch studentType {
		case StudentTypeSeniorHigh:
			return RouteSeniorHighPortal
		case StudentTypeCollege:
			return RouteCollegePortal
		default:
			return RouteGenericStudentPortal
		}
	case RoleTeacher:
		return RouteTeacherPortal
	case RoleParent:
		return RouteParentPortal
	case RoleAdmin:
		return RouteAdminPortal
	default:
		return RouteGenericStudentPortal
	}
}

// Session is the unified record assembled after a verified sign-in. It merges
// the provider identity with the role-scoped profile and is stored as a single
// JSON blob in the short-lived session store.
type Session struct {
	ID          uuid.UUID   `json:"id"`          // Session id, also the store key.
	IdentityID  uuid.UUID   `json:"identityId"`  // Identity id at the provider.
	Email       string      `json:"email"`
	FirstName   string      `json:"firstName"`
	MiddleName  string      `json:"middleName,omitempty"`
	LastName    string      `json:"lastName"`
	Role        Role        `json:"role"`
	StudentType StudentType `json:"studentType,omitempty"` // Set for students only.
	Program     string      `json:"program,omitempty"`
	YearLevel   string      `json:"yearLevel,omitempty"`
	SectionCode string      `json:"sectionCode,omitempty"`
	SchoolID    string      `json:"schoolId,omitempty"`
	Department  Department  `json:"department,omitempty"` // Set for teachers only.
	AccessToken string      `json:"accessToken"`          // Provider-issued JWT.
	Route       PortalRoute `json:"route"`                // Destination after sign-in.
	LoggedInAt  time.Time   `json:"loggedInAt"`
}
