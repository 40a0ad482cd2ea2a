package impl

import (
	"time"

	"portal/internal/domain/entity"
	"portal/internal/domain/service"

	"github.com/google/uuid"
)

// SessionMaterializer assembles the unified session record handed out after
// a fully successful sign-in: provider identity, role-scoped profile, the
// access token, a login timestamp, and the destination route.
type SessionMaterializer struct{}

// NewSessionMaterializer is the constructor for SessionMaterializer.
func NewSessionMaterializer() *SessionMaterializer {
	return &SessionMaterializer{}
}

// Materialize merges the identity and profile records into one session. The
// destination route follows the fixed role and student-type lookup; the
// session id is fresh and doubles as the store key.
func (m *SessionMaterializer) Materialize(
	identity *service.Identity,
	user *entity.User,
	provider *service.ProviderSession,
	loggedInAt time.Time,
) *entity.Session {
	session := &entity.Session{
		ID:          uuid.New(),
		IdentityID:  identity.ID,
		Email:       identity.Email,
		FirstName:   user.FirstName,
		MiddleName:  user.MiddleName,
		LastName:    user.LastName,
		Role:        user.Role,
		AccessToken: provider.AccessToken,
		LoggedInAt:  loggedInAt,
	}

	if profile := user.StudentProfile; profile != nil {
		session.StudentType = profile.StudentType
		session.Program = profile.Program
		session.YearLevel = profile.YearLevel
		session.SectionCode = profile.SectionCode
		session.SchoolID = profile.SchoolID
	}
	if profile := user.TeacherProfile; profile != nil {
		session.Department = profile.Department
	}

	session.Route = entity.RouteFor(user.Role, session.StudentType)

	return session
}
