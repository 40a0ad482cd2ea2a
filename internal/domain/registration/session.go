package registration

import (
	"time"

	"portal/internal/domain/authflow"
	"portal/internal/domain/entity"

	"github.com/google/uuid"
)

// Session is the server-held state of one in-flight sign-up: the form, the
// CSRF token issued with it, and the section options last fetched for the
// form's triad. Exactly one session owns a form at a time.
type Session struct {
	ID             uuid.UUID        `json:"id"`
	Form           Form             `json:"form"`
	Flow           authflow.Flow    `json:"flow"`
	CSRFToken      string           `json:"csrfToken"`
	SectionOptions []entity.Section `json:"sectionOptions,omitempty"`
	// SectionsTriad records which triad SectionOptions belongs to, so a
	// result arriving after the triad moved on can be recognized as stale.
	SectionsTriad Triad     `json:"sectionsTriad,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ApplySections installs a fetched section list if it still matches the
// form's current triad. A result for any other triad is discarded, so the
// options shown always belong to the latest choice regardless of the order
// in which fetches resolve.
func (s *Session) ApplySections(triad Triad, sections []entity.Section) bool {
	if triad != s.Form.Triad() {
		return false
	}

	s.SectionOptions = sections
	s.SectionsTriad = triad

	return true
}

// ClearSections drops the cached options. Called when the triad changes so
// the selector never shows cohorts of a previous choice.
func (s *Session) ClearSections() {
	s.SectionOptions = nil
	s.SectionsTriad = Triad{}
}
