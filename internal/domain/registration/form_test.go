package registration

import (
	"testing"
	"time"

	"portal/internal/domain/authflow"
	"portal/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func studentForm() Form {
	return Form{
		Role:        entity.RoleStudent,
		FirstName:   "Juan",
		LastName:    "Dela Cruz",
		Email:       "juan@school.edu.ph",
		StudentType: entity.StudentTypeCollege,
		Program:     "BSCS",
		YearLevel:   "1st Year College",
		SectionCode: "BSCS-1A",
		SchoolID:    "08312026-1234",
	}
}

func TestApply_CascadingClears(t *testing.T) {
	t.Run("role change clears all role-specific fields", func(t *testing.T) {
		form := studentForm()
		form.Department = entity.DepartmentBoth

		next, fetch := Apply(form, Event{Field: FieldRole, Value: "parent"})

		assert.Equal(t, entity.RoleParent, next.Role)
		assert.Empty(t, next.StudentType)
		assert.Empty(t, next.Program)
		assert.Empty(t, next.YearLevel)
		assert.Empty(t, next.SectionCode)
		assert.Empty(t, next.Department)
		assert.False(t, fetch)
		// Identity and school id survive a role switch.
		assert.Equal(t, "Juan", next.FirstName)
		assert.Equal(t, "08312026-1234", next.SchoolID)
	})

	t.Run("student type change clears program, year, and section", func(t *testing.T) {
		next, fetch := Apply(studentForm(), Event{Field: FieldStudentType, Value: "seniorHigh"})

		assert.Equal(t, entity.StudentTypeSeniorHigh, next.StudentType)
		assert.Empty(t, next.Program)
		assert.Empty(t, next.YearLevel)
		assert.Empty(t, next.SectionCode)
		assert.False(t, fetch)
	})

	t.Run("program change clears year and section", func(t *testing.T) {
		next, fetch := Apply(studentForm(), Event{Field: FieldProgram, Value: "BSIT"})

		assert.Equal(t, "BSIT", next.Program)
		assert.Empty(t, next.YearLevel)
		assert.Empty(t, next.SectionCode)
		assert.False(t, fetch)
	})

	t.Run("year change clears section and completes the triad", func(t *testing.T) {
		next, fetch := Apply(studentForm(), Event{Field: FieldYearLevel, Value: "2nd Year College"})

		assert.Equal(t, "2nd Year College", next.YearLevel)
		assert.Empty(t, next.SectionCode)
		assert.True(t, fetch)
	})

	t.Run("name and email updates do not trigger a fetch", func(t *testing.T) {
		next, fetch := Apply(studentForm(), Event{Field: FieldFirstName, Value: "Maria"})

		assert.Equal(t, "Maria", next.FirstName)
		assert.Equal(t, "BSCS-1A", next.SectionCode)
		assert.False(t, fetch)
	})
}

func TestForm_SectionEnabled(t *testing.T) {
	form := studentForm()
	assert.True(t, form.SectionEnabled())

	incomplete, _ := Apply(form, Event{Field: FieldProgram, Value: "BSIT"})
	assert.False(t, incomplete.SectionEnabled())

	teacher, _ := Apply(form, Event{Field: FieldRole, Value: "teacher"})
	assert.False(t, teacher.SectionEnabled())
}

func TestNewSchoolID(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 30, 0, 0, time.UTC)
	id := NewSchoolID(now)

	require.Regexp(t, `^\d{8}-\d{4}$`, id)
	assert.Equal(t, "08312026", id[:8])
}

func TestForm_ValidateSubmit(t *testing.T) {
	t.Run("complete student form passes", func(t *testing.T) {
		problems := studentForm().ValidateSubmit(authflow.ModeSignUp, "secret1", "secret1")
		assert.Empty(t, problems)
	})

	t.Run("six character password passes while seven fails confirmation", func(t *testing.T) {
		problems := studentForm().ValidateSubmit(authflow.ModeSignUp, "abcdef", "abcdef")
		assert.Empty(t, problems)

		problems = studentForm().ValidateSubmit(authflow.ModeSignUp, "abcdef", "abcdeg")
		assert.Contains(t, problems, "confirmPassword")
	})

	t.Run("short password fails", func(t *testing.T) {
		problems := studentForm().ValidateSubmit(authflow.ModeSignUp, "abc", "abc")
		assert.Contains(t, problems, "password")
	})

	t.Run("bad email fails", func(t *testing.T) {
		form := studentForm()
		form.Email = "not-an-email"
		problems := form.ValidateSubmit(authflow.ModeSignUp, "secret1", "secret1")
		assert.Contains(t, problems, "email")
	})

	t.Run("student missing section is blocked", func(t *testing.T) {
		form := studentForm()
		form.SectionCode = ""
		problems := form.ValidateSubmit(authflow.ModeSignUp, "secret1", "secret1")
		assert.Contains(t, problems, "section")
	})

	t.Run("teacher requires a department", func(t *testing.T) {
		form := Form{
			Role:      entity.RoleTeacher,
			FirstName: "Ana",
			LastName:  "Reyes",
			Email:     "ana@school.edu.ph",
		}
		problems := form.ValidateSubmit(authflow.ModeSignUp, "secret1", "secret1")
		assert.Contains(t, problems, "department")

		form.Department = entity.DepartmentSeniorHigh
		problems = form.ValidateSubmit(authflow.ModeSignUp, "secret1", "secret1")
		assert.Empty(t, problems)
	})

	t.Run("sign in skips name and role-specific checks", func(t *testing.T) {
		form := Form{Role: entity.RoleStudent, Email: "juan@school.edu.ph"}
		problems := form.ValidateSubmit(authflow.ModeSignIn, "secret1", "")
		assert.Empty(t, problems)
	})
}

func TestSession_ApplySections(t *testing.T) {
	session := &Session{Form: studentForm()}
	current := session.Form.Triad()
	stale := Triad{StudentType: entity.StudentTypeCollege, Program: "BSIT", YearLevel: "1st Year College"}

	sections := []entity.Section{{SectionCode: "BSCS-1A", Program: "BSCS"}}

	t.Run("stale triad is discarded even when it arrives last", func(t *testing.T) {
		require.True(t, session.ApplySections(current, sections))
		assert.False(t, session.ApplySections(stale, []entity.Section{{SectionCode: "BSIT-1A"}}))
		assert.Equal(t, sections, session.SectionOptions)
		assert.Equal(t, current, session.SectionsTriad)
	})

	t.Run("clear drops cached options", func(t *testing.T) {
		session.ClearSections()
		assert.Empty(t, session.SectionOptions)
	})
}
