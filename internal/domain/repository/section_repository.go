package repository

import (
	"context"

	"portal/internal/domain/entity"
)

// Cohort is the (studentType, program, yearLevel) triad that identifies a
// set of sections. All three members must be set for a lookup to make sense.
type Cohort struct {
	StudentType entity.StudentType
	Program     string
	YearLevel   string
}

// Complete reports whether every member of the triad is set.
func (c Cohort) Complete() bool {
	return c.StudentType != "" && c.Program != "" && c.YearLevel != ""
}

// SectionRepository exposes read-only lookups against the registrar-owned
// sections table. An empty result is a valid outcome, never an error.
type SectionRepository interface {
	// FindByCohort returns the sections open to the given cohort.
	FindByCohort(ctx context.Context, cohort Cohort) ([]entity.Section, error)
}
