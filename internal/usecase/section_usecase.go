package usecase

import (
	"context"

	"portal/internal/domain/entity"
	"portal/internal/domain/repository"
)

// SectionUsecase exposes cohort browsing outside of a registration session.
type SectionUsecase interface {
	// ListSections returns the sections open to a cohort. An empty slice is
	// the normal "no sections available" outcome, not an error.
	ListSections(ctx context.Context, cohort repository.Cohort) ([]entity.Section, error)
}
