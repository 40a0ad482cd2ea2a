package postgres

import (
	"context"

	"portal/internal/domain/entity"
	"portal/internal/domain/repository"
	"portal/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// sectionRepository implements repository.SectionRepository using GORM.
type sectionRepository struct {
	db *gorm.DB
}

// NewSectionRepository is the constructor for sectionRepository.
func NewSectionRepository(db *gorm.DB) repository.SectionRepository {
	return &sectionRepository{db: db}
}

// FindByCohort returns the sections open to the cohort, ordered by section
// code. The student_type column stores the display label, so the enum value
// is translated on the way in and back out.
func (repo *sectionRepository) FindByCohort(ctx context.Context, cohort repository.Cohort) ([]entity.Section, error) {
	var rows []model.SectionModel
	err := repo.db.WithContext(ctx).
		Where("student_type = ? AND program = ? AND year_level = ?",
			cohort.StudentType.Label(), cohort.Program, cohort.YearLevel).
		Order("section_code").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find sections by cohort")
	}

	sections := make([]entity.Section, 0, len(rows))
	for _, row := range rows {
		sections = append(sections, entity.Section{
			SectionCode: row.SectionCode,
			Program:     row.Program,
			YearLevel:   row.YearLevel,
			StudentType: entity.StudentTypeFromLabel(row.StudentType),
		})
	}

	return sections, nil
}
