package postgres

import (
	"context"

	"portal/internal/domain/repository"
	"portal/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// enrollmentRepository implements repository.EnrollmentRepository using GORM.
type enrollmentRepository struct {
	db *gorm.DB
}

// NewEnrollmentRepository is the constructor for enrollmentRepository.
func NewEnrollmentRepository(db *gorm.DB) repository.EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

// EnrollDefaultSubjects enrolls the identity in every default subject of the
// section's cohort. The whole batch runs in one transaction; a duplicate
// enrollment is skipped rather than treated as a failure, so re-running after
// a partial earlier attempt only fills the gaps.
func (repo *enrollmentRepository) EnrollDefaultSubjects(ctx context.Context, identityID uuid.UUID, sectionCode string) (int, error) {
	var enrolled int

	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var section model.SectionModel
		if err := tx.Where("section_code = ?", sectionCode).First(&section).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.Errorf("section %q does not exist", sectionCode)
			}

			return errors.Wrap(err, "failed to load section")
		}

		var subjects []model.SubjectModel
		err := tx.Where("is_default = TRUE AND student_type = ? AND program = ? AND year_level = ?",
			section.StudentType, section.Program, section.YearLevel).
			Order("subject_code").
			Find(&subjects).Error
		if err != nil {
			return errors.Wrap(err, "failed to load default subjects")
		}

		for _, subject := range subjects {
			enrollment := model.EnrollmentModel{
				UserID:      identityID,
				SubjectCode: subject.SubjectCode,
				SectionCode: section.SectionCode,
			}
			if err := tx.Create(&enrollment).Error; err != nil {
				if isUniqueConstraintViolation(err) {
					continue
				}
				if isForeignKeyConstraintViolation(err) {
					return errors.Errorf("identity %s has no user row to enroll", identityID)
				}

				return errors.Wrap(err, "failed to create enrollment")
			}
			enrolled++
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return enrolled, nil
}
