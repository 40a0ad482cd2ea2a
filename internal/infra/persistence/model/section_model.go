package model

import (
	"time"

	"github.com/google/uuid"
)

// SectionModel mirrors the 'sections' table. StudentType stores the display
// label ("Senior High" / "College"), matching the student_profiles column.
type SectionModel struct {
	SectionCode string `gorm:"type:varchar(50);primary_key"`
	Program     string `gorm:"type:varchar(100);not null;index:idx_sections_cohort"`
	YearLevel   string `gorm:"type:varchar(50);not null;index:idx_sections_cohort"`
	StudentType string `gorm:"type:varchar(20);not null;index:idx_sections_cohort"`
	CreatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (SectionModel) TableName() string {
	return "sections"
}

// SubjectModel mirrors the 'subjects' table. IsDefault marks subjects every
// new student of the cohort is enrolled in automatically.
type SubjectModel struct {
	SubjectCode string `gorm:"type:varchar(50);primary_key"`
	Name        string `gorm:"type:varchar(255);not null"`
	Program     string `gorm:"type:varchar(100);not null"`
	YearLevel   string `gorm:"type:varchar(50);not null"`
	StudentType string `gorm:"type:varchar(20);not null"`
	IsDefault   bool   `gorm:"not null;default:false"`
	CreatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (SubjectModel) TableName() string {
	return "subjects"
}

// EnrollmentModel mirrors the 'enrollments' table. The (user, subject) pair is
// unique so re-running the default enrollment never duplicates rows.
type EnrollmentModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_enrollments_user_subject"`
	SubjectCode string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_enrollments_user_subject"`
	SectionCode string    `gorm:"type:varchar(50);not null"`
	CreatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (EnrollmentModel) TableName() string {
	return "enrollments"
}
