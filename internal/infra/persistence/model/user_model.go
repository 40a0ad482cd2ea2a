// Package model holds the GORM persistence models. They mirror the database
// schema and never leak past the persistence layer; repositories map them to
// domain entities at the boundary.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. The primary key is the identity
// provider's user ID, so no UUID is generated locally.
type UserModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	Email      string    `gorm:"type:varchar(255);unique;not null"`
	FirstName  string    `gorm:"type:varchar(100)"`
	MiddleName string    `gorm:"type:varchar(100)"`
	LastName   string    `gorm:"type:varchar(100)"`
	Role       string    `gorm:"type:varchar(20);not null"`
	Verified   bool      `gorm:"not null;default:false"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	StudentProfile *StudentProfileModel `gorm:"foreignKey:UserID"`
	TeacherProfile *TeacherProfileModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// StudentProfileModel mirrors the 'student_profiles' table. UserID references
// users.id. StudentType stores the display label ("Senior High" / "College").
type StudentProfileModel struct {
	UserID      uuid.UUID `gorm:"primaryKey"`
	StudentType string    `gorm:"type:varchar(20);not null"`
	Program     string    `gorm:"type:varchar(100)"`
	YearLevel   string    `gorm:"type:varchar(50)"`
	SectionCode string    `gorm:"type:varchar(50)"`
	SchoolID    string    `gorm:"type:varchar(20);unique"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (StudentProfileModel) TableName() string {
	return "student_profiles"
}

// TeacherProfileModel mirrors the 'teacher_profiles' table. UserID references
// users.id.
type TeacherProfileModel struct {
	UserID     uuid.UUID `gorm:"primaryKey"`
	Department string    `gorm:"type:varchar(20);not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (TeacherProfileModel) TableName() string {
	return "teacher_profiles"
}
