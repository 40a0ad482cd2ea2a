// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"portal/internal/domain/entity"
	"portal/internal/domain/repository"
	"portal/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements the repository.UserRepository interface using GORM.
// The portal only reads user rows; the provisioning trigger behind the
// identity provider writes them.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a repository.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// EmailExists reports whether a user row is registered under the email.
func (repo *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("email = ?", email).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check email existence")
	}

	return count > 0, nil
}

// FindByEmail retrieves a single user by their email address, preloading
// whichever role profile the user has.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Preload("StudentProfile").
		Preload("TeacherProfile").
		Where("email = ?", email).
		First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// FindByIDAndRole retrieves the user by identity ID and verifies the stored
// role matches the one the caller signed in under. A user row under a
// different role reads as ErrRoleRecordNotFound, not as a plain mismatch,
// so the sign-in flow can refuse the attempt without leaking which role the
// account actually holds.
func (repo *userRepository) FindByIDAndRole(ctx context.Context, id uuid.UUID, role entity.Role) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Preload("StudentProfile").
		Preload("TeacherProfile").
		Where("id = ?", id).
		First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	if userM.Role != role.String() {
		return nil, repository.ErrRoleRecordNotFound
	}
	// The role row itself must exist; a student user without a student
	// profile is half-provisioned and cannot be signed in.
	if role == entity.RoleStudent && userM.StudentProfile == nil {
		return nil, repository.ErrRoleRecordNotFound
	}
	if role == entity.RoleTeacher && userM.TeacherProfile == nil {
		return nil, repository.ErrRoleRecordNotFound
	}

	return toUserDomain(&userM), nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:             data.ID,
		Email:          data.Email,
		FirstName:      data.FirstName,
		MiddleName:     data.MiddleName,
		LastName:       data.LastName,
		Role:           entity.Role(data.Role),
		Verified:       data.Verified,
		StudentProfile: toStudentProfileDomain(data.StudentProfile),
		TeacherProfile: toTeacherProfileDomain(data.TeacherProfile),
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

// toStudentProfileDomain converts a GORM StudentProfileModel to a domain StudentProfile.
func toStudentProfileDomain(data *model.StudentProfileModel) *entity.StudentProfile {
	if data == nil {
		return nil
	}

	return &entity.StudentProfile{
		UserID:      data.UserID,
		StudentType: entity.StudentTypeFromLabel(data.StudentType),
		Program:     data.Program,
		YearLevel:   data.YearLevel,
		SectionCode: data.SectionCode,
		SchoolID:    data.SchoolID,
		UpdatedAt:   data.UpdatedAt,
	}
}

// toTeacherProfileDomain converts a GORM TeacherProfileModel to a domain TeacherProfile.
func toTeacherProfileDomain(data *model.TeacherProfileModel) *entity.TeacherProfile {
	if data == nil {
		return nil
	}

	return &entity.TeacherProfile{
		UserID:     data.UserID,
		Department: entity.Department(data.Department),
		UpdatedAt:  data.UpdatedAt,
	}
}
