//go:generate mockery --name StudentRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"kelvi_tracker/internal/middleware"
	"kelvi_tracker/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type StudentRepository interface {
	Create(ctx context.Context, db *gorm.DB, student *model.Student) error
	FindByID(ctx context.Context, db *gorm.DB, studentID uuid.UUID) (*model.Student, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.Student, error)
	Activate(ctx context.Context, db *gorm.DB, studentID uuid.UUID) error
	UpdatePassword(ctx context.Context, db *gorm.DB, studentID uuid.UUID, passwordHash string) error
}

type gormStudentRepository struct{}

func NewGormStudentRepository() StudentRepository {
	return &gormStudentRepository{}
}

func (r *gormStudentRepository) Create(ctx context.Context, db *gorm.DB, student *model.Student) error {
	logger := middleware.GetLogger(ctx)

	result := db.WithContext(ctx).Create(student)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			logger.Warn("Duplicate key error on create student", "error", result.Error, "email", student.Email)
			return model.ErrConflict
		}
		logger.Error("Error creating student in DB", "error", result.Error, "email", student.Email)
		return fmt.Errorf("gormStudentRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormStudentRepository) FindByID(ctx context.Context, db *gorm.DB, studentID uuid.UUID) (*model.Student, error) {
	logger := middleware.GetLogger(ctx)
	var student model.Student

	result := db.WithContext(ctx).Where("student_id = ?", studentID).First(&student)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding student by ID in DB", "error", result.Error, "student_id", studentID.String())
		return nil, fmt.Errorf("gormStudentRepository.FindByID: %w", result.Error)
	}
	return &student, nil
}

func (r *gormStudentRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.Student, error) {
	logger := middleware.GetLogger(ctx)
	var student model.Student

	result := db.WithContext(ctx).Where("email = ?", email).First(&student)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			logger.Debug("Student not found by email", "email", email)
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding student by email in DB", "error", result.Error, "email", email)
		return nil, fmt.Errorf("gormStudentRepository.FindByEmail: %w", result.Error)
	}
	return &student, nil
}

func (r *gormStudentRepository) Activate(ctx context.Context, db *gorm.DB, studentID uuid.UUID) error {
	return r.updateColumn(ctx, db, studentID, "is_active", true, "gormStudentRepository.Activate")
}

func (r *gormStudentRepository) UpdatePassword(ctx context.Context, db *gorm.DB, studentID uuid.UUID, passwordHash string) error {
	return r.updateColumn(ctx, db, studentID, "password_hash", passwordHash, "gormStudentRepository.UpdatePassword")
}

func (r *gormStudentRepository) updateColumn(ctx context.Context, db *gorm.DB, studentID uuid.UUID, column string, value any, op string) error {
	logger := middleware.GetLogger(ctx)
	result := db.WithContext(ctx).Model(&model.Student{}).Where("student_id = ?", studentID).Update(column, value)
	if result.Error != nil {
		logger.Error("Error updating student", "error", result.Error, "student_id", studentID.String(), "column", column)
		return fmt.Errorf("%s: %w", op, result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// isUniqueViolation は postgres (23505) と sqlite の一意制約違反を判定する
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
