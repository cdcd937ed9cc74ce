//go:generate mockery --name TokenRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"kelvi_tracker/internal/middleware"
	"kelvi_tracker/internal/model"

	"gorm.io/gorm"
)

type TokenRepository interface {
	CreateVerificationToken(ctx context.Context, db *gorm.DB, token *model.UserVerificationToken) error
	FindVerificationToken(ctx context.Context, db *gorm.DB, token string) (*model.UserVerificationToken, error)
	DeleteVerificationToken(ctx context.Context, db *gorm.DB, token string) error
	CreatePasswordResetToken(ctx context.Context, db *gorm.DB, token *model.PasswordResetToken) error
	FindPasswordResetToken(ctx context.Context, db *gorm.DB, token string) (*model.PasswordResetToken, error)
	DeletePasswordResetToken(ctx context.Context, db *gorm.DB, token string) error
}

type gormTokenRepository struct{}

func NewGormTokenRepository() TokenRepository {
	return &gormTokenRepository{}
}

func (r *gormTokenRepository) CreateVerificationToken(ctx context.Context, db *gorm.DB, token *model.UserVerificationToken) error {
	if err := db.WithContext(ctx).Create(token).Error; err != nil {
		middleware.GetLogger(ctx).Error("Failed to create verification token", "error", err, "student_id", token.StudentID)
		return fmt.Errorf("gormTokenRepository.CreateVerificationToken: %w", err)
	}
	return nil
}

func (r *gormTokenRepository) FindVerificationToken(ctx context.Context, db *gorm.DB, tokenStr string) (*model.UserVerificationToken, error) {
	var token model.UserVerificationToken
	if err := findToken(ctx, db, tokenStr, &token); err != nil {
		return nil, wrapTokenErr("gormTokenRepository.FindVerificationToken", err)
	}
	return &token, nil
}

func (r *gormTokenRepository) DeleteVerificationToken(ctx context.Context, db *gorm.DB, tokenStr string) error {
	if err := db.WithContext(ctx).Where("token = ?", tokenStr).Delete(&model.UserVerificationToken{}).Error; err != nil {
		middleware.GetLogger(ctx).Error("Failed to delete verification token", "error", err)
		return fmt.Errorf("gormTokenRepository.DeleteVerificationToken: %w", err)
	}
	return nil
}

func (r *gormTokenRepository) CreatePasswordResetToken(ctx context.Context, db *gorm.DB, token *model.PasswordResetToken) error {
	if err := db.WithContext(ctx).Create(token).Error; err != nil {
		middleware.GetLogger(ctx).Error("Failed to create password reset token", "error", err, "student_id", token.StudentID)
		return fmt.Errorf("gormTokenRepository.CreatePasswordResetToken: %w", err)
	}
	return nil
}

func (r *gormTokenRepository) FindPasswordResetToken(ctx context.Context, db *gorm.DB, tokenStr string) (*model.PasswordResetToken, error) {
	var token model.PasswordResetToken
	if err := findToken(ctx, db, tokenStr, &token); err != nil {
		return nil, wrapTokenErr("gormTokenRepository.FindPasswordResetToken", err)
	}
	return &token, nil
}

func (r *gormTokenRepository) DeletePasswordResetToken(ctx context.Context, db *gorm.DB, tokenStr string) error {
	if err := db.WithContext(ctx).Where("token = ?", tokenStr).Delete(&model.PasswordResetToken{}).Error; err != nil {
		middleware.GetLogger(ctx).Error("Failed to delete password reset token", "error", err)
		return fmt.Errorf("gormTokenRepository.DeletePasswordResetToken: %w", err)
	}
	return nil
}

func findToken(ctx context.Context, db *gorm.DB, tokenStr string, dst any) error {
	err := db.WithContext(ctx).Where("token = ?", tokenStr).First(dst).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		middleware.GetLogger(ctx).Error("Failed to find token", "error", err)
	}
	return err
}

func wrapTokenErr(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
