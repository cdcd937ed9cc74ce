//go:generate mockery --name ProgressRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kelvi_tracker/internal/middleware"
	"kelvi_tracker/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgressRepository は user_progress と weekly_streaks を扱う。
// 日付はすべて YYYY-MM-DD 文字列 (文字列比較で順序が保たれる)。
type ProgressRepository interface {
	Create(ctx context.Context, db *gorm.DB, progress *model.StudentProgress) error
	FindByStudentID(ctx context.Context, db *gorm.DB, studentID uuid.UUID) (*model.StudentProgress, error)
	Update(ctx context.Context, db *gorm.DB, progress *model.StudentProgress) error
	FindWeeklyStreaks(ctx context.Context, db *gorm.DB, studentID uuid.UUID, from string) ([]model.WeeklyStreak, error)
	UpsertWeeklyStreaks(ctx context.Context, db *gorm.DB, streaks []model.WeeklyStreak) error
	DeleteWeeklyStreaksBefore(ctx context.Context, db *gorm.DB, studentID uuid.UUID, before string) error
	PruneWeeklyStreaks(ctx context.Context, db *gorm.DB, before string) (int64, error)
}

type gormProgressRepository struct{}

func NewGormProgressRepository() ProgressRepository {
	return &gormProgressRepository{}
}

func (r *gormProgressRepository) Create(ctx context.Context, db *gorm.DB, progress *model.StudentProgress) error {
	logger := middleware.GetLogger(ctx)
	if err := db.WithContext(ctx).Create(progress).Error; err != nil {
		if isUniqueViolation(err) {
			logger.Warn("Progress already exists for student", "student_id", progress.StudentID)
			return model.ErrConflict
		}
		logger.Error("Error creating progress in DB", "error", err, "student_id", progress.StudentID)
		return fmt.Errorf("gormProgressRepository.Create: %w", err)
	}
	return nil
}

func (r *gormProgressRepository) FindByStudentID(ctx context.Context, db *gorm.DB, studentID uuid.UUID) (*model.StudentProgress, error) {
	var progress model.StudentProgress
	err := db.WithContext(ctx).Where("student_id = ?", studentID).First(&progress).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		middleware.GetLogger(ctx).Error("Error finding progress in DB", "error", err, "student_id", studentID)
		return nil, fmt.Errorf("gormProgressRepository.FindByStudentID: %w", err)
	}
	return &progress, nil
}

func (r *gormProgressRepository) Update(ctx context.Context, db *gorm.DB, progress *model.StudentProgress) error {
	// map で渡してゼロ値 (streak=0, NULL) も更新対象にする
	result := db.WithContext(ctx).Model(&model.StudentProgress{}).
		Where("student_id = ?", progress.StudentID).
		Updates(map[string]any{
			"streak":             progress.Streak,
			"last_streak_update": progress.LastStreakUpdate,
			"shown_question_ids": progress.ShownQuestionIDs,
			"updated_at":         time.Now(),
		})
	if result.Error != nil {
		middleware.GetLogger(ctx).Error("Error updating progress in DB", "error", result.Error, "student_id", progress.StudentID)
		return fmt.Errorf("gormProgressRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormProgressRepository) FindWeeklyStreaks(ctx context.Context, db *gorm.DB, studentID uuid.UUID, from string) ([]model.WeeklyStreak, error) {
	var streaks []model.WeeklyStreak
	err := db.WithContext(ctx).
		Where("student_id = ? AND streak_date >= ?", studentID, from).
		Order("streak_date ASC").
		Find(&streaks).Error
	if err != nil {
		middleware.GetLogger(ctx).Error("Error finding weekly streaks", "error", err, "student_id", studentID)
		return nil, fmt.Errorf("gormProgressRepository.FindWeeklyStreaks: %w", err)
	}
	return streaks, nil
}

// UpsertWeeklyStreaks は (student_id, streak_date) の衝突時に has_streak を上書きする
func (r *gormProgressRepository) UpsertWeeklyStreaks(ctx context.Context, db *gorm.DB, streaks []model.WeeklyStreak) error {
	if len(streaks) == 0 {
		return nil
	}
	err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "streak_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"has_streak", "updated_at"}),
	}).Create(&streaks).Error
	if err != nil {
		middleware.GetLogger(ctx).Error("Error upserting weekly streaks", "error", err, "count", len(streaks))
		return fmt.Errorf("gormProgressRepository.UpsertWeeklyStreaks: %w", err)
	}
	return nil
}

func (r *gormProgressRepository) DeleteWeeklyStreaksBefore(ctx context.Context, db *gorm.DB, studentID uuid.UUID, before string) error {
	err := db.WithContext(ctx).
		Where("student_id = ? AND streak_date < ?", studentID, before).
		Delete(&model.WeeklyStreak{}).Error
	if err != nil {
		middleware.GetLogger(ctx).Error("Error deleting old weekly streaks", "error", err, "student_id", studentID)
		return fmt.Errorf("gormProgressRepository.DeleteWeeklyStreaksBefore: %w", err)
	}
	return nil
}

// PruneWeeklyStreaks は全生徒分の古いカレンダー行を削除し、削除件数を返す
func (r *gormProgressRepository) PruneWeeklyStreaks(ctx context.Context, db *gorm.DB, before string) (int64, error) {
	result := db.WithContext(ctx).Where("streak_date < ?", before).Delete(&model.WeeklyStreak{})
	if result.Error != nil {
		middleware.GetLogger(ctx).Error("Error pruning weekly streaks", "error", result.Error, "before", before)
		return 0, fmt.Errorf("gormProgressRepository.PruneWeeklyStreaks: %w", result.Error)
	}
	return result.RowsAffected, nil
}
