package service

import (
	"context"
	"errors"

	"kelvi_tracker/internal/middleware"
	"kelvi_tracker/internal/model"
	"kelvi_tracker/internal/progress"
	"kelvi_tracker/internal/repository"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// progressStore は progress.Progress と user_progress / weekly_streaks の相互変換を行う
type progressStore struct {
	repo repository.ProgressRepository
}

// load は生徒の進捗と今週分のカレンダーを読み込む
func (s progressStore) load(ctx context.Context, db *gorm.DB, studentID uuid.UUID, today civil.Date) (*model.StudentProgress, progress.Progress, error) {
	rec, err := s.repo.FindByStudentID(ctx, db, studentID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, progress.Progress{}, model.NewAppError("PROGRESS_NOT_FOUND", "No progress record exists for this student.", "", model.ErrNotFound)
		}
		return nil, progress.Progress{}, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load progress.", "", err)
	}

	weekStart := progress.StartOfWeek(today)
	rows, err := s.repo.FindWeeklyStreaks(ctx, db, studentID, weekStart.String())
	if err != nil {
		return nil, progress.Progress{}, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load weekly streaks.", "", err)
	}

	p := progress.Progress{
		Streak:           rec.Streak,
		WeeklyCalendar:   make(map[civil.Date]bool, len(rows)),
		ShownQuestionIDs: []string(rec.ShownQuestionIDs),
	}
	if rec.LastStreakUpdate != nil {
		d, err := civil.ParseDate(*rec.LastStreakUpdate)
		if err != nil {
			middleware.GetLogger(ctx).Error("Corrupt last_streak_update", "error", err, "student_id", studentID, "value", *rec.LastStreakUpdate)
			return nil, progress.Progress{}, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load progress.", "", err)
		}
		p.LastStreakUpdate = d
	}
	for _, row := range rows {
		d, err := civil.ParseDate(row.StreakDate)
		if err != nil {
			middleware.GetLogger(ctx).Error("Corrupt streak_date", "error", err, "student_id", studentID, "value", row.StreakDate)
			return nil, progress.Progress{}, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to load weekly streaks.", "", err)
		}
		p.WeeklyCalendar[d] = row.HasStreak
	}
	return rec, p, nil
}

// save はスナップショットを書き戻す。カレンダーは (student_id, streak_date) で upsert し、
// 週の開始より前の行は削除する。失敗はすべて呼び出し側にとって致命的。
func (s progressStore) save(ctx context.Context, tx *gorm.DB, rec *model.StudentProgress, p progress.Progress, today civil.Date) error {
	rec.Streak = p.Streak
	rec.LastStreakUpdate = nil
	if !p.LastStreakUpdate.IsZero() {
		d := p.LastStreakUpdate.String()
		rec.LastStreakUpdate = &d
	}
	rec.ShownQuestionIDs = datatypes.JSONSlice[string](p.ShownQuestionIDs)

	if err := s.repo.Update(ctx, tx, rec); err != nil {
		return model.NewAppError("PERSISTENCE_FAILED", "Failed to save progress. Please retry.", "", err)
	}

	rows := make([]model.WeeklyStreak, 0, len(p.WeeklyCalendar))
	for d, v := range p.WeeklyCalendar {
		rows = append(rows, model.WeeklyStreak{StudentID: rec.StudentID, StreakDate: d.String(), HasStreak: v})
	}
	if err := s.repo.UpsertWeeklyStreaks(ctx, tx, rows); err != nil {
		return model.NewAppError("PERSISTENCE_FAILED", "Failed to save weekly streaks. Please retry.", "", err)
	}
	if err := s.repo.DeleteWeeklyStreaksBefore(ctx, tx, rec.StudentID, progress.StartOfWeek(today).String()); err != nil {
		return model.NewAppError("PERSISTENCE_FAILED", "Failed to save weekly streaks. Please retry.", "", err)
	}
	return nil
}

// toProgressResponse はダッシュボード用のレスポンスを組み立てる
func toProgressResponse(p progress.Progress, today civil.Date) *model.ProgressResponse {
	resp := &model.ProgressResponse{
		Streak:    p.Streak,
		WeekStart: progress.StartOfWeek(today).String(),
		Week:      progress.RefreshWeek(p, today),
		Message:   progress.Message(p.Streak),
		Quote:     progress.Quote(today),
	}
	if !p.LastStreakUpdate.IsZero() {
		d := p.LastStreakUpdate.String()
		resp.LastStreakUpdate = &d
	}
	return resp
}
