package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"kelvi_tracker/internal/model"
	"kelvi_tracker/internal/progress"
	"kelvi_tracker/internal/repository"
	"kelvi_tracker/internal/repository/mocks"
	"kelvi_tracker/internal/service"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProgressService_SubmitAnswer(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	// 2024-06-12 は水曜日
	now, loc := fixedClock(t, "2024-06-12 10:00")
	svc := service.NewProgressService(db, repository.NewGormProgressRepository(), loc, now)
	id := seedStudent(t, db)

	t.Run("正常系: 正解でストリークが伸び当日に印が付く", func(t *testing.T) {
		resp, err := svc.SubmitAnswer(ctx, id, true)
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Streak)
		require.NotNil(t, resp.LastStreakUpdate)
		assert.Equal(t, "2024-06-12", *resp.LastStreakUpdate)
		assert.Equal(t, "2024-06-09", resp.WeekStart)
		assert.Equal(t, [7]bool{false, false, false, true, false, false, false}, resp.Week)

		resp, err = svc.SubmitAnswer(ctx, id, true)
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Streak)
		assert.Equal(t, 2, loadProgress(t, db, id).Streak)
	})

	t.Run("正常系: 不正解でストリークは0になるが当日の印は残る", func(t *testing.T) {
		resp, err := svc.SubmitAnswer(ctx, id, false)
		require.NoError(t, err)
		assert.Equal(t, 0, resp.Streak)
		assert.True(t, resp.Week[3])

		var rows []model.WeeklyStreak
		require.NoError(t, db.Where("student_id = ?", id).Find(&rows).Error)
		require.Len(t, rows, 1)
		assert.True(t, rows[0].HasStreak)
	})

	t.Run("異常系: 進捗が無い生徒は404", func(t *testing.T) {
		_, err := svc.SubmitAnswer(ctx, uuid.New(), true)
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrNotFound))
	})
}

func TestProgressService_SubmitAnswer_PrunesPreviousWeek(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	now, loc := fixedClock(t, "2024-06-12 10:00")
	svc := service.NewProgressService(db, repository.NewGormProgressRepository(), loc, now)
	id := seedStudent(t, db)

	require.NoError(t, db.Create(&model.WeeklyStreak{StudentID: id, StreakDate: "2024-06-05", HasStreak: true}).Error)

	_, err := svc.SubmitAnswer(ctx, id, true)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&model.WeeklyStreak{}).Where("student_id = ? AND streak_date < ?", id, "2024-06-09").Count(&count).Error)
	assert.Zero(t, count)
}

func TestProgressService_GetDashboard(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := repository.NewGormProgressRepository()
	id := seedStudent(t, db)

	yesterday, loc := fixedClock(t, "2024-06-11 23:30")
	_, err := service.NewProgressService(db, repo, loc, yesterday).SubmitAnswer(ctx, id, true)
	require.NoError(t, err)

	t.Run("正常系: 同じ日ならストリークは変わらない", func(t *testing.T) {
		resp, err := service.NewProgressService(db, repo, loc, yesterday).GetDashboard(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Streak)
		assert.Equal(t, "Great start! Keep going!", resp.Message)
		assert.Equal(t, progress.Quote(civil.Date{Year: 2024, Month: time.June, Day: 11}), resp.Quote)
	})

	t.Run("正常系: 日付が変わるとストリークは0に戻り、カレンダーは残る", func(t *testing.T) {
		today, _ := fixedClock(t, "2024-06-12 00:10")
		svc := service.NewProgressService(db, repo, loc, today)

		resp, err := svc.GetDashboard(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 0, resp.Streak)
		require.NotNil(t, resp.LastStreakUpdate)
		assert.Equal(t, "2024-06-12", *resp.LastStreakUpdate)
		assert.True(t, resp.Week[2], "火曜日の印は残る")
		assert.Equal(t, 0, loadProgress(t, db, id).Streak)

		// 2回目は何も変わらない
		again, err := svc.GetDashboard(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, resp, again)
	})

	t.Run("正常系: 未回答の生徒は保存しない", func(t *testing.T) {
		fresh := seedStudent(t, db)
		resp, err := service.NewProgressService(db, repo, loc, yesterday).GetDashboard(ctx, fresh)
		require.NoError(t, err)
		assert.Equal(t, 0, resp.Streak)
		assert.Nil(t, resp.LastStreakUpdate)
		assert.Nil(t, loadProgress(t, db, fresh).LastStreakUpdate)
	})
}

func TestProgressService_GetWeek(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := repository.NewGormProgressRepository()
	id := seedStudent(t, db)

	sunday, loc := fixedClock(t, "2024-06-09 09:00")
	_, err := service.NewProgressService(db, repo, loc, sunday).SubmitAnswer(ctx, id, true)
	require.NoError(t, err)

	friday, _ := fixedClock(t, "2024-06-14 09:00")
	week, err := service.NewProgressService(db, repo, loc, friday).GetWeek(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-09", week.WeekStart)
	assert.Equal(t, [7]bool{true, false, false, false, false, false, false}, week.Week)
}

func TestProgressService_SubmitAnswer_PersistenceFailure(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	now, loc := fixedClock(t, "2024-06-12 10:00")
	id := uuid.New()

	repo := new(mocks.ProgressRepository)
	repo.On("FindByStudentID", mock.Anything, mock.Anything, id).Return(&model.StudentProgress{StudentID: id, Streak: 4}, nil)
	repo.On("FindWeeklyStreaks", mock.Anything, mock.Anything, id, "2024-06-09").Return([]model.WeeklyStreak{}, nil)
	repo.On("Update", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("disk full"))

	svc := service.NewProgressService(db, repo, loc, now)
	resp, err := svc.SubmitAnswer(ctx, id, true)

	assert.Nil(t, resp)
	var appErr *model.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "PERSISTENCE_FAILED", appErr.Detail.Code)
	repo.AssertNotCalled(t, "UpsertWeeklyStreaks", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestProgressService_GetDashboard_CorruptDates(t *testing.T) {
	ctx := context.Background()
	now, loc := fixedClock(t, "2024-06-12 10:00")
	id := uuid.New()

	tests := []struct {
		name   string
		record *model.StudentProgress
		rows   []model.WeeklyStreak
	}{
		{
			name:   "異常系: last_streak_update が日付として読めない",
			record: &model.StudentProgress{StudentID: id, Streak: 3, LastStreakUpdate: ptr("2024-13-45")},
			rows:   []model.WeeklyStreak{},
		},
		{
			name:   "異常系: streak_date が日付として読めない",
			record: &model.StudentProgress{StudentID: id, Streak: 3, LastStreakUpdate: ptr("2024-06-11")},
			rows:   []model.WeeklyStreak{{StudentID: id, StreakDate: "2024-06-1x", HasStreak: true}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.ProgressRepository)
			repo.On("FindByStudentID", mock.Anything, mock.Anything, id).Return(tt.record, nil)
			repo.On("FindWeeklyStreaks", mock.Anything, mock.Anything, id, "2024-06-09").Return(tt.rows, nil)

			svc := service.NewProgressService(setupTestDB(t), repo, loc, now)
			resp, err := svc.GetDashboard(ctx, id)

			assert.Nil(t, resp)
			var appErr *model.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, "INTERNAL_SERVER_ERROR", appErr.Detail.Code)
			// 壊れた値を未設定扱いにして日付の切り替えを書き込まない
			repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
			repo.AssertExpectations(t)
		})
	}
}

func ptr(s string) *string { return &s }
