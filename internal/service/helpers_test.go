package service_test

import (
	"fmt"
	"testing"
	"time"

	"kelvi_tracker/internal/model"
	"kelvi_tracker/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB はテストごとに独立したインメモリ SQLite を返す
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

// seedStudent は生徒とゼロ値の進捗を作る
func seedStudent(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, db.Create(&model.Student{
		StudentID:    id,
		Name:         "Asha",
		Email:        id.String() + "@example.com",
		PasswordHash: "hash",
		IsActive:     true,
	}).Error)
	require.NoError(t, db.Create(&model.StudentProgress{StudentID: id}).Error)
	return id
}

// fixedClock は IST の固定時刻を返す
func fixedClock(t *testing.T, value string) (func() time.Time, *time.Location) {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	now, err := time.ParseInLocation("2006-01-02 15:04", value, loc)
	require.NoError(t, err)
	return func() time.Time { return now }, loc
}

func loadProgress(t *testing.T, db *gorm.DB, id uuid.UUID) *model.StudentProgress {
	t.Helper()
	var rec model.StudentProgress
	require.NoError(t, db.First(&rec, "student_id = ?", id).Error)
	return &rec
}
