package repository

import (
	"fmt"
	"testing"

	"kelvi_tracker/internal/model"

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
	require.NoError(t, Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func createStudent(t *testing.T, db *gorm.DB, email string) *model.Student {
	t.Helper()
	s := &model.Student{
		StudentID:    uuid.New(),
		Name:         "Asha",
		Email:        email,
		PasswordHash: "hash",
	}
	require.NoError(t, db.Create(s).Error)
	return s
}
