// internal/model/progress.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DateLayout は日付カラム (時刻なし) の保存形式
const DateLayout = "2006-01-02"

// StudentProgress は生徒ごとのストリークと出題履歴 (user_progress テーブル)
type StudentProgress struct {
	StudentID        uuid.UUID                   `gorm:"type:uuid;primaryKey"`
	Streak           int                         `gorm:"not null;default:0"`
	LastStreakUpdate *string                     `gorm:"size:10"` // YYYY-MM-DD, 未設定は NULL
	ShownQuestionIDs datatypes.JSONSlice[string] `gorm:"type:json"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (StudentProgress) TableName() string {
	return "user_progress"
}

// WeeklyStreak はカレンダーの1日分。(student_id, streak_date) で upsert する
type WeeklyStreak struct {
	StudentID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	StreakDate string    `gorm:"size:10;primaryKey"`
	HasStreak  bool      `gorm:"not null;default:false"`
	UpdatedAt  time.Time
}

func (WeeklyStreak) TableName() string {
	return "weekly_streaks"
}

// SubmitAnswerRequest はクイズ回答結果の送信リクエスト
type SubmitAnswerRequest struct {
	IsCorrect *bool `json:"is_correct" validate:"required"`
}

// ProgressResponse はダッシュボード用のストリーク情報
type ProgressResponse struct {
	Streak           int     `json:"streak"`
	LastStreakUpdate *string `json:"last_streak_update"`
	WeekStart        string  `json:"week_start"`
	Week             [7]bool `json:"week"`
	Message          string  `json:"message"`
	Quote            string  `json:"quote"`
}

// WeekResponse は日曜始まりの7日分の表示用カレンダー
type WeekResponse struct {
	WeekStart string  `json:"week_start"`
	Week      [7]bool `json:"week"`
}
