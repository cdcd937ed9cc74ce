// internal/model/student.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Student はログインする生徒アカウント
type Student struct {
	StudentID    uuid.UUID      `gorm:"type:uuid;primaryKey" json:"student_id"`
	Name         string         `gorm:"not null" json:"name"`
	Email        string         `gorm:"unique;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	IsActive     bool           `json:"is_active" gorm:"default:false"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Student) TableName() string {
	return "students"
}

type ContextKey string

const (
	StudentIDKey ContextKey = "studentID"
)

// SignupRequest は新規登録APIのリクエストボディ (DTO)
type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// StudentResponse はクライアントに返す生徒情報
type StudentResponse struct {
	StudentID uuid.UUID `json:"student_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func NewStudentResponse(s *Student) *StudentResponse {
	return &StudentResponse{
		StudentID: s.StudentID,
		Name:      s.Name,
		Email:     s.Email,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
	}
}
