package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"kelvi_tracker/internal/config"
	"kelvi_tracker/internal/middleware"
	"kelvi_tracker/internal/model"
	"kelvi_tracker/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	verificationTokenTTL  = 24 * time.Hour
	passwordResetTokenTTL = time.Hour
)

//go:generate mockery --name AuthService --output ./mocks --outpkg mocks --case=underscore
type AuthService interface {
	Signup(ctx context.Context, req *model.SignupRequest) (*model.Student, error)
	VerifyAccount(ctx context.Context, token string) error
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	GetStudent(ctx context.Context, studentID uuid.UUID) (*model.Student, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type authService struct {
	db           *gorm.DB
	studentRepo  repository.StudentRepository
	tokenRepo    repository.TokenRepository
	progressRepo repository.ProgressRepository
	mailer       Mailer
	cfg          *config.Config
}

func NewAuthService(db *gorm.DB, studentRepo repository.StudentRepository, tokenRepo repository.TokenRepository, progressRepo repository.ProgressRepository, mailer Mailer, cfg *config.Config) AuthService {
	return &authService{
		db:           db,
		studentRepo:  studentRepo,
		tokenRepo:    tokenRepo,
		progressRepo: progressRepo,
		mailer:       mailer,
		cfg:          cfg,
	}
}

// Signup は生徒と空の進捗レコードを同じトランザクションで作成し、確認メールを送る
func (s *authService) Signup(ctx context.Context, req *model.SignupRequest) (*model.Student, error) {
	logger := middleware.GetLogger(ctx)
	var student *model.Student

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := s.studentRepo.FindByEmail(ctx, tx, req.Email)
		if err == nil {
			logger.Warn("Email already exists", "email", req.Email)
			return model.NewAppError("DUPLICATE_EMAIL", "This email address is already registered.", "email", model.ErrConflict)
		}
		if !errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.Error("Failed to hash password", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to process the password.", "", err)
		}

		newStudent := &model.Student{
			StudentID:    uuid.New(),
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: string(hashedPassword),
			IsActive:     false,
		}
		if err := s.studentRepo.Create(ctx, tx, newStudent); err != nil {
			if errors.Is(err, model.ErrConflict) {
				return model.NewAppError("DUPLICATE_EMAIL", "This email address is already registered.", "email", model.ErrConflict)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to create the account.", "", err)
		}

		// 進捗はゼロ値で作成する
		if err := s.progressRepo.Create(ctx, tx, &model.StudentProgress{StudentID: newStudent.StudentID}); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to initialise progress.", "", err)
		}

		token, err := newToken()
		if err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to generate a token.", "", err)
		}
		if err := s.tokenRepo.CreateVerificationToken(ctx, tx, &model.UserVerificationToken{
			Token:     token,
			StudentID: newStudent.StudentID,
			ExpiresAt: time.Now().Add(verificationTokenTTL),
		}); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to save the token.", "", err)
		}

		verifyURL := fmt.Sprintf("%s/verify-email?token=%s", s.cfg.App.FrontendURL, token)
		subject := fmt.Sprintf("[%s] Please verify your account", s.cfg.App.Name)
		body := fmt.Sprintf("Welcome to %s!\n\nOpen the link below to activate your account:\n%s\n\nThis link expires in 24 hours.", s.cfg.App.Name, verifyURL)
		if err := s.mailer.Send(ctx, newStudent.Email, subject, body); err != nil {
			return model.NewAppError("EMAIL_SEND_FAILED", "Failed to send the verification email. Please try again later.", "", err)
		}

		student = newStudent
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Student registered and verification email sent", "student_id", student.StudentID)
	return student, nil
}

func (s *authService) VerifyAccount(ctx context.Context, tokenString string) error {
	logger := middleware.GetLogger(ctx)

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		token, err := s.tokenRepo.FindVerificationToken(ctx, tx, tokenString)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				logger.Warn("Verification token not found")
				return model.NewAppError("INVALID_TOKEN", "This link is invalid or has already been used.", "token", model.ErrInvalidInput)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
		}

		if time.Now().After(token.ExpiresAt) {
			logger.Warn("Verification token expired", "expires_at", token.ExpiresAt)
			_ = s.tokenRepo.DeleteVerificationToken(ctx, tx, tokenString)
			return model.NewAppError("INVALID_TOKEN", "This link has expired.", "token", model.ErrInvalidInput)
		}

		if err := s.studentRepo.Activate(ctx, tx, token.StudentID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("NOT_FOUND", "Account not found.", "", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to activate the account.", "", err)
		}

		if err := s.tokenRepo.DeleteVerificationToken(ctx, tx, tokenString); err != nil {
			logger.Error("Failed to delete used verification token", "error", err)
		}

		logger.Info("Account verified successfully", "student_id", token.StudentID)
		return nil
	})
}

func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	logger := middleware.GetLogger(ctx).With("email", req.Email)
	authFailed := model.NewAppError("AUTHENTICATION_FAILED", "Email or password is incorrect.", "", model.ErrUnauthorized)

	student, err := s.studentRepo.FindByEmail(ctx, s.db, req.Email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Login failed: student not found")
			return nil, authFailed
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(student.PasswordHash), []byte(req.Password)); err != nil {
		logger.Warn("Login failed: password mismatch", "student_id", student.StudentID)
		return nil, authFailed
	}

	if !student.IsActive {
		logger.Warn("Login failed: account not active", "student_id", student.StudentID)
		return nil, model.NewAppError("ACCOUNT_NOT_ACTIVE", "Your account is not verified yet. Please check your email.", "", model.ErrForbidden)
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    s.cfg.App.Name,
		Subject:   student.StudentID.String(),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWT.AccessTokenTTL)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		logger.Error("Failed to sign JWT", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to issue a token.", "", err)
	}

	logger.Info("Login successful", "student_id", student.StudentID)
	return &model.LoginResponse{AccessToken: signed}, nil
}

func (s *authService) GetStudent(ctx context.Context, studentID uuid.UUID) (*model.Student, error) {
	student, err := s.studentRepo.FindByID(ctx, s.db, studentID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("STUDENT_NOT_FOUND", "Student not found.", "", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}
	return student, nil
}

// RequestPasswordReset は未登録のメールアドレスでも成功扱いにする
func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	logger := middleware.GetLogger(ctx).With("email", email)

	student, err := s.studentRepo.FindByEmail(ctx, s.db, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Password reset requested for non-existent email")
			return nil
		}
		return model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}

	token, err := newToken()
	if err != nil {
		return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to generate a token.", "", err)
	}
	if err := s.tokenRepo.CreatePasswordResetToken(ctx, s.db, &model.PasswordResetToken{
		Token:     token,
		StudentID: student.StudentID,
		ExpiresAt: time.Now().Add(passwordResetTokenTTL),
	}); err != nil {
		return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to save the token.", "", err)
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.cfg.App.FrontendURL, token)
	subject := fmt.Sprintf("[%s] Reset your password", s.cfg.App.Name)
	body := fmt.Sprintf("Open the link below to reset your password:\n%s\n\nThis link expires in 1 hour.", resetURL)
	if err := s.mailer.Send(ctx, student.Email, subject, body); err != nil {
		return model.NewAppError("EMAIL_SEND_FAILED", "Failed to send the email.", "", err)
	}

	logger.Info("Password reset email sent")
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, tokenString, newPassword string) error {
	logger := middleware.GetLogger(ctx)

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		token, err := s.tokenRepo.FindPasswordResetToken(ctx, tx, tokenString)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("INVALID_TOKEN", "This link is invalid or has already been used.", "token", model.ErrInvalidInput)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
		}
		if time.Now().After(token.ExpiresAt) {
			_ = s.tokenRepo.DeletePasswordResetToken(ctx, tx, tokenString)
			return model.NewAppError("INVALID_TOKEN", "This link has expired.", "token", model.ErrInvalidInput)
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
		if err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to process the password.", "", err)
		}

		if err := s.studentRepo.UpdatePassword(ctx, tx, token.StudentID, string(hashedPassword)); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to update the password.", "", err)
		}

		if err := s.tokenRepo.DeletePasswordResetToken(ctx, tx, tokenString); err != nil {
			logger.Error("Failed to delete used password reset token", "error", err)
		}

		logger.Info("Password reset successfully", "student_id", token.StudentID)
		return nil
	})
}

func newToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
