package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"kelvi_tracker/internal/config"
	"kelvi_tracker/internal/model"
	"kelvi_tracker/internal/webutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func unauthorized(w http.ResponseWriter, r *http.Request, code, message string) {
	webutil.HandleError(w, GetLogger(r.Context()), model.NewAppError(code, message, "", model.ErrUnauthorized))
}

// JWTAuthMiddleware は Authorization: Bearer の HS256 トークンを検証し、
// sub の生徒IDをコンテキストに載せる
func JWTAuthMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("JWT auth failed: Authorization header missing")
				unauthorized(w, r, "UNAUTHORIZED", "Authorization header is required.")
				return
			}

			scheme, tokenString, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "bearer") || tokenString == "" {
				logger.Warn("JWT auth failed: Invalid Authorization header format")
				unauthorized(w, r, "UNAUTHORIZED", "Authorization header must be 'Bearer <token>'.")
				return
			}

			claims := &jwt.RegisteredClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
				return []byte(cfg.JWT.SecretKey), nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(cfg.App.Name))
			if err != nil || !token.Valid {
				code := "INVALID_TOKEN"
				if errors.Is(err, jwt.ErrTokenExpired) {
					code = "TOKEN_EXPIRED"
				}
				logger.Warn("JWT auth failed: Invalid token", "error", err)
				unauthorized(w, r, code, "Access token is invalid or expired.")
				return
			}

			studentID, err := uuid.Parse(claims.Subject)
			if err != nil {
				logger.Warn("JWT auth failed: Invalid subject (sub) format", "subject", claims.Subject, "error", err)
				unauthorized(w, r, "INVALID_TOKEN", "Access token does not identify a student.")
				return
			}

			ctx := WithStudentID(r.Context(), studentID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithStudentID は生徒IDをコンテキストに設定し、ロガーにも付与する
func WithStudentID(ctx context.Context, studentID uuid.UUID) context.Context {
	ctx = context.WithValue(ctx, model.StudentIDKey, studentID)
	return context.WithValue(ctx, logCtxKey{}, GetLogger(ctx).With("student_id", studentID.String()))
}

func GetStudentIDFromContext(ctx context.Context) (uuid.UUID, error) {
	value, ok := ctx.Value(model.StudentIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, model.NewAppError("UNAUTHORIZED", "Student could not be identified from the request.", "", model.ErrUnauthorized)
	}
	return value, nil
}
