package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"kelvi_tracker/internal/config"
	"kelvi_tracker/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "KelviAI"},
		JWT: config.JWTConfig{SecretKey: "test-secret", AccessTokenTTL: time.Hour},
	}
}

func signToken(t *testing.T, cfg *config.Config, method jwt.SigningMethod, key any, sub string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(method, jwt.RegisteredClaims{
		Issuer:    cfg.App.Name,
		Subject:   sub,
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	s, err := token.SignedString(key)
	require.NoError(t, err)
	return s
}

func TestJWTAuthMiddleware(t *testing.T) {
	cfg := testJWTConfig()
	studentID := uuid.New()

	var gotID uuid.UUID
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := GetStudentIDFromContext(r.Context())
		require.NoError(t, err)
		gotID = id
		w.WriteHeader(http.StatusNoContent)
	})
	handler := JWTAuthMiddleware(cfg)(next)

	valid := signToken(t, cfg, jwt.SigningMethodHS256, []byte("test-secret"), studentID.String(), time.Now().Add(time.Hour))
	expired := signToken(t, cfg, jwt.SigningMethodHS256, []byte("test-secret"), studentID.String(), time.Now().Add(-time.Hour))
	wrongKey := signToken(t, cfg, jwt.SigningMethodHS256, []byte("other"), studentID.String(), time.Now().Add(time.Hour))
	badSub := signToken(t, cfg, jwt.SigningMethodHS256, []byte("test-secret"), "not-a-uuid", time.Now().Add(time.Hour))

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantCode   string
	}{
		{"正常系: 有効なトークン", "Bearer " + valid, http.StatusNoContent, ""},
		{"異常系: ヘッダーなし", "", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"異常系: 形式不正", "Token " + valid, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"異常系: 期限切れ", "Bearer " + expired, http.StatusUnauthorized, "TOKEN_EXPIRED"},
		{"異常系: 署名不一致", "Bearer " + wrongKey, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"異常系: sub が UUID でない", "Bearer " + badSub, http.StatusUnauthorized, "INVALID_TOKEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotID = uuid.Nil
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode == "" {
				assert.Equal(t, studentID, gotID)
				return
			}
			var body model.APIErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Error.Code)
		})
	}
}

func TestDevStudentContextMiddleware(t *testing.T) {
	studentID := uuid.New()
	handler := DevStudentContextMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := GetStudentIDFromContext(r.Context())
		require.NoError(t, err)
		assert.Equal(t, studentID, id)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Student-ID", studentID.String())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Student-ID", "nope")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoggingMiddleware_RedactsSecrets(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	handler := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotSame(t, slog.Default(), GetLogger(r.Context()))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"ok":true}`))
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"a@b.co","password":"hunter22"}`))
	req.Header.Set("Authorization", "Bearer secret-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	out := buf.String()
	assert.Contains(t, out, "Request completed")
	assert.Contains(t, out, "a@b.co")
	assert.NotContains(t, out, "hunter22")
	assert.NotContains(t, out, "secret-token")
}

func TestGetStudentIDFromContext_Missing(t *testing.T) {
	_, err := GetStudentIDFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.ErrorIs(t, err, model.ErrUnauthorized)
}
