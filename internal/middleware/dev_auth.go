// internal/middleware/dev_auth.go
package middleware

import (
	"net/http"

	"github.com/google/uuid"
)

// DevStudentContextMiddleware は開発時用。
// X-Student-ID ヘッダーの UUID をそのまま生徒IDとして扱う (DB 検証なし)。
func DevStudentContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := GetLogger(r.Context())

		raw := r.Header.Get("X-Student-ID")
		if raw == "" {
			logger.Warn("[DEV AUTH] X-Student-ID header missing")
			unauthorized(w, r, "UNAUTHORIZED", "[DEV] Missing X-Student-ID header.")
			return
		}

		studentID, err := uuid.Parse(raw)
		if err != nil {
			logger.Warn("[DEV AUTH] Invalid X-Student-ID format", "value", raw)
			unauthorized(w, r, "UNAUTHORIZED", "[DEV] Invalid X-Student-ID format.")
			return
		}

		logger.Debug("[DEV AUTH] Student ID set to context (no validation)", "student_id", studentID)
		next.ServeHTTP(w, r.WithContext(WithStudentID(r.Context(), studentID)))
	})
}
