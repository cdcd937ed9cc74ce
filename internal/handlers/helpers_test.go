package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"kelvi_tracker/internal/config"
	"kelvi_tracker/internal/handlers"
	"kelvi_tracker/internal/model"
	"kelvi_tracker/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testApp はサービスをモックに差し替えたルーター
type testApp struct {
	server   *httptest.Server
	auth     *mocks.AuthService
	progress *mocks.ProgressService
	quiz     *mocks.QuizService
	assist   *mocks.AssistService
}

func testConfig(authEnabled bool) *config.Config {
	return &config.Config{
		App:        config.AppConfig{Name: "KelviAI"},
		Auth:       config.AuthConfig{Enabled: authEnabled},
		JWT:        config.JWTConfig{SecretKey: "test-secret", AccessTokenTTL: time.Hour},
		CORS:       config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		Generation: config.GenerationConfig{Timeout: 5 * time.Second},
	}
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func setupTestApp(t *testing.T, cfg *config.Config) *testApp {
	t.Helper()
	app := &testApp{
		auth:     new(mocks.AuthService),
		progress: new(mocks.ProgressService),
		quiz:     new(mocks.QuizService),
		assist:   new(mocks.AssistService),
	}

	router := handlers.NewRouter(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), handlers.Router{
		Auth:     handlers.NewAuthHandler(app.auth),
		Progress: handlers.NewProgressHandler(app.progress),
		Quiz:     handlers.NewQuizHandler(app.quiz),
		Assist:   handlers.NewAssistHandler(app.assist),
		Health:   handlers.NewHealthHandler(newTestDB(t)),
	})
	app.server = httptest.NewServer(router)
	t.Cleanup(func() {
		app.server.Close()
		app.auth.AssertExpectations(t)
		app.progress.AssertExpectations(t)
		app.quiz.AssertExpectations(t)
		app.assist.AssertExpectations(t)
	})
	return app
}

// httpRequestDetails は送信するリクエストの内容
type httpRequestDetails struct {
	Method  string
	Path    string
	Body    any
	Headers map[string]string
}

// sendRequest はリクエストを送り、ステータスを検証してボディを返す
func sendRequest(t *testing.T, server *httptest.Server, details httpRequestDetails, expectedCode int) []byte {
	t.Helper()

	var body io.Reader
	if details.Body != nil {
		if s, ok := details.Body.(string); ok {
			body = strings.NewReader(s)
		} else {
			b, err := json.Marshal(details.Body)
			require.NoError(t, err)
			body = bytes.NewReader(b)
		}
	}

	req, err := http.NewRequest(details.Method, server.URL+details.Path, body)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range details.Headers {
		req.Header.Set(k, v)
	}

	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, expectedCode, resp.StatusCode, "body: %s", respBody)
	return respBody
}

// errorCode はエラーレスポンスの code を取り出す
func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var resp model.APIErrorResponse
	require.NoError(t, json.Unmarshal(body, &resp), "body: %s", body)
	return resp.Error.Code
}

func studentHeader(id uuid.UUID) map[string]string {
	return map[string]string{"X-Student-ID": id.String()}
}
