// internal/config/constants.go
package config

import "time"

// アプリケーション情報
const (
	AppName    = "KelviAI"
	AppVersion = "1.0.0"
)

// デフォルト設定値
const (
	DefaultServerPort     = ":8080"
	DefaultDatabaseDriver = "postgres"
	DefaultLogLevel       = "info"
	DefaultFrontendURL    = "http://localhost:3000"
	DefaultTimezone       = "Asia/Kolkata"
	DefaultAuthEnabled    = true
	DefaultAccessTokenTTL = 24 * time.Hour
	DefaultPruneAt        = "00:05"
)

// トリビア問題
const (
	DefaultTriviaSourceURL  = "https://opentdb.com/api.php?amount=1&type=multiple"
	DefaultMaxFetchAttempts = 3
	DefaultHistoryLimit     = 100
	DefaultHistoryPolicy    = "reset"
	DefaultQuizTimeout      = 5 * time.Second
)

// 生成 API (OpenRouter 互換)
const (
	DefaultGenerationBaseURL = "https://openrouter.ai/api/v1"
	DefaultGenerationModel   = "openai/gpt-4o-mini"
	DefaultGenerationTimeout = 60 * time.Second
)
