package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// logCtxKey はコンテキストにロガーを格納するためのキー
type logCtxKey struct{}

// ログに値を出さないヘッダー (小文字)
var sensitiveHeaders = map[string]bool{
	"authorization": true,
	"cookie":        true,
	"set-cookie":    true,
	"x-api-key":     true,
}

// ボディのデバッグログで伏せる JSON フィールド。image は base64 で巨大になるため。
var redactedBodyFields = map[string]bool{
	"password":     true,
	"token":        true,
	"access_token": true,
	"image":        true,
}

// デバッグ用にキャプチャするボディの上限
const maxLoggedBody = 4 << 10

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	bytesOut   int
	body       *bytes.Buffer
}

func (rr *responseRecorder) WriteHeader(statusCode int) {
	rr.statusCode = statusCode
	rr.ResponseWriter.WriteHeader(statusCode)
}

func (rr *responseRecorder) Write(b []byte) (int, error) {
	if rr.body != nil && rr.body.Len() < maxLoggedBody {
		rr.body.Write(b)
	}
	n, err := rr.ResponseWriter.Write(b)
	rr.bytesOut += n
	return n, err
}

// LoggingMiddleware はリクエストIDを付けたロガーをコンテキストに格納し、
// 開始・完了ログ (debug 時はヘッダーとボディも) を出力する
func LoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestLogger := logger.With("req_id", middleware.GetReqID(r.Context()))
			r = r.WithContext(context.WithValue(r.Context(), logCtxKey{}, requestLogger))

			requestLogger.Info("Request started",
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
			)

			debug := logger.Enabled(r.Context(), slog.LevelDebug)
			var reqBody []byte
			if debug && r.Body != nil {
				reqBody, _ = io.ReadAll(r.Body)
				r.Body = io.NopCloser(bytes.NewReader(reqBody))
			}

			rr := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			if debug {
				rr.body = new(bytes.Buffer)
			}

			next.ServeHTTP(rr, r)

			level := slog.LevelInfo
			switch {
			case rr.statusCode >= 500:
				level = slog.LevelError
			case rr.statusCode >= 400:
				level = slog.LevelWarn
			}

			requestLogger.Log(r.Context(), level, "Request completed",
				"status", rr.statusCode,
				"latency_ms", float64(time.Since(start).Nanoseconds())/1e6,
				"bytes_out", rr.bytesOut,
			)

			if debug {
				requestLogger.Debug("Request detail",
					"headers", formatHeaders(r.Header),
					"body", redactBody(reqBody),
				)
				requestLogger.Debug("Response detail",
					"status", rr.statusCode,
					"headers", formatHeaders(rr.Header()),
					"body", redactBody(rr.body.Bytes()),
				)
			}
		})
	}
}

// GetLogger はコンテキストから slog.Logger を取得する
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(logCtxKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// WithLogger はロガーをコンテキストに格納する (スケジューラ等の HTTP 外の処理用)
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, logCtxKey{}, logger)
}

func formatHeaders(headers http.Header) map[string]string {
	result := make(map[string]string, len(headers))
	for key, values := range headers {
		if sensitiveHeaders[strings.ToLower(key)] {
			result[key] = "[SENSITIVE]"
		} else {
			result[key] = strings.Join(values, ", ")
		}
	}
	return result
}

// redactBody は JSON オブジェクトの機微なフィールドを伏せる。JSON でなければ切り詰めて返す。
func redactBody(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err != nil {
		if len(body) > maxLoggedBody {
			body = body[:maxLoggedBody]
		}
		return string(body)
	}
	for k := range obj {
		if redactedBodyFields[strings.ToLower(k)] {
			obj[k] = "[REDACTED]"
		}
	}
	out, _ := json.Marshal(obj)
	if len(out) > maxLoggedBody {
		out = out[:maxLoggedBody]
	}
	return string(out)
}
