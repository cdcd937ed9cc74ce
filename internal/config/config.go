// internal/config/config.go
package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type DatabaseConfig struct {
	Driver      string `mapstructure:"driver"` // postgres | sqlite
	URL         string `mapstructure:"url"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	FrontendURL string `mapstructure:"frontend_url"`
	// 日付境界 (ストリークのリセット) を判定するタイムゾーン
	Timezone string `mapstructure:"timezone"`
}

type AuthConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type JWTConfig struct {
	SecretKey      string        `mapstructure:"secret_key"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type MailerConfig struct {
	Type string `mapstructure:"type"` // log | smtp | ses
}

type SMTPConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	From string `mapstructure:"from"`
}

type SESConfig struct {
	Region          string `mapstructure:"region"`
	From            string `mapstructure:"from"`
	AuthType        string `mapstructure:"auth_type"` // static_credentials | iam_role
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
}

type QuizConfig struct {
	SourceURL        string        `mapstructure:"source_url"`
	MaxFetchAttempts int           `mapstructure:"max_fetch_attempts"`
	HistoryLimit     int           `mapstructure:"history_limit"`
	HistoryPolicy    string        `mapstructure:"history_policy"` // reset | evict_oldest
	Timeout          time.Duration `mapstructure:"timeout"`
}

type GenerationConfig struct {
	BaseURL       string        `mapstructure:"base_url"`
	APIKey        string        `mapstructure:"api_key"`
	Model         string        `mapstructure:"model"`
	SiteURL       string        `mapstructure:"site_url"`
	SiteName      string        `mapstructure:"site_name"`
	RatePerSecond float64       `mapstructure:"rate_per_second"`
	Burst         int           `mapstructure:"burst"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxTokens     int           `mapstructure:"max_tokens"`
}

type SchedulerConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	PruneAt string `mapstructure:"prune_at"` // "HH:MM" (app.timezone)
}

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Log        LogConfig        `mapstructure:"log"`
	App        AppConfig        `mapstructure:"app"`
	Auth       AuthConfig       `mapstructure:"auth"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	CORS       CORSConfig       `mapstructure:"cors"`
	Mailer     MailerConfig     `mapstructure:"mailer"`
	SMTP       SMTPConfig       `mapstructure:"smtp"`
	SES        SESConfig        `mapstructure:"ses"`
	Quiz       QuizConfig       `mapstructure:"quiz"`
	Generation GenerationConfig `mapstructure:"generation"`
	Scheduler  SchedulerConfig  `mapstructure:"scheduler"`
}

var Cfg Config

// Location は app.timezone を解決する。不正な値の場合は UTC。
func (c *Config) Location() *time.Location {
	if c.App.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		log.Printf("Unknown timezone %q, falling back to UTC: %v", c.App.Timezone, err)
		return time.UTC
	}
	return loc
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("database.driver", DefaultDatabaseDriver)
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("app.name", AppName)
	v.SetDefault("app.frontend_url", DefaultFrontendURL)
	v.SetDefault("app.timezone", DefaultTimezone)
	v.SetDefault("auth.enabled", DefaultAuthEnabled)
	v.SetDefault("jwt.access_token_ttl", DefaultAccessTokenTTL)
	v.SetDefault("cors.allowed_origins", []string{DefaultFrontendURL})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"})
	v.SetDefault("cors.allow_credentials", true)
	v.SetDefault("cors.max_age", 300)
	v.SetDefault("mailer.type", "log")
	v.SetDefault("quiz.source_url", DefaultTriviaSourceURL)
	v.SetDefault("quiz.max_fetch_attempts", DefaultMaxFetchAttempts)
	v.SetDefault("quiz.history_limit", DefaultHistoryLimit)
	v.SetDefault("quiz.history_policy", DefaultHistoryPolicy)
	v.SetDefault("quiz.timeout", DefaultQuizTimeout)
	v.SetDefault("generation.base_url", DefaultGenerationBaseURL)
	v.SetDefault("generation.model", DefaultGenerationModel)
	v.SetDefault("generation.rate_per_second", 1.0)
	v.SetDefault("generation.burst", 5)
	v.SetDefault("generation.timeout", DefaultGenerationTimeout)
	v.SetDefault("generation.max_tokens", 2048)
	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.prune_at", DefaultPruneAt)
}

// LoadConfig は path 配下の config.yaml と APP_ 接頭辞の環境変数から Cfg を読み込む。
func LoadConfig(path string) error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.AddConfigPath(".")

	// 例: APP_DATABASE_URL -> database.url
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.BindEnv("auth.enabled", "AUTH_ENABLED")
	v.BindEnv("generation.api_key", "OPENROUTER_API_KEY")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Warning: Config file not found. Using default settings or environment variables if available.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	if err := v.Unmarshal(&Cfg); err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}

	if Cfg.Quiz.MaxFetchAttempts <= 0 {
		log.Printf("Quiz max_fetch_attempts not set or invalid, using default '%d'", DefaultMaxFetchAttempts)
		Cfg.Quiz.MaxFetchAttempts = DefaultMaxFetchAttempts
	}
	if Cfg.Quiz.HistoryLimit <= 0 {
		log.Printf("Quiz history_limit not set or invalid, using default '%d'", DefaultHistoryLimit)
		Cfg.Quiz.HistoryLimit = DefaultHistoryLimit
	}
	if Cfg.Database.URL == "" {
		log.Println("Warning: Database URL is not set in config.")
	}
	if Cfg.JWT.SecretKey == "" {
		log.Println("Warning: JWT secret key is not set in config.")
	}
	if Cfg.Generation.APIKey == "" {
		log.Println("Warning: Generation API key is not set; assist endpoints will fail upstream.")
	}

	log.Println("Config loaded successfully")
	log.Printf("Server Port: %s", Cfg.Server.Port)
	log.Printf("Timezone: %s", Cfg.App.Timezone)
	log.Printf("Auth Enabled: %t", Cfg.Auth.Enabled)

	return nil
}
