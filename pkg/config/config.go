package config

import (
	"fmt"
	"time"
)

const (
	// ModeLongPoll receives updates with getUpdates.
	ModeLongPoll = "longpoll"
	// ModeWebhook receives updates through an HTTPS webhook.
	ModeWebhook = "webhook"
)

// Config holds runtime configuration for the meat bot.
type Config struct {
	AppEnv string `mapstructure:"app_env"`

	Bot       BotConfig       `mapstructure:"bot"`
	Channel   ChannelConfig   `mapstructure:"channel"`
	OwnerID   int64           `mapstructure:"owner_id" validate:"gte=0"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	Sentry    SentryConfig    `mapstructure:"sentry"`
	Server    ServerConfig    `mapstructure:"server"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Media     MediaConfig     `mapstructure:"media"`
	I18n      I18nConfig      `mapstructure:"i18n"`
}

// BotConfig configures the Telegram transport.
type BotConfig struct {
	Token   string        `mapstructure:"token" validate:"required"`
	Mode    string        `mapstructure:"mode" validate:"oneof=longpoll webhook"`
	Timeout time.Duration `mapstructure:"timeout"`
	Webhook WebhookConfig `mapstructure:"webhook"`
}

// WebhookConfig is used when Bot.Mode is webhook.
type WebhookConfig struct {
	Listen    string `mapstructure:"listen"`
	PublicURL string `mapstructure:"public_url" validate:"omitempty,url"`
}

// ChannelConfig points at the channel users must join before using the menu.
type ChannelConfig struct {
	Username string `mapstructure:"username" validate:"required"`
	Link     string `mapstructure:"link" validate:"required,url"`
}

// DatabaseConfig holds PostgreSQL connection settings. URL takes precedence over discrete fields.
type DatabaseConfig struct {
	URL           string        `mapstructure:"url"`
	Host          string        `mapstructure:"host"`
	Port          string        `mapstructure:"port"`
	User          string        `mapstructure:"user"`
	Password      string        `mapstructure:"password"`
	Name          string        `mapstructure:"name" validate:"required_without=URL"`
	SSLMode       string        `mapstructure:"sslmode"`
	MaxConns      int           `mapstructure:"max_conns" validate:"gte=0"`
	QueryTimeout  time.Duration `mapstructure:"query_timeout"`
	MigrationsDir string        `mapstructure:"migrations_dir"`
}

// RedisConfig enables the shared rate limiter backend when Addr is set.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"gte=0"`
	PoolSize int    `mapstructure:"pool_size" validate:"gte=0"`
}

// LoggerConfig controls slog output.
type LoggerConfig struct {
	Level      string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format     string `mapstructure:"format" validate:"oneof=json text"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `mapstructure:"max_backups" validate:"gte=0"`
	MaxAgeDays int    `mapstructure:"max_age_days" validate:"gte=0"`
}

// SentryConfig configures error reporting.
type SentryConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	DSN     string  `mapstructure:"dsn" validate:"required_if=Enabled true"`
	Rate    float64 `mapstructure:"sample_rate" validate:"gte=0,lte=1"`
}

// ServerConfig configures the operational HTTP server (metrics, health).
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// RateLimitConfig describes per-user limits applied to every update.
type RateLimitConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	PerUser   RateLimitRule `mapstructure:"per_user"`
	Whitelist []int64       `mapstructure:"whitelist"`
	Sweep     time.Duration `mapstructure:"sweep_interval"`
}

// RateLimitRule is a limit of requests per window, e.g. 20 per "1m".
type RateLimitRule struct {
	Limit  int    `mapstructure:"limit" validate:"gte=0"`
	Window string `mapstructure:"window"`
}

// MediaConfig points at the directory holding certificates, videos and product pictures.
type MediaConfig struct {
	Dir string `mapstructure:"dir"`
}

// I18nConfig selects the language of bot texts and an optional override directory.
type I18nConfig struct {
	Language string `mapstructure:"language"`
	Dir      string `mapstructure:"dir"`
}

// GetDBConnectionString returns PostgreSQL DSN based on config values.
func (c *Config) GetDBConnectionString() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}

	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
