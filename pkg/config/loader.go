// Package config provides configuration loading and validation utilities.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads .env files, configs/<APP_ENV>.yaml and environment variables, validates
// the result and returns it together with the viper instance used to watch the file.
func Load() (*Config, *viper.Viper, error) {
	if err := godotenv.Load(".env.local", ".env"); err != nil {
		// env files are optional
		_ = err
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	cfg, v, err := LoadFile(fmt.Sprintf("./configs/%s.yaml", env))
	if err != nil {
		return nil, nil, err
	}
	cfg.AppEnv = env

	return cfg, v, nil
}

// LoadFile reads configuration from path, which may be missing, and the environment.
func LoadFile(path string) (*Config, *viper.Viper, error) {
	v := viper.New()
	setDefaults(v)
	if err := bindLegacyEnv(v); err != nil {
		return nil, nil, fmt.Errorf("bind env: %w", err)
	}

	v.SetConfigFile(path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, nil, err
	}

	return cfg, v, nil
}

// Watch re-reads the config file whenever it changes and passes the validated result to onChange.
// Invalid edits are logged and ignored.
func Watch(v *viper.Viper, log *slog.Logger, onChange func(*Config)) {
	if v == nil || onChange == nil {
		return
	}
	if log == nil {
		log = slog.Default()
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}

		cfg, err := decode(v)
		if err != nil {
			log.Warn("ignoring invalid config change", slog.String("file", e.Name), slog.Any("error", err))
			return
		}

		log.Info("config reloaded", slog.String("file", e.Name))
		onChange(cfg)
	})
	v.WatchConfig()
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks struct tags and cross-field rules.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("validate config: nil config")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	if cfg.Bot.Mode == ModeWebhook && cfg.Bot.Webhook.Listen == "" {
		return errors.New("validate config: bot.webhook.listen is required in webhook mode")
	}

	if cfg.RateLimit.Enabled {
		if _, err := time.ParseDuration(cfg.RateLimit.PerUser.Window); err != nil {
			return fmt.Errorf("validate config: rate_limit.per_user.window: %w", err)
		}
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("bot.token", "")
	v.SetDefault("bot.mode", ModeLongPoll)
	v.SetDefault("bot.timeout", 10*time.Second)
	v.SetDefault("bot.webhook.listen", "")
	v.SetDefault("bot.webhook.public_url", "")

	v.SetDefault("channel.username", "")
	v.SetDefault("channel.link", "")
	v.SetDefault("owner_id", 0)

	v.SetDefault("database.url", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.query_timeout", 5*time.Second)
	v.SetDefault("database.migrations_dir", "migrations")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.file", "")
	v.SetDefault("logger.max_size_mb", 50)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age_days", 30)

	v.SetDefault("sentry.enabled", false)
	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.sample_rate", 1.0)

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("rate_limit.enabled", false)
	v.SetDefault("rate_limit.per_user.limit", 30)
	v.SetDefault("rate_limit.per_user.window", "1m")
	v.SetDefault("rate_limit.whitelist", []int64{})
	v.SetDefault("rate_limit.sweep_interval", 5*time.Minute)

	v.SetDefault("media.dir", ".")

	v.SetDefault("i18n.language", "uz")
	v.SetDefault("i18n.dir", "")
}

// bindLegacyEnv keeps the variable names used by earlier deployments working.
func bindLegacyEnv(v *viper.Viper) error {
	bindings := map[string][]string{
		"bot.token": {"BOT_TOKEN", "TG_BOT_TOKEN"},
		"owner_id":  {"OWNER_ID", "CREATOR_ID"},
	}

	for key, envs := range bindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return err
		}
	}

	return nil
}
