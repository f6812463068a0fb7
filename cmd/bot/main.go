package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/Yusufakmalov/MY-MEAT/internal/bot"
	"github.com/Yusufakmalov/MY-MEAT/internal/catalog"
	"github.com/Yusufakmalov/MY-MEAT/internal/database"
	apperrors "github.com/Yusufakmalov/MY-MEAT/internal/errors"
	"github.com/Yusufakmalov/MY-MEAT/internal/gate"
	"github.com/Yusufakmalov/MY-MEAT/internal/health"
	"github.com/Yusufakmalov/MY-MEAT/internal/i18n"
	"github.com/Yusufakmalov/MY-MEAT/internal/lifecycle"
	"github.com/Yusufakmalov/MY-MEAT/internal/media"
	"github.com/Yusufakmalov/MY-MEAT/internal/menu"
	"github.com/Yusufakmalov/MY-MEAT/internal/middleware"
	"github.com/Yusufakmalov/MY-MEAT/internal/ratelimit"
	"github.com/Yusufakmalov/MY-MEAT/internal/repository"
	"github.com/Yusufakmalov/MY-MEAT/internal/server"
	"github.com/Yusufakmalov/MY-MEAT/internal/user"
	"github.com/Yusufakmalov/MY-MEAT/pkg/config"
	"github.com/Yusufakmalov/MY-MEAT/pkg/graceful"
	"github.com/Yusufakmalov/MY-MEAT/pkg/logger"
	"github.com/Yusufakmalov/MY-MEAT/pkg/redis"
)

func main() {
	if err := run(); err != nil {
		slog.Error("meat bot stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, v, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level := new(slog.LevelVar)
	level.Set(logger.ParseLevel(cfg.Logger.Level))

	if cfg.Sentry.Enabled {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.AppEnv,
			SampleRate:  cfg.Sentry.Rate,
		}); err != nil {
			return fmt.Errorf("init sentry: %w", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	log := logger.NewWithLevel(*cfg, level)
	slog.SetDefault(log)

	config.Watch(v, log, func(next *config.Config) {
		level.Set(logger.ParseLevel(next.Logger.Level))
		log.Info("log level updated", slog.String("level", next.Logger.Level))
	})

	log.Info("starting meat bot",
		slog.String("mode", cfg.Bot.Mode),
		slog.String("channel", cfg.Channel.Username),
		slog.String("ops_port", cfg.Server.Port),
	)

	shutdown := lifecycle.NewShutdown(log)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := shutdown.Execute(shutdownCtx); err != nil {
			log.Error("shutdown finished with errors", slog.Any("error", err))
		}
	}()

	db, err := database.Connect(ctx, cfg, log)
	if err != nil {
		return err
	}
	shutdown.Register("database", func(context.Context) error { return db.Close() })

	if err := database.NewMigrator(db, log).ApplyDir(ctx, cfg.Database.MigrationsDir); err != nil {
		log.Warn("migrations not applied, catalog and user bookkeeping degrade until the store is back",
			slog.Any("error", err))
	}

	translations, err := loadTranslations(cfg.I18n)
	if err != nil {
		return err
	}
	tr := translations.Translator(cfg.I18n.Language)

	if err := menu.Validate(); err != nil {
		return err
	}

	tb, err := bot.NewTelebot(*cfg)
	if err != nil {
		return err
	}

	checker := health.NewChecker(log)
	checker.AddCheck("database", health.NewDBChecker(db))
	checker.AddCheck("telegram", health.NewTelegramChecker(tb))

	store := media.NewDirStore(cfg.Media.Dir)
	products := catalog.NewService(repository.NewProductRepository(db, cfg.Database.QueryTimeout, log), log)
	users := user.NewService(repository.NewUserRepository(db, cfg.Database.QueryTimeout, log), log)

	rules := ratelimit.NewRules(cfg.RateLimit, cfg.OwnerID)
	memoryLimiter := ratelimit.NewMemoryLimiter(log)
	cleaner := newCleaner(cfg.RateLimit, rules, log)
	cleaner.Add("memory", memoryLimiter)

	var primary ratelimit.Limiter
	if cfg.Redis.Addr != "" {
		rdb, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			log.Warn("redis unavailable, rate limits stay per process", slog.Any("error", err))
		} else {
			redisLimiter := ratelimit.NewRedisLimiter(rdb, log)
			primary = redisLimiter
			cleaner.Add("redis", redisLimiter)
			checker.AddCheck("redis", rdb)
			shutdown.Register("redis", func(context.Context) error { return rdb.Close() })
		}
	}
	limiter := ratelimit.NewAdaptiveLimiter(primary, memoryLimiter, log)

	meatBot := bot.New(tb, log, bot.Deps{
		Gate:       gate.New(gate.NewTelegramResolver(tb, cfg.Channel.Username), cfg.OwnerID, log),
		Users:      users,
		Menu:       menu.NewMachine(tr, products, store, cfg.Channel.Link, log),
		Media:      store,
		Translator: tr,
		RateLimit:  middleware.NewRateLimitMiddleware(limiter, rules, tr, log),
		ErrHandler: apperrors.NewHandler(log, cfg.Sentry.Enabled),
	})

	ops := graceful.NewServer(log, &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           server.NewOpsRouter(checker, log),
		ReadHeaderTimeout: 5 * time.Second,
	}, cfg.Server.ShutdownTimeout)

	opsDone := make(chan struct{})
	go func() {
		defer close(opsDone)
		if err := ops.ListenAndServe(ctx); err != nil {
			log.Error("ops server failed", slog.Any("error", err))
		}
	}()
	shutdown.Register("ops-server", func(shutdownCtx context.Context) error {
		select {
		case <-opsDone:
			return nil
		case <-shutdownCtx.Done():
			return shutdownCtx.Err()
		}
	})

	if rules.Enabled() {
		go cleaner.Run(ctx)
	}

	go meatBot.Start()
	shutdown.Register("telegram-bot", func(context.Context) error {
		meatBot.Stop()
		return nil
	})

	<-ctx.Done()
	log.Info("meat bot shutting down")
	return nil
}

func loadTranslations(cfg config.I18nConfig) (*i18n.Manager, error) {
	if cfg.Dir != "" {
		manager, err := i18n.LoadFromDir(cfg.Dir, cfg.Language)
		if err != nil {
			return nil, fmt.Errorf("load translations from %s: %w", cfg.Dir, err)
		}
		return manager, nil
	}

	manager, err := i18n.Load(cfg.Language)
	if err != nil {
		return nil, fmt.Errorf("load translations: %w", err)
	}
	return manager, nil
}

// newCleaner sweeps buckets idle for longer than the limit window.
func newCleaner(cfg config.RateLimitConfig, rules *ratelimit.Rules, log *slog.Logger) *ratelimit.Cleaner {
	_, window, err := rules.GetPerUserLimit()
	if err != nil {
		log.Warn("invalid rate limit window, sweeping hourly buckets", slog.Any("error", err))
		window = time.Hour
	}

	interval := cfg.Sweep
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	return ratelimit.NewCleaner(interval, window, log)
}
