package main

import (
	"errors"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/jterrell/freightplan/internal/auth"
	"github.com/jterrell/freightplan/internal/config"
	"github.com/jterrell/freightplan/internal/database"
	"github.com/jterrell/freightplan/internal/handler"
	"github.com/jterrell/freightplan/internal/middleware"
	"github.com/jterrell/freightplan/internal/repository"
	"github.com/jterrell/freightplan/internal/router"
	"github.com/jterrell/freightplan/internal/service"
	"github.com/jterrell/freightplan/internal/store"
)

func main() {
	// .env is a development convenience; in deployment the environment is
	// set by the runtime.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, config.ErrMissingSecret) {
			log.Fatal("refusing to start without JWT_SECRET")
		}
		log.Fatalf("config: %v", err)
	}

	logger := newLogger(cfg.Env)
	defer func() { _ = logger.Sync() }()
	sugar := logger.Sugar()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		sugar.Fatalw("database connect failed", "err", err)
	}
	defer func() { _ = db.Close() }()

	hasher, err := auth.NewHasher(cfg.BcryptCost)
	if err != nil {
		sugar.Fatalw("credential store init failed", "err", err)
	}
	tokens, err := auth.NewTokenService(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.Audience, cfg.Auth.AccessTTL)
	if err != nil {
		sugar.Fatalw("token service init failed", "err", err)
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		sugar.Warnw("redis unavailable, login rate limiting disabled")
	}

	users := repository.NewUserRepo(db, hasher)
	scoped := store.NewScoped(store.New(db, sugar))
	audit := service.NewAuditPublisher(sugar)

	e := router.New(router.Deps{
		Auth:       handler.NewAuthHandler(users, hasher, tokens, audit, sugar),
		Planning:   handler.NewPlanningHandler(scoped, sugar),
		Gatekeeper: middleware.NewGatekeeper(tokens, cfg.Auth.APIPrefix, cfg.Auth.TenantField),
		RateLimit:  config.LoadRateLimitConfig(),
		Redis:      rdb,
	})

	sugar.Infow("starting server", "env", cfg.Env, "port", cfg.Port)
	if err := e.Start(":" + cfg.Port); err != nil {
		sugar.Fatalw("server stopped", "err", err)
	}
}

func newLogger(env string) *zap.Logger {
	if env == "prod" {
		l, err := zap.NewProduction()
		if err != nil {
			log.Fatalf("logger: %v", err)
		}
		return l
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	return l
}
