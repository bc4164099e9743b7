// Command api runs the task list HTTP service.
//
// @title        Task API
// @version      1.0
// @description  Shared task list with role-gated access.
// @BasePath     /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taskhub/task-api/internal/api"
	"github.com/taskhub/task-api/internal/core/token"
	"github.com/taskhub/task-api/internal/infrastructure/config"
	mongodb "github.com/taskhub/task-api/internal/infrastructure/db/mongo"
	redisdb "github.com/taskhub/task-api/internal/infrastructure/db/redis"
	"github.com/taskhub/task-api/internal/infrastructure/seed"
	"github.com/taskhub/task-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger is not up yet.
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	credRepo := mongodb.NewCredentialRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)
	if err := credRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}
	if err := taskRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("task index creation failed")
	}

	if err := seed.Run(ctx, credRepo, taskRepo, seed.Options{
		OwnerPassword: cfg.Seed.OwnerPassword,
		GuestPassword: cfg.Seed.GuestPassword,
		DemoData:      cfg.Seed.DemoData,
	}, log); err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}

	tokenCfg := token.Config{
		Secret:   cfg.JWT.Secret,
		Issuer:   cfg.JWT.Issuer,
		Audience: cfg.JWT.Audience,
		TTL:      cfg.JWT.TokenTTL,
	}

	e := api.NewRouter(db, rdb, tokenCfg, log)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting http server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
