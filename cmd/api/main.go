// Package main is the entrypoint for the e-waste classification API server.
//
// @title        EcoScan E-Waste Classification API
// @version      1.0
// @description  Authenticated image classification for electronic waste with a per-user audit ledger.
// @BasePath     /
// @securityDefinitions.apikey SessionAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"os"

	"github.com/ecoscan/ewaste-api/internal/api"
	"github.com/ecoscan/ewaste-api/internal/core/domain"
	"github.com/ecoscan/ewaste-api/internal/infrastructure/db/postgres"
	"github.com/ecoscan/ewaste-api/internal/infrastructure/db/redis"
	"github.com/ecoscan/ewaste-api/internal/infrastructure/model"
	"github.com/ecoscan/ewaste-api/internal/infrastructure/storage"
	"github.com/ecoscan/ewaste-api/internal/pkg/config"
	"github.com/ecoscan/ewaste-api/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		l := logger.Init(logger.Options{})
		l.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.IsDevelopment(),
	})

	if err := postgres.Migrate(cfg.Database.URL); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	pool, err := postgres.Connect(ctx, postgres.Config{URL: cfg.Database.URL})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close redis client")
		}
	}()
	log.Info().Msg("connected to redis")

	store, err := storage.New(cfg.Upload.Dir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Upload.Dir).Msg("failed to prepare upload directory")
	}

	// A failed model probe degrades classification but never stops the
	// process; every other route keeps serving.
	classifier := model.New(ctx, model.Config{URL: cfg.Model.URL}, domain.Categories, log)

	e := api.NewRouter(pool, rdb, classifier, store, cfg, log)

	log.Info().
		Str("port", cfg.Port).
		Str("env", cfg.Env).
		Bool("model_available", classifier.Available()).
		Msg("starting server")

	if err := e.Start(":" + cfg.Port); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
