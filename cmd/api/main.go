package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/peanutblog/blog-api/internal/api"
	"github.com/peanutblog/blog-api/internal/core/service"
	"github.com/peanutblog/blog-api/internal/infrastructure/config"
	mongodb "github.com/peanutblog/blog-api/internal/infrastructure/db/mongo"
	redisdb "github.com/peanutblog/blog-api/internal/infrastructure/db/redis"
	"github.com/peanutblog/blog-api/internal/ratelimit"
	"github.com/peanutblog/blog-api/pkg/logger"
)

// @title Blog API
// @version 1.0
// @description Credential based access control API for the blog platform.
// @BasePath /api
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
	})

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if cfg.IsProduction() && cfg.UsesDefaultAdminPasswords() {
		log.Warn().Msg("seed admin accounts are using the default password")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	adminRepo := mongodb.NewAdminRepository(db)
	seeds := []service.SeedAdmin{
		{Username: cfg.SuperAdmin.Username, Password: cfg.SuperAdmin.Password, Super: true},
		{Username: cfg.BasicAdmin.Username, Password: cfg.BasicAdmin.Password},
	}
	if err := service.SeedAdmins(ctx, adminRepo, seeds, log); err != nil {
		log.Fatal().Err(err).Msg("admin seeding failed")
	}

	var store ratelimit.Store
	if cfg.RateLimit.Store == "redis" {
		store = ratelimit.NewRedisStore(rdb)
	} else {
		mem := ratelimit.NewMemoryStore()
		defer mem.Stop()
		store = mem
	}

	e := api.NewRouter(db, rdb, store, cfg, log)

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
