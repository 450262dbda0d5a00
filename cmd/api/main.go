package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/birthdaykeeper/birthday-api/internal/api"
	"github.com/birthdaykeeper/birthday-api/internal/core/ports"
	"github.com/birthdaykeeper/birthday-api/internal/infrastructure/config"
	"github.com/birthdaykeeper/birthday-api/internal/infrastructure/db/mongo"
	"github.com/birthdaykeeper/birthday-api/internal/infrastructure/db/redis"
	"github.com/birthdaykeeper/birthday-api/pkg/logger"
)

// @title Birthday-Keeper RESTful API
// @version 1.0
// @description A REST service where users keep their friends' birthdays and see the days remaining until each one.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		l := logger.Get()
		l.Fatal().Err(err).Msg("loading configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	mongoClient, database, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to mongodb")
	}
	defer func() {
		if err := mongoClient.Disconnect(ctx); err != nil {
			log.Error().Err(err).Msg("disconnecting mongodb")
		}
	}()

	userRepo := mongo.NewUserRepository(database)
	friendRepo := mongo.NewFriendRepository(database)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("creating user indexes")
	}
	if err := friendRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("creating friend indexes")
	}

	var (
		redisClient *goredis.Client
		guard       ports.LoginGuard
	)
	if cfg.Redis.Addr != "" {
		redisClient, err = redis.Connect(ctx, redis.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("connecting to redis")
		}
		defer redisClient.Close()
		guard = redis.NewLoginGuard(redisClient, cfg.Guard.MaxFailures, cfg.Guard.Window)
	} else {
		log.Warn().Msg("REDIS_ADDR not set, running without the failed-login guard")
	}

	e := api.NewRouter(api.Options{
		JWTSecret:  cfg.JWTSecret,
		JWTIssuer:  cfg.JWTIssuer,
		TokenTTL:   cfg.TokenTTL,
		BcryptCost: cfg.BcryptCost,
		Mongo:      database,
		Redis:      redisClient,
	}, userRepo, friendRepo, guard, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("starting server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutting down server")
	}
}
