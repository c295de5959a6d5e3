package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"teslo-shop/internal/config"
	"teslo-shop/internal/database"
	"teslo-shop/internal/logger"
	"teslo-shop/internal/server"
	"teslo-shop/internal/storage"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func connectRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	dbService, err := database.New(ctx, cfg.Database, log)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	log.Info("Database health check", zap.Any("health", dbService.Health(ctx)))

	if err := database.RunMigrations(dbService.DB(), log); err != nil {
		dbService.Close()
		return fmt.Errorf("run migrations: %w", err)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = connectRedis(ctx, cfg.Redis)
		if err != nil {
			dbService.Close()
			return fmt.Errorf("connect redis at %s: %w", cfg.Redis.Addr(), err)
		}
		log.Info("Redis connected, login rate limit is shared")
	}

	images, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		dbService.Close()
		return fmt.Errorf("init image storage: %w", err)
	}
	log.Info("Image storage ready", zap.String("driver", cfg.Storage.Driver))

	srv, err := server.NewServer(cfg, log, dbService, redisClient, images)
	if err != nil {
		dbService.Close()
		return fmt.Errorf("create server: %w", err)
	}

	return srv.Run(ctx)
}

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("invalid configuration: %v", err))
	}

	log, err := logger.New(cfg.Server.Env, cfg.Server.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting teslo shop API",
		zap.String("env", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("Server stopped with error", zap.Error(err))
	}
}
