package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Arjunreddypulugu/timeclock-web/internal/api"
	"github.com/Arjunreddypulugu/timeclock-web/internal/infrastructure/config"
	mongodb "github.com/Arjunreddypulugu/timeclock-web/internal/infrastructure/db/mongo"
	redisdb "github.com/Arjunreddypulugu/timeclock-web/internal/infrastructure/db/redis"
	"github.com/Arjunreddypulugu/timeclock-web/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// --- HTTP server ---
	e := api.NewRouter(db, rdb, cfg, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("timeclock server starting")
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("http server stopped")
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

// ensureIndexes creates the collection indexes at startup so the unique
// constraints (worker number, site name, username) hold from the first write.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := mongodb.NewWorkerRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongodb.NewSessionRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongodb.NewSiteRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return mongodb.NewAuthRepository(db).EnsureIndexes(ctx)
}
