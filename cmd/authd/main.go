// Package main is the entrypoint for the authentication service.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	cxauth "github.com/Kevin-Shelton/verizon-cx-demo-sub000"
	"github.com/Kevin-Shelton/verizon-cx-demo-sub000/internal/config"
	"github.com/Kevin-Shelton/verizon-cx-demo-sub000/internal/httpapi"
	"github.com/Kevin-Shelton/verizon-cx-demo-sub000/internal/server"
	"github.com/Kevin-Shelton/verizon-cx-demo-sub000/internal/stores"
	"github.com/Kevin-Shelton/verizon-cx-demo-sub000/password"
)

func main() {
	// Dotenv is a development convenience; a missing file is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	engineCfg := engineConfig(cfg)

	builder := cxauth.New().
		WithConfig(engineCfg).
		WithAuditSink(cxauth.NewJSONWriterSink(os.Stdout))

	var pool *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		pool, err = pgxpool.New(ctx, cfg.DatabaseURL)
		cancel()
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		builder.WithCredentialStore(stores.NewPostgresStore(pool))
		logger.Info("using postgres credential store")
	} else {
		store, err := seedDemoStore(engineCfg)
		if err != nil {
			logger.Error("failed to seed demo credential store", "error", err)
			os.Exit(1)
		}
		builder.WithCredentialStore(store)
		logger.Info("using seeded in-memory credential store")
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error("invalid redis URL", "error", err)
			os.Exit(1)
		}
		redisClient = redis.NewClient(opts)
		defer redisClient.Close()
		builder.WithRedis(redisClient)
		logger.Info("using redis attempt store")
	}

	engine, err := builder.Build()
	if err != nil {
		logger.Error("failed to build auth engine", "error", err)
		os.Exit(1)
	}

	router := httpapi.NewRouter(engine, logger)

	srv := server.New(
		router,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)
	srv.OnShutdown("auth engine", func(context.Context) error {
		engine.Close()
		return nil
	})

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"challenge_enabled", cfg.ChallengeEnabled,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// engineConfig maps the env-derived service configuration onto the
// engine's programmatic config.
func engineConfig(cfg *config.Config) cxauth.Config {
	engineCfg := cxauth.DefaultConfig()
	engineCfg.Token.Secret = []byte(cfg.TokenSecret)
	engineCfg.Token.Issuer = cfg.TokenIssuer
	engineCfg.Token.SessionTTL = cfg.SessionTTL
	engineCfg.Token.HandoffTTL = cfg.HandoffTTL
	engineCfg.Risk.ChallengeThreshold = cfg.ChallengeThreshold
	engineCfg.Risk.FailureWindow = cfg.FailureWindow
	engineCfg.Challenge.Enabled = cfg.ChallengeEnabled
	engineCfg.Challenge.VerifyURL = cfg.ChallengeVerifyURL
	engineCfg.Challenge.Secret = cfg.ChallengeSecret
	engineCfg.Challenge.Timeout = cfg.ChallengeTimeout
	engineCfg.Handoff.BridgeHosts = cfg.GetBridgeHosts()
	return engineCfg
}

// seedDemoStore builds the in-memory credential store shipped with the
// demo property.
func seedDemoStore(engineCfg cxauth.Config) (*stores.MemoryStore, error) {
	hasher, err := password.NewHasher(password.Config{Cost: engineCfg.Password.Cost})
	if err != nil {
		return nil, err
	}
	return stores.NewSeededStore(hasher, []stores.SeedUser{
		{Email: "sarah.mitchell@example.com", Password: "Demo2024!", Name: "Sarah Mitchell", Role: "user"},
		{Email: "james.carter@example.com", Password: "Demo2024!", Name: "James Carter", Role: "user"},
		{Email: "admin@example.com", Password: "AdminDemo2024!", Name: "Dana Ops", Role: "admin"},
	})
}

func initLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)}

	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
