// Command server boots the matchday backend API: it loads configuration,
// wires storage (SQLite), the Redis-backed quota/lock/cache store, upstream
// clients (Gemini, RapidAPI, report agent), observability, and the HTTP
// router, then serves until interrupted.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	_ "github.com/mlipka/go-matchday-backend/docs"
	"github.com/mlipka/go-matchday-backend/internal/clients"
	"github.com/mlipka/go-matchday-backend/internal/config"
	httpapi "github.com/mlipka/go-matchday-backend/internal/http"
	"github.com/mlipka/go-matchday-backend/internal/kv"
	"github.com/mlipka/go-matchday-backend/internal/observability"
	"github.com/mlipka/go-matchday-backend/internal/repo"
	"github.com/mlipka/go-matchday-backend/internal/sysutil"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

// @title       Matchday Backend API
// @version     1.0
// @description Match analysis generation, fixture listings, and report agent triggers.
// @BasePath    /api/v1
func main() {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	cfg := config.MustLoad()
	setupLogger(cfg)

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.Timezone).Msg("invalid TIMEZONE")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Observability (no-op when disabled)
	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}

	// Analysis storage
	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open sqlite failed")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}

	// Quota, lock, and day-cache store. Fatal when unreachable: the
	// in-flight lock fails closed, so a dead Redis would reject every
	// generation anyway.
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unreachable")
	}
	store := kv.NewRedisStore(rdb)

	// Generation provider
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.Generation.GeminiAPIKey,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("gemini client setup failed")
	}
	generator := clients.NewGeminiGenerator(gc, cfg.Generation.Model)

	// Upstream HTTP clients
	football := clients.NewRapidAPIClient(&http.Client{Timeout: 30 * time.Second}, clients.RapidAPIConfig{
		FixturesBaseURL: cfg.Football.FixturesBaseURL,
		FixturesKey:     cfg.Football.FixturesKey,
		FixturesHost:    cfg.Football.FixturesHost,

		PredictionsBaseURL: cfg.Football.PredictionsBaseURL,
		PredictionsKey:     cfg.Football.PredictionsKey,
		PredictionsHost:    cfg.Football.PredictionsHost,
	})
	agent := clients.NewHTTPAgentRunner(&http.Client{Timeout: 60 * time.Second}, cfg.Agent.BaseURL)

	var checker clients.AddressChecker
	if cfg.VPN.Enabled {
		checker = clients.NewIPAPIClient(&http.Client{Timeout: 5 * time.Second}, cfg.VPN.BaseURL)
	}

	// HTTP transport
	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, httpapi.Deps{
		DB:        db,
		Store:     store,
		Location:  loc,
		Generator: generator,
		Football:  football,
		Agent:     agent,
		Checker:   checker,
	}, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("version", version).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	stop()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	if err := shutdownOTel(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("otel shutdown failed")
	}
	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("redis close failed")
	}
}

// setupLogger configures the global zerolog logger from config.
func setupLogger(cfg config.Config) {
	sysutil.SetLogLevel(cfg.LogLevel)
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
