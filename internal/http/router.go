// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// compression, caller identity, CORS, security headers, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/mlipka/go-matchday-backend/internal/clients"
	"github.com/mlipka/go-matchday-backend/internal/config"
	"github.com/mlipka/go-matchday-backend/internal/domain"
	"github.com/mlipka/go-matchday-backend/internal/http/handlers"
	"github.com/mlipka/go-matchday-backend/internal/http/middleware"
	"github.com/mlipka/go-matchday-backend/internal/kv"
	"github.com/mlipka/go-matchday-backend/internal/lock"
	"github.com/mlipka/go-matchday-backend/internal/quota"
	"github.com/mlipka/go-matchday-backend/internal/repo"
	"github.com/mlipka/go-matchday-backend/internal/services"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Deps bundles the external dependencies the router injects into services.
// Checker may be nil, which disables the anonymous proxy/VPN screen.
type Deps struct {
	DB        *gorm.DB
	Store     kv.Store
	Location  *time.Location
	Generator clients.Generator
	Football  clients.FootballProvider
	Agent     clients.AgentRunner
	Checker   clients.AddressChecker
}

// analysisRepoShim adapts the repository free functions to the
// services.AnalysisRepo interface expected by the AnalysisService. This keeps
// services decoupled from the concrete repo package while reusing existing
// functions.
type analysisRepoShim struct{}

// Get proxies repo.GetAnalysis.
func (analysisRepoShim) Get(ctx context.Context, db *gorm.DB, fixtureID, language string) (*domain.MatchAnalysis, error) {
	return repo.GetAnalysis(ctx, db, fixtureID, language)
}

// Upsert proxies repo.UpsertAnalysis.
func (analysisRepoShim) Upsert(ctx context.Context, db *gorm.DB, fixtureID, language, analysis string) error {
	return repo.UpsertAnalysis(ctx, db, fixtureID, language, analysis)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), identity
// resolution, rate limiting, CORS and security headers, health and metrics
// endpoints, and then mounts the versioned public API under /api/v*.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter and gzip compression
//  6. Metrics
//  7. Identity: resolve the caller before rate limiting keys off it
//  8. Rate limiter (per user/IP)
//  9. CORS and Security headers
func RegisterRoutes(r *gin.Engine, d Deps, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{
			"X-RapidAPI-Key", // never log upstream credentials
		},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB) and response compression. Fixture
	// payloads for a full day run into hundreds of kilobytes of JSON.
	r.Use(limitBody(1 << 20))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Caller identity: JWT cookie/bearer when valid, client IP otherwise.
	// Must run before the rate limiter so its key sees the resolved user.
	r.Use(middleware.Identity(cfg.JWTSecret))

	// 8) Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	// 9) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Lang"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Lang"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: true, // the auth cookie must survive cross-origin calls
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health. Reports the stored analysis count as a cheap signal
	// that the database is reachable; a count failure does not fail the probe.
	r.GET("/health", func(c *gin.Context) {
		resp := gin.H{"status": "ok"}
		if total, err := repo.CountAnalyses(c.Request.Context(), d.DB); err == nil {
			resp["analyses"] = total
		}
		c.JSON(http.StatusOK, resp)
	})

	// API documentation (opt-in)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← repo/db/store/clients
	locks := lock.NewLocker(d.Store)
	counter := quota.NewCounter(d.Store, d.Location)

	analysisSvc := &services.AnalysisService{
		DB:                d.DB,
		Repo:              analysisRepoShim{},
		Locks:             locks,
		Quota:             counter,
		Gen:               d.Generator,
		Checker:           d.Checker,
		GenerationTimeout: cfg.Generation.Timeout,
		LockLease:         cfg.Generation.LockLease,
		DailyLimit:        cfg.Generation.DailyLimit,
	}
	fixtureSvc := services.NewFixtureService(d.Football, d.Store, d.Location)
	agentSvc := services.NewAgentService(d.Agent, counter, cfg.Agent.DailyLimit, cfg.Agent.UnlimitedUsers)

	h := handlers.New(analysisSvc, fixtureSvc, agentSvc)

	// Public API
	apiBase := cfg.APIBasePath // e.g. "/api/v1"
	api := groupWithPrefix(r, apiBase)
	{
		// Analyses
		api.POST("/analysis", h.PostAnalysis)
		api.POST("/analysis/check", h.CheckAnalysis)

		// Fixtures and predictions
		api.GET("/fixtures", h.GetFixtures)
		api.GET("/fixtures/live", h.GetLiveFixtures)
		api.GET("/predictions", h.GetPredictions)

		// Report agent
		api.POST("/agent/run", h.RunAgent)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
