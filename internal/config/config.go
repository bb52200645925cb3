// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes application settings
// such as server timeouts, logging, storage, upstream credentials, daily
// limits, rate limiting, and observability.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME (e.g. "go-matchday-backend")
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// RedisConfig defines connection settings for the quota/lock/cache store.
type RedisConfig struct {
	Addr     string // REDIS_ADDR (host:port)
	Password string // REDIS_PASSWORD
	DB       int    // REDIS_DB
}

// FootballConfig carries credentials for the fixture and prediction
// upstreams (separate RapidAPI products with separate keys).
type FootballConfig struct {
	FixturesBaseURL string // FOOTBALL_API_URL
	FixturesKey     string // FOOTBALL_API_KEY
	FixturesHost    string // FOOTBALL_API_HOST

	PredictionsBaseURL string // PREDICTION_API_URL
	PredictionsKey     string // PREDICTION_API_KEY
	PredictionsHost    string // PREDICTION_API_HOST
}

// GenerationConfig defines the analysis generation provider and its limits.
type GenerationConfig struct {
	GeminiAPIKey string        // GEMINI_API_KEY
	Model        string        // GEMINI_MODEL
	Timeout      time.Duration // GENERATION_TIMEOUT; must stay below LockLease
	LockLease    time.Duration // LOCK_LEASE
	DailyLimit   int           // ANALYSIS_DAILY_LIMIT
}

// AgentConfig defines the external report agent connection and its limit.
type AgentConfig struct {
	BaseURL    string // AGENT_URL
	DailyLimit int    // AGENT_DAILY_LIMIT
	// UnlimitedUsers lists user ids exempt from the agent limit.
	UnlimitedUsers []string // AGENT_UNLIMITED_USERS (CSV)
}

// VPNConfig defines the optional proxy/VPN screen for anonymous callers.
type VPNConfig struct {
	Enabled bool   // VPN_CHECK_ENABLED
	BaseURL string // VPN_CHECK_URL
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string        // just the number
	ReadTimeout       time.Duration // e.g. 15s
	ReadHeaderTimeout time.Duration // e.g. 10s
	WriteTimeout      time.Duration // e.g. 90s; must exceed GENERATION_TIMEOUT
	IdleTimeout       time.Duration // e.g. 60s
	MaxHeaderBytes    int           // bytes
	GinMode           string        // debug|release|test

	// Logging / Docs
	LogLevel       string // debug|info|warn|error|fatal|panic
	LogPretty      bool   // pretty console logs in dev
	SwaggerEnabled bool   // enable Swagger UI route
	APIBasePath    string // base path for API routes

	// App
	DBPath   string // SQLite path for stored analyses
	Timezone string // IANA zone for daily quota and cache boundaries

	// Identity
	JWTSecret string // JWT_SECRET; empty disables authenticated identities

	// Rate limiting (edge, per process)
	RateRPS   float64 // tokens per second (>= 0)
	RateBurst int     // bucket size (>= 1)

	// Domain stacks
	Redis      RedisConfig
	Football   FootballConfig
	Generation GenerationConfig
	Agent      AgentConfig
	VPN        VPNConfig

	// Web protection
	CORS     CORSConfig
	Security SecurityConfig

	// Observability
	OTEL OTELConfig
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables,
// applies defaults, normalizes values, and validates the result.
func Load() (Config, error) {
	cfg := Config{
		// Server
		Port:              getenv("PORT", "8080"),
		ReadTimeout:       getdur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      getdur("WRITE_TIMEOUT", 90*time.Second),
		IdleTimeout:       getdur("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    getint("MAX_HEADER_BYTES", 1<<20),
		GinMode:           strings.ToLower(getenv("GIN_MODE", "release")),

		// Logging / Docs
		LogLevel:       strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty:      getbool("LOG_PRETTY", false),
		SwaggerEnabled: getbool("SWAGGER_ENABLED", false),
		APIBasePath:    normalizeBasePath(getenv("API_BASE_PATH", "/api/v1")),

		// App
		DBPath:   getenv("DB_PATH", "app.db"),
		Timezone: getenv("TIMEZONE", "Europe/Warsaw"),

		// Identity
		JWTSecret: getenv("JWT_SECRET", ""),

		// Rate limiting
		RateRPS:   getfloat("RATE_RPS", 5.0),
		RateBurst: getint("RATE_BURST", 10),

		// Domain stacks
		Redis: RedisConfig{
			Addr:     getenv("REDIS_ADDR", "localhost:6379"),
			Password: getenv("REDIS_PASSWORD", ""),
			DB:       getint("REDIS_DB", 0),
		},
		Football: FootballConfig{
			FixturesBaseURL: getenv("FOOTBALL_API_URL", "https://api-football-v1.p.rapidapi.com/v3"),
			FixturesKey:     getenv("FOOTBALL_API_KEY", ""),
			FixturesHost:    getenv("FOOTBALL_API_HOST", "api-football-v1.p.rapidapi.com"),

			PredictionsBaseURL: getenv("PREDICTION_API_URL", "https://today-football-prediction.p.rapidapi.com"),
			PredictionsKey:     getenv("PREDICTION_API_KEY", ""),
			PredictionsHost:    getenv("PREDICTION_API_HOST", "today-football-prediction.p.rapidapi.com"),
		},
		Generation: GenerationConfig{
			GeminiAPIKey: getenv("GEMINI_API_KEY", ""),
			Model:        getenv("GEMINI_MODEL", "gemini-2.0-flash"),
			Timeout:      getdur("GENERATION_TIMEOUT", 55*time.Second),
			LockLease:    getdur("LOCK_LEASE", 300*time.Second),
			DailyLimit:   getint("ANALYSIS_DAILY_LIMIT", 3),
		},
		Agent: AgentConfig{
			BaseURL:        getenv("AGENT_URL", "http://localhost:5000"),
			DailyLimit:     getint("AGENT_DAILY_LIMIT", 1),
			UnlimitedUsers: splitCSV(getenv("AGENT_UNLIMITED_USERS", "")),
		},
		VPN: VPNConfig{
			Enabled: getbool("VPN_CHECK_ENABLED", false),
			BaseURL: getenv("VPN_CHECK_URL", "http://ip-api.com"),
		},

		// Web protection
		CORS: CORSConfig{
			AllowedOrigins: splitCSV(getenv("CORS_ALLOWED_ORIGINS", "")),
		},
		Security: SecurityConfig{
			EnableHSTS: getbool("ENABLE_HSTS", false),
			HSTSMaxAge: getdur("HSTS_MAX_AGE", 180*24*time.Hour),
		},

		// Observability (OpenTelemetry)
		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "go-matchday-backend"),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}

	// --- validation ---
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	if strings.TrimSpace(cfg.Port) == "" {
		return cfg, errors.New("PORT must not be empty")
	}
	if cfg.ReadTimeout <= 0 || cfg.ReadHeaderTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return cfg, errors.New("timeouts must be positive durations")
	}
	if cfg.MaxHeaderBytes <= 0 {
		return cfg, errors.New("MAX_HEADER_BYTES must be > 0")
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		return cfg, errors.New("DB_PATH must not be empty")
	}
	if strings.TrimSpace(cfg.Timezone) == "" {
		return cfg, errors.New("TIMEZONE must not be empty")
	}
	if cfg.RateRPS < 0 {
		return cfg, errors.New("RATE_RPS must be >= 0")
	}
	if cfg.RateBurst < 1 {
		return cfg, errors.New("RATE_BURST must be >= 1")
	}
	if strings.TrimSpace(cfg.Redis.Addr) == "" {
		return cfg, errors.New("REDIS_ADDR must not be empty")
	}
	if cfg.Generation.Timeout <= 0 {
		return cfg, errors.New("GENERATION_TIMEOUT must be > 0")
	}
	if cfg.Generation.LockLease <= cfg.Generation.Timeout {
		return cfg, errors.New("LOCK_LEASE must exceed GENERATION_TIMEOUT")
	}
	if cfg.Generation.DailyLimit < 1 {
		return cfg, errors.New("ANALYSIS_DAILY_LIMIT must be >= 1")
	}
	if cfg.Agent.DailyLimit < 1 {
		return cfg, errors.New("AGENT_DAILY_LIMIT must be >= 1")
	}
	if cfg.Security.HSTSMaxAge < 0 {
		return cfg, errors.New("HSTS_MAX_AGE must be >= 0")
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}

	return cfg, nil
}

// ---- helpers (no external deps) ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// normalizeBasePath ensures leading '/' and strips trailing '/' (except root).
func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimRight(p, "/")
	}
	return p
}
