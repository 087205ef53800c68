package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Orchestrator OrchestratorConfig
	EditSession  EditSessionConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	MigrationsDir  string
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
	ConnectRetries int
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr             string
	Password         string
	DB               int
	SkillCacheTTLSec int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level  string
	Format string
}

// AuthConfig defines bearer token parameters.
type AuthConfig struct {
	JWTSecret             string
	Issuer                string
	AccessTokenTTLMinutes int
}

// OrchestratorConfig points at the agent orchestrator notified on time-off creation.
type OrchestratorConfig struct {
	BaseURL        string
	TimeOffPath    string
	TimeoutSeconds int
	QueueSize      int
}

// EditSessionConfig tunes staffer edit sessions.
type EditSessionConfig struct {
	TTLMinutes        int
	CommitConcurrency int
	SweepSeconds      int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	maxConns := int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10))
	minConns := int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2))
	runMigrations := getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true)
	connMaxIdle := int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30))
	connMaxLife := int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300))

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "staffing-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       maxConns,
			MinConns:       minConns,
			RunMigrations:  runMigrations,
			MigrationsDir:  getEnv("POSTGRES_MIGRATIONS_DIR", "migrations"),
			ConnMaxIdleSec: connMaxIdle,
			ConnMaxLifeSec: connMaxLife,
			ConnectRetries: getEnvAsInt("POSTGRES_CONNECT_RETRIES", 5),
		},
		Redis: RedisConfig{
			Addr:             getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password:         os.Getenv("REDIS_PASSWORD"),
			DB:               redisDB,
			SkillCacheTTLSec: getEnvAsInt("SKILL_CACHE_TTL_SECONDS", 300),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "dev-secret"),
			Issuer:                getEnv("AUTH_ISSUER", "staffing-service"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
		},
		Orchestrator: OrchestratorConfig{
			BaseURL:        getEnv("ORCHESTRATOR_URL", ""),
			TimeOffPath:    getEnv("ORCHESTRATOR_TIME_OFF_PATH", "/api/v1/events/time-off"),
			TimeoutSeconds: getEnvAsInt("ORCHESTRATOR_TIMEOUT_SECONDS", 5),
			QueueSize:      getEnvAsInt("ORCHESTRATOR_QUEUE_SIZE", 256),
		},
		EditSession: EditSessionConfig{
			TTLMinutes:        getEnvAsInt("EDIT_SESSION_TTL_MINUTES", 60),
			CommitConcurrency: getEnvAsInt("EDIT_COMMIT_CONCURRENCY", 8),
			SweepSeconds:      getEnvAsInt("EDIT_SESSION_SWEEP_SECONDS", 60),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// SkillCacheTTL returns how long the skill catalog stays cached.
func (r RedisConfig) SkillCacheTTL() time.Duration {
	if r.SkillCacheTTLSec <= 0 {
		return 0
	}
	return time.Duration(r.SkillCacheTTLSec) * time.Second
}

// AccessTokenTTL returns the bearer token lifetime, one hour when unset.
func (a AuthConfig) AccessTokenTTL() time.Duration {
	if a.AccessTokenTTLMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(a.AccessTokenTTLMinutes) * time.Minute
}

// TimeOffURL joins the orchestrator base URL with the time-off path.
func (o OrchestratorConfig) TimeOffURL() string {
	if o.BaseURL == "" {
		return ""
	}
	return o.BaseURL + o.TimeOffPath
}

// Timeout returns the orchestrator call timeout.
func (o OrchestratorConfig) Timeout() time.Duration {
	if o.TimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(o.TimeoutSeconds) * time.Second
}

// TTL returns the idle lifetime of an edit session.
func (e EditSessionConfig) TTL() time.Duration {
	if e.TTLMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(e.TTLMinutes) * time.Minute
}

// SweepInterval returns how often idle sessions are evicted; zero disables the sweeper.
func (e EditSessionConfig) SweepInterval() time.Duration {
	if e.SweepSeconds <= 0 {
		return 0
	}
	return time.Duration(e.SweepSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
