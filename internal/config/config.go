package config

import (
	"fmt"
	"time"

	"github.com/makrand12345/StoreDoc-Backend/pkg/database"
	pkgconfig "github.com/makrand12345/StoreDoc-Backend/pkg/config"
	"github.com/makrand12345/StoreDoc-Backend/pkg/tracing"
)

const (
	defaultHTTPPort  = 5000
	defaultJWTSecret = "change-this-to-a-secure-secret"
	serviceName      = "storedoc"
)

// Config holds all configuration for the StoreDoc server.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server. HTTP_PORT wins over PORT; PORT is what most hosting
	// platforms inject.
	HTTPPort     int           `env:"HTTP_PORT"`
	Port         int           `env:"PORT"`
	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"15s"`

	// PostgreSQL. DATABASE_URL takes precedence over the discrete fields.
	DatabaseURL          string        `env:"DATABASE_URL"`
	PostgresHost         string        `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort         int           `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser         string        `env:"POSTGRES_USER" envDefault:"postgres"`
	PostgresPass         string        `env:"POSTGRES_PASSWORD" envDefault:"postgres"`
	PostgresDB           string        `env:"POSTGRES_DB" envDefault:"storedoc"`
	PostgresSSL          string        `env:"POSTGRES_SSL_MODE" envDefault:"disable"`
	PostgresMaxConns     int32         `env:"POSTGRES_MAX_CONNS" envDefault:"10"`
	PostgresMinConns     int32         `env:"POSTGRES_MIN_CONNS" envDefault:"1"`
	PostgresConnAttempts int           `env:"POSTGRES_CONNECT_ATTEMPTS" envDefault:"5"`
	SlowQueryThresholdMs int           `env:"SLOW_QUERY_THRESHOLD_MS" envDefault:"500"`

	// JWT
	JWTSecret string        `env:"JWT_SECRET" envDefault:"change-this-to-a-secure-secret"`
	JWTExpiry time.Duration `env:"JWT_EXPIRY" envDefault:"24h"`

	// AtomicOwnerSignup creates a StoreOwner and their store in one transaction.
	AtomicOwnerSignup bool `env:"ATOMIC_OWNER_SIGNUP" envDefault:"false"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// Rate limit for /api/auth, per client IP.
	AuthRateLimitRPS   float64 `env:"AUTH_RATE_LIMIT_RPS" envDefault:"5"`
	AuthRateLimitBurst int     `env:"AUTH_RATE_LIMIT_BURST" envDefault:"10"`

	// Kafka
	KafkaEnabled bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// KafkaPublishTimeout bounds each event publish made inside a request.
	KafkaPublishTimeout time.Duration `env:"KAFKA_PUBLISH_TIMEOUT" envDefault:"2s"`

	// Redis stats cache
	RedisEnabled  bool          `env:"REDIS_ENABLED" envDefault:"false"`
	RedisHost     string        `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     int           `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	StatsCacheTTL time.Duration `env:"STATS_CACHE_TTL" envDefault:"30s"`

	// OpenTelemetry
	OTelEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTelEndpoint   string  `env:"OTEL_ENDPOINT" envDefault:"localhost:4318"`
	OTelSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`

	// PprofAllowedCIDRs enables /debug/pprof for the listed networks.
	PprofAllowedCIDRs []string `env:"PPROF_ALLOWED_CIDRS" envSeparator:","`

	// TrustedProxyCIDRs lists reverse proxies whose forwarding headers the
	// auth rate limiter believes. Empty means key on the direct peer.
	TrustedProxyCIDRs []string `env:"TRUSTED_PROXY_CIDRS" envSeparator:","`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storedoc config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	if c.HTTPPort == 0 {
		c.HTTPPort = c.Port
	}
	if c.HTTPPort == 0 {
		c.HTTPPort = defaultHTTPPort
	}
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.JWTExpiry <= 0 {
		return fmt.Errorf("JWT_EXPIRY must be positive, got %s", c.JWTExpiry)
	}
	if c.AuthRateLimitRPS <= 0 || c.AuthRateLimitBurst <= 0 {
		return fmt.Errorf("auth rate limit must be positive, got rps=%v burst=%d", c.AuthRateLimitRPS, c.AuthRateLimitBurst)
	}
	if c.KafkaEnabled && len(c.KafkaBrokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS must be set when KAFKA_ENABLED is true")
	}

	// Outside development the JWT secret must be set explicitly and be strong.
	if !c.IsDevelopment() {
		if c.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be explicitly set via environment variable in %q mode", c.Environment)
		}
		if len(c.JWTSecret) < 32 {
			return fmt.Errorf("JWT_SECRET must be at least 32 characters long, got %d", len(c.JWTSecret))
		}
	}
	return nil
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// ServiceName is the name used for logs, metrics and traces.
func (c *Config) ServiceName() string {
	return serviceName
}

// Postgres returns the pool configuration.
func (c *Config) Postgres() database.PostgresConfig {
	pg := database.DefaultPostgresConfig()
	pg.URL = c.DatabaseURL
	pg.Host = c.PostgresHost
	pg.Port = c.PostgresPort
	pg.User = c.PostgresUser
	pg.Password = c.PostgresPass
	pg.DBName = c.PostgresDB
	pg.SSLMode = c.PostgresSSL
	pg.MaxConns = c.PostgresMaxConns
	pg.MinConns = c.PostgresMinConns
	pg.ConnectAttempts = c.PostgresConnAttempts
	return pg
}

// Redis returns the cache client configuration.
func (c *Config) Redis() database.RedisConfig {
	rc := database.DefaultRedisConfig()
	rc.Host = c.RedisHost
	rc.Port = c.RedisPort
	rc.Password = c.RedisPassword
	rc.DB = c.RedisDB
	return rc
}

// Tracing returns the tracer configuration.
func (c *Config) Tracing() tracing.Config {
	tc := tracing.DefaultConfig(serviceName)
	tc.Environment = c.Environment
	tc.OTLPEndpoint = c.OTelEndpoint
	tc.SampleRate = c.OTelSampleRate
	tc.Enabled = c.OTelEnabled
	return tc
}
