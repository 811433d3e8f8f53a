package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/makrand12345/StoreDoc-Backend/internal/auth"
	"github.com/makrand12345/StoreDoc-Backend/internal/config"
	"github.com/makrand12345/StoreDoc-Backend/internal/event"
	handler "github.com/makrand12345/StoreDoc-Backend/internal/handler/http"
	"github.com/makrand12345/StoreDoc-Backend/internal/repository"
	"github.com/makrand12345/StoreDoc-Backend/internal/repository/postgres"
	rediscache "github.com/makrand12345/StoreDoc-Backend/internal/repository/redis"
	"github.com/makrand12345/StoreDoc-Backend/internal/service"
	"github.com/makrand12345/StoreDoc-Backend/migrations"
	"github.com/makrand12345/StoreDoc-Backend/pkg/database"
	"github.com/makrand12345/StoreDoc-Backend/pkg/health"
	pkgkafka "github.com/makrand12345/StoreDoc-Backend/pkg/kafka"
	"github.com/makrand12345/StoreDoc-Backend/pkg/middleware"
	"github.com/makrand12345/StoreDoc-Backend/pkg/tracing"
)

// App wires together all dependencies and runs the StoreDoc server.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	pool           *pgxpool.Pool
	producer       *pkgkafka.Producer
	redis          *redis.Client
	authLimiter    *middleware.RateLimiter
	httpServer     *http.Server
	tracerShutdown tracing.ShutdownFunc
}

// NewApp creates a new application instance, initializing all dependencies.
// It fails when PostgreSQL stays unreachable after the configured retries.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	// Initialize OpenTelemetry tracing.
	tracerShutdown, err := tracing.InitTracer(ctx, cfg.Tracing())
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// Initialize PostgreSQL connection pool.
	pgCfg := cfg.Postgres()
	pool, err := database.NewPostgresPool(ctx, &pgCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	logger.Info("connected to PostgreSQL",
		slog.String("host", cfg.PostgresHost),
		slog.Int("port", cfg.PostgresPort),
		slog.String("database", cfg.PostgresDB),
	)
	if err := database.RegisterPoolMetrics(prometheus.DefaultRegisterer, pool, cfg.ServiceName()); err != nil {
		logger.Warn("pool metrics not registered", slog.String("error", err.Error()))
	}

	// Run database migrations.
	if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("database migrations completed")

	// Configure slow query logging.
	if cfg.SlowQueryThresholdMs > 0 {
		database.SetSlowQueryLogging(time.Duration(cfg.SlowQueryThresholdMs)*time.Millisecond, logger)
	}

	a := &App{
		cfg:            cfg,
		logger:         logger,
		pool:           pool,
		tracerShutdown: tracerShutdown,
	}

	healthHandler := health.NewHandler()
	healthHandler.RegisterCritical("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})

	// Kafka producer. With Kafka disabled events are dropped.
	var publisher event.Publisher
	if cfg.KafkaEnabled {
		pcfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
		pcfg.PublishTimeout = cfg.KafkaPublishTimeout
		a.producer = pkgkafka.NewProducer(pcfg, logger)
		publisher = a.producer
		healthHandler.RegisterNonCritical("kafka", a.producer.Ping)
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	}

	// Build the dependency graph.
	userRepo := postgres.NewUserRepository(pool)
	storeRepo := postgres.NewStoreRepository(pool)
	ratingRepo := postgres.NewRatingRepository(pool)
	var statsRepo repository.StatsRepository = postgres.NewStatsRepository(pool)

	if cfg.RedisEnabled {
		client, err := database.NewRedisClient(ctx, cfg.Redis())
		if err != nil {
			a.closeResources()
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		a.redis = client
		statsRepo = rediscache.NewCachedStatsRepository(statsRepo, client, cfg.StatsCacheTTL, logger)
		healthHandler.RegisterNonCritical("redis", func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		})
		logger.Info("redis stats cache enabled", slog.String("addr", cfg.Redis().Addr()))
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry)
	eventProducer := event.NewProducer(publisher, logger)

	svcs := handler.Services{
		Auth:   service.NewAuthService(userRepo, storeRepo, jwtManager, eventProducer, cfg.AtomicOwnerSignup, logger),
		Admin:  service.NewAdminService(userRepo, storeRepo, statsRepo, eventProducer, cfg.AtomicOwnerSignup, logger),
		Store:  service.NewStoreService(storeRepo, ratingRepo),
		Rating: service.NewRatingService(ratingRepo, eventProducer, logger),
	}

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.CORSAllowedOrigins
	corsCfg.Environment = cfg.Environment

	a.authLimiter = middleware.NewRateLimiter(cfg.AuthRateLimitRPS, cfg.AuthRateLimitBurst, logger).
		TrustProxies(cfg.TrustedProxyCIDRs)

	router := handler.NewRouter(svcs, jwtManager.Validator(), healthHandler, logger, handler.RouterConfig{
		ServiceName:       cfg.ServiceName(),
		CORS:              corsCfg,
		AuthLimiter:       a.authLimiter,
		PprofAllowedCIDRs: cfg.PprofAllowedCIDRs,
	})

	a.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return a, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		a.closeResources()
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components in order:
// 1. HTTP server (drain in-flight requests)
// 2. Tracer (flush spans of drained requests)
// 3. Kafka producer
// 4. Redis client
// 5. PostgreSQL pool
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	httpCtx, httpCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	errs = append(errs, a.closeResources()...)

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}

// closeResources releases the kafka producer, redis client, rate limiter and
// pool. Each is optional.
func (a *App) closeResources() []error {
	var errs []error
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}
	if a.authLimiter != nil {
		a.authLimiter.Close()
	}
	if a.pool != nil {
		a.pool.Close()
	}
	return errs
}
