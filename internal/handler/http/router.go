package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/makrand12345/StoreDoc-Backend/internal/domain"
	"github.com/makrand12345/StoreDoc-Backend/internal/service"
	"github.com/makrand12345/StoreDoc-Backend/pkg/health"
	"github.com/makrand12345/StoreDoc-Backend/pkg/middleware"
)

// Services groups the application services exposed over HTTP.
type Services struct {
	Auth   *service.AuthService
	Admin  *service.AdminService
	Store  *service.StoreService
	Rating *service.RatingService
}

// RouterConfig holds the cross-cutting settings of the router.
type RouterConfig struct {
	ServiceName string
	CORS        middleware.CORSConfig
	// AuthLimiter throttles /api/auth per client IP. Nil disables it.
	AuthLimiter       *middleware.RateLimiter
	PprofAllowedCIDRs []string
}

// NewRouter creates a chi router with all StoreDoc routes registered.
func NewRouter(
	svcs Services,
	tokens middleware.TokenValidator,
	healthHandler *health.Handler,
	logger *slog.Logger,
	cfg RouterConfig,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.Tracing(cfg.ServiceName))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics(cfg.ServiceName))
	r.Use(middleware.CORS(cfg.CORS))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())
	middleware.RegisterPprof(r, cfg.PprofAllowedCIDRs, logger)

	authHandler := NewAuthHandler(svcs.Auth, logger)
	adminHandler := NewAdminHandler(svcs.Admin, logger)
	storeHandler := NewStoreHandler(svcs.Store, svcs.Rating, logger)

	authenticated := middleware.Auth(tokens)

	r.Route("/api", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		// Auth endpoints (public)
		r.Route("/auth", func(r chi.Router) {
			if cfg.AuthLimiter != nil {
				r.Use(cfg.AuthLimiter.Middleware)
			}
			r.Use(middleware.NoStore)

			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(authenticated)
			r.Use(middleware.RequireRole(domain.RoleAdmin.String()))
			r.Use(middleware.NoStore)

			r.Get("/users", adminHandler.ListUsers)
			r.Post("/add-user", adminHandler.AddUser)
			r.Get("/stores", adminHandler.ListStores)
			r.Post("/add-store", adminHandler.AddStore)
			r.Get("/stats", adminHandler.Stats)
		})

		r.Get("/stores", storeHandler.List)
		r.With(
			authenticated,
			middleware.RequireRole(domain.RoleStoreOwner.String(), domain.RoleAdmin.String()),
		).Get("/stores/my-stats", storeHandler.MyStats)
		r.With(authenticated).Post("/rate-store", storeHandler.Rate)
	})

	return r
}
