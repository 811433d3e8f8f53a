// Command seed creates the first Admin account. Public registration refuses
// the Admin role, so a fresh database needs one bootstrapped out of band.
// Running it again for an existing email is a no-op.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/makrand12345/StoreDoc-Backend/internal/config"
	"github.com/makrand12345/StoreDoc-Backend/internal/domain"
	"github.com/makrand12345/StoreDoc-Backend/internal/event"
	"github.com/makrand12345/StoreDoc-Backend/internal/repository/postgres"
	"github.com/makrand12345/StoreDoc-Backend/internal/service"
	"github.com/makrand12345/StoreDoc-Backend/migrations"
	pkgconfig "github.com/makrand12345/StoreDoc-Backend/pkg/config"
	"github.com/makrand12345/StoreDoc-Backend/pkg/database"
	apperrors "github.com/makrand12345/StoreDoc-Backend/pkg/errors"
	"github.com/makrand12345/StoreDoc-Backend/pkg/logger"
)

// adminConfig is the account to bootstrap.
type adminConfig struct {
	Name     string `env:"SEED_ADMIN_NAME" envDefault:"StoreDoc Platform Administrator"`
	Email    string `env:"SEED_ADMIN_EMAIL,required"`
	Password string `env:"SEED_ADMIN_PASSWORD,required"`
	Address  string `env:"SEED_ADMIN_ADDRESS"`
}

type userAdder interface {
	AddUser(ctx context.Context, input service.AddUserInput) (*domain.User, error)
}

func main() {
	if err := pkgconfig.LoadDotEnv(); err != nil {
		slog.Warn("failed to read .env file", slog.String("error", err.Error()))
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	log := logger.New(cfg.ServiceName()+"-seed", cfg.LogLevel)

	var admin adminConfig
	if err := pkgconfig.Load(&admin); err != nil {
		log.Error("failed to load seed config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := run(cfg, admin, log); err != nil {
		log.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, admin adminConfig, log *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	pgCfg := cfg.Postgres()
	pool, err := database.NewPostgresPool(ctx, &pgCfg, log)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()

	if err := database.RunMigrations(ctx, pool, migrations.FS, log); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	users := postgres.NewUserRepository(pool)
	stores := postgres.NewStoreRepository(pool)
	stats := postgres.NewStatsRepository(pool)
	svc := service.NewAdminService(users, stores, stats, event.NewProducer(nil, log), true, log)

	return seedAdmin(ctx, svc, admin, log)
}

// seedAdmin creates the admin account unless its email is already taken.
func seedAdmin(ctx context.Context, users userAdder, admin adminConfig, log *slog.Logger) error {
	u, err := users.AddUser(ctx, service.AddUserInput{
		Name:     admin.Name,
		Email:    admin.Email,
		Password: admin.Password,
		Address:  admin.Address,
		Role:     domain.RoleAdmin.String(),
	})
	switch {
	case errors.Is(err, apperrors.ErrAlreadyExists):
		log.Info("admin already exists, nothing to do", slog.String("email", admin.Email))
		return nil
	case err != nil:
		return fmt.Errorf("create admin: %w", err)
	}

	log.Info("admin created", slog.Int64("user_id", u.ID), slog.String("email", u.Email))
	return nil
}
