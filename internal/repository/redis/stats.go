package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/makrand12345/StoreDoc-Backend/internal/domain"
	"github.com/makrand12345/StoreDoc-Backend/internal/repository"
)

const dashboardKey = "storedoc:stats:dashboard"

// CachedStatsRepository serves the admin dashboard counters from Redis and
// falls back to the wrapped repository on a miss. Entries expire after ttl;
// writes elsewhere are not invalidated, so counters may lag by up to ttl.
type CachedStatsRepository struct {
	next   repository.StatsRepository
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedStatsRepository wraps next with a Redis read-through cache.
func NewCachedStatsRepository(next repository.StatsRepository, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedStatsRepository {
	return &CachedStatsRepository{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Dashboard returns cached counters when present. A Redis failure is logged
// and never fails the request.
func (r *CachedStatsRepository) Dashboard(ctx context.Context) (*domain.DashboardStats, error) {
	stats, err := r.get(ctx)
	switch {
	case err == nil:
		return stats, nil
	case !errors.Is(err, redis.Nil):
		r.logger.WarnContext(ctx, "stats cache read failed", slog.String("error", err.Error()))
	}

	stats, err = r.next.Dashboard(ctx)
	if err != nil {
		return nil, err
	}

	if err := r.set(ctx, stats); err != nil {
		r.logger.WarnContext(ctx, "stats cache write failed", slog.String("error", err.Error()))
	}
	return stats, nil
}

func (r *CachedStatsRepository) get(ctx context.Context) (*domain.DashboardStats, error) {
	data, err := r.client.Get(ctx, dashboardKey).Bytes()
	if err != nil {
		return nil, err
	}

	var stats domain.DashboardStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("unmarshal dashboard stats: %w", err)
	}
	return &stats, nil
}

func (r *CachedStatsRepository) set(ctx context.Context, stats *domain.DashboardStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("marshal dashboard stats: %w", err)
	}
	if err := r.client.Set(ctx, dashboardKey, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set dashboard stats: %w", err)
	}
	return nil
}
