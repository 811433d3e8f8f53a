package postgres

import (
	"context"
	"fmt"

	"github.com/makrand12345/StoreDoc-Backend/internal/domain"
	"github.com/makrand12345/StoreDoc-Backend/pkg/database"
)

// StatsRepository implements repository.StatsRepository using PostgreSQL.
type StatsRepository struct {
	db database.DBTX
}

func NewStatsRepository(db database.DBTX) *StatsRepository {
	return &StatsRepository{db: db}
}

// Dashboard counts users, stores and ratings in a single round trip.
func (r *StatsRepository) Dashboard(ctx context.Context) (s *domain.DashboardStats, err error) {
	query := `
		SELECT (SELECT COUNT(*) FROM users),
		       (SELECT COUNT(*) FROM stores),
		       (SELECT COUNT(*) FROM ratings)`

	ctx, end := database.TraceQuery(ctx, "DashboardStats", query)
	defer func() { end(err) }()

	var stats domain.DashboardStats
	if err = r.db.QueryRow(ctx, query).Scan(&stats.TotalUsers, &stats.TotalStores, &stats.TotalRatings); err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	return &stats, nil
}
