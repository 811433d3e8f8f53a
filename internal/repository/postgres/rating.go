package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/makrand12345/StoreDoc-Backend/internal/domain"
	"github.com/makrand12345/StoreDoc-Backend/pkg/database"
	apperrors "github.com/makrand12345/StoreDoc-Backend/pkg/errors"
)

// RatingRepository implements repository.RatingRepository using PostgreSQL.
type RatingRepository struct {
	db database.DBTX
}

// NewRatingRepository creates a new PostgreSQL-backed rating repository.
func NewRatingRepository(db database.DBTX) *RatingRepository {
	return &RatingRepository{db: db}
}

// Upsert inserts the rating or overwrites the value of the existing
// (user, store) rating. The first created_at is kept on overwrite.
func (r *RatingRepository) Upsert(ctx context.Context, rating *domain.Rating) (err error) {
	query := `
		INSERT INTO ratings (user_id, store_id, rating)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, store_id) DO UPDATE SET rating = EXCLUDED.rating
		RETURNING id, created_at`

	ctx, end := database.TraceQuery(ctx, "UpsertRating", query)
	defer func() { end(err) }()

	err = r.db.QueryRow(ctx, query, rating.UserID, rating.StoreID, rating.Rating).
		Scan(&rating.ID, &rating.CreatedAt)
	if err != nil {
		if constraint, ok := isForeignKeyViolation(err); ok {
			if strings.Contains(constraint, "user_id") {
				return apperrors.NotFound("User not found")
			}
			return apperrors.NotFound("Store not found")
		}
		return fmt.Errorf("upsert rating: %w", err)
	}
	return nil
}

// SummaryByStore returns the average (0 when unrated) and count of ratings.
func (r *RatingRepository) SummaryByStore(ctx context.Context, storeID int64) (s *domain.RatingSummary, err error) {
	query := `
		SELECT ROUND(COALESCE(AVG(rating), 0), 1)::float8, COUNT(id)
		FROM ratings
		WHERE store_id = $1`

	ctx, end := database.TraceQuery(ctx, "RatingSummaryByStore", query)
	defer func() { end(err) }()

	var summary domain.RatingSummary
	if err = r.db.QueryRow(ctx, query, storeID).Scan(&summary.AvgRating, &summary.TotalRatings); err != nil {
		return nil, fmt.Errorf("rating summary: %w", err)
	}
	return &summary, nil
}

// RatersByStore lists raters of a store, newest first.
func (r *RatingRepository) RatersByStore(ctx context.Context, storeID int64) (raters []domain.Rater, err error) {
	query := `
		SELECT u.name, r.rating::int, r.created_at
		FROM ratings r
		JOIN users u ON u.id = r.user_id
		WHERE r.store_id = $1
		ORDER BY r.created_at DESC, r.id DESC`

	ctx, end := database.TraceQuery(ctx, "RatersByStore", query)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("list raters: %w", err)
	}
	defer rows.Close()

	raters = make([]domain.Rater, 0)
	for rows.Next() {
		var rt domain.Rater
		if err := rows.Scan(&rt.Name, &rt.Rating, &rt.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan rater row: %w", err)
		}
		raters = append(raters, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rater rows: %w", err)
	}
	return raters, nil
}
