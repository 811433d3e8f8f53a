package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/makrand12345/StoreDoc-Backend/internal/domain"
	"github.com/makrand12345/StoreDoc-Backend/internal/repository"
	apperrors "github.com/makrand12345/StoreDoc-Backend/pkg/errors"
)

// RateInput is a rating submission. UserID defaults to the caller.
type RateInput struct {
	StoreID int64  `json:"store_id"`
	UserID  *int64 `json:"user_id"`
	Rating  int    `json:"rating"`
}

// RatingService implements rating submission.
type RatingService struct {
	ratings repository.RatingRepository
	events  EventPublisher
	logger  *slog.Logger
}

func NewRatingService(ratings repository.RatingRepository, events EventPublisher, logger *slog.Logger) *RatingService {
	return &RatingService{ratings: ratings, events: events, logger: logger}
}

// Rate stores the caller's rating for a store, replacing an earlier one.
// Only an Admin may rate on behalf of another user.
func (s *RatingService) Rate(ctx context.Context, caller Caller, input RateInput) (*domain.Rating, error) {
	if input.StoreID <= 0 {
		return nil, apperrors.InvalidInput("store_id is required")
	}
	if input.StoreID > math.MaxInt32 {
		return nil, apperrors.InvalidInput("Invalid store_id")
	}
	if input.UserID != nil && (*input.UserID <= 0 || *input.UserID > math.MaxInt32) {
		return nil, apperrors.InvalidInput("Invalid user_id")
	}
	if !domain.ValidRating(input.Rating) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("Rating must be between %d and %d", domain.MinRating, domain.MaxRating))
	}

	userID := caller.ID
	if input.UserID != nil && *input.UserID != caller.ID {
		if caller.Role != domain.RoleAdmin {
			return nil, apperrors.Forbidden("insufficient permissions")
		}
		userID = *input.UserID
	}

	rating := &domain.Rating{UserID: userID, StoreID: input.StoreID, Rating: input.Rating}
	if err := s.ratings.Upsert(ctx, rating); err != nil {
		return nil, fmt.Errorf("upsert rating: %w", err)
	}

	if err := s.events.PublishStoreRated(ctx, rating); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish store.rated event",
			slog.Int64("store_id", rating.StoreID),
			slog.String("error", err.Error()),
		)
	}
	s.logger.InfoContext(ctx, "store rated",
		slog.Int64("store_id", rating.StoreID),
		slog.Int64("user_id", rating.UserID),
		slog.Int("rating", rating.Rating),
	)
	return rating, nil
}
