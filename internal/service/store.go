package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/makrand12345/StoreDoc-Backend/internal/domain"
	"github.com/makrand12345/StoreDoc-Backend/internal/repository"
	apperrors "github.com/makrand12345/StoreDoc-Backend/pkg/errors"
)

// StoreService implements the public store listing and owner dashboard.
type StoreService struct {
	stores  repository.StoreRepository
	ratings repository.RatingRepository
}

func NewStoreService(stores repository.StoreRepository, ratings repository.RatingRepository) *StoreService {
	return &StoreService{stores: stores, ratings: ratings}
}

// ListStores returns all stores with averages and userID's own ratings.
// userID 0 lists without personal ratings.
func (s *StoreService) ListStores(ctx context.Context, userID int64) ([]domain.StoreSummary, error) {
	if userID < 0 {
		return nil, apperrors.InvalidInput("Invalid userId")
	}
	stores, err := s.stores.ListWithRatings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	return stores, nil
}

// OwnerStats returns the rating summary and raters of a store owner's store.
// A StoreOwner may only read their own store; ownerID nil means the caller.
// An Admin must name the owner.
func (s *StoreService) OwnerStats(ctx context.Context, caller Caller, ownerID *int64) (*domain.OwnerStats, error) {
	var target int64
	switch caller.Role {
	case domain.RoleStoreOwner:
		if ownerID != nil && *ownerID != caller.ID {
			return nil, apperrors.Forbidden("insufficient permissions")
		}
		target = caller.ID
	case domain.RoleAdmin:
		if ownerID == nil {
			return nil, apperrors.InvalidInput("ownerId is required")
		}
		target = *ownerID
	default:
		return nil, apperrors.Forbidden("insufficient permissions")
	}

	store, err := s.stores.GetByOwnerID(ctx, target)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("No store found")
		}
		return nil, fmt.Errorf("get store by owner: %w", err)
	}

	summary, err := s.ratings.SummaryByStore(ctx, store.ID)
	if err != nil {
		return nil, fmt.Errorf("rating summary: %w", err)
	}
	raters, err := s.ratings.RatersByStore(ctx, store.ID)
	if err != nil {
		return nil, fmt.Errorf("list raters: %w", err)
	}

	return &domain.OwnerStats{Summary: *summary, Raters: raters}, nil
}
