package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/makrand12345/StoreDoc-Backend/internal/domain"
	apperrors "github.com/makrand12345/StoreDoc-Backend/pkg/errors"
)

func TestListStores(t *testing.T) {
	stores := &mockStoreRepo{}
	svc := NewStoreService(stores, &mockRatingRepo{})
	mine := 4
	want := []domain.StoreSummary{
		{ID: 1, Name: "Alpha", AvgRating: 4.5, UserRating: &mine},
		{ID: 2, Name: "Beta"},
	}
	stores.On("ListWithRatings", mock.Anything, int64(3)).Return(want, nil).Once()

	got, err := svc.ListStores(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestListStores_NegativeUser(t *testing.T) {
	stores := &mockStoreRepo{}
	svc := NewStoreService(stores, &mockRatingRepo{})

	_, err := svc.ListStores(context.Background(), -1)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
	stores.AssertNotCalled(t, "ListWithRatings", mock.Anything, mock.Anything)
}

func ownerStatsFixture(ownerID, storeID int64) (*StoreService, *mockStoreRepo, *mockRatingRepo) {
	stores := &mockStoreRepo{}
	ratings := &mockRatingRepo{}
	stores.On("GetByOwnerID", mock.Anything, ownerID).Return(&domain.Store{ID: storeID, OwnerID: &ownerID}, nil).Maybe()
	ratings.On("SummaryByStore", mock.Anything, storeID).
		Return(&domain.RatingSummary{AvgRating: 4.5, TotalRatings: 2}, nil).Maybe()
	ratings.On("RatersByStore", mock.Anything, storeID).Return([]domain.Rater{
		{Name: "Second Rater With Long Name", Rating: 5, CreatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		{Name: "First Rater With Long Name", Rating: 4, CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}, nil).Maybe()
	return NewStoreService(stores, ratings), stores, ratings
}

func TestOwnerStats_OwnStore(t *testing.T) {
	svc, _, _ := ownerStatsFixture(7, 3)

	stats, err := svc.OwnerStats(context.Background(), Caller{ID: 7, Role: domain.RoleStoreOwner}, nil)
	require.NoError(t, err)
	assert.Equal(t, 4.5, stats.Summary.AvgRating)
	assert.Equal(t, int64(2), stats.Summary.TotalRatings)
	require.Len(t, stats.Raters, 2)
	assert.Equal(t, 5, stats.Raters[0].Rating)
}

func TestOwnerStats_ExplicitOwnIDAllowed(t *testing.T) {
	svc, _, _ := ownerStatsFixture(7, 3)
	self := int64(7)

	_, err := svc.OwnerStats(context.Background(), Caller{ID: 7, Role: domain.RoleStoreOwner}, &self)
	require.NoError(t, err)
}

func TestOwnerStats_OtherOwnerForbidden(t *testing.T) {
	svc, stores, ratings := ownerStatsFixture(9, 5)
	other := int64(9)

	stats, err := svc.OwnerStats(context.Background(), Caller{ID: 7, Role: domain.RoleStoreOwner}, &other)
	assert.Nil(t, stats)
	assert.True(t, errors.Is(err, apperrors.ErrForbidden))
	stores.AssertNotCalled(t, "GetByOwnerID", mock.Anything, mock.Anything)
	ratings.AssertNotCalled(t, "SummaryByStore", mock.Anything, mock.Anything)
}

func TestOwnerStats_Admin(t *testing.T) {
	svc, _, _ := ownerStatsFixture(9, 5)
	owner := int64(9)

	_, err := svc.OwnerStats(context.Background(), Caller{ID: 1, Role: domain.RoleAdmin}, nil)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))

	stats, err := svc.OwnerStats(context.Background(), Caller{ID: 1, Role: domain.RoleAdmin}, &owner)
	require.NoError(t, err)
	assert.Len(t, stats.Raters, 2)
}

func TestOwnerStats_PlainUserForbidden(t *testing.T) {
	svc, stores, _ := ownerStatsFixture(7, 3)

	_, err := svc.OwnerStats(context.Background(), Caller{ID: 7, Role: domain.RoleUser}, nil)
	assert.True(t, errors.Is(err, apperrors.ErrForbidden))
	stores.AssertNotCalled(t, "GetByOwnerID", mock.Anything, mock.Anything)
}

func TestOwnerStats_NoStore(t *testing.T) {
	stores := &mockStoreRepo{}
	stores.On("GetByOwnerID", mock.Anything, int64(7)).Return(nil, apperrors.ErrNotFound).Once()
	svc := NewStoreService(stores, &mockRatingRepo{})

	_, err := svc.OwnerStats(context.Background(), Caller{ID: 7, Role: domain.RoleStoreOwner}, nil)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Status)
	assert.Equal(t, "No store found", appErr.Message)
}

func TestOwnerStats_NoRatings(t *testing.T) {
	stores := &mockStoreRepo{}
	ratings := &mockRatingRepo{}
	stores.On("GetByOwnerID", mock.Anything, int64(7)).Return(&domain.Store{ID: 3}, nil).Once()
	ratings.On("SummaryByStore", mock.Anything, int64(3)).Return(&domain.RatingSummary{}, nil).Once()
	ratings.On("RatersByStore", mock.Anything, int64(3)).Return([]domain.Rater{}, nil).Once()
	svc := NewStoreService(stores, ratings)

	stats, err := svc.OwnerStats(context.Background(), Caller{ID: 7, Role: domain.RoleStoreOwner}, nil)
	require.NoError(t, err)
	assert.Zero(t, stats.Summary.AvgRating)
	assert.Zero(t, stats.Summary.TotalRatings)
	assert.Empty(t, stats.Raters)
}
