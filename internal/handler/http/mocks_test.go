package http

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/makrand12345/StoreDoc-Backend/internal/domain"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) CreateWithStore(ctx context.Context, u *domain.User, s *domain.Store) error {
	return m.Called(ctx, u, s).Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context, f domain.UserListFilter) ([]domain.User, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

type mockStoreRepo struct{ mock.Mock }

func (m *mockStoreRepo) Create(ctx context.Context, s *domain.Store) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockStoreRepo) ListWithRatings(ctx context.Context, userID int64) ([]domain.StoreSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StoreSummary), args.Error(1)
}

func (m *mockStoreRepo) ListForAdmin(ctx context.Context) ([]domain.AdminStore, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AdminStore), args.Error(1)
}

func (m *mockStoreRepo) GetByOwnerID(ctx context.Context, ownerID int64) (*domain.Store, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Store), args.Error(1)
}

type mockRatingRepo struct{ mock.Mock }

func (m *mockRatingRepo) Upsert(ctx context.Context, r *domain.Rating) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockRatingRepo) SummaryByStore(ctx context.Context, storeID int64) (*domain.RatingSummary, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RatingSummary), args.Error(1)
}

func (m *mockRatingRepo) RatersByStore(ctx context.Context, storeID int64) ([]domain.Rater, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rater), args.Error(1)
}

type mockStatsRepo struct{ mock.Mock }

func (m *mockStatsRepo) Dashboard(ctx context.Context) (*domain.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardStats), args.Error(1)
}

type nopEvents struct{}

func (nopEvents) PublishUserRegistered(context.Context, *domain.User) error { return nil }
func (nopEvents) PublishStoreCreated(context.Context, *domain.Store) error { return nil }
func (nopEvents) PublishStoreRated(context.Context, *domain.Rating) error { return nil }
