package service

import (
	"context"
	"io"
	"log/slog"

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
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context, f domain.UserListFilter) ([]domain.User, error) {
	args := m.Called(ctx, f)
	users, _ := args.Get(0).([]domain.User)
	return users, args.Error(1)
}

type mockStoreRepo struct{ mock.Mock }

func (m *mockStoreRepo) Create(ctx context.Context, s *domain.Store) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockStoreRepo) ListWithRatings(ctx context.Context, userID int64) ([]domain.StoreSummary, error) {
	args := m.Called(ctx, userID)
	stores, _ := args.Get(0).([]domain.StoreSummary)
	return stores, args.Error(1)
}

func (m *mockStoreRepo) ListForAdmin(ctx context.Context) ([]domain.AdminStore, error) {
	args := m.Called(ctx)
	stores, _ := args.Get(0).([]domain.AdminStore)
	return stores, args.Error(1)
}

func (m *mockStoreRepo) GetByOwnerID(ctx context.Context, ownerID int64) (*domain.Store, error) {
	args := m.Called(ctx, ownerID)
	s, _ := args.Get(0).(*domain.Store)
	return s, args.Error(1)
}

type mockRatingRepo struct{ mock.Mock }

func (m *mockRatingRepo) Upsert(ctx context.Context, r *domain.Rating) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockRatingRepo) SummaryByStore(ctx context.Context, storeID int64) (*domain.RatingSummary, error) {
	args := m.Called(ctx, storeID)
	s, _ := args.Get(0).(*domain.RatingSummary)
	return s, args.Error(1)
}

func (m *mockRatingRepo) RatersByStore(ctx context.Context, storeID int64) ([]domain.Rater, error) {
	args := m.Called(ctx, storeID)
	raters, _ := args.Get(0).([]domain.Rater)
	return raters, args.Error(1)
}

type mockStatsRepo struct{ mock.Mock }

func (m *mockStatsRepo) Dashboard(ctx context.Context) (*domain.DashboardStats, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(*domain.DashboardStats)
	return s, args.Error(1)
}

type mockTokens struct{ mock.Mock }

func (m *mockTokens) GenerateToken(u *domain.User) (string, error) {
	args := m.Called(u)
	return args.String(0), args.Error(1)
}

// recordingEvents records published events and never fails unless err is set.
type recordingEvents struct {
	users   []*domain.User
	stores  []*domain.Store
	ratings []*domain.Rating
	err     error
}

func (r *recordingEvents) PublishUserRegistered(_ context.Context, u *domain.User) error {
	r.users = append(r.users, u)
	return r.err
}

func (r *recordingEvents) PublishStoreCreated(_ context.Context, s *domain.Store) error {
	r.stores = append(r.stores, s)
	return r.err
}

func (r *recordingEvents) PublishStoreRated(_ context.Context, rt *domain.Rating) error {
	r.ratings = append(r.ratings, rt)
	return r.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
