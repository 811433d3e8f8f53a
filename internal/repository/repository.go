package repository

import (
	"context"

	"github.com/makrand12345/StoreDoc-Backend/internal/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// Create inserts u and sets its ID. A duplicate email yields an
	// AlreadyExists error.
	Create(ctx context.Context, u *domain.User) error

	// CreateWithStore inserts u and s in one transaction, linking s to u.
	CreateWithStore(ctx context.Context, u *domain.User, s *domain.Store) error

	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List returns users matching filter in the requested order.
	List(ctx context.Context, filter domain.UserListFilter) ([]domain.User, error)
}

// StoreRepository defines persistence operations for stores.
type StoreRepository interface {
	// Create inserts s and sets its ID. An unknown owner yields NotFound.
	Create(ctx context.Context, s *domain.Store) error

	// ListWithRatings returns every store with its average rating and the
	// rating left by userID, ordered by name.
	ListWithRatings(ctx context.Context, userID int64) ([]domain.StoreSummary, error)

	// ListForAdmin returns every store with owner details and average rating.
	ListForAdmin(ctx context.Context) ([]domain.AdminStore, error)

	// GetByOwnerID returns the store owned by ownerID.
	GetByOwnerID(ctx context.Context, ownerID int64) (*domain.Store, error)
}

// RatingRepository defines persistence operations for ratings.
type RatingRepository interface {
	// Upsert stores r, replacing any earlier rating by the same user for the
	// same store, and fills in ID and CreatedAt.
	Upsert(ctx context.Context, r *domain.Rating) error

	SummaryByStore(ctx context.Context, storeID int64) (*domain.RatingSummary, error)

	// RatersByStore lists who rated storeID, newest first.
	RatersByStore(ctx context.Context, storeID int64) ([]domain.Rater, error)
}

// StatsRepository provides the admin dashboard counters.
type StatsRepository interface {
	Dashboard(ctx context.Context) (*domain.DashboardStats, error)
}
