package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/makrand12345/StoreDoc-Backend/internal/domain"
	"github.com/makrand12345/StoreDoc-Backend/internal/repository"
	apperrors "github.com/makrand12345/StoreDoc-Backend/pkg/errors"
)

// ListUsersInput carries the raw admin listing query. Unknown sort columns
// fall back to name and any order other than "desc" is ascending.
type ListUsersInput struct {
	Search string
	Role   string
	SortBy string
	Order  string
}

// AddUserInput is an admin request to create an account of any role.
type AddUserInput struct {
	Name      string `json:"name" validate:"personname"`
	Address   string `json:"address" validate:"postaddress"`
	Password  string `json:"password" validate:"storepassword"`
	Email     string `json:"email" validate:"emailshape"`
	Role      string `json:"role"`
	StoreName string `json:"storeName" validate:"max=255"`
}

// AddStoreInput is an admin request to create a store.
type AddStoreInput struct {
	Name    string `json:"name" validate:"required,max=255"`
	Address string `json:"address" validate:"postaddress"`
	Email   string `json:"email" validate:"omitempty,emailshape"`
	OwnerID *int64 `json:"owner_id" validate:"omitempty,gt=0,lte=2147483647"`
}

// AdminService implements the admin dashboard operations.
type AdminService struct {
	accounts *accountCreator
	users    repository.UserRepository
	stores   repository.StoreRepository
	stats    repository.StatsRepository
	events   EventPublisher
	logger   *slog.Logger
}

// NewAdminService creates an admin service.
func NewAdminService(
	users repository.UserRepository,
	stores repository.StoreRepository,
	stats repository.StatsRepository,
	events EventPublisher,
	atomicOwnerSignup bool,
	logger *slog.Logger,
) *AdminService {
	return &AdminService{
		accounts: &accountCreator{users: users, stores: stores, events: events, atomic: atomicOwnerSignup, logger: logger},
		users:    users,
		stores:   stores,
		stats:    stats,
		events:   events,
		logger:   logger,
	}
}

// ListUsers returns users filtered by search and role. An empty role or
// "All" disables the role filter.
func (s *AdminService) ListUsers(ctx context.Context, input ListUsersInput) ([]domain.User, error) {
	filter := domain.UserListFilter{
		Search: input.Search,
		SortBy: domain.ParseUserSortColumn(input.SortBy),
		Order:  domain.ParseSortOrder(input.Order),
	}
	if input.Role != "" && input.Role != "All" {
		role, err := domain.ParseRole(input.Role)
		if err != nil {
			return nil, apperrors.InvalidInput("Invalid role")
		}
		filter.Role = role
	}

	users, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// AddUser creates an account with an explicit role. A StoreOwner always gets
// a store, named after them when no store name is given.
func (s *AdminService) AddUser(ctx context.Context, input AddUserInput) (*domain.User, error) {
	if err := validate(input); err != nil {
		return nil, err
	}
	if input.Role == "" {
		return nil, apperrors.InvalidInput("Role is required")
	}
	role, err := domain.ParseRole(input.Role)
	if err != nil {
		return nil, apperrors.InvalidInput("Invalid role")
	}

	if err := s.accounts.ensureEmailFree(ctx, input.Email); err != nil {
		return nil, err
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Address:      input.Address,
		Role:         role,
	}

	var store *domain.Store
	if role == domain.RoleStoreOwner {
		name := input.StoreName
		if name == "" {
			name = input.Name + "'s Store"
		}
		store = &domain.Store{Name: name, Address: input.Address}
	}

	if err := s.accounts.create(ctx, user, store); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "user added by admin",
		slog.Int64("user_id", user.ID),
		slog.String("role", string(user.Role)),
	)
	return user, nil
}

// ListStores returns every store with owner details and average rating.
func (s *AdminService) ListStores(ctx context.Context) ([]domain.AdminStore, error) {
	stores, err := s.stores.ListForAdmin(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	return stores, nil
}

// AddStore creates a store. When an owner is given it must exist and have
// the StoreOwner role.
func (s *AdminService) AddStore(ctx context.Context, input AddStoreInput) (*domain.Store, error) {
	if err := validate(input); err != nil {
		return nil, err
	}

	if input.OwnerID != nil {
		owner, err := s.users.GetByID(ctx, *input.OwnerID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NotFound("Owner not found")
			}
			return nil, fmt.Errorf("get owner: %w", err)
		}
		if owner.Role != domain.RoleStoreOwner {
			return nil, apperrors.InvalidInput("Owner must have the StoreOwner role")
		}
	}

	store := &domain.Store{
		Name:    input.Name,
		Email:   input.Email,
		Address: input.Address,
		OwnerID: input.OwnerID,
	}
	if err := s.stores.Create(ctx, store); err != nil {
		return nil, fmt.Errorf("create store: %w", err)
	}

	publishStoreCreated(ctx, s.events, s.logger, store)
	s.logger.InfoContext(ctx, "store added", slog.Int64("store_id", store.ID))
	return store, nil
}

// Stats returns the user, store and rating counts.
func (s *AdminService) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	stats, err := s.stats.Dashboard(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	return stats, nil
}
