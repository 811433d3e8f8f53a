package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/makrand12345/StoreDoc-Backend/internal/domain"
	"github.com/makrand12345/StoreDoc-Backend/internal/repository"
	apperrors "github.com/makrand12345/StoreDoc-Backend/pkg/errors"
)

const invalidCredentials = "Invalid Credentials"

// RegisterInput is a public registration request. Field order is the order
// in which rules are checked.
type RegisterInput struct {
	Name      string `json:"name" validate:"personname"`
	Address   string `json:"address" validate:"postaddress"`
	Password  string `json:"password" validate:"storepassword"`
	Email     string `json:"email" validate:"emailshape"`
	Role      string `json:"role"`
	StoreName string `json:"storeName" validate:"max=255"`
}

// LoginInput holds login credentials.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the authenticated user and their bearer token.
type LoginResult struct {
	User  *domain.User
	Token string
}

// AuthService implements registration and login.
type AuthService struct {
	accounts *accountCreator
	users    repository.UserRepository
	tokens   TokenIssuer
	logger   *slog.Logger
}

// NewAuthService creates an auth service. With atomicOwnerSignup a store
// owner and their store are created in one transaction.
func NewAuthService(
	users repository.UserRepository,
	stores repository.StoreRepository,
	tokens TokenIssuer,
	events EventPublisher,
	atomicOwnerSignup bool,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		accounts: &accountCreator{users: users, stores: stores, events: events, atomic: atomicOwnerSignup, logger: logger},
		users:    users,
		tokens:   tokens,
		logger:   logger,
	}
}

// Register validates input and creates the account. Role defaults to User and
// Admin cannot self-register. A StoreOwner who names a store gets it created
// with their email and address.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if err := validate(input); err != nil {
		return nil, err
	}

	role := domain.RoleUser
	if input.Role != "" {
		r, err := domain.ParseRole(input.Role)
		if err != nil {
			return nil, apperrors.InvalidInput("Invalid role")
		}
		role = r
	}
	if role == domain.RoleAdmin {
		return nil, apperrors.InvalidInput("Admin accounts cannot be self-registered")
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
	if role == domain.RoleStoreOwner && input.StoreName != "" {
		store = &domain.Store{Name: input.StoreName, Email: input.Email, Address: input.Address}
	}

	if err := s.accounts.create(ctx, user, store); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.Int64("user_id", user.ID),
		slog.String("role", string(user.Role)),
	)
	return user, nil
}

// Login checks credentials and issues a bearer token. Unknown email and wrong
// password produce the same error.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if input.Email == "" || input.Password == "" {
		return nil, apperrors.InvalidInput("Email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthorized(invalidCredentials)
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, apperrors.Unauthorized(invalidCredentials)
	}

	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged in", slog.Int64("user_id", user.ID))
	return &LoginResult{User: user, Token: token}, nil
}
