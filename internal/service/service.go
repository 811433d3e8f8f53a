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

// bcryptCost matches the salt rounds existing password hashes were made with.
const bcryptCost = 10

// TokenIssuer signs bearer tokens for authenticated users.
type TokenIssuer interface {
	GenerateToken(user *domain.User) (string, error)
}

// EventPublisher publishes domain events. Failures are logged by the caller
// and never fail the operation.
type EventPublisher interface {
	PublishUserRegistered(ctx context.Context, u *domain.User) error
	PublishStoreCreated(ctx context.Context, s *domain.Store) error
	PublishStoreRated(ctx context.Context, r *domain.Rating) error
}

// Caller is the authenticated identity performing an operation.
type Caller struct {
	ID   int64
	Role domain.Role
}

// accountCreator creates users and, for store owners, their store. It is
// shared by public registration and admin user creation.
type accountCreator struct {
	users  repository.UserRepository
	stores repository.StoreRepository
	events EventPublisher
	atomic bool
	logger *slog.Logger
}

// ensureEmailFree reports AlreadyExists when email is taken.
func (c *accountCreator) ensureEmailFree(ctx context.Context, email string) error {
	_, err := c.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return apperrors.AlreadyExists("User already exists")
	case errors.Is(err, apperrors.ErrNotFound):
		return nil
	default:
		return fmt.Errorf("check existing user: %w", err)
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// create inserts u and, when store is non-nil, a store owned by u. Without
// the atomic option the two inserts are independent: if the store insert
// fails the user row stays and the orphan is logged.
func (c *accountCreator) create(ctx context.Context, u *domain.User, store *domain.Store) error {
	switch {
	case store == nil:
		if err := c.users.Create(ctx, u); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
	case c.atomic:
		if err := c.users.CreateWithStore(ctx, u, store); err != nil {
			return fmt.Errorf("create user with store: %w", err)
		}
	default:
		if err := c.users.Create(ctx, u); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		store.OwnerID = &u.ID
		if err := c.stores.Create(ctx, store); err != nil {
			c.logger.ErrorContext(ctx, "store creation failed after user insert, user has no store",
				slog.Int64("user_id", u.ID),
				slog.String("store_name", store.Name),
				slog.String("error", err.Error()),
			)
			return apperrors.Internal(fmt.Errorf("create store for user %d: %w", u.ID, err))
		}
	}

	c.publishUserRegistered(ctx, u)
	if store != nil {
		publishStoreCreated(ctx, c.events, c.logger, store)
	}
	return nil
}

func (c *accountCreator) publishUserRegistered(ctx context.Context, u *domain.User) {
	if err := c.events.PublishUserRegistered(ctx, u); err != nil {
		c.logger.ErrorContext(ctx, "failed to publish user.registered event",
			slog.Int64("user_id", u.ID),
			slog.String("error", err.Error()),
		)
	}
}

func publishStoreCreated(ctx context.Context, events EventPublisher, logger *slog.Logger, s *domain.Store) {
	if err := events.PublishStoreCreated(ctx, s); err != nil {
		logger.ErrorContext(ctx, "failed to publish store.created event",
			slog.Int64("store_id", s.ID),
			slog.String("error", err.Error()),
		)
	}
}
