package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/makrand12345/StoreDoc-Backend/internal/domain"
	"github.com/makrand12345/StoreDoc-Backend/pkg/database"
	apperrors "github.com/makrand12345/StoreDoc-Backend/pkg/errors"
)

const (
	insertUserSQL = `
		INSERT INTO users (name, email, password_hash, address, role)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5)
		RETURNING id`

	selectUserSQL = `
		SELECT id, name, email, password_hash, COALESCE(address, ''), role
		FROM users`
)

// UserRepository implements repository.UserRepository using PostgreSQL.
type UserRepository struct {
	db database.DBTX
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(db database.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and sets its generated ID.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) (err error) {
	ctx, end := database.TraceQuery(ctx, "CreateUser", insertUserSQL)
	defer func() { end(err) }()

	return insertUser(ctx, r.db, u)
}

// CreateWithStore inserts a user and the store it owns atomically.
func (r *UserRepository) CreateWithStore(ctx context.Context, u *domain.User, s *domain.Store) (err error) {
	ctx, end := database.TraceQuery(ctx, "CreateUserWithStore", insertUserSQL+";"+insertStoreSQL)
	defer func() { end(err) }()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := insertUser(ctx, tx, u); err != nil {
		return err
	}
	s.OwnerID = &u.ID
	if err := insertStore(ctx, tx, s); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit user with store: %w", err)
	}
	return nil
}

type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func insertUser(ctx context.Context, q queryRower, u *domain.User) error {
	err := q.QueryRow(ctx, insertUserSQL,
		u.Name,
		u.Email,
		u.PasswordHash,
		u.Address,
		string(u.Role),
	).Scan(&u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("User already exists")
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.scanUser(ctx, "GetUserByID", selectUserSQL+" WHERE id = $1", id)
}

// GetByEmail retrieves a user by email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.scanUser(ctx, "GetUserByEmail", selectUserSQL+" WHERE email = $1", email)
}

func (r *UserRepository) scanUser(ctx context.Context, op, query string, args ...any) (u *domain.User, err error) {
	ctx, end := database.TraceQuery(ctx, op, query)
	defer func() { end(err) }()

	var user domain.User
	var role string
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Address,
		&role,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	user.Role = domain.Role(role)
	return &user, nil
}

// List returns users matching the filter. Search and role are bound as
// parameters; the ORDER BY clause comes from the closed sort enums.
func (r *UserRepository) List(ctx context.Context, filter domain.UserListFilter) (users []domain.User, err error) {
	var (
		b    strings.Builder
		args []any
	)
	b.WriteString(`SELECT id, name, email, COALESCE(address, ''), role FROM users WHERE 1=1`)

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := strconv.Itoa(len(args))
		b.WriteString(" AND (name ILIKE $" + n + " OR email ILIKE $" + n + ")")
	}
	if filter.Role != "" {
		args = append(args, string(filter.Role))
		b.WriteString(" AND role = $" + strconv.Itoa(len(args)))
	}
	b.WriteString(" ORDER BY " + filter.SortBy.SQL() + " " + filter.Order.SQL() + ", id ASC")
	query := b.String()

	ctx, end := database.TraceQuery(ctx, "ListUsers", query)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users = make([]domain.User, 0)
	for rows.Next() {
		var u domain.User
		var role string
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Address, &role); err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		u.Role = domain.Role(role)
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user rows: %w", err)
	}
	return users, nil
}
