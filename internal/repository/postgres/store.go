package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/makrand12345/StoreDoc-Backend/internal/domain"
	"github.com/makrand12345/StoreDoc-Backend/pkg/database"
	apperrors "github.com/makrand12345/StoreDoc-Backend/pkg/errors"
)

const insertStoreSQL = `
		INSERT INTO stores (name, email, address, owner_id)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4)
		RETURNING id`

// StoreRepository implements repository.StoreRepository using PostgreSQL.
type StoreRepository struct {
	db database.DBTX
}

// NewStoreRepository creates a new PostgreSQL-backed store repository.
func NewStoreRepository(db database.DBTX) *StoreRepository {
	return &StoreRepository{db: db}
}

// Create inserts a store and sets its generated ID.
func (r *StoreRepository) Create(ctx context.Context, s *domain.Store) (err error) {
	ctx, end := database.TraceQuery(ctx, "CreateStore", insertStoreSQL)
	defer func() { end(err) }()

	return insertStore(ctx, r.db, s)
}

func insertStore(ctx context.Context, q queryRower, s *domain.Store) error {
	err := q.QueryRow(ctx, insertStoreSQL,
		s.Name,
		s.Email,
		s.Address,
		s.OwnerID,
	).Scan(&s.ID)
	if err != nil {
		if _, ok := isForeignKeyViolation(err); ok {
			return apperrors.NotFound("Owner not found")
		}
		return fmt.Errorf("insert store: %w", err)
	}
	return nil
}

// ListWithRatings returns the public store listing for userID. userID 0
// matches no rating, so UserRating is nil for anonymous callers.
func (r *StoreRepository) ListWithRatings(ctx context.Context, userID int64) (stores []domain.StoreSummary, err error) {
	query := `
		SELECT s.id, s.name, COALESCE(s.address, ''),
		       ROUND(COALESCE(AVG(r.rating), 0), 1)::float8 AS avg_rating,
		       (SELECT ur.rating::int FROM ratings ur WHERE ur.store_id = s.id AND ur.user_id = $1) AS user_rating
		FROM stores s
		LEFT JOIN ratings r ON r.store_id = s.id
		GROUP BY s.id
		ORDER BY s.name ASC, s.id ASC`

	ctx, end := database.TraceQuery(ctx, "ListStoresWithRatings", query)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()

	stores = make([]domain.StoreSummary, 0)
	for rows.Next() {
		var s domain.StoreSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Address, &s.AvgRating, &s.UserRating); err != nil {
			return nil, fmt.Errorf("scan store row: %w", err)
		}
		stores = append(stores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate store rows: %w", err)
	}
	return stores, nil
}

// ListForAdmin returns every store with its owner and average rating.
func (r *StoreRepository) ListForAdmin(ctx context.Context) (stores []domain.AdminStore, err error) {
	query := `
		SELECT s.id, s.name, COALESCE(s.email, ''), COALESCE(s.address, ''), s.owner_id::bigint,
		       u.name, u.email,
		       ROUND(COALESCE((SELECT AVG(r.rating) FROM ratings r WHERE r.store_id = s.id), 0), 1)::float8 AS avg_rating
		FROM stores s
		LEFT JOIN users u ON u.id = s.owner_id
		ORDER BY s.id ASC`

	ctx, end := database.TraceQuery(ctx, "ListStoresForAdmin", query)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list admin stores: %w", err)
	}
	defer rows.Close()

	stores = make([]domain.AdminStore, 0)
	for rows.Next() {
		var s domain.AdminStore
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Email, &s.Address, &s.OwnerID,
			&s.OwnerName, &s.OwnerEmail, &s.AvgRating,
		); err != nil {
			return nil, fmt.Errorf("scan admin store row: %w", err)
		}
		stores = append(stores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate admin store rows: %w", err)
	}
	return stores, nil
}

// GetByOwnerID returns the first store owned by ownerID.
func (r *StoreRepository) GetByOwnerID(ctx context.Context, ownerID int64) (s *domain.Store, err error) {
	query := `
		SELECT id, name, COALESCE(email, ''), COALESCE(address, ''), owner_id::bigint
		FROM stores
		WHERE owner_id = $1
		ORDER BY id ASC
		LIMIT 1`

	ctx, end := database.TraceQuery(ctx, "GetStoreByOwnerID", query)
	defer func() { end(err) }()

	var store domain.Store
	err = r.db.QueryRow(ctx, query, ownerID).Scan(
		&store.ID, &store.Name, &store.Email, &store.Address, &store.OwnerID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("get store by owner: %w", err)
	}
	return &store, nil
}
