package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makrand12345/StoreDoc-Backend/internal/domain"
	apperrors "github.com/makrand12345/StoreDoc-Backend/pkg/errors"
)

func TestStoreRepository_Create(t *testing.T) {
	mock := newMock(t)
	repo := NewStoreRepository(mock)
	var noOwner *int64
	s := &domain.Store{Name: "Corner Shop", Address: "1 Main St"}

	mock.ExpectQuery("INSERT INTO stores").
		WithArgs("Corner Shop", "", "1 Main St", noOwner).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(11)))

	require.NoError(t, repo.Create(context.Background(), s))
	assert.Equal(t, int64(11), s.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreRepository_Create_UnknownOwner(t *testing.T) {
	mock := newMock(t)
	repo := NewStoreRepository(mock)
	owner := int64(99)

	mock.ExpectQuery("INSERT INTO stores").
		WithArgs("Corner Shop", "", "", &owner).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "stores_owner_id_fkey"})

	err := repo.Create(context.Background(), &domain.Store{Name: "Corner Shop", OwnerID: &owner})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestStoreRepository_ListWithRatings(t *testing.T) {
	mock := newMock(t)
	repo := NewStoreRepository(mock)
	four := 4

	mock.ExpectQuery("SELECT s.id, s.name.+FROM stores s LEFT JOIN ratings r").
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "address", "avg_rating", "user_rating"}).
			AddRow(int64(1), "Alpha Books", "A street", 4.5, &four).
			AddRow(int64(2), "Beta Bakery", "", 0.0, nil))

	stores, err := repo.ListWithRatings(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, stores, 2)

	assert.Equal(t, 4.5, stores[0].AvgRating)
	require.NotNil(t, stores[0].UserRating)
	assert.Equal(t, 4, *stores[0].UserRating)

	assert.Equal(t, 0.0, stores[1].AvgRating)
	assert.Nil(t, stores[1].UserRating)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreRepository_ListWithRatings_QueryError(t *testing.T) {
	mock := newMock(t)
	repo := NewStoreRepository(mock)

	mock.ExpectQuery("FROM stores s").
		WithArgs(int64(0)).
		WillReturnError(errors.New("timeout"))

	_, err := repo.ListWithRatings(context.Background(), 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list stores")
}

func TestStoreRepository_ListForAdmin(t *testing.T) {
	mock := newMock(t)
	repo := NewStoreRepository(mock)
	owner := int64(3)
	ownerName := "Charlotte Stevenson-Hale"
	ownerEmail := "charlotte@example.com"

	mock.ExpectQuery("FROM stores s LEFT JOIN users u").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "email", "address", "owner_id", "owner_name", "owner_email", "avg_rating",
		}).
			AddRow(int64(1), "Alpha Books", "alpha@example.com", "A street", &owner, &ownerName, &ownerEmail, 3.7).
			AddRow(int64(2), "Orphan Store", "", "", nil, nil, nil, 0.0))

	stores, err := repo.ListForAdmin(context.Background())
	require.NoError(t, err)
	require.Len(t, stores, 2)

	assert.Equal(t, &owner, stores[0].OwnerID)
	assert.Equal(t, ownerName, *stores[0].OwnerName)
	assert.Equal(t, 3.7, stores[0].AvgRating)
	assert.Nil(t, stores[1].OwnerID)
	assert.Nil(t, stores[1].OwnerName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreRepository_GetByOwnerID(t *testing.T) {
	mock := newMock(t)
	repo := NewStoreRepository(mock)
	owner := int64(3)

	mock.ExpectQuery("FROM stores WHERE owner_id =").
		WithArgs(owner).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "address", "owner_id"}).
			AddRow(int64(8), "Alpha Books", "", "A street", &owner))

	s, err := repo.GetByOwnerID(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, int64(8), s.ID)
	assert.Equal(t, owner, *s.OwnerID)
}

func TestStoreRepository_GetByOwnerID_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewStoreRepository(mock)

	mock.ExpectQuery("FROM stores WHERE owner_id =").
		WithArgs(int64(3)).
		WillReturnError(pgx.ErrNoRows)

	s, err := repo.GetByOwnerID(context.Background(), 3)
	assert.Nil(t, s)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}
