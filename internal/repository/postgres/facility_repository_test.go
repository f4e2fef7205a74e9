package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/city-tourism-backend/internal/domain/repository"
)

func newMockFacilityRepo(t *testing.T) (repository.FacilityRepository, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db := sqlx.NewDb(mockDB, "sqlmock")
	return NewFacilityRepository(NewDBForTest(db, nil)), mock
}

func TestFacilityRepository_GetByID(t *testing.T) {
	t.Run("loads the subtypes relation", func(t *testing.T) {
		repo, mock := newMockFacilityRepo(t)

		mock.ExpectQuery(`FROM facilities WHERE id =`).
			WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description"}).
				AddRow(int64(5), "WiFi", "Free wireless"))
		mock.ExpectQuery(`JOIN subtype_facilities sf ON sf.subtype_id = s.id`).
			WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "type_id"}).
				AddRow(int64(1), "Hotel", "", int64(2)).
				AddRow(int64(3), "Hostel", "", int64(2)))

		f, err := repo.GetByID(context.Background(), 5)
		require.NoError(t, err)
		assert.Equal(t, "WiFi", f.Name)
		require.Len(t, f.Subtypes, 2)
		assert.Equal(t, int64(1), f.Subtypes[0].ID)
		assert.Equal(t, int64(3), f.Subtypes[1].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unlinked facility comes back with no subtypes", func(t *testing.T) {
		repo, mock := newMockFacilityRepo(t)

		mock.ExpectQuery(`FROM facilities WHERE id =`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description"}).
				AddRow(int64(7), "Parking", ""))
		mock.ExpectQuery(`JOIN subtype_facilities sf ON sf.subtype_id = s.id`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "type_id"}))

		f, err := repo.GetByID(context.Background(), 7)
		require.NoError(t, err)
		assert.Empty(t, f.Subtypes)
	})
}
