package room

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_ListByMinCapacity(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM meeting_rooms WHERE capacity >= \\$1 ORDER BY id").
		WithArgs(6).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(1), "Orion", 8, 2).
			AddRow(int64(4), "Vega", 12, 3))

	rooms, err := repo.ListByMinCapacity(context.Background(), 6)
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, "Vega", rooms[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM meeting_rooms WHERE id = \\$1").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows(columns))

	_, err = repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestRepository_Count_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM meeting_rooms").
		WillReturnError(errors.New("connection reset"))

	_, err = repo.Count(context.Background())
	assert.ErrorIs(t, err, ErrScanRow)
}
