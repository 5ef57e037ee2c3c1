package floor

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_GetByNumber(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM floors WHERE floor_number = \\$1").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(3, "Third", "C 001", "C 040", 40))

	f, err := repo.GetByNumber(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "C 001", f.StartingSeatNo)
	assert.Equal(t, 40, f.Capacity)

	mock.ExpectQuery("SELECT (.+) FROM floors WHERE floor_number = \\$1").
		WithArgs(9).
		WillReturnRows(sqlmock.NewRows(columns))

	_, err = repo.GetByNumber(context.Background(), 9)
	assert.ErrorIs(t, err, ErrFloorNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
