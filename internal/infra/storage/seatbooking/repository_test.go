package seatbooking

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/pkg/dbmetrics"
)

var day = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

func newRepo(t *testing.T) (*Repository, *dbmetrics.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	wrapped := dbmetrics.Wrap(db, nil)
	return NewRepository(wrapped), wrapped, mock
}

func TestRepository_Create(t *testing.T) {
	repo, _, mock := newRepo(t)
	token := "tok-1"
	now := time.Now()

	mock.ExpectQuery("INSERT INTO seat_bookings").
		WithArgs(2, day, sqlmock.AnyArg(), true, sqlmock.AnyArg(), &token).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(17), now, now))

	booking, err := repo.Create(context.Background(), &domain.SeatBooking{
		FloorNumber: 2,
		Date:        day,
		SeatNo:      []string{"B 005", "B 006"},
		Status:      true,
		Token:       &token,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(17), booking.ID)
	assert.Equal(t, now, booking.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_Conflict(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery("INSERT INTO seat_bookings").
		WillReturnError(&pq.Error{Code: "40001"})

	_, err := repo.Create(context.Background(), &domain.SeatBooking{FloorNumber: 1, Date: day, SeatNo: []string{"A 001"}})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRepository_ListByFloorAndDate_LocksInsideTransaction(t *testing.T) {
	repo, wrapped, mock := newRepo(t)
	ctx := context.Background()

	mock.ExpectBegin()
	tx, err := wrapped.BeginTx(ctx, nil)
	require.NoError(t, err)
	txCtx := dbmetrics.WithTx(ctx, tx)

	mock.ExpectQuery("SELECT (.+) FROM seat_bookings WHERE (.+) ORDER BY id FOR UPDATE").
		WithArgs(day, 1).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(1), 1, day, "{\"A 001\",\"A 002\"}", true, "{}", nil, day, day).
			AddRow(int64(2), 1, day, "{\"[A 003]\"}", true, "{u1,u2}", "tok", day, day))

	bookings, err := repo.ListByFloorAndDate(txCtx, 1, day)
	require.NoError(t, err)
	require.Len(t, bookings, 2)

	assert.Equal(t, []string{"A 001", "A 002"}, bookings[0].SeatNo)
	assert.Nil(t, bookings[0].Token)
	assert.Equal(t, []string{"[A 003]"}, bookings[1].SeatNo)
	assert.Equal(t, []string{"u1", "u2"}, bookings[1].Users)
	require.NotNil(t, bookings[1].Token)
	assert.Equal(t, "tok", *bookings[1].Token)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListByFloorAndDate_NoLockOutsideTransaction(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM seat_bookings WHERE (.+) ORDER BY id$").
		WillReturnRows(sqlmock.NewRows(columns))

	bookings, err := repo.ListByFloorAndDate(context.Background(), 1, day)
	require.NoError(t, err)
	assert.Empty(t, bookings)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListByFloorAndDate_SerializationFailure(t *testing.T) {
	repo, wrapped, mock := newRepo(t)
	ctx := context.Background()

	mock.ExpectBegin()
	tx, err := wrapped.BeginTx(ctx, nil)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT (.+) FROM seat_bookings WHERE (.+) FOR UPDATE").
		WillReturnError(&pq.Error{Code: "40001"})

	_, err = repo.ListByFloorAndDate(dbmetrics.WithTx(ctx, tx), 1, day)
	assert.ErrorIs(t, err, ErrConflict)
	assert.NotErrorIs(t, err, ErrExecQuery)
}

func TestRepository_ListUpcomingByToken(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM seat_bookings WHERE date >= \\$1 AND \\(token = \\$2 OR \\$3 = ANY\\(users\\)\\)").
		WithArgs(day, "tok", "tok").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(5), 3, day, "{\"C 010\"}", true, "{tok}", nil, day, day))

	bookings, err := repo.ListUpcomingByToken(context.Background(), "tok", day)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.True(t, bookings[0].IsOwnedBy("tok"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec("DELETE FROM seat_bookings WHERE id = \\$1").
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM seat_bookings WHERE id = \\$1").
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), 3))
	assert.ErrorIs(t, repo.Delete(context.Background(), 4), ErrBookingNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
