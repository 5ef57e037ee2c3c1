package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

var day = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

func TestRepository_Create_Duplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery("INSERT INTO overall_bookings").
		WithArgs("tok", "Seating", int64(3), day, sqlmock.AnyArg()).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "overall_bookings_booking_amenity_key"})

	_, err = repo.Create(context.Background(), &domain.LedgerEntry{
		Token:     "tok",
		Amenity:   domain.AmenitySeat,
		BookingID: 3,
		Date:      day,
		Details:   []string{"1", "A 001"},
	})

	assert.ErrorIs(t, err, ErrDuplicateEntry)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByBooking(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM overall_bookings WHERE amenity = \\$1 AND booking_id = \\$2").
		WithArgs("meetingRoom", int64(8)).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(1), "tok", "meetingRoom", int64(8), day, "{2024-03-15T10:00:00Z,2024-03-15T11:00:00Z,2,Orion,a}", day))

	entry, err := repo.GetByBooking(context.Background(), 8, domain.AmenityMeetingRoom)
	require.NoError(t, err)
	assert.Equal(t, domain.AmenityMeetingRoom, entry.Amenity)
	assert.Len(t, entry.Details, 5)
	assert.Equal(t, "Orion", entry.Details[3])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DeleteByBooking_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectExec("DELETE FROM overall_bookings WHERE amenity = \\$1 AND booking_id = \\$2").
		WithArgs("cafeteria", int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.DeleteByBooking(context.Background(), 4, domain.AmenityCafeteria)
	assert.ErrorIs(t, err, ErrEntryNotFound)
}
