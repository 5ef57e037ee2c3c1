package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewSeatLedgerEntry(t *testing.T) {
	token := "tok"
	b := &SeatBooking{
		ID:          4,
		FloorNumber: 2,
		Date:        time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		SeatNo:      []string{"B 005", "B 006"},
		Users:       []string{"u1", "u2"},
		Token:       &token,
	}

	entry := NewSeatLedgerEntry(b)

	assert.Equal(t, AmenitySeat, entry.Amenity)
	assert.Equal(t, int64(4), entry.BookingID)
	assert.Equal(t, "tok", entry.Token)
	assert.Equal(t, []string{"2", "B 005,B 006", "u1", "u2"}, entry.Details)
}

func TestNewRoomLedgerEntry(t *testing.T) {
	start := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	b := &RoomBooking{
		ID:          9,
		RoomName:    "Orion",
		Date:        NormalizeDate(start),
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
		FloorNumber: 3,
		Users:       []string{"a", "b"},
	}

	entry := NewRoomLedgerEntry(b)

	assert.Equal(t, UnknownOwnerToken, entry.Token)
	assert.Equal(t, []string{
		"2024-03-15T10:00:00.000Z",
		"2024-03-15T11:00:00.000Z",
		"3",
		"Orion",
		"a,b",
	}, entry.Details)
}

func TestNewCafeteriaLedgerEntry(t *testing.T) {
	msk := time.FixedZone("MSK", 3*60*60)
	start := time.Date(2024, 3, 15, 15, 0, 0, 0, msk)
	b := &CafeteriaBooking{ID: 1, StartTime: start, EndTime: start.Add(30 * time.Minute)}

	entry := NewCafeteriaLedgerEntry(b)

	assert.Equal(t, AmenityCafeteria, entry.Amenity)
	assert.Equal(t, UnknownOwnerToken, entry.Token)
	assert.Equal(t, []string{"2024-03-15T12:00:00.000Z", "2024-03-15T12:30:00.000Z"}, entry.Details)
}
