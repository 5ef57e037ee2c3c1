package domain

import (
	"strconv"
	"strings"
	"time"
)

// Amenity тип ресурса в сводном журнале бронирований
type Amenity string

const (
	AmenitySeat        Amenity = "Seating"
	AmenityMeetingRoom Amenity = "meetingRoom"
	AmenityCafeteria   Amenity = "cafeteria"
)

// IsValid сообщает, известен ли тип удобства
func (a Amenity) IsValid() bool {
	switch a {
	case AmenitySeat, AmenityMeetingRoom, AmenityCafeteria:
		return true
	}
	return false
}

// LedgerEntry строка сводного журнала (overall booking).
// Пара (BookingID, Amenity) уникальна.
//
// Раскладка Details зависит от Amenity:
//   - Seating:     [floorNumber, "A 001,A 002", users...]
//   - meetingRoom: [startISO, endISO, floorNumber, roomName, "user1,user2"]
//   - cafeteria:   [startISO, endISO]
type LedgerEntry struct {
	ID        int64
	Token     string
	Amenity   Amenity
	BookingID int64
	Date      time.Time
	Details   []string

	CreatedAt time.Time
}

// Индексы полей Details для временных ресурсов
const (
	DetailsStartIdx = 0
	DetailsEndIdx   = 1
)

// NewSeatLedgerEntry строка журнала для брони мест
func NewSeatLedgerEntry(b *SeatBooking) *LedgerEntry {
	details := []string{strconv.Itoa(b.FloorNumber), strings.Join(b.SeatNo, ",")}
	details = append(details, b.Users...)

	return &LedgerEntry{
		Token:     ownerOrUnknown(b.Token),
		Amenity:   AmenitySeat,
		BookingID: b.ID,
		Date:      b.Date,
		Details:   details,
	}
}

// NewRoomLedgerEntry строка журнала для брони переговорной
func NewRoomLedgerEntry(b *RoomBooking) *LedgerEntry {
	return &LedgerEntry{
		Token:     ownerOrUnknown(b.Token),
		Amenity:   AmenityMeetingRoom,
		BookingID: b.ID,
		Date:      b.Date,
		Details: []string{
			FormatInstant(b.StartTime),
			FormatInstant(b.EndTime),
			strconv.Itoa(b.FloorNumber),
			b.RoomName,
			strings.Join(b.Users, ","),
		},
	}
}

// NewCafeteriaLedgerEntry строка журнала для брони столовой
func NewCafeteriaLedgerEntry(b *CafeteriaBooking) *LedgerEntry {
	token := b.Token
	if token == "" {
		token = UnknownOwnerToken
	}

	return &LedgerEntry{
		Token:     token,
		Amenity:   AmenityCafeteria,
		BookingID: b.ID,
		Date:      b.Date,
		Details:   []string{FormatInstant(b.StartTime), FormatInstant(b.EndTime)},
	}
}

// FormatInstant время в UTC в формате ISO-8601 с миллисекундами
func FormatInstant(t time.Time) string {
	return t.UTC().Format(InstantFormat)
}

func ownerOrUnknown(token *string) string {
	if token == nil || *token == "" {
		return UnknownOwnerToken
	}
	return *token
}
