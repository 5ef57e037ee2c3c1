package domain

import "time"

// SeatBooking бронирование мест на этаже на календарный день
type SeatBooking struct {
	ID          int64
	FloorNumber int
	Date        time.Time // полночь UTC, без времени суток
	SeatNo      []string  // порядок = порядок выделения, не пустой
	Status      bool      // признак занятости
	Users       []string
	Token       *string // владелец (опционально)

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOwnedBy сообщает, является ли token владельцем или участником бронирования
func (b *SeatBooking) IsOwnedBy(token string) bool {
	return isOwner(b.Token, b.Users, token)
}

// RoomBooking бронирование переговорной на интервал времени
type RoomBooking struct {
	ID          int64
	RoomID      int64
	RoomName    string
	Date        time.Time
	StartTime   time.Time
	EndTime     time.Time
	FloorNumber int
	Users       []string
	Status      bool
	Token       *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Range возвращает забронированный интервал [StartTime, EndTime)
func (b *RoomBooking) Range() TimeRange {
	return TimeRange{Start: b.StartTime, End: b.EndTime}
}

// IsOwnedBy сообщает, является ли token владельцем или участником бронирования
func (b *RoomBooking) IsOwnedBy(token string) bool {
	return isOwner(b.Token, b.Users, token)
}

// CafeteriaBooking бронирование места в столовой
type CafeteriaBooking struct {
	ID          int64
	FloorNumber int
	Date        time.Time
	StartTime   time.Time
	EndTime     time.Time
	Token       string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Range возвращает забронированный интервал [StartTime, EndTime)
func (b *CafeteriaBooking) Range() TimeRange {
	return TimeRange{Start: b.StartTime, End: b.EndTime}
}

func isOwner(owner *string, users []string, token string) bool {
	if owner != nil && *owner == token {
		return true
	}
	for _, u := range users {
		if u == token {
			return true
		}
	}
	return false
}
