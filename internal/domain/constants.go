package domain

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD

	// InstantFormat момент времени в UTC, как в details журнала
	InstantFormat = "2006-01-02T15:04:05.000Z07:00"
)

const (
	// DefaultCafeteriaFloorNumber этаж, вместимость которого считается вместимостью столовой
	DefaultCafeteriaFloorNumber = 5

	// UnknownOwnerToken владелец брони столовой, если токен не передан
	UnknownOwnerToken = "UNKNOWN_USER"
)

// Ограничения запросов
const (
	MaxSeatCapacity = 500
	MaxUsers        = 50
)
