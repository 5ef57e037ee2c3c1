package seatbooking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("seatbooking.repository: booking not found")

	// ErrConflict возвращается при нарушении ограничений БД конкурентной записью
	ErrConflict = errors.New("seatbooking.repository: conflicting booking")

	ErrBuildQuery = errors.New("seatbooking.repository: failed to build query")
	ErrExecQuery  = errors.New("seatbooking.repository: failed to execute query")
	ErrScanRow    = errors.New("seatbooking.repository: failed to scan row")
)
