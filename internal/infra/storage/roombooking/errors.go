package roombooking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("roombooking.repository: booking not found")

	// ErrConflict возвращается, когда БД отклонила запись из-за пересечения интервалов
	// (exclusion constraint) или конфликта сериализации
	ErrConflict = errors.New("roombooking.repository: overlapping booking")

	ErrBuildQuery = errors.New("roombooking.repository: failed to build query")
	ErrExecQuery  = errors.New("roombooking.repository: failed to execute query")
	ErrScanRow    = errors.New("roombooking.repository: failed to scan row")
)
