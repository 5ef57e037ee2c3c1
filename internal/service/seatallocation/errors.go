package seatallocation

import "errors"

var (
	// ErrSeatsNotFound нет непрерывного блока мест нужного размера
	ErrSeatsNotFound = errors.New("seatallocation: seats not found")

	// ErrInvalidFloorRange диапазон мест этажа настроен некорректно
	ErrInvalidFloorRange = errors.New("seatallocation: invalid floor seat range")

	// ErrConflict занятость прочитать не удалось из-за конкурентной транзакции
	ErrConflict = errors.New("seatallocation: concurrent modification")

	ErrInvalidCapacity = errors.New("seatallocation: capacity must be positive")
	ErrInternal        = errors.New("seatallocation: internal error")
)
