package availability

import "errors"

var (
	// ErrInvalidInput некорректные параметры запроса (например, end <= start)
	ErrInvalidInput = errors.New("availability: invalid input")

	// ErrFloorNotFound этаж не найден
	ErrFloorNotFound = errors.New("availability: floor not found")

	ErrInternal = errors.New("availability: internal error")
)
