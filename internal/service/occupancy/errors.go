package occupancy

import "errors"

var (
	// ErrConflict чтение броней отклонено конкурентной транзакцией
	ErrConflict = errors.New("occupancy: concurrent modification")
	ErrInternal = errors.New("occupancy: internal error")
)
