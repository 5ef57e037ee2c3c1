package room

import "errors"

var (
	// ErrRoomNotFound возвращается, когда переговорная не найдена
	ErrRoomNotFound = errors.New("room.repository: meeting room not found")

	ErrBuildQuery = errors.New("room.repository: failed to build query")
	ErrExecQuery  = errors.New("room.repository: failed to execute query")
	ErrScanRow    = errors.New("room.repository: failed to scan row")
)
