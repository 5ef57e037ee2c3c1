package floor

import "errors"

var (
	// ErrFloorNotFound возвращается, когда этаж не найден
	ErrFloorNotFound = errors.New("floor.repository: floor not found")

	ErrBuildQuery = errors.New("floor.repository: failed to build query")
	ErrExecQuery  = errors.New("floor.repository: failed to execute query")
	ErrScanRow    = errors.New("floor.repository: failed to scan row")
)
