package cafeteriabooking

import "errors"

var (
	ErrBookingNotFound = errors.New("cafeteriabooking.repository: booking not found")
	ErrConflict        = errors.New("cafeteriabooking.repository: conflicting booking")

	ErrBuildQuery = errors.New("cafeteriabooking.repository: failed to build query")
	ErrExecQuery  = errors.New("cafeteriabooking.repository: failed to execute query")
	ErrScanRow    = errors.New("cafeteriabooking.repository: failed to scan row")
)
