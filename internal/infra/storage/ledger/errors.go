package ledger

import "errors"

var (
	// ErrEntryNotFound возвращается, когда запись журнала не найдена
	ErrEntryNotFound = errors.New("ledger.repository: entry not found")

	// ErrDuplicateEntry возвращается, когда для (booking_id, amenity) уже есть запись
	ErrDuplicateEntry = errors.New("ledger.repository: entry already exists")

	ErrBuildQuery = errors.New("ledger.repository: failed to build query")
	ErrExecQuery  = errors.New("ledger.repository: failed to execute query")
	ErrScanRow    = errors.New("ledger.repository: failed to scan row")
)
