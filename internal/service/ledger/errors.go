package ledger

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FacilityBooking/pkg/txmanager"
)

var (
	// ErrEntryNotFound запись журнала не найдена
	ErrEntryNotFound = errors.New("ledger: entry not found")

	// ErrNoBookings у владельца нет ни одной брони
	ErrNoBookings = errors.New("ledger: no bookings found for token")

	// ErrConflict запись для (bookingID, amenity) уже существует
	// или транзакция отклонена из-за конкурентного изменения
	ErrConflict = errors.New("ledger: entry already exists")

	ErrInvalidInput = errors.New("ledger: invalid input data")
	ErrInternal     = errors.New("ledger: internal error")
)

// translateTxError приводит ошибки открытия и фиксации транзакции к ошибкам сервиса
func translateTxError(err error) error {
	switch {
	case errors.Is(err, txmanager.ErrConflict):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	case errors.Is(err, txmanager.ErrBeginTx), errors.Is(err, txmanager.ErrCommit):
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return err
}
