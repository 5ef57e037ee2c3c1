package cafeteriabookings

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FacilityBooking/pkg/txmanager"
)

var (
	ErrBookingNotFound = errors.New("cafeteriabookings: booking not found")
	ErrFloorNotFound   = errors.New("cafeteriabookings: floor not found")

	// ErrNoCapacity в новом интервале столовая уже заполнена
	ErrNoCapacity = errors.New("cafeteriabookings: no cafeteria capacity")

	// ErrConflict изменение отклонено БД (конкурентная транзакция)
	ErrConflict = errors.New("cafeteriabookings: conflicting update")

	ErrInvalidInput = errors.New("cafeteriabookings: invalid input data")
	ErrInternal     = errors.New("cafeteriabookings: internal error")
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
