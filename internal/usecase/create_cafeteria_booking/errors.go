package create_cafeteria_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FacilityBooking/pkg/txmanager"
)

var (
	// ErrFloorNotFound возвращается, когда этаж столовой не найден
	ErrFloorNotFound = errors.New("create_cafeteria_booking: floor not found")

	// ErrNoCapacity в выбранном интервале все места столовой заняты
	ErrNoCapacity = errors.New("create_cafeteria_booking: no cafeteria capacity")

	// ErrConflict запись отклонена БД
	ErrConflict = errors.New("create_cafeteria_booking: conflicting booking")

	ErrInvalidInput = errors.New("create_cafeteria_booking: invalid input data")
	ErrInternal     = errors.New("create_cafeteria_booking: internal error")
)

// translateTxError приводит ошибки открытия и фиксации транзакции к ошибкам use case
func translateTxError(err error) error {
	switch {
	case errors.Is(err, txmanager.ErrConflict):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	case errors.Is(err, txmanager.ErrBeginTx), errors.Is(err, txmanager.ErrCommit):
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return err
}
