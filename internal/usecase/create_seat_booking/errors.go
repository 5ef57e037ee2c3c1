package create_seat_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FacilityBooking/pkg/txmanager"
)

var (
	// ErrFloorNotFound возвращается, когда этаж не найден
	ErrFloorNotFound = errors.New("create_seat_booking: floor not found")

	// ErrSeatsNotFound на этаже нет непрерывного блока свободных мест нужного размера
	ErrSeatsNotFound = errors.New("create_seat_booking: seats not found")

	// ErrConflict запись отклонена БД (конкурентное бронирование)
	ErrConflict = errors.New("create_seat_booking: conflicting booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_seat_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_seat_booking: internal error")
)

// translateTxError приводит ошибки открытия и фиксации транзакции к ошибкам use case.
// Проигравшая в гонке транзакция (40001 при COMMIT) - это ErrConflict.
func translateTxError(err error) error {
	switch {
	case errors.Is(err, txmanager.ErrConflict):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	case errors.Is(err, txmanager.ErrBeginTx), errors.Is(err, txmanager.ErrCommit):
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return err
}
