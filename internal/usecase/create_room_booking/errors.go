package create_room_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FacilityBooking/pkg/txmanager"
)

var (
	// ErrRoomNotFound возвращается, когда переговорная не найдена
	ErrRoomNotFound = errors.New("create_room_booking: room not found")

	// ErrFloorNotFound этаж переговорной не найден
	ErrFloorNotFound = errors.New("create_room_booking: floor not found")

	// ErrSlotAlreadyBooked интервал пересекается с существующей бронью переговорной
	ErrSlotAlreadyBooked = errors.New("create_room_booking: slot already booked")

	// ErrConflict запись отклонена БД (exclusion constraint или конфликт сериализации)
	ErrConflict = errors.New("create_room_booking: conflicting booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_room_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_room_booking: internal error")
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
