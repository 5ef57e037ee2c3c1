package roombookings

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FacilityBooking/pkg/txmanager"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("roombookings: booking not found")

	// ErrSlotAlreadyBooked новый интервал пересекается с другой бронью той же переговорной
	ErrSlotAlreadyBooked = errors.New("roombookings: slot already booked")

	// ErrConflict БД отклонила изменение (exclusion constraint или сериализация)
	ErrConflict = errors.New("roombookings: conflicting update")

	ErrInvalidInput = errors.New("roombookings: invalid input data")
	ErrInternal     = errors.New("roombookings: internal error")
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
