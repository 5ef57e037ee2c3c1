package seatbookings

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FacilityBooking/pkg/txmanager"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("seatbookings: booking not found")

	// ErrConflict удаление отклонено БД (конкурентная транзакция)
	ErrConflict = errors.New("seatbookings: conflicting update")

	ErrInvalidInput = errors.New("seatbookings: invalid input data")
	ErrInternal     = errors.New("seatbookings: internal error")
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
