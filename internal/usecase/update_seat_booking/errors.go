package update_seat_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FacilityBooking/pkg/txmanager"
)

var (
	// ErrBookingNotFound заменяемая бронь не найдена
	ErrBookingNotFound = errors.New("update_seat_booking: booking not found")

	ErrFloorNotFound = errors.New("update_seat_booking: floor not found")
	ErrSeatsNotFound = errors.New("update_seat_booking: seats not found")
	ErrConflict      = errors.New("update_seat_booking: conflicting booking")
	ErrInvalidInput  = errors.New("update_seat_booking: invalid input data")
	ErrInternal      = errors.New("update_seat_booking: internal error")
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
