package update_seat_booking

import (
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

// Request полная замена брони мест. Поля как при создании.
type Request struct {
	ID          int64
	Date        time.Time
	FloorNumber int
	Status      bool
	Token       *string
	SeatNo      []string
	Capacity    int
	Users       []string
}

// Response новая бронь (с новым ID) и ее запись в журнале
type Response struct {
	ReplacedID int64
	Booking    *domain.SeatBooking
	Ledger     *domain.LedgerEntry
}
