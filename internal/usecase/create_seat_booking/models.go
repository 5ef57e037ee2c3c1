package create_seat_booking

import (
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

// Request модель запроса на бронирование мест.
// Если указан SeatNo, места берутся как есть, иначе выделяется Capacity мест подряд.
type Request struct {
	Date        time.Time
	FloorNumber int
	Status      bool
	Token       *string
	SeatNo      []string
	Capacity    int
	Users       []string
}

// Response созданная бронь и ее запись в журнале
type Response struct {
	Booking *domain.SeatBooking
	Ledger  *domain.LedgerEntry
}
