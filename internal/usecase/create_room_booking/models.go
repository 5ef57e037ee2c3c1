package create_room_booking

import (
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

// Request модель запроса на бронирование переговорной
type Request struct {
	RoomID    int64
	Date      time.Time
	StartTime time.Time
	EndTime   time.Time
	Users     []string
	Status    bool
	Token     *string
}

// Response созданная бронь и ее запись в журнале
type Response struct {
	Booking *domain.RoomBooking
	Ledger  *domain.LedgerEntry
}
