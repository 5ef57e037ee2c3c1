package create_cafeteria_booking

import (
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

// Request модель запроса на бронирование столовой.
// Token берется из заголовка авторизации, FloorNumber по умолчанию - этаж столовой из конфига.
type Request struct {
	Token       string
	FloorNumber *int
	Date        time.Time
	StartTime   time.Time
	EndTime     time.Time
}

// Response созданная бронь и ее запись в журнале
type Response struct {
	Booking *domain.CafeteriaBooking
	Ledger  *domain.LedgerEntry
}
