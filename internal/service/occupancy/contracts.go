package occupancy

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

// SeatBookingRepository источник бронирований мест
type SeatBookingRepository interface {
	ListByFloorAndDate(ctx context.Context, floorNumber int, date time.Time) ([]*domain.SeatBooking, error)
}
