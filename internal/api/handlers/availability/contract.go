package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/availability/models"
)

// AvailabilityEngine расчет свободных мест, переговорных и столовой
type AvailabilityEngine interface {
	SeatsAvailableOnDate(ctx context.Context, date time.Time) (*models.SeatAvailability, error)
	SeatsAvailableByFloor(ctx context.Context, date time.Time) ([]models.FloorAvailability, error)
	RoomsAvailableByTime(ctx context.Context, req models.RoomsByTimeRequest) ([]*domain.MeetingRoom, error)
	RoomsAvailableNow(ctx context.Context) (int, error)
	CafeteriaAvailableByDateTime(ctx context.Context, req models.CafeteriaByTimeRequest) (int, error)
	CafeteriaAvailableToday(ctx context.Context) (int, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
