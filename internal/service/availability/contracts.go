package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
)

type FloorRepository interface {
	GetByNumber(ctx context.Context, number int) (*domain.Floor, error)
	List(ctx context.Context) ([]*domain.Floor, error)
}

type RoomRepository interface {
	Count(ctx context.Context) (int, error)
	ListByMinCapacity(ctx context.Context, capacity int) ([]*domain.MeetingRoom, error)
}

type SeatBookingRepository interface {
	ListByDate(ctx context.Context, date time.Time) ([]*domain.SeatBooking, error)
}

type RoomBookingRepository interface {
	ListByDate(ctx context.Context, date time.Time) ([]*domain.RoomBooking, error)
}

type CafeteriaBookingRepository interface {
	ListByFloorAndDate(ctx context.Context, floorNumber int, date time.Time) ([]*domain.CafeteriaBooking, error)
	CountByDate(ctx context.Context, date time.Time) (int, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
