package seat_bookings

import (
	"context"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	createSeatBooking "github.com/m04kA/SMC-FacilityBooking/internal/usecase/create_seat_booking"
	updateSeatBooking "github.com/m04kA/SMC-FacilityBooking/internal/usecase/update_seat_booking"
)

type CreateSeatBookingUseCase interface {
	Execute(ctx context.Context, req *createSeatBooking.Request) (*createSeatBooking.Response, error)
}

type UpdateSeatBookingUseCase interface {
	Execute(ctx context.Context, req *updateSeatBooking.Request) (*updateSeatBooking.Response, error)
}

// SeatBookingService чтение и удаление броней мест
type SeatBookingService interface {
	GetByID(ctx context.Context, id int64) (*domain.SeatBooking, error)
	List(ctx context.Context) ([]*domain.SeatBooking, error)
	UpcomingByToken(ctx context.Context, token string) ([]*domain.SeatBooking, error)
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
