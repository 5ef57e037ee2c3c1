package room_bookings

import (
	"context"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/roombookings"
	createRoomBooking "github.com/m04kA/SMC-FacilityBooking/internal/usecase/create_room_booking"
)

type CreateRoomBookingUseCase interface {
	Execute(ctx context.Context, req *createRoomBooking.Request) (*createRoomBooking.Response, error)
}

type RoomBookingService interface {
	GetByID(ctx context.Context, id int64) (*domain.RoomBooking, error)
	List(ctx context.Context) ([]*domain.RoomBooking, error)
	UpcomingByToken(ctx context.Context, token string) ([]*domain.RoomBooking, error)
	Patch(ctx context.Context, id int64, req *roombookings.PatchRequest) (*domain.RoomBooking, error)
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
