package cafeteria_bookings

import (
	"context"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/cafeteriabookings"
	createCafeteriaBooking "github.com/m04kA/SMC-FacilityBooking/internal/usecase/create_cafeteria_booking"
)

type CreateCafeteriaBookingUseCase interface {
	Execute(ctx context.Context, req *createCafeteriaBooking.Request) (*createCafeteriaBooking.Response, error)
}

type CafeteriaBookingService interface {
	GetByID(ctx context.Context, id int64) (*domain.CafeteriaBooking, error)
	List(ctx context.Context) ([]*domain.CafeteriaBooking, error)
	UpcomingByToken(ctx context.Context, token string) ([]*domain.CafeteriaBooking, error)
	Patch(ctx context.Context, id int64, req *cafeteriabookings.PatchRequest) (*domain.CafeteriaBooking, error)
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
