package update_seat_booking

import (
	"context"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/internal/integrations/events"
	"github.com/m04kA/SMC-FacilityBooking/internal/usecase/create_seat_booking"
)

// SeatBookingRepository интерфейс репозитория бронирований мест
type SeatBookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.SeatBooking, error)
	Delete(ctx context.Context, id int64) error
}

// SeatBookingCreator создание новой брони внутри транзакции замены (use case create_seat_booking)
type SeatBookingCreator interface {
	CreateInTx(ctx context.Context, req *create_seat_booking.Request) (*create_seat_booking.Response, error)
	Observe(err error)
}

// LedgerService операции сводного журнала
type LedgerService interface {
	DeleteByBooking(ctx context.Context, bookingID int64, amenity domain.Amenity) (*domain.LedgerEntry, error)
	Announce(ctx context.Context, eventType events.EventType, entry *domain.LedgerEntry)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
