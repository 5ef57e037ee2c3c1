package cafeteriabookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/internal/integrations/events"
)

// CafeteriaBookingRepository интерфейс репозитория бронирований столовой
type CafeteriaBookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.CafeteriaBooking, error)
	List(ctx context.Context) ([]*domain.CafeteriaBooking, error)
	ListByFloorAndDate(ctx context.Context, floorNumber int, date time.Time) ([]*domain.CafeteriaBooking, error)
	ListUpcomingByToken(ctx context.Context, token string, from time.Time) ([]*domain.CafeteriaBooking, error)
	Update(ctx context.Context, booking *domain.CafeteriaBooking) (*domain.CafeteriaBooking, error)
	Delete(ctx context.Context, id int64) error
}

type FloorRepository interface {
	GetByNumber(ctx context.Context, number int) (*domain.Floor, error)
}

// LedgerService операции сводного журнала
type LedgerService interface {
	Sync(ctx context.Context, fresh *domain.LedgerEntry) (*domain.LedgerEntry, bool, error)
	DeleteByBooking(ctx context.Context, bookingID int64, amenity domain.Amenity) (*domain.LedgerEntry, error)
	Announce(ctx context.Context, eventType events.EventType, entry *domain.LedgerEntry)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
