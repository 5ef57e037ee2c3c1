package ledger

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/internal/integrations/events"
	avmodels "github.com/m04kA/SMC-FacilityBooking/internal/service/availability/models"
)

// LedgerRepository интерфейс репозитория сводного журнала
type LedgerRepository interface {
	Create(ctx context.Context, entry *domain.LedgerEntry) (*domain.LedgerEntry, error)
	GetByID(ctx context.Context, id int64) (*domain.LedgerEntry, error)
	GetByBooking(ctx context.Context, bookingID int64, amenity domain.Amenity) (*domain.LedgerEntry, error)
	List(ctx context.Context) ([]*domain.LedgerEntry, error)
	ListUpcomingByToken(ctx context.Context, token string, from time.Time) ([]*domain.LedgerEntry, error)
	Update(ctx context.Context, entry *domain.LedgerEntry) error
	DeleteByBooking(ctx context.Context, bookingID int64, amenity domain.Amenity) error
	Delete(ctx context.Context, id int64) error
}

type SeatBookingRepository interface {
	ListByOwner(ctx context.Context, token string) ([]*domain.SeatBooking, error)
}

type RoomBookingRepository interface {
	ListByOwner(ctx context.Context, token string) ([]*domain.RoomBooking, error)
}

type CafeteriaBookingRepository interface {
	ListByOwner(ctx context.Context, token string) ([]*domain.CafeteriaBooking, error)
}

// AvailabilityEngine счетчики для главного экрана
type AvailabilityEngine interface {
	RoomsAvailableNow(ctx context.Context) (int, error)
	SeatsAvailableOnDate(ctx context.Context, date time.Time) (*avmodels.SeatAvailability, error)
	CafeteriaAvailableToday(ctx context.Context) (int, error)
}

// EventPublisher публикация событий журнала
type EventPublisher interface {
	Publish(ctx context.Context, event events.BookingEvent) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
