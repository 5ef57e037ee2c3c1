package seatbookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/internal/integrations/events"
)

// SeatBookingRepository интерфейс репозитория бронирований мест
type SeatBookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.SeatBooking, error)
	List(ctx context.Context) ([]*domain.SeatBooking, error)
	ListUpcomingByToken(ctx context.Context, token string, from time.Time) ([]*domain.SeatBooking, error)
	Delete(ctx context.Context, id int64) error
}

// LedgerService операции сводного журнала
type LedgerService interface {
	DeleteByBooking(ctx context.Context, bookingID int64, amenity domain.Amenity) (*domain.LedgerEntry, error)
	Announce(ctx context.Context, eventType events.EventType, entry *domain.LedgerEntry)
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
