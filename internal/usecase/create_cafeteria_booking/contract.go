package create_cafeteria_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/internal/integrations/events"
)

// FloorRepository справочник этажей
type FloorRepository interface {
	GetByNumber(ctx context.Context, number int) (*domain.Floor, error)
}

// CafeteriaBookingRepository интерфейс репозитория бронирований столовой
type CafeteriaBookingRepository interface {
	ListByFloorAndDate(ctx context.Context, floorNumber int, date time.Time) ([]*domain.CafeteriaBooking, error)
	Create(ctx context.Context, booking *domain.CafeteriaBooking) (*domain.CafeteriaBooking, error)
}

// LedgerService запись в сводный журнал
type LedgerService interface {
	Record(ctx context.Context, entry *domain.LedgerEntry) (*domain.LedgerEntry, error)
	Announce(ctx context.Context, eventType events.EventType, entry *domain.LedgerEntry)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// OutcomeRecorder учет результатов бронирования (метрики)
type OutcomeRecorder interface {
	ObserveAllocation(resource, outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
