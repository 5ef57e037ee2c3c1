package create_room_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/internal/integrations/events"
)

// RoomRepository справочник переговорных
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.MeetingRoom, error)
}

// FloorRepository справочник этажей
type FloorRepository interface {
	GetByNumber(ctx context.Context, number int) (*domain.Floor, error)
}

// RoomBookingRepository интерфейс репозитория бронирований переговорных
type RoomBookingRepository interface {
	ListByRoomAndDate(ctx context.Context, roomID int64, date time.Time) ([]*domain.RoomBooking, error)
	Create(ctx context.Context, booking *domain.RoomBooking) (*domain.RoomBooking, error)
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
