package overall_bookings

import (
	"context"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/ledger"
)

// LedgerService сводный журнал бронирований
type LedgerService interface {
	Rollup(ctx context.Context, token string) ([]*domain.LedgerEntry, error)
	GetByID(ctx context.Context, id int64) (*domain.LedgerEntry, error)
	List(ctx context.Context) ([]*domain.LedgerEntry, error)
	UpdateWindow(ctx context.Context, bookingID int64, amenity domain.Amenity, patch ledger.WindowPatch) (*domain.LedgerEntry, error)
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
