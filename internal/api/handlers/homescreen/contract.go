package homescreen

import (
	"context"

	"github.com/m04kA/SMC-FacilityBooking/internal/service/ledger"
)

type HomescreenService interface {
	Homescreen(ctx context.Context, token string) (*ledger.Homescreen, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
